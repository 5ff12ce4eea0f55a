package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/kuzu-maze/internal/maze"
	"github.com/vovakirdan/kuzu-maze/internal/scoring"
)

var quiet = log.New(io.Discard)

// rowGrid is a valid 4x5 board with the flowers along the top row.
var rowGrid = [][]int{
	{1, 2, 3, 4, 5},
	{0, 0, 0, 0, 0},
	{0, 6, 7, 8, 9},
	{10, 11, 11, 11, 11},
}

func TestParseBothEntryForms(t *testing.T) {
	doc := []byte(`{"2025-11-18": [[1,2,3,4,5],[0,0,0,0,0],[0,6,7,8,9],[10,11,11,11,11]], ` +
		`"2025-11-19": {"board": [[1,2,3,4,5],[0,0,0,0,0],[0,6,7,8,9],[10,11,11,11,11]], "optimal": {"tiles": 5, "powers": 0}}}`)
	cat, err := Parse(doc)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := cat.Dates(); !slices.Equal(got, []string{"2025-11-18", "2025-11-19"}) {
		t.Errorf("Dates() = %v", got)
	}
	bare := cat["2025-11-18"]
	if !reflect.DeepEqual(bare.Board, rowGrid) || bare.Optimal != nil {
		t.Errorf("bare entry = %+v", bare)
	}
	full := cat["2025-11-19"]
	if !reflect.DeepEqual(full.Board, rowGrid) || full.Optimal == nil || *full.Optimal != (scoring.Optimal{Tiles: 5}) {
		t.Errorf("mapping entry = %+v", full)
	}

	if _, err := Parse([]byte(`{"2025-01-01": "nope"}`)); err == nil {
		t.Error("Parse() accepted a scalar entry")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cat := Catalog{
		"2025-01-01": {Board: rowGrid, Optimal: &scoring.Optimal{Tiles: 5, Powers: 0}},
		"2025-01-02": {Board: rowGrid},
	}
	for _, name := range []string{"boards.json", "boards.yaml"} {
		data, err := cat.Encode(name)
		if err != nil {
			t.Fatalf("Encode(%s) error = %v", name, err)
		}
		back, err := Parse(data)
		if err != nil {
			t.Fatalf("Parse(%s) error = %v", name, err)
		}
		if !reflect.DeepEqual(back, cat) {
			t.Errorf("%s round trip = %+v, want %+v", name, back, cat)
		}
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "boards.yaml")
	data, _ := Catalog{"2025-01-01": {Board: rowGrid}}.Encode(path)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	src := NewFileSource(path)
	e, err := src.Lookup(context.Background(), "2025-01-01")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if !reflect.DeepEqual(e.Board, rowGrid) {
		t.Errorf("Lookup() board = %v", e.Board)
	}
	if _, err := src.Lookup(context.Background(), "2030-01-01"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Lookup(missing) error = %v, want ErrNotFound", err)
	}

	missing := NewFileSource(filepath.Join(t.TempDir(), "none.yaml"))
	if _, err := missing.Lookup(context.Background(), "2025-01-01"); err == nil || errors.Is(err, ErrNotFound) {
		t.Errorf("Lookup on missing file error = %v, want read error", err)
	}
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	date := "2025-01-01"
	local := maze.DailyBoard(date, maze.WideRows, maze.WideCols)

	t.Run("nil source", func(t *testing.T) {
		r := Resolve(ctx, nil, date, 4, 5, -1, quiet)
		if r.FromCatalog || !slices.Equal(r.Board.Tiles(), local.Tiles()) {
			t.Error("nil source should generate locally")
		}
	})

	t.Run("catalog hit", func(t *testing.T) {
		src := Catalog{date: {Board: rowGrid, Optimal: &scoring.Optimal{Tiles: 5}}}
		r := Resolve(ctx, src, date, 4, 5, -1, quiet)
		if !r.FromCatalog || r.Optimal == nil || r.Board.At(maze.At(0, 0)) != maze.Flower1 {
			t.Errorf("Resolve() = %+v", r)
		}
	})

	t.Run("reshape drops optimal", func(t *testing.T) {
		src := Catalog{date: {Board: rowGrid, Optimal: &scoring.Optimal{Tiles: 5}}}
		r := Resolve(ctx, src, date, 5, 4, -1, quiet)
		if !r.FromCatalog || r.Board.Rows() != 5 || r.Board.Cols() != 4 {
			t.Fatalf("Resolve() shape = %dx%d", r.Board.Rows(), r.Board.Cols())
		}
		if r.Optimal != nil {
			t.Error("optimal should be dropped after reshaping")
		}
	})

	t.Run("reshape solves the new layout", func(t *testing.T) {
		src := Catalog{date: {Board: rowGrid, Optimal: &scoring.Optimal{Tiles: 5}}}
		r := Resolve(ctx, src, date, 5, 4, 0, quiet)
		want, ok := maze.Solve(r.Board, 0)
		if !ok {
			t.Fatal("reshaped board has no solution")
		}
		if r.Optimal == nil {
			t.Fatal("reshaped board should get a local baseline")
		}
		if r.Optimal.Tiles != want.Tiles || r.Optimal.Powers != want.Powers {
			t.Errorf("Optimal = %+v, want {%d %d}", *r.Optimal, want.Tiles, want.Powers)
		}
		if r.Optimal.Tiles <= 5 {
			t.Errorf("Optimal.Tiles = %d, the reshaped board needs more than 5", r.Optimal.Tiles)
		}
	})

	t.Run("entry without baseline is solved", func(t *testing.T) {
		r := Resolve(ctx, Catalog{date: {Board: rowGrid}}, date, 4, 5, 0, quiet)
		if r.Optimal == nil || r.Optimal.Tiles != 5 || r.Optimal.Powers != 0 {
			t.Errorf("Optimal = %+v, want {5 0}", r.Optimal)
		}
	})

	t.Run("negative limit leaves it unrated", func(t *testing.T) {
		r := Resolve(ctx, Catalog{date: {Board: rowGrid}}, date, 4, 5, -1, quiet)
		if r.Optimal != nil {
			t.Errorf("Optimal = %+v, want nil", r.Optimal)
		}
	})

	t.Run("invalid entry falls back", func(t *testing.T) {
		bad := [][]int{{11, 11, 11, 11, 11}, {0, 0, 0, 0, 0}, {0, 6, 7, 8, 9}, {10, 11, 11, 11, 11}}
		r := Resolve(ctx, Catalog{date: {Board: bad}}, date, 4, 5, -1, quiet)
		if r.FromCatalog || !slices.Equal(r.Board.Tiles(), local.Tiles()) {
			t.Error("invalid entry should fall back to the local board")
		}
	})

	t.Run("server error falls back", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer ts.Close()
		r := Resolve(ctx, NewHTTPSource(ts.URL, time.Second), date, 4, 5, -1, quiet)
		if r.FromCatalog || !slices.Equal(r.Board.Tiles(), local.Tiles()) {
			t.Error("HTTP failure should fall back to the local board")
		}
	})
}

func TestChain(t *testing.T) {
	ctx := context.Background()
	first := Catalog{"2025-01-01": {Board: rowGrid}}
	second := Catalog{"2025-01-02": {Board: rowGrid}}
	src := Chain(nil, first, second)

	if _, err := src.Lookup(ctx, "2025-01-02"); err != nil {
		t.Errorf("Lookup() error = %v", err)
	}
	if _, err := src.Lookup(ctx, "2025-01-03"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Lookup(missing) error = %v, want ErrNotFound", err)
	}
}

func TestServer(t *testing.T) {
	src := Catalog{"2025-01-01": {Board: rowGrid, Optimal: &scoring.Optimal{Tiles: 5}}}
	ts := httptest.NewServer(NewServer(src, 4, 5, 1, quiet))
	defer ts.Close()

	ctx := context.Background()
	client := NewHTTPSource(ts.URL+"/", time.Second)

	e, err := client.Lookup(ctx, "2025-01-01")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if !reflect.DeepEqual(e.Board, rowGrid) || e.Optimal == nil || e.Optimal.Tiles != 5 {
		t.Errorf("served entry = %+v", e)
	}

	// unknown dates are generated from the date seed
	e, err = client.Lookup(ctx, "2025-11-18")
	if err != nil {
		t.Fatalf("Lookup(generated) error = %v", err)
	}
	want := maze.DailyBoard("2025-11-18", 4, 5).Grid()
	if !reflect.DeepEqual(e.Board, want) {
		t.Errorf("generated board = %v, want %v", e.Board, want)
	}

	resp, err := http.Get(ts.URL + "/boards/not-a-date")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("bad date status = %d, want 400", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	var body map[string]string
	json.NewDecoder(resp.Body).Decode(&body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || body["status"] != "ok" {
		t.Errorf("healthz = %d %v", resp.StatusCode, body)
	}
}

func TestHTTPSourceNotFound(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()
	_, err := NewHTTPSource(ts.URL, time.Second).Lookup(context.Background(), "2025-01-01")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Lookup() error = %v, want ErrNotFound", err)
	}
}

func TestGenerate(t *testing.T) {
	cat, err := Generate(context.Background(), GenerateOptions{
		Start: "2024-12-30", Days: 4, Rows: 5, Cols: 4, SolveLimit: 1, Workers: 2,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	want := []string{"2024-12-30", "2024-12-31", "2025-01-01", "2025-01-02"}
	if got := cat.Dates(); !slices.Equal(got, want) {
		t.Fatalf("Dates() = %v, want %v", got, want)
	}
	for _, d := range want {
		if !reflect.DeepEqual(cat[d].Board, maze.DailyBoard(d, 5, 4).Grid()) {
			t.Errorf("board for %s does not match the daily generator", d)
		}
	}

	if _, err := Generate(context.Background(), GenerateOptions{Start: "bad", Days: 1, Rows: 4, Cols: 5}); err == nil {
		t.Error("Generate() accepted a bad start date")
	}
	if _, err := Generate(context.Background(), GenerateOptions{Start: "2025-01-01", Days: 1, Rows: 3, Cols: 3}); err == nil {
		t.Error("Generate() accepted a bad shape")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Generate(ctx, GenerateOptions{Start: "2025-01-01", Days: 3, Rows: 4, Cols: 5}); err == nil {
		t.Error("Generate() ignored a cancelled context")
	}
}

func TestBuildEntrySolves(t *testing.T) {
	e := BuildEntry("2025-01-01", 4, 5, 0)
	if e.Optimal == nil {
		t.Skip("board not solvable within the default limit")
	}
	if e.Optimal.Tiles < maze.GoalCount {
		t.Errorf("optimal tiles = %d, want at least %d", e.Optimal.Tiles, maze.GoalCount)
	}
}
