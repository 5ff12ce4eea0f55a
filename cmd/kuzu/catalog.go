package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/kuzu-maze/internal/catalog"
	"github.com/vovakirdan/kuzu-maze/internal/maze"
	"github.com/vovakirdan/kuzu-maze/internal/scoring"
)

var (
	flagStart       string
	flagDays        int
	flagOut         string
	flagWorkers     int
	flagCatalogAddr string
	flagCatalogFile string
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Build or serve precomputed daily boards",
	Long: `A catalog maps dates to boards and their optimal solutions.
Games read it from a file or an HTTP server and fall back to generating
boards locally when a date is missing.`,
}

var catalogGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and solve boards for a range of days",
	Long: `Generate daily boards starting at --start and compute the optimal
baseline for each one. The output is JSON when --out ends in .json and
YAML otherwise.

Examples:
  kuzu catalog generate --days 30 --out catalog.yaml
  kuzu catalog generate --start 2025-01-01 --days 365 --out boards.json`,
	Args: cobra.NoArgs,
	Run:  runCatalogGenerate,
}

var catalogServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a board catalog over HTTP",
	Long: `Serve GET /boards/{date} and GET /healthz. Dates missing from the
catalog file are generated and solved on the fly.

Examples:
  kuzu catalog serve --file catalog.yaml
  kuzu catalog serve --addr :9000`,
	Args: cobra.NoArgs,
	Run:  runCatalogServe,
}

func init() {
	catalogGenerateCmd.Flags().StringVar(&flagStart, "start", "", "First date (default today)")
	catalogGenerateCmd.Flags().IntVar(&flagDays, "days", 30, "Number of days to generate")
	catalogGenerateCmd.Flags().StringVar(&flagOut, "out", "", "Output file (default stdout, YAML)")
	catalogGenerateCmd.Flags().IntVar(&flagWorkers, "workers", 0, "Parallel solvers (0 = one per CPU)")
	catalogGenerateCmd.Flags().IntVar(&flagSolveLimit, "limit", maze.DefaultSolveLimit, "Maximum search states per board")

	catalogServeCmd.Flags().StringVar(&flagCatalogAddr, "addr", "", "Listen address (default from config)")
	catalogServeCmd.Flags().StringVar(&flagCatalogFile, "file", "", "Catalog file to serve (default from config)")

	catalogCmd.AddCommand(catalogGenerateCmd)
	catalogCmd.AddCommand(catalogServeCmd)
}

func runCatalogGenerate(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	start := flagStart
	if start == "" {
		start = time.Now().Format(scoring.DateLayout)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	began := time.Now()
	cat, err := catalog.Generate(ctx, catalog.GenerateOptions{
		Start:      start,
		Days:       flagDays,
		Rows:       cfg.Board.WideRows,
		Cols:       cfg.Board.WideCols,
		SolveLimit: flagSolveLimit,
		Workers:    flagWorkers,
	})
	if err != nil {
		fail("generating catalog: %v", err)
	}

	data, err := cat.Encode(flagOut)
	if err != nil {
		fail("encoding catalog: %v", err)
	}
	if flagOut == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(flagOut, data, 0o644); err != nil {
		fail("writing catalog: %v", err)
	}
	fmt.Fprintf(os.Stderr, "Wrote %d boards to %s in %s\n", len(cat), flagOut, time.Since(began).Round(time.Millisecond))
}

func runCatalogServe(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	logger := newLogger("catalog")

	addr := cfg.Server.CatalogAddr
	if flagCatalogAddr != "" {
		addr = flagCatalogAddr
	}
	path := cfg.Catalog.Path
	if flagCatalogFile != "" {
		path = flagCatalogFile
	}
	var src catalog.Source
	if path != "" {
		fs := catalog.NewFileSource(path)
		if _, err := fs.Load(); err != nil {
			fail("%v", err)
		}
		src = fs
	}

	mainCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := &http.Server{
		Addr:              addr,
		Handler:           catalog.NewServer(src, cfg.Board.WideRows, cfg.Board.WideCols, maze.DefaultSolveLimit, logger),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return mainCtx
		},
	}

	logger.Info("serving catalog", "address", addr, "file", path)

	g, gCtx := errgroup.WithContext(mainCtx)
	g.Go(func() error {
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	})

	if err := g.Wait(); err != nil {
		fail("catalog server: %v", err)
	}
	logger.Info("catalog server stopped")
}
