package scoring

import "time"

// DateLayout is the calendar date format used for daily records.
const DateLayout = "2006-01-02"

// Streak is the persisted day-over-day completion record.
type Streak struct {
	Current       int    `json:"currentStreak"`
	Best          int    `json:"bestStreak"`
	LastCompleted string `json:"lastCompletedDate"`
}

// Yesterday returns the calendar day before date, or "" if date does not parse.
func Yesterday(date string) string {
	d, err := time.Parse(DateLayout, date)
	if err != nil {
		return ""
	}
	return d.AddDate(0, 0, -1).Format(DateLayout)
}

// UpdateStreak applies a completion on today to prev.
// Completing twice on the same day leaves the record unchanged.
func UpdateStreak(today string, prev *Streak) Streak {
	if prev == nil {
		return Streak{Current: 1, Best: 1, LastCompleted: today}
	}
	next := *prev
	if prev.LastCompleted == today {
		return next
	}
	if y := Yesterday(today); y != "" && prev.LastCompleted == y {
		next.Current++
	} else {
		next.Current = 1
	}
	next.Best = max(next.Best, next.Current)
	next.LastCompleted = today
	return next
}

// StreakEligible reports whether a win on attempt may extend a streak.
// A maxAttempts of zero or less disables the limit.
func StreakEligible(attempt, maxAttempts int) bool {
	return maxAttempts <= 0 || attempt <= maxAttempts
}
