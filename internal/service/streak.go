package service

import (
	"sort"
	"time"
)

const dateKeyLayout = "2006-01-02"

// CurrentStreak counts consecutive completed calendar days ending at or
// before today. The walk starts with a cursor on today's date and counts
// each completed date that is at most one day before the cursor, moving
// the cursor to it; the first gap ends the streak. Completions dated
// after today are ignored.
func CurrentStreak(done map[string]bool, today time.Time) int {
	cursor := dateOnly(today)

	keys := make([]string, 0, len(done))
	for k, v := range done {
		if !v {
			continue
		}
		d, err := time.Parse(dateKeyLayout, k)
		if err != nil || d.After(cursor) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))

	streak := 0
	for _, k := range keys {
		d, _ := time.Parse(dateKeyLayout, k)
		if daysBetween(d, cursor) <= 1 {
			streak++
			cursor = d
		} else {
			break
		}
	}
	return streak
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(earlier, later time.Time) int {
	return int(later.Sub(earlier).Hours() / 24)
}
