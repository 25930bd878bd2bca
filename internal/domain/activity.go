package domain

import (
	"sort"
	"time"
)

// WorkoutSession is a logged training session.
type WorkoutSession struct {
	ID        string    `json:"id"`
	Date      time.Time `json:"date"`
	Duration  int       `json:"duration"` // minutes
	Type      string    `json:"type"`
	Completed bool      `json:"completed"`
}

// ActivitySummary holds the derived numbers the dashboards display.
type ActivitySummary struct {
	StreakDays     int
	LongestStreak  int
	TotalMinutes   int
	WeeklyMinutes  int
	MonthlyMinutes int
	WorkoutsToday  int
	Steps          int
	StepGoal       int
	StepProgress   float64 // percent
	WaterToday     float64 // litres
}

// civil is a calendar day independent of clock time.
type civil struct {
	y int
	m time.Month
	d int
}

func dayOf(t time.Time) civil {
	y, m, d := t.Date()
	return civil{y, m, d}
}

// SameDay reports whether a and b fall on the same calendar day in b's location.
func SameDay(a, b time.Time) bool {
	return dayOf(a.In(b.Location())) == dayOf(b)
}

func (c civil) prev() civil {
	return dayOf(time.Date(c.y, c.m, c.d, 12, 0, 0, 0, time.UTC).AddDate(0, 0, -1))
}

func (c civil) next() civil {
	return dayOf(time.Date(c.y, c.m, c.d, 12, 0, 0, 0, time.UTC).AddDate(0, 0, 1))
}

func completedDays(sessions []WorkoutSession, loc *time.Location) map[civil]bool {
	days := make(map[civil]bool)
	for _, s := range sessions {
		if s.Completed {
			days[dayOf(s.Date.In(loc))] = true
		}
	}
	return days
}

// StreakDays counts consecutive days with a completed session, ending today
// or, if nothing is logged yet today, yesterday.
func StreakDays(sessions []WorkoutSession, now time.Time) int {
	days := completedDays(sessions, now.Location())
	day := dayOf(now)
	if !days[day] {
		day = day.prev()
	}
	n := 0
	for days[day] {
		n++
		day = day.prev()
	}
	return n
}

// LongestStreak returns the longest run of consecutive training days.
func LongestStreak(sessions []WorkoutSession, loc *time.Location) int {
	days := completedDays(sessions, loc)
	best := 0
	for day := range days {
		// Only count from the first day of each run.
		if days[day.prev()] {
			continue
		}
		n := 0
		for d := day; days[d]; d = d.next() {
			n++
		}
		best = max(best, n)
	}
	return best
}

// TotalMinutes sums completed session durations.
func TotalMinutes(sessions []WorkoutSession) int {
	total := 0
	for _, s := range sessions {
		if s.Completed {
			total += s.Duration
		}
	}
	return total
}

// WeekStart returns midnight of the Monday starting now's week.
func WeekStart(now time.Time) time.Time {
	offset := (int(now.Weekday()) + 6) % 7
	y, m, d := now.Date()
	return time.Date(y, m, d-offset, 0, 0, 0, 0, now.Location())
}

// WeeklyMinutes sums completed minutes since the start of the current week.
func WeeklyMinutes(sessions []WorkoutSession, now time.Time) int {
	start := WeekStart(now)
	total := 0
	for _, s := range sessions {
		if s.Completed && !s.Date.Before(start) && !s.Date.After(now) {
			total += s.Duration
		}
	}
	return total
}

// MonthlyMinutes sums completed minutes in now's calendar month.
func MonthlyMinutes(sessions []WorkoutSession, now time.Time) int {
	y, m, _ := now.Date()
	total := 0
	for _, s := range sessions {
		sy, sm, _ := s.Date.In(now.Location()).Date()
		if s.Completed && sy == y && sm == m {
			total += s.Duration
		}
	}
	return total
}

// WorkoutsOn counts completed sessions on now's calendar day.
func WorkoutsOn(sessions []WorkoutSession, now time.Time) int {
	today := dayOf(now)
	n := 0
	for _, s := range sessions {
		if s.Completed && dayOf(s.Date.In(now.Location())) == today {
			n++
		}
	}
	return n
}

// StepProgress returns steps as a percentage of goal.
func StepProgress(steps, goal int) float64 {
	if goal <= 0 {
		return 0
	}
	return float64(steps) / float64(goal) * 100
}

// SortSessionsNewest orders sessions newest first.
func SortSessionsNewest(sessions []WorkoutSession) {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Date.After(sessions[j].Date)
	})
}
