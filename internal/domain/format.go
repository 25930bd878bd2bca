package domain

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Greeting picks the salutation for the hour of day.
func Greeting(hour int) string {
	switch {
	case hour < 12:
		return "Good Morning"
	case hour < 17:
		return "Good Afternoon"
	default:
		return "Good Evening"
	}
}

// DateHeader formats the dashboard date, e.g. "MONDAY, OCT 19".
func DateHeader(t time.Time) string {
	return strings.ToUpper(t.Format("Monday, Jan 2"))
}

// EntryStamp formats a reading time relative to now: "Today, 10:31 AM" for
// today, "Jun 5" otherwise.
func EntryStamp(t, now time.Time) string {
	if dayOf(t.In(now.Location())) == dayOf(now) {
		return "Today, " + t.In(now.Location()).Format("3:04 PM")
	}
	return t.Format("Jan 2")
}

// UpdatedLabel is the list caption for a metric's last reading.
func UpdatedLabel(t time.Time) string {
	return "updated on " + t.Format("Jan 2")
}

// Thousands formats n with grouping separators ("10,000").
func Thousands(n int) string {
	return printer.Sprintf("%d", n)
}

// StreakTitle is the headline for the streak achievement card.
func StreakTitle(days int) string {
	if days == 1 {
		return "Great Start!"
	}
	return fmt.Sprintf("%d Day Streak!", days)
}

// StreakMessage is the body text for the streak achievement card.
func StreakMessage(days int) string {
	if days == 1 {
		return "You've started your fitness journey!"
	}
	return "Keep it up! You're on fire!"
}
