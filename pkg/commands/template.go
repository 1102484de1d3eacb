package commands

import (
	"fmt"
	"strings"
	"time"
)

// Shortcut is one user-defined insert-text template, stored per device under
// its trigger character. Templates may carry date/time tokens that are
// substituted at dispatch time.
type Shortcut struct {
	Template   string `json:"template"`
	DateFormat string `json:"dateFormat,omitempty"`
	TimeFormat string `json:"timeFormat,omitempty"`
}

// Render substitutes the supported tokens using now.
func (s Shortcut) Render(now time.Time) string {
	date := formatDate(now, s.DateFormat)
	clock := formatTime(now, s.TimeFormat)

	r := strings.NewReplacer(
		"{date}", date,
		"{time}", clock,
		"{datetime}", date+" "+clock,
		"{year}", fmt.Sprintf("%d", now.Year()),
		"{month}", fmt.Sprintf("%02d", int(now.Month())),
		"{day}", fmt.Sprintf("%02d", now.Day()),
		"{hour}", fmt.Sprintf("%02d", now.Hour()),
		"{minute}", fmt.Sprintf("%02d", now.Minute()),
		"{second}", fmt.Sprintf("%02d", now.Second()),
	)
	return r.Replace(s.Template)
}

func formatDate(now time.Time, format string) string {
	switch format {
	case "DD-MM-YYYY":
		return now.Format("02-01-2006")
	case "YYYY-MM-DD":
		return now.Format("2006-01-02")
	case "MM/DD/YYYY":
		return now.Format("01/02/2006")
	case "DD/MM/YYYY":
		return now.Format("02/01/2006")
	default: // MM-DD-YYYY
		return now.Format("01-02-2006")
	}
}

func formatTime(now time.Time, format string) string {
	switch format {
	case "HH:MM:SS":
		return now.Format("15:04:05")
	case "HH:MM AM/PM":
		return now.Format("3:04 PM")
	case "HH:MM:SS AM/PM":
		return now.Format("3:04:05 PM")
	default: // HH:MM
		return now.Format("15:04")
	}
}
