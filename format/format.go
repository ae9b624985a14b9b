// Package format renders booking fields for display. All functions are pure:
// no state, no side effects, no locale or timezone dependence.
package format

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/citomed/bookchat"
)

// Time converts a 24-hour "HH:MM" clock time to "h:MM AM/PM". Hour 0 maps to
// 12 AM, hour 12 to 12 PM, hours 13-23 lose twelve and gain PM. Minutes pass
// through exactly as given. Input that does not look like a clock time is
// returned unchanged.
func Time(hhmm string) string {
	hh, mm, ok := strings.Cut(hhmm, ":")
	if !ok {
		return hhmm
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return hhmm
	}
	period := "AM"
	switch {
	case hour == 0:
		hour = 12
	case hour == 12:
		period = "PM"
	case hour > 12:
		hour -= 12
		period = "PM"
	}
	return fmt.Sprintf("%d:%s %s", hour, mm, period)
}

// Date converts an ISO calendar date ("2025-06-11") to its long form,
// "Wednesday, June 11, 2025". The input is parsed as a naked calendar date,
// so no timezone conversion can shift the day. Unparseable input is returned
// unchanged.
func Date(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return t.Format("Monday, January 2, 2006")
}

// Duration renders an appointment length in minutes, e.g. "30 min".
func Duration(minutes int) string {
	return fmt.Sprintf("%d min", minutes)
}

// TimeRange renders a start/end pair, e.g. "9:00 AM – 9:30 AM". An empty end
// time yields just the formatted start.
func TimeRange(start, end string) string {
	if end == "" {
		return Time(start)
	}
	return Time(start) + " – " + Time(end)
}

// Slot renders an open slot as "Wednesday, June 11, 2025 at 9:00 AM".
func Slot(s bookchat.Slot) string {
	return Date(s.Date) + " at " + Time(s.StartTime)
}
