// Package dateutil parses the date and time strings found in exported note
// pages and formats them as publication stamps.
package dateutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Fallback values used when a page carries no usable date information.
const (
	DefaultDate  = "1987/08/07"
	DefaultTime  = "08:07:00"
	MidnightTime = "00:00:00"
)

// Exported pages use U+202F (narrow no-break space) between the time and the
// AM/PM marker, which RE2's \s does not match.
const spaceClass = `[\s\x{00A0}\x{202F}]`

var (
	weekdayPrefix = regexp.MustCompile(`^[A-Za-z]+,` + spaceClass + `*`)
	longDate      = regexp.MustCompile(`([A-Za-z]+)` + spaceClass + `+(\d{1,2}),` + spaceClass + `*(\d{4})`)
	clockTime     = regexp.MustCompile(`(\d{1,2}):(\d{2})` + spaceClass + `*([AaPp][Mm])?`)
)

var months = map[string]int{
	"january": 1, "february": 2, "march": 3, "april": 4,
	"may": 5, "june": 6, "july": 7, "august": 8,
	"september": 9, "october": 10, "november": 11, "december": 12,
}

// Stamp is a publication date ("YYYY/MM/DD") and time ("HH:MM:SS").
type Stamp struct {
	Date string
	Time string
}

// Default returns the stamp used when no date block exists.
func Default() Stamp {
	return Stamp{Date: DefaultDate, Time: DefaultTime}
}

// PublishDate returns the value for the publish_date meta tag.
func (s Stamp) PublishDate() string {
	return s.Date
}

// PublishedTime returns the ISO-like value for article:published_time,
// e.g. "2025-04-11T22:53:00Z".
func (s Stamp) PublishedTime() string {
	return strings.ReplaceAll(s.Date, "/", "-") + "T" + s.Time + "Z"
}

// ParseExportDate converts "Friday, April 11, 2025" or "April 11, 2025" to
// "2025/04/11". Unknown month names and out-of-range days fail.
func ParseExportDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	s = weekdayPrefix.ReplaceAllString(s, "")

	m := longDate.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}

	month, ok := months[strings.ToLower(m[1])]
	if !ok {
		return "", false
	}
	day, err := strconv.Atoi(m[2])
	if err != nil || day < 1 || day > 31 {
		return "", false
	}

	return fmt.Sprintf("%s/%02d/%02d", m[3], month, day), true
}

// ParseExportTime converts "10:53 PM" or "9:05" to "HH:MM:00".
// 12 AM maps to hour 00, 12 PM stays 12, other PM hours gain 12.
func ParseExportTime(s string) (string, bool) {
	m := clockTime.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return "", false
	}

	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return "", false
	}
	minute, err := strconv.Atoi(m[2])
	if err != nil || minute > 59 {
		return "", false
	}

	switch strings.ToUpper(m[3]) {
	case "PM":
		if hour > 12 {
			return "", false
		}
		if hour < 12 {
			hour += 12
		}
	case "AM":
		if hour > 12 {
			return "", false
		}
		if hour == 12 {
			hour = 0
		}
	}
	if hour > 23 {
		return "", false
	}

	return fmt.Sprintf("%02d:%02d:00", hour, minute), true
}

// FromParts builds a stamp from the two paragraphs of a date block.
//
// An unparseable date falls back to DefaultDate. A missing or unparseable
// time becomes midnight, except when both strings are empty, which yields
// the full default stamp.
func FromParts(dateStr, timeStr string) Stamp {
	dateStr = strings.TrimSpace(dateStr)
	timeStr = strings.TrimSpace(timeStr)
	if dateStr == "" && timeStr == "" {
		return Default()
	}

	st := Stamp{Date: DefaultDate, Time: MidnightTime}
	if d, ok := ParseExportDate(dateStr); ok {
		st.Date = d
	}
	if tm, ok := ParseExportTime(timeStr); ok {
		st.Time = tm
	}
	return st
}

// FromMeta splits an existing meta value such as "2025/04/11",
// "2025-04-11T22:53:00Z" or "2025/04/11 22:53:00". The date part is kept
// verbatim; a missing time becomes midnight.
func FromMeta(value string) Stamp {
	value = strings.TrimSuffix(strings.TrimSpace(value), "Z")

	date, clock, found := strings.Cut(value, "T")
	if !found {
		date, clock, _ = strings.Cut(value, " ")
	}
	clock = strings.TrimSpace(clock)
	if clock == "" {
		clock = MidnightTime
	}
	return Stamp{Date: strings.TrimSpace(date), Time: clock}
}
