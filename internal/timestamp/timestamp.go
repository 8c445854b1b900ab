// Package timestamp converts heterogeneous time strings into the single
// canonical 14-digit Beijing-time form used throughout the archive.
package timestamp

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Error is the sentinel returned for any string that cannot be normalized.
// It is data, not a fault: callers carry it through as a degenerate but
// valid canonical-name field.
const Error = "ERROR"

// Beijing is the canonical timezone: fixed UTC+8, no daylight saving.
var Beijing = time.FixedZone("CST", 8*60*60)

// Layout is the canonical 14-digit form, YYYYMMDDHHMMSS.
const Layout = "20060102150405"

// Chinese locale AM/PM markers as written by some camera firmware.
const (
	markerAM = "上午"
	markerPM = "下午"
)

const exifLayout = "2006:01:02 15:04:05"

// taggedTime captures the six numeric fields of an EXIF-shaped string with
// a trailing locale marker.
var taggedTime = regexp.MustCompile(`^(\d{4}):(\d{2}):(\d{2}) (\d{2}):(\d{2}):(\d{2})(上午|下午)`)

// Normalize parses raw and returns the 14-digit Beijing timestamp, or Error
// when the string cannot be interpreted. It never panics.
//
// Recognized shapes, tried in order:
//  1. EXIF "YYYY:MM:DD HH:MM:SS", optionally suffixed with 上午/下午
//  2. all-digit unix epoch, 10 digits (seconds) or 13 digits (milliseconds)
//  3. anything dateparse accepts (ISO 8601, RFC layouts, ...)
func Normalize(raw string) string {
	if hasEXIFShape(raw) {
		if strings.Contains(raw, markerAM) || strings.Contains(raw, markerPM) {
			if s, ok := normalizeTagged(raw); ok {
				return s
			}
			// Marker present but the positional pattern did not match;
			// let the generic parsers have a try.
		} else {
			t, err := time.ParseInLocation(exifLayout, raw, Beijing)
			if err != nil {
				return Error
			}
			return t.Format(Layout)
		}
	}

	if isDigits(raw) {
		switch len(raw) {
		case 10:
			sec, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return Error
			}
			return time.Unix(sec, 0).In(Beijing).Format(Layout)
		case 13:
			ms, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				return Error
			}
			return time.UnixMilli(ms).In(Beijing).Format(Layout)
		}
	}

	t, err := dateparse.ParseIn(raw, Beijing)
	if err != nil {
		return Error
	}
	return t.In(Beijing).Format(Layout)
}

// normalizeTagged handles EXIF-shaped strings carrying a 上午/下午 marker.
//
// First attempt: substitute the marker for " AM"/" PM" and parse as a
// 12-hour clock. This fails for sources that wrote a 24-hour hour value
// next to the marker (e.g. "21:23:28下午"), so the fallback reads the six
// numeric fields by position and corrects the hour:
//
//	下午 and hour < 12  -> hour + 12
//	下午 and hour >= 12 -> unchanged (already 24-hour)
//	上午 and hour == 12 -> 0
//	anything else       -> unchanged
//
// The rule is asymmetric on purpose; it reproduces observed device output
// rather than a textbook 12/24-hour mapping.
func normalizeTagged(raw string) (string, bool) {
	clean := strings.ReplaceAll(raw, markerAM, " AM")
	clean = strings.ReplaceAll(clean, markerPM, " PM")
	if t, err := time.ParseInLocation("2006:01:02 03:04:05 PM", clean, Beijing); err == nil {
		return t.Format(Layout), true
	}

	m := taggedTime.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}

	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	hour, _ := strconv.Atoi(m[4])
	minute, _ := strconv.Atoi(m[5])
	second, _ := strconv.Atoi(m[6])

	switch m[7] {
	case markerPM:
		if hour < 12 {
			hour += 12
		}
	case markerAM:
		if hour == 12 {
			hour = 0
		}
	}

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, Beijing)
	return t.Format(Layout), true
}

func hasEXIFShape(s string) bool {
	return len(s) >= 19 && s[4] == ':' && s[7] == ':' && s[10] == ' '
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
