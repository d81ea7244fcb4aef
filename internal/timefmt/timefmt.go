package timefmt

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidTime is returned by Parse for malformed or out-of-range input.
var ErrInvalidTime = errors.New("invalid time")

// MaxParseableMs is the largest value Parse can produce (99:59:59.99).
const MaxParseableMs int64 = 99*3600000 + 59*60000 + 59*1000 + 990

const (
	msPerCenti  = 10
	msPerSecond = 1000
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
)

// Parts holds the display components of a millisecond count.
type Parts struct {
	Hours   int64
	Minutes int64
	Seconds int64
	Centis  int64
}

// Split breaks a millisecond count into display components. Hours are
// unbounded; precision below centiseconds is truncated. Negative input
// renders as zero.
func Split(ms int64) Parts {
	if ms < 0 {
		ms = 0
	}
	return Parts{
		Hours:   ms / msPerHour,
		Minutes: (ms / msPerMinute) % 60,
		Seconds: (ms / msPerSecond) % 60,
		Centis:  (ms / msPerCenti) % 100,
	}
}

// Format renders a millisecond count as HH:MM:SS.CC with each component
// zero-padded to two digits.
func Format(ms int64) string {
	p := Split(ms)
	return fmt.Sprintf("%02d:%02d:%02d.%02d", p.Hours, p.Minutes, p.Seconds, p.Centis)
}

// Parse converts a string in H:M:S.C form back to milliseconds. Each
// component may be one or two digits. Minutes and seconds above 59 and
// centiseconds above 99 are rejected, as is anything not matching the
// pattern. Format(Parse(s)) reproduces s up to zero padding.
func Parse(s string) (int64, error) {
	colonParts := strings.Split(s, ":")
	if len(colonParts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	secStr, centiStr, found := strings.Cut(colonParts[2], ".")
	if !found {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	hours, err := parseComponent(colonParts[0], 99)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	minutes, err := parseComponent(colonParts[1], 59)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	seconds, err := parseComponent(secStr, 59)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	centis, err := parseComponent(centiStr, 99)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}

	return hours*msPerHour + minutes*msPerMinute + seconds*msPerSecond + centis*msPerCenti, nil
}

func parseComponent(s string, max int64) (int64, error) {
	if len(s) < 1 || len(s) > 2 {
		return 0, ErrInvalidTime
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, ErrInvalidTime
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v > max {
		return 0, ErrInvalidTime
	}
	return v, nil
}
