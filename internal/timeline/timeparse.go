package timeline

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// offsetSuffix matches an explicit numeric UTC offset at the end of a timestamp
var offsetSuffix = regexp.MustCompile(`[+-]\d{2}:?\d{2}$`)

// ParseUTC parses an upstream timestamp string. The GPS feed sometimes delivers
// timestamps without a Z suffix or an explicit offset even though the values
// are UTC; those get the marker appended before parsing so they are never
// misread as local time. An unparseable timestamp is a hard failure, since no
// event ordering can be established without it.
func ParseUTC(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	// The feed occasionally uses a space instead of the T separator
	if len(s) > 10 && s[10] == ' ' {
		s = s[:10] + "T" + s[11:]
	}

	if !strings.HasSuffix(s, "Z") && !offsetSuffix.MatchString(s) {
		s += "Z"
	}

	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse timestamp %q: %w", s, err)
	}

	return t.UTC(), nil
}
