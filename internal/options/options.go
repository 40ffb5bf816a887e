package options

import (
	"context"
	"fmt"
	"strings"
	"time"
)

type contextKey struct{}

// WithReferenceTime stores the clock used by the today-filter inside the context.
func WithReferenceTime(ctx context.Context, t time.Time) context.Context {
	if t.IsZero() {
		return ctx
	}
	return context.WithValue(ctx, contextKey{}, t)
}

// ReferenceTime retrieves the today-filter clock from context, defaulting to
// the wall clock when none was set.
func ReferenceTime(ctx context.Context) time.Time {
	if v := ctx.Value(contextKey{}); v != nil {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Now()
}

// ParseDateFilter validates a YYYY-MM-DD or YY-MM-DD date literal and
// normalizes it to YYYY-MM-DD. An empty input disables the filter.
func ParseDateFilter(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", nil
	}
	if !ValidateDateString(input) {
		return "", fmt.Errorf("invalid date %q: use YYYY-MM-DD or YY-MM-DD", input)
	}
	return NormalizeDateString(input), nil
}

// ValidateDateString reports whether s is shaped like YYYY-MM-DD or YY-MM-DD.
func ValidateDateString(s string) bool {
	switch len(s) {
	case 8: // YY-MM-DD
		return s[2] == '-' && s[5] == '-' &&
			isDigits(s[:2]) && isDigits(s[3:5]) && isDigits(s[6:8])
	case 10: // YYYY-MM-DD
		return s[4] == '-' && s[7] == '-' &&
			isDigits(s[:4]) && isDigits(s[5:7]) && isDigits(s[8:10])
	default:
		return false
	}
}

// NormalizeDateString converts YY-MM-DD to YYYY-MM-DD assuming the 2000s.
func NormalizeDateString(s string) string {
	if len(s) == 8 {
		yy := int(s[0]-'0')*10 + int(s[1]-'0')
		return fmt.Sprintf("%04d-%s", 2000+yy, s[3:])
	}
	return s
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
