package slug

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// MaxLength caps a normalized slug before any uniqueness suffix is appended.
const MaxLength = 80

// Make normalizes a title (or a caller-supplied slug) into a URL-safe slug:
// lowercase, only [a-z0-9-_], runs of anything else collapsed to a single
// hyphen, no leading/trailing hyphens, at most MaxLength characters.
// Make is idempotent: Make(Make(s)) == Make(s).
func Make(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	var b strings.Builder
	b.Grow(len(s))
	pendingSep := false
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_':
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
		case r == '-' || unicode.IsSpace(r):
			pendingSep = true
		default:
			pendingSep = true
		}
	}

	out := b.String()
	if len(out) > MaxLength {
		out = strings.TrimRight(out[:MaxLength], "-")
	}
	return out
}

// WithSuffix appends a millisecond timestamp to force uniqueness after a
// collision, matching the public URL format already in the wild.
func WithSuffix(slug string, t time.Time) string {
	return slug + "-" + strconv.FormatInt(t.UnixMilli(), 10)
}
