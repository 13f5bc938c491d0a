package storage

import (
	"net/url"
	"strings"
)

// PathFromPublicURL maps a public object URL back to its bucket-relative
// path. It understands both public-URL conventions in the wild:
//
//	https://<host>/storage/v1/object/public/<bucket>/uploads/x.png
//	https://<host>/<bucket>/uploads/x.png
//
// It is pure and total: malformed input, unrelated URLs, and URLs with
// nothing after the bucket segment all yield "", never an error. A ""
// result means "nothing to delete".
func PathFromPublicURL(rawURL, bucket string) string {
	if rawURL == "" || bucket == "" {
		return ""
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	parts := splitPath(u.Path)
	for i, p := range parts {
		if p != bucket {
			continue
		}
		// The "public/<bucket>" marker and the bare "<bucket>" segment
		// both resolve to whatever follows the bucket name.
		if rest := parts[i+1:]; len(rest) > 0 {
			return strings.Join(rest, "/")
		}
		return ""
	}
	return ""
}

func splitPath(p string) []string {
	var parts []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return parts
}
