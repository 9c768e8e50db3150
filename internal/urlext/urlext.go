package urlext

import (
	"path"
	"strings"
)

// Join combines URL path segments the way the host front end does: empty
// segments are skipped, the joined path is normalized, a trailing slash on the
// final segment survives, and nothing is percent-encoded. A scheme and
// authority on the first segment are kept as-is.
func Join(parts ...string) string {
	if len(parts) == 0 {
		return ""
	}
	prefix, first := splitOrigin(parts[0])

	segments := make([]string, 0, len(parts))
	if first != "" {
		segments = append(segments, first)
	}
	for _, part := range parts[1:] {
		if part == "" {
			continue
		}
		segments = append(segments, part)
	}
	if len(segments) == 0 {
		return prefix
	}
	if prefix != "" && !strings.HasPrefix(segments[0], "/") {
		segments[0] = "/" + segments[0]
	}

	joined := normalize(strings.Join(segments, "/"))
	if joined == "." {
		joined = ""
	}
	return prefix + joined
}

func normalize(p string) string {
	trailing := strings.HasSuffix(p, "/")
	cleaned := path.Clean(p)
	if trailing && !strings.HasSuffix(cleaned, "/") {
		cleaned += "/"
	}
	return cleaned
}

// splitOrigin separates "scheme://user@host" (or a schemeless "//host") from
// the path that follows it.
func splitOrigin(raw string) (string, string) {
	scheme, rest := "", raw
	if idx := strings.Index(raw, "://"); idx > 0 && isScheme(raw[:idx]) {
		scheme, rest = raw[:idx+1], raw[idx+1:]
	}
	if !strings.HasPrefix(rest, "//") {
		return "", raw
	}
	authority := rest[2:]
	end := strings.IndexAny(authority, "/?#")
	if end < 0 {
		return scheme + "//" + authority, ""
	}
	return scheme + "//" + authority[:end], authority[end:]
}

func isScheme(s string) bool {
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && (r >= '0' && r <= '9' || r == '+' || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return s != ""
}
