package safety

import (
	"net/url"
	"regexp"
	"strings"
)

type redactionRule struct {
	pattern     *regexp.Regexp
	replacement string
}

// Hub single-user servers receive their API token through the environment and
// occasionally through a `?token=` query string; neither may reach a log line.
var secretRedactionRules = []redactionRule{
	{
		pattern:     regexp.MustCompile(`(?i)([?&;](?:token|access_token|api_token|_xsrf)=)[^&#\s]*`),
		replacement: `${1}<redacted>`,
	},
	{
		pattern:     regexp.MustCompile(`(?i)\b([a-z0-9_]*(?:token|secret|password|passwd|api[_-]?key)[a-z0-9_]*)\s*=\s*([^\s"'&]+|"[^"]*"|'[^']*')`),
		replacement: `$1=<redacted>`,
	},
	{
		pattern:     regexp.MustCompile(`(?i)\b(authorization\s*:\s*(?:bearer|token))\s+([^\s"']+)`),
		replacement: `$1 <redacted>`,
	},
	{
		pattern:     regexp.MustCompile(`(?i)(://[^/\s:@]+):[^@/\s]+@`),
		replacement: `$1:<redacted>@`,
	},
}

var sensitiveQueryKeys = map[string]struct{}{
	"token":        {},
	"access_token": {},
	"api_token":    {},
	"_xsrf":        {},
}

// RedactText scrubs token, password and credential patterns from free-form text.
func RedactText(input string) string {
	redacted := input
	for _, rule := range secretRedactionRules {
		redacted = rule.pattern.ReplaceAllString(redacted, rule.replacement)
	}
	return redacted
}

// RedactURL drops userinfo passwords and sensitive query values from a URL.
// Input that does not parse is passed through RedactText instead.
func RedactURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return raw
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return RedactText(raw)
	}
	if parsed.User != nil {
		if _, ok := parsed.User.Password(); ok {
			parsed.User = url.UserPassword(parsed.User.Username(), "redacted")
		}
	}
	if parsed.RawQuery != "" {
		query := parsed.Query()
		changed := false
		for key := range query {
			if _, ok := sensitiveQueryKeys[strings.ToLower(key)]; ok {
				query.Set(key, "redacted")
				changed = true
			}
		}
		if changed {
			parsed.RawQuery = query.Encode()
		}
	}
	return parsed.String()
}
