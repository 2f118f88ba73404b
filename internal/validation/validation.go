package validation

import (
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const (
	// MaxNameLength caps sanitized subscriber names.
	MaxNameLength = 100
	// MinNameLength is the shortest acceptable subscriber name.
	MinNameLength = 2
)

var (
	emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	// RFC 5322-ish address shape used by the server-side pipeline.
	emailStrict = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)

	// Injection punctuation never expected in a legitimate local part.
	suspiciousLocal = regexp.MustCompile(`[<>'";/*-]`)

	tagLike        = regexp.MustCompile(`<[^>]*>`)
	badPunctuation = regexp.MustCompile(`[<>'";]`)
)

// ValidateEmail reports whether s looks like local@domain.tld and fits in
// 255 characters. No network or DNS check.
func ValidateEmail(s string) bool {
	return len(s) <= 255 && emailShape.MatchString(s)
}

// ValidateEmailStrict applies the server-side acceptance rules: RFC 5321
// length bounds, a stricter address shape, and no injection punctuation in
// the local part. Accepts a superset-agreeing language with ValidateEmail:
// everything strict-valid is also shape-valid.
func ValidateEmailStrict(s string) bool {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) < 5 || len(trimmed) > 254 {
		return false
	}
	if !emailStrict.MatchString(trimmed) {
		return false
	}
	local := trimmed[:strings.Index(trimmed, "@")]
	return !suspiciousLocal.MatchString(local)
}

// NormalizeEmail lowercases and trims an address. Registry membership and
// upstream submission always use the normalized form.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SanitizeName trims whitespace, strips tag-like substrings and stray angle
// brackets, and truncates to MaxNameLength runes. Idempotent:
// SanitizeName(SanitizeName(x)) == SanitizeName(x).
func SanitizeName(s string) string {
	out := tagLike.ReplaceAllString(s, "")
	out = strings.ReplaceAll(out, "<", "")
	out = strings.ReplaceAll(out, ">", "")
	if runes := []rune(out); len(runes) > MaxNameLength {
		out = string(runes[:MaxNameLength])
	}
	return strings.TrimSpace(out)
}

// ValidName reports whether a sanitized name is acceptable to the server:
// within length bounds, free of control characters and injection punctuation.
func ValidName(sanitized string) bool {
	runes := []rune(sanitized)
	if len(runes) < MinNameLength || len(runes) > MaxNameLength {
		return false
	}
	for _, r := range runes {
		if r < 0x20 {
			return false
		}
	}
	return !badPunctuation.MatchString(sanitized)
}

// ValidatePhone reports whether s parses as a valid phone number for its
// designated region. An empty string is invalid.
func ValidatePhone(s, defaultRegion string) bool {
	if s == "" {
		return false
	}
	num, err := phonenumbers.Parse(s, defaultRegion)
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(num)
}
