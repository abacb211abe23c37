package phone

import (
	"regexp"
	"strings"

	"courtside/services/apperrors"
)

// Iranian mobile numbers: 09XXXXXXXXX domestic, +989XXXXXXXXX or
// 989XXXXXXXXX international.
var iranianMobile = regexp.MustCompile(`^(?:\+98|0098|98|0)?9\d{9}$`)

// Normalize maps the accepted international prefixes to the domestic
// leading-zero form (09XXXXXXXXX). Inputs that match no known prefix are
// passed through unchanged.
func Normalize(raw string) string {
	p := strings.TrimSpace(raw)
	p = strings.ReplaceAll(p, " ", "")
	p = strings.ReplaceAll(p, "-", "")

	switch {
	case strings.HasPrefix(p, "+98"):
		p = "0" + p[3:]
	case strings.HasPrefix(p, "0098"):
		p = "0" + p[4:]
	case strings.HasPrefix(p, "98") && len(p) == 12:
		p = "0" + p[2:]
	}
	return p
}

// Validate reports whether the (trimmed) input is a well-formed Iranian
// mobile number.
func Validate(p string) error {
	if !iranianMobile.MatchString(strings.TrimSpace(p)) {
		return apperrors.ErrInvalidFormat
	}
	return nil
}
