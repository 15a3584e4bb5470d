// Package validation holds the field rules shared by the API handlers and
// the Go client. Both sides run the same checks; the server side is the
// authoritative one.
package validation

import "strings"

// RequiredFields is the non-file portion of an employee submission.
type RequiredFields struct {
	Name        string
	Email       string
	Mobile      string
	Designation string
	Gender      string
	Courses     []string
}

// Email reports whether s looks like local@domain.tld: a single "@" with
// non-whitespace on both sides and at least one dot in the domain part.
// Deliberately a heuristic, not RFC 5322.
func Email(s string) bool {
	at := strings.Index(s, "@")
	if at <= 0 || at != strings.LastIndex(s, "@") {
		return false
	}
	local, domain := s[:at], s[at+1:]
	if containsSpace(local) || containsSpace(domain) {
		return false
	}
	// The domain needs a dot with at least one character on each side.
	// "b.c." passes: the final character after an interior dot may itself
	// be a dot.
	if len(domain) < 3 {
		return false
	}
	return strings.Contains(domain[1:len(domain)-1], ".")
}

// Mobile reports whether s is exactly 10 ASCII digits.
func Mobile(s string) bool {
	if len(s) != 10 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Required reports whether every mandatory field is non-empty after
// trimming and at least one course is selected.
func Required(f RequiredFields) bool {
	for _, v := range []string{f.Name, f.Email, f.Mobile, f.Designation, f.Gender} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return len(f.Courses) > 0
}

// ImageMIME reports whether mime is one of the two accepted photo types.
func ImageMIME(mime string) bool {
	return mime == "image/jpeg" || mime == "image/png"
}

func containsSpace(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r'
	}) >= 0
}
