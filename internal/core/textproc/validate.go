package textproc

import (
	"regexp"
	"strings"
)

var (
	emailPattern  = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneStripped = regexp.MustCompile(`[^\d+]`)
)

// ValidateEmail repairs OCR artifacts, then accepts only addresses with a
// local part, a domain and a final label of at least two letters. Returns the
// lowercased address, or "" when the value does not validate.
func ValidateEmail(email string) string {
	if email == "" {
		return ""
	}

	email = FixOCRArtifacts(email)

	if emailPattern.MatchString(email) {
		return strings.ToLower(email)
	}
	return ""
}

// ValidatePhone accepts phone numbers with 10 to 15 digits, ignoring a
// leading plus and any formatting. The original string is returned unchanged,
// or "" when the digit count is out of range.
func ValidatePhone(phone string) string {
	if phone == "" {
		return ""
	}

	digits := phoneStripped.ReplaceAllString(phone, "")
	n := len(strings.ReplaceAll(digits, "+", ""))

	if n >= 10 && n <= 15 {
		return phone
	}
	return ""
}
