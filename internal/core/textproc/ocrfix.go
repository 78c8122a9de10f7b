package textproc

import (
	"regexp"
	"strings"
)

// Common email domains clipped by OCR: "@gmail.c" or "@gmail.co" become "@gmail.com".
var emailDomainFixes = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`(?i)@gmail\.c(?:om?)?\b`), "@gmail.com"},
	{regexp.MustCompile(`(?i)@yahoo\.c(?:om?)?\b`), "@yahoo.com"},
	{regexp.MustCompile(`(?i)@hotmail\.c(?:om?)?\b`), "@hotmail.com"},
	{regexp.MustCompile(`(?i)@outlook\.c(?:om?)?\b`), "@outlook.com"},
	{regexp.MustCompile(`(?i)@icloud\.c(?:om?)?\b`), "@icloud.com"},
}

var (
	zeroInWord = regexp.MustCompile(`([a-zA-Z])0([a-zA-Z])`)
	oneInWord  = regexp.MustCompile(`([a-zA-Z])1([a-zA-Z])`)
)

// FixOCRArtifacts repairs frequent OCR misreads: clipped email domains, pipe
// for the letter I, and digits 0/1 standing in for O/l inside words. Digits
// surrounded by other digits are left alone so numbers stay intact.
func FixOCRArtifacts(text string) string {
	if text == "" {
		return text
	}

	for _, fix := range emailDomainFixes {
		text = fix.pattern.ReplaceAllString(text, fix.replacement)
	}

	text = strings.ReplaceAll(text, "|", "I")

	// Repeat until stable: a match consumes its trailing letter, which may
	// itself precede another misread digit ("w0r1d").
	for zeroInWord.MatchString(text) {
		text = zeroInWord.ReplaceAllString(text, "${1}O${2}")
	}
	for oneInWord.MatchString(text) {
		text = oneInWord.ReplaceAllString(text, "${1}l${2}")
	}

	return text
}
