package extract

import "strings"

// plainText decodes bytes as UTF-8, discarding undecodable sequences rather
// than failing.
func plainText(data []byte) string {
	return strings.ToValidUTF8(string(data), "")
}
