// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Source normalization applied to raw ORCA input before lexing.

package preprocessor

import (
	"bytes"
	"strings"

	"orcaparse/lexer"
)

var bom = []byte{0xEF, 0xBB, 0xBF}

// Normalize strips a leading UTF-8 byte order mark, turns CRLF line endings
// into LF and terminates the last line with a newline. Empty input stays
// empty. Line and column numbers of the remaining text do not change.
func Normalize(src []byte) []byte {
	out := src
	if bytes.HasPrefix(out, bom) {
		out = stripBOM(out)
	}
	if bytes.Contains(out, []byte("\r\n")) {
		out = normalizeNewlines(out)
	}
	if len(out) > 0 && out[len(out)-1] != '\n' {
		out = terminateLastLine(out)
	}
	return out
}

// NormalizeString is Normalize for strings.
func NormalizeString(src string) string {
	return string(Normalize([]byte(src)))
}

func stripBOM(src []byte) []byte {
	return src[len(bom):]
}

func normalizeNewlines(src []byte) []byte {
	return bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n"))
}

func terminateLastLine(src []byte) []byte {
	out := make([]byte, len(src), len(src)+1)
	copy(out, src)
	return append(out, '\n')
}

// StripComments removes '#' comments outside quoted strings, keeping the
// newline that ends each comment so line numbers are preserved. A quote left
// open on its line does not hide a comment after it.
func StripComments(source string) string {
	var result strings.Builder
	result.Grow(len(source))
	for tok := range lexer.All("", source) {
		if tok.Kind != lexer.Comment {
			result.WriteString(tok.Value)
		}
	}
	return result.String()
}
