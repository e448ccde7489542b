package lexer

import "regexp"

// Patterns of the lexical classes that the parser selects by position
// rather than by lexing order.
var (
	wordPattern         = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)
	elementPattern      = regexp.MustCompile(`^[A-Za-z]{1,2}$`)
	integerPattern      = regexp.MustCompile(`^-?[0-9]+(-[0-9]+)*$`)
	floatPattern        = regexp.MustCompile(`^-?(?:[0-9]+(?:\.[0-9]*)?|\.[0-9]+)(?:[eEdD][-+]?[0-9]+)?$`)
	stringPattern       = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_\-"+.*/()]*$`)
	filePattern         = regexp.MustCompile(`^[A-Za-z0-9_./\-]+$`)
	quotedStringPattern = regexp.MustCompile(`^"[^"\n]*"$`)
)

// IsWord reports whether s is a letter followed by letters, digits or '_'.
func IsWord(s string) bool { return wordPattern.MatchString(s) }

// IsElement reports whether s has the shape of an element symbol (1-2 letters).
func IsElement(s string) bool { return elementPattern.MatchString(s) }

// IsInteger reports whether s is an integer, including ORCA's compact
// notation with interior minus signs ("1-3").
func IsInteger(s string) bool { return integerPattern.MatchString(s) }

// IsFloat reports whether s is a float; plain integers qualify.
func IsFloat(s string) bool { return floatPattern.MatchString(s) }

// IsString reports whether s is a bare string value such as "def2-TZVP".
func IsString(s string) bool { return stringPattern.MatchString(s) }

// IsFile reports whether s looks like a file name or path.
func IsFile(s string) bool { return filePattern.MatchString(s) }

// IsQuotedString reports whether s is a double-quoted string.
func IsQuotedString(s string) bool { return quotedStringPattern.MatchString(s) }

// Classify returns the most specific class of a glued run of raw tokens:
// Element, Word, Integer, Float, QuotedString, String or File. Text matching
// none of them is Unknown.
func Classify(s string) Kind {
	switch {
	case IsQuotedString(s):
		return QuotedString
	case IsElement(s):
		return Element
	case IsWord(s):
		return Word
	case IsInteger(s):
		return Integer
	case IsFloat(s):
		return Float
	case IsString(s):
		return String
	case IsFile(s):
		return File
	}
	return Unknown
}
