// Package lexer splits Unreal Engine textual property dumps into tokens.
// The token rules shifted between engine generations, so the lexer is
// parameterized by a Dialect instead of hard-coding one era's format.
package lexer

type Dialect struct {
	// Name is used in logs and error metadata.
	Name string

	// IsIdentRune reports whether r may appear in an identifier at rune
	// index i of the identifier (i == 0 for the leading rune).
	IsIdentRune func(r rune, i int) bool

	// LineComments enables // comments, skipped to the end of the line.
	LineComments bool

	// BareStrings enables the fallback terminal of modern dumps: when no
	// other token matches, everything up to the next comma, closing brace
	// or line break lexes as a single RAWSTRING.
	BareStrings bool
}

// Legacy is the dialect of UE3-era UModel dumps. Identifiers are loose
// and may contain spaces, hyphens and slashes ("Diffuse Map A",
// "Lightmap/Shadow"), and there is no bare string fallback: anything an
// identifier cannot absorb is a lexical error.
func Legacy() Dialect {
	return Dialect{
		Name: "legacy",
		IsIdentRune: func(r rune, i int) bool {
			if i == 0 && r == ' ' {
				return false
			}
			return isASCIIAlnum(r) || r == '_' || r == ' ' || r == '-' || r == '/'
		},
		LineComments: true,
		BareStrings:  false,
	}
}

// Modern is the dialect of UE4/UE5-era dumps. Identifiers are strict
// C-style names, and unrecognized value text falls back to a RAWSTRING
// run ending at the next comma, closing brace or line break.
func Modern() Dialect {
	return Dialect{
		Name: "modern",
		IsIdentRune: func(r rune, i int) bool {
			if i == 0 {
				return isASCIILetter(r) || r == '_'
			}
			return isASCIIAlnum(r) || r == '_'
		},
		LineComments: true,
		BareStrings:  true,
	}
}

// ByName maps a configuration string to a built-in dialect.
func ByName(name string) (Dialect, bool) {
	switch name {
	case "legacy":
		return Legacy(), true
	case "modern":
		return Modern(), true
	default:
		return Dialect{}, false
	}
}

func isASCIILetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

func isASCIIAlnum(r rune) bool {
	return isASCIILetter(r) || isDigit(r)
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
