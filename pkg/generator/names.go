package generator

import (
	"strings"
	"unicode"

	"github.com/nativedb/nativedb/pkg/natives"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Case is an identifier naming style.
type Case int

// Naming styles.
const (
	// UpperSnake keeps native names as they are, e.g. GET_PLAYER_PED.
	UpperSnake Case = iota
	// Pascal produces GetPlayerPed.
	Pascal
	// Camel produces getPlayerPed.
	Camel
	// Snake produces get_player_ped.
	Snake
)

// Words splits an identifier on underscores and on lower-to-upper case
// changes, so both GET_PLAYER_PED and xPos are handled.
func Words(name string) []string {
	var words []string
	var cur []rune
	var prev rune

	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	for _, r := range name {
		switch {
		case r == '_' || r == ' ' || r == '-':
			flush()
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
		prev = r
	}
	flush()
	return words
}

// Convert renders name in the given case.
func Convert(name string, c Case) string {
	if c == UpperSnake {
		return name
	}

	words := Words(name)
	if len(words) == 0 {
		return name
	}

	lower := cases.Lower(language.English)
	title := cases.Title(language.English)

	var sb strings.Builder
	for i, word := range words {
		switch {
		case c == Snake:
			if i > 0 {
				sb.WriteByte('_')
			}
			sb.WriteString(lower.String(word))
		case c == Camel && i == 0:
			sb.WriteString(lower.String(word))
		default:
			sb.WriteString(title.String(word))
		}
	}
	return sb.String()
}

// PascalCase converts GET_PLAYER_PED to GetPlayerPed.
func PascalCase(name string) string { return Convert(name, Pascal) }

// CamelCase converts GET_PLAYER_PED to getPlayerPed.
func CamelCase(name string) string { return Convert(name, Camel) }

// SnakeCase converts GET_PLAYER_PED and xPos to get_player_ped and x_pos.
func SnakeCase(name string) string { return Convert(name, Snake) }

// FunctionName returns the identifier for a native in the given case.
// Unnamed natives keep their N_0x... identifier in every style.
func FunctionName(n *natives.Native, c Case) string {
	if !n.IsNamed() {
		return n.DisplayName()
	}
	return Convert(n.Name, c)
}

// Escaper makes identifiers safe in a target language.
type Escaper struct {
	reserved map[string]bool
	escape   func(string) string
}

// NewEscaper creates an escaper applying escape to any of the reserved words.
func NewEscaper(escape func(string) string, reserved ...string) Escaper {
	m := make(map[string]bool, len(reserved))
	for _, w := range reserved {
		m[w] = true
	}
	return Escaper{reserved: m, escape: escape}
}

// Ident returns name, escaped when it is a reserved word.
func (e Escaper) Ident(name string) string {
	if e.reserved[name] {
		return e.escape(name)
	}
	return name
}

// Suffix returns an escape function appending s.
func Suffix(s string) func(string) string {
	return func(name string) string { return name + s }
}

// Prefix returns an escape function prepending s.
func Prefix(s string) func(string) string {
	return func(name string) string { return s + name }
}
