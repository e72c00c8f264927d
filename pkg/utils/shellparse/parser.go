// Package shellparse splits and renders command lines the way a POSIX shell
// would, for the java options and application arguments users type as one
// string and for the shell-safe rendering of jpackage command lines.
package shellparse

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	// ErrUnclosedQuote is returned when a quoted string is not properly closed
	ErrUnclosedQuote = errors.New("unclosed quote in command string")

	// ErrTrailingEscape is returned when a backslash appears at the end of input
	ErrTrailingEscape = errors.New("trailing escape character at end of command")
)

type splitState int

const (
	stateBare splitState = iota
	stateSingle
	stateDouble
)

// Split parses a command string into words.
//
//	Split(`-Xmx512m -Dapp.name="My App"`) => ["-Xmx512m", "-Dapp.name=My App"]
//	Split(`--mode 'dark theme'`)          => ["--mode", "dark theme"]
//
// Single quotes are literal, double quotes honour backslash escapes of
// `"`, `\`, `$` and backtick, and a bare backslash escapes any rune.
func Split(input string) ([]string, error) {
	words := []string{}
	var word strings.Builder
	inWord := false
	state := stateBare

	runes := []rune(input)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]

		switch state {
		case stateSingle:
			if ch == '\'' {
				state = stateBare
			} else {
				word.WriteRune(ch)
			}

		case stateDouble:
			switch {
			case ch == '"':
				state = stateBare
			case ch == '\\':
				if i+1 >= len(runes) {
					return nil, ErrTrailingEscape
				}
				next := runes[i+1]
				if !strings.ContainsRune("\"\\$`", next) {
					word.WriteRune('\\')
				}
				word.WriteRune(next)
				i++
			default:
				word.WriteRune(ch)
			}

		default:
			switch {
			case unicode.IsSpace(ch):
				if inWord {
					words = append(words, word.String())
					word.Reset()
					inWord = false
				}
			case ch == '\\':
				if i+1 >= len(runes) {
					return nil, ErrTrailingEscape
				}
				word.WriteRune(runes[i+1])
				inWord = true
				i++
			case ch == '\'':
				state = stateSingle
				inWord = true
			case ch == '"':
				state = stateDouble
				inWord = true
			default:
				word.WriteRune(ch)
				inWord = true
			}
		}
	}

	switch state {
	case stateSingle:
		return nil, fmt.Errorf("%w: unclosed single quote", ErrUnclosedQuote)
	case stateDouble:
		return nil, fmt.Errorf("%w: unclosed double quote", ErrUnclosedQuote)
	}

	if inWord {
		words = append(words, word.String())
	}
	return words, nil
}

// QuoteSpaced wraps value in double quotes when it contains a space and
// returns it unchanged otherwise. Embedded double quotes and backslashes are
// escaped so Split recovers the original value.
func QuoteSpaced(value string) string {
	if !strings.ContainsRune(value, ' ') {
		return value
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, ch := range value {
		if ch == '"' || ch == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(ch)
	}
	b.WriteByte('"')
	return b.String()
}

// Join renders words as one command line, quoting those containing spaces.
func Join(words []string) string {
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = QuoteSpaced(w)
	}
	return strings.Join(quoted, " ")
}
