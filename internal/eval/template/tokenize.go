package template

import (
	"strings"
	"unicode"
)

// Tokenize splits raw directive arguments on whitespace. Quoted spans are kept
// whole, quotes included; a quote of the other kind inside a span is plain
// text.
func Tokenize(raw string) []string {
	tokens := []string{}
	var current strings.Builder
	var quote rune

	for _, c := range raw {
		if quote == 0 && unicode.IsSpace(c) {
			if current.Len() > 0 {
				tokens = append(tokens, current.String())
				current.Reset()
			}
			continue
		}

		if c == '"' || c == '\'' {
			switch quote {
			case c:
				quote = 0
			case 0:
				quote = c
			}
		}

		current.WriteRune(c)
	}

	if current.Len() > 0 {
		tokens = append(tokens, current.String())
	}
	return tokens
}

// findGroup locates the first innermost parenthesized call in raw, skipping
// parentheses inside quoted spans. It returns the byte offsets of the opening
// and closing parenthesis.
func findGroup(raw string) (open, closing int, ok bool) {
	var quote rune
	open = -1

	for i, c := range raw {
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '(':
			open = i
		case c == ')':
			if open >= 0 && strings.TrimSpace(raw[open+1:i]) != "" {
				return open, i, true
			}
			open = -1
		}
	}
	return 0, 0, false
}
