package command

import "strings"

// Tokenize splits line at spaces that are not inside double quotes.
// Quote characters are kept in the tokens. Empty tokens are dropped.
func Tokenize(line string) []string {
	var (
		tokens  []string
		token   strings.Builder
		inQuote bool
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '"':
			token.WriteByte(c)
			inQuote = !inQuote
		case c == ' ' && !inQuote:
			if token.Len() > 0 {
				tokens = append(tokens, token.String())
				token.Reset()
			}
		default:
			token.WriteByte(c)
		}
	}
	if token.Len() > 0 {
		tokens = append(tokens, token.String())
	}
	return tokens
}
