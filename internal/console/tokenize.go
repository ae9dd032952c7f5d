package console

import (
	"strings"

	"github.com/hbnb-network/hbnb/internal/domain"
)

// Split breaks line into shell words. Single quotes are literal; inside
// double quotes a backslash only escapes a backslash or a double quote;
// outside quotes a backslash escapes any character. An unterminated quote
// or a trailing backslash yields domain.ErrMalformedQuoting.
func Split(line string) ([]string, error) {
	var (
		words   []string
		word    strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)

	for _, r := range line {
		switch {
		case escaped:
			if quote == '"' && r != '\\' && r != '"' {
				word.WriteRune('\\')
			}
			word.WriteRune(r)
			escaped = false
		case quote == '\'':
			if r == '\'' {
				quote = 0
			} else {
				word.WriteRune(r)
			}
		case quote == '"':
			switch r {
			case '"':
				quote = 0
			case '\\':
				escaped = true
			default:
				word.WriteRune(r)
			}
		case isSpace(r):
			if inWord {
				words = append(words, word.String())
				word.Reset()
				inWord = false
			}
		case r == '\'' || r == '"':
			quote = r
			inWord = true
		case r == '\\':
			escaped = true
			inWord = true
		default:
			word.WriteRune(r)
			inWord = true
		}
	}

	if quote != 0 || escaped {
		return nil, domain.ErrMalformedQuoting
	}
	if inWord {
		words = append(words, word.String())
	}
	return words, nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

// Quote returns a shell-escaped form of s that Split turns back into
// exactly one word equal to s.
func Quote(s string) string {
	if s == "" {
		return "''"
	}
	safe := true
	for _, r := range s {
		if !isSafe(r) {
			safe = false
			break
		}
	}
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

func isSafe(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	}
	return strings.ContainsRune("@%+=:,./_-", r)
}
