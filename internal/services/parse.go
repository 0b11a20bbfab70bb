package services

import (
	"strconv"
	"strings"

	"queue-sim-service/internal/domain"
)

// ParseRNList decomposes comma- or newline-delimited random-number
// text into integers. Tokens are trimmed and empty tokens skipped,
// so trailing delimiters and blank lines are harmless. A token that
// does not parse as an integer fails with a ParseError naming the
// token and its position; nothing is returned from partially valid
// text.
func ParseRNList(stream, text string) ([]int, error) {
	normalized := strings.ReplaceAll(text, "\n", ",")
	parts := strings.Split(normalized, ",")

	values := make([]int, 0, len(parts))
	for _, p := range parts {
		token := strings.TrimSpace(p)
		if token == "" {
			continue
		}

		v, err := strconv.Atoi(token)
		if err != nil {
			return nil, &domain.ParseError{Stream: stream, Token: token, Pos: len(values) + 1}
		}
		values = append(values, v)
	}

	return values, nil
}
