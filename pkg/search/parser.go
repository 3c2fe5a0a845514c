package search

import (
	"fmt"
	"strings"
)

// Parser turns a one-line query such as
//
//	erode price<=5000000 sqft:1500-3000 sort:price_asc
//
// into a Query. Words that are not field conditions form the text match.
type Parser struct{}

// NewParser creates a new query parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses input into a query
func (p *Parser) Parse(input string) (Query, error) {
	q := NewQuery()
	var words []string

	for _, token := range tokenize(input) {
		handled, err := p.applyCondition(&q, token)
		if err != nil {
			return q, err
		}
		if !handled {
			words = append(words, token)
		}
	}

	q.Text = strings.Join(words, " ")
	return q, nil
}

// applyCondition applies a field condition token to q. It reports false
// when the token is plain text.
func (p *Parser) applyCondition(q *Query, token string) (bool, error) {
	lower := strings.ToLower(token)

	for _, field := range []string{"price", "sqft", "area"} {
		if !strings.HasPrefix(lower, field) {
			continue
		}
		rest := lower[len(field):]
		minBound, maxBound := boundsFor(q, field)

		switch {
		case strings.HasPrefix(rest, ">="):
			v, err := ParseBound(rest[2:], 0)
			if err != nil {
				return false, fmt.Errorf("%s: %w", field, err)
			}
			*minBound = v
		case strings.HasPrefix(rest, "<="):
			v, err := ParseBound(rest[2:], Unbounded)
			if err != nil {
				return false, fmt.Errorf("%s: %w", field, err)
			}
			*maxBound = v
		case strings.HasPrefix(rest, ":"):
			lo, hi, found := strings.Cut(rest[1:], "-")
			if !found {
				return false, fmt.Errorf("%s: expected a range like %s:100-200", field, field)
			}
			var err error
			if *minBound, err = ParseBound(lo, 0); err != nil {
				return false, fmt.Errorf("%s: %w", field, err)
			}
			if *maxBound, err = ParseBound(hi, Unbounded); err != nil {
				return false, fmt.Errorf("%s: %w", field, err)
			}
		default:
			continue
		}
		return true, nil
	}

	if value, ok := strings.CutPrefix(lower, "sort:"); ok {
		key, err := ParseSortKey(value)
		if err != nil {
			return false, err
		}
		q.Sort = key
		return true, nil
	}

	return false, nil
}

// boundsFor returns pointers to the min/max pair for a field.
// "area" is accepted as a synonym of "sqft".
func boundsFor(q *Query, field string) (*float64, *float64) {
	if field == "price" {
		return &q.MinPrice, &q.MaxPrice
	}
	return &q.MinSqft, &q.MaxSqft
}

// tokenize splits on whitespace, keeping double-quoted phrases together
func tokenize(input string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range input {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			if !inQuotes {
				flush()
			}
		case (r == ' ' || r == '\t') && !inQuotes:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return tokens
}
