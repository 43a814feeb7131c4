// Package moderation masks configured words in message text before the text
// is appended to the log. Matching is case-insensitive.
package moderation

import (
	"strings"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

const maskRune = '*'

type Censor struct {
	matcher *goahocorasick.Machine
}

// NewCensor builds an Aho-Corasick automaton over the given word list.
// An empty list yields a censor whose Apply is a no-op.
func NewCensor(words []string) (*Censor, error) {
	patterns := make([][]rune, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(strings.ToLower(w))
		if w == "" {
			continue
		}
		patterns = append(patterns, []rune(w))
	}
	if len(patterns) == 0 {
		return &Censor{}, nil
	}
	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return &Censor{matcher: m}, nil
}

// Apply replaces every occurrence of a censored word with mask characters
// and returns the distinct words that matched.
func (c *Censor) Apply(text string) (string, []string) {
	if c.matcher == nil || text == "" {
		return text, nil
	}
	runes := []rune(text)
	lowered := make([]rune, len(runes))
	for i, r := range runes {
		lowered[i] = unicode.ToLower(r)
	}

	terms := c.matcher.MultiPatternSearch(lowered, false)
	if len(terms) == 0 {
		return text, nil
	}

	seen := make(map[string]struct{}, len(terms))
	var words []string
	for _, term := range terms {
		word := string(term.Word)
		if _, ok := seen[word]; !ok {
			seen[word] = struct{}{}
			words = append(words, word)
		}
		for i := term.Pos; i < term.Pos+len(term.Word) && i < len(runes); i++ {
			runes[i] = maskRune
		}
	}
	return string(runes), words
}
