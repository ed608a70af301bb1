package service

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// Match modes accepted by NewMatcher.
const (
	MatchSubstring = "substring"
	MatchWord      = "word"
)

// Matcher screens generated text against a list of denied terms and returns
// the first term found.
type Matcher interface {
	Match(text string, terms []string) (string, bool)
}

// NewMatcher returns the matcher for mode. An empty mode selects substring
// matching.
func NewMatcher(mode string) (Matcher, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", MatchSubstring:
		return SubstringMatcher{}, nil
	case MatchWord:
		return NewWordMatcher(), nil
	default:
		return nil, fmt.Errorf("unknown compliance match mode %q", mode)
	}
}

// SubstringMatcher flags a term wherever it occurs, including inside longer
// words: "butterscotch" matches "butter".
type SubstringMatcher struct{}

func (SubstringMatcher) Match(text string, terms []string) (string, bool) {
	lower := strings.ToLower(text)
	for _, term := range terms {
		if strings.Contains(lower, strings.ToLower(term)) {
			return term, true
		}
	}
	return "", false
}

// WordMatcher flags a term only as a whole word, optionally followed by a
// plural "s" or "es": "eggs" matches "egg", "butterscotch" does not match
// "butter".
type WordMatcher struct {
	mu       sync.RWMutex
	patterns map[string]*regexp.Regexp
}

// NewWordMatcher creates a WordMatcher with an empty pattern cache.
func NewWordMatcher() *WordMatcher {
	return &WordMatcher{patterns: make(map[string]*regexp.Regexp)}
}

func (m *WordMatcher) Match(text string, terms []string) (string, bool) {
	for _, term := range terms {
		if m.pattern(term).MatchString(text) {
			return term, true
		}
	}
	return "", false
}

func (m *WordMatcher) pattern(term string) *regexp.Regexp {
	m.mu.RLock()
	re, ok := m.patterns[term]
	m.mu.RUnlock()
	if ok {
		return re
	}

	re = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(term) + `(?:e?s)?\b`)
	m.mu.Lock()
	m.patterns[term] = re
	m.mu.Unlock()
	return re
}
