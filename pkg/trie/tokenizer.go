package trie

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Tokenizer splits a value into the ordered tokens used as edge labels.
// Tokenize must be deterministic: the same value always yields the same tokens.
type Tokenizer[V any, K comparable] interface {
	Tokenize(value V) ([]K, error)
}

// TokenizerFunc adapts a plain function to a Tokenizer.
type TokenizerFunc[V any, K comparable] func(value V) ([]K, error)

func (f TokenizerFunc[V, K]) Tokenize(value V) ([]K, error) {
	return f(value)
}

// TextTokenizer splits strings.
//
// With a Delimiter the string is split on it and empty segments are dropped,
// so "/a//b/" and "a/b" give the same tokens. Without one every rune is a token
// and nothing is dropped.
type TextTokenizer struct {
	Delimiter string
}

func (tt TextTokenizer) Tokenize(value string) ([]string, error) {
	if tt.Delimiter != "" {
		return splitValue(value, tt.Delimiter), nil
	}

	if !utf8.ValidString(value) {
		return nil, fmt.Errorf("%w: %q is not valid UTF-8", ErrInvalidValue, value)
	}

	tokens := make([]string, 0, utf8.RuneCountInString(value))
	for _, r := range value {
		tokens = append(tokens, string(r))
	}
	return tokens, nil
}

func splitValue(value string, delimiter string) []string {
	pieces := strings.Split(value, delimiter)
	tokens := pieces[:0]
	for _, piece := range pieces {
		if piece != "" {
			tokens = append(tokens, piece)
		}
	}
	return tokens
}

// SequenceTokenizer uses every element of a slice as a token.
// The slice is copied so the caller may reuse it.
type SequenceTokenizer[K comparable] struct{}

func (SequenceTokenizer[K]) Tokenize(value []K) ([]K, error) {
	tokens := make([]K, len(value))
	copy(tokens, value)
	return tokens, nil
}
