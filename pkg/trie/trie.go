package trie

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrInvalidValue is returned when a value can not be split into tokens.
var ErrInvalidValue = errors.New("invalid value")

// the root always lives at index 0 of the arena and is never released.
const rootIndex = 0

// node is a single entry of the arena.
// children maps a token to the arena index of the child node.
type node[K comparable] struct {
	terminal bool
	children map[K]int
}

func (n *node[K]) isDead() bool {
	return !n.terminal && len(n.children) == 0
}

// Trie is a prefix tree over token sequences produced by a Tokenizer.
//
// Nodes are kept in an arena and addressed by index, a parent owns its
// children through the token -> index map. Slots freed by Remove are reused by Add.
//
// A Trie is not safe for concurrent use, callers must serialize access.
type Trie[V any, K comparable] struct {
	nodes     []node[K]
	free      []int
	size      int
	err       error
	tokenizer Tokenizer[V, K]
	logger    *slog.Logger
}

// New creates a trie that tokenizes values with tokenizer and adds each of values in order.
// A value that can not be tokenized is skipped, the first such error is reported by Err.
func New[V any, K comparable](tokenizer Tokenizer[V, K], values []V, opts ...Option) *Trie[V, K] {
	if tokenizer == nil {
		panic("[BUG] trie.New: tokenizer must not be nil")
	}

	o := applyOptions(opts)
	t := &Trie[V, K]{
		nodes:     []node[K]{{children: map[K]int{}}},
		tokenizer: tokenizer,
		logger:    o.logger,
	}

	for _, value := range values {
		t.Add(value)
	}

	return t
}

// NewText creates a trie over strings.
// with WithDelimiter the values are split into segments, otherwise every rune is a token.
func NewText(values []string, opts ...Option) *Trie[string, string] {
	o := applyOptions(opts)
	return New[string, string](TextTokenizer{Delimiter: o.delimiter}, values, opts...)
}

// NewSequence creates a trie where every element of a slice is a token.
func NewSequence[K comparable](values [][]K, opts ...Option) *Trie[[]K, K] {
	return New[[]K, K](SequenceTokenizer[K]{}, values, opts...)
}

// Add stores value, creating the missing nodes along its token path.
// Adding a stored value again changes nothing.
func (t *Trie[V, K]) Add(value V) *Trie[V, K] {
	tokens, ok := t.tokenize(value)
	if !ok {
		return t
	}

	current := rootIndex
	for _, token := range tokens {
		child, found := t.nodes[current].children[token]
		if !found {
			child = t.alloc()
			t.nodes[current].children[token] = child
		}
		current = child
	}

	if !t.nodes[current].terminal {
		t.nodes[current].terminal = true
		t.size++
	}

	return t
}

// Remove deletes value and prunes every node that is left without children
// and without a stored value. Removing a value that is not stored is a no-op.
func (t *Trie[V, K]) Remove(value V) *Trie[V, K] {
	tokens, ok := t.tokenize(value)
	if !ok {
		return t
	}

	// hierarchy[i] is the node reached after consuming tokens[:i]
	hierarchy := make([]int, 0, len(tokens)+1)
	hierarchy = append(hierarchy, rootIndex)

	current := rootIndex
	for _, token := range tokens {
		child, found := t.nodes[current].children[token]
		if !found {
			return t
		}
		current = child
		hierarchy = append(hierarchy, current)
	}

	if t.nodes[current].terminal {
		t.nodes[current].terminal = false
		t.size--
	}

	t.prune(hierarchy, tokens)

	return t
}

// prune walks the recorded path from the deepest node up and detaches dead nodes
// from their parents. It stops at the first node that still has children or a value.
func (t *Trie[V, K]) prune(hierarchy []int, tokens []K) {
	for depth := len(hierarchy) - 1; depth > 0; depth-- {
		index := hierarchy[depth]
		if !t.nodes[index].isDead() {
			return
		}

		parent := hierarchy[depth-1]
		delete(t.nodes[parent].children, tokens[depth-1])
		t.release(index)

		t.logger.Debug("pruned node", slog.Any("token", tokens[depth-1]), slog.Int("depth", depth))
	}
}

// Lookup reports whether value is stored.
func (t *Trie[V, K]) Lookup(value V) bool {
	index, found := t.find(value)
	return found && t.nodes[index].terminal
}

// IsPrefix reports whether some stored value is strictly longer than value and starts with it.
// value itself does not have to be stored.
func (t *Trie[V, K]) IsPrefix(value V) bool {
	index, found := t.find(value)
	return found && len(t.nodes[index].children) > 0
}

// Err returns the first tokenization error seen while adding or removing values.
func (t *Trie[V, K]) Err() error {
	return t.err
}

// Len returns the number of stored values.
func (t *Trie[V, K]) Len() int {
	return t.size
}

// Nodes returns the number of live nodes, the root included.
func (t *Trie[V, K]) Nodes() int {
	return len(t.nodes) - len(t.free)
}

func (t *Trie[V, K]) find(value V) (int, bool) {
	tokens, err := t.tokenizer.Tokenize(value)
	if err != nil {
		return 0, false
	}

	current := rootIndex
	for _, token := range tokens {
		child, found := t.nodes[current].children[token]
		if !found {
			return 0, false
		}
		current = child
	}
	return current, true
}

// tokenize splits value and records a failure as the sticky error.
func (t *Trie[V, K]) tokenize(value V) ([]K, bool) {
	tokens, err := t.tokenizer.Tokenize(value)
	if err != nil {
		if !errors.Is(err, ErrInvalidValue) {
			err = fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
		if t.err == nil {
			t.err = err
		}
		t.logger.Warn("value rejected", slog.Any("error", err))
		return nil, false
	}
	return tokens, true
}

// alloc returns the index of a fresh non-terminal node without children.
func (t *Trie[V, K]) alloc() int {
	if n := len(t.free); n > 0 {
		index := t.free[n-1]
		t.free = t.free[:n-1]
		t.nodes[index] = node[K]{children: map[K]int{}}
		return index
	}

	t.nodes = append(t.nodes, node[K]{children: map[K]int{}})
	return len(t.nodes) - 1
}

func (t *Trie[V, K]) release(index int) {
	if index == rootIndex {
		panic("[BUG] release: the root can not be released")
	}
	t.nodes[index] = node[K]{}
	t.free = append(t.free, index)
}
