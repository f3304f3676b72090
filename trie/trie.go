// Copyright (C) 2026, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

// Package trie implements prefix-tree autocomplete ranked by how often each
// prefix was inserted.
package trie

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/luxfi/lrucache"
)

// DefaultLimit is the number of suggestions returned when none is configured.
const DefaultLimit = 5

type node struct {
	children map[rune]*node
	terminal bool
	// freq counts inserted words passing through this node.
	freq int
}

func newNode() *node {
	return &node{children: make(map[rune]*node)}
}

// Trie is a prefix tree. It is not safe for concurrent use.
type Trie struct {
	root  *node
	limit int
}

// New creates an empty trie whose searches return at most limit words.
func New(limit int) (*Trie, error) {
	if limit < 1 {
		return nil, fmt.Errorf("%w: suggestion limit must be at least 1, got %d", lrucache.ErrInvalidConfiguration, limit)
	}
	return &Trie{root: newNode(), limit: limit}, nil
}

// Insert adds word. Inserting a word again raises the rank of its prefixes.
func (t *Trie) Insert(word string) {
	n := t.root
	for _, r := range word {
		child, ok := n.children[r]
		if !ok {
			child = newNode()
			n.children[r] = child
		}
		child.freq++
		n = child
	}
	n.terminal = true
}

// Contains reports whether word was inserted.
func (t *Trie) Contains(word string) bool {
	n := t.find(word)
	return n != nil && n.terminal
}

// Frequency returns how many inserted words start with prefix.
func (t *Trie) Frequency(prefix string) int {
	n := t.find(prefix)
	switch {
	case n == nil:
		return 0
	case n == t.root:
		return t.total()
	default:
		return n.freq
	}
}

func (t *Trie) total() int {
	total := 0
	for _, child := range t.root.children {
		total += child.freq
	}
	return total
}

// SearchPrefix returns up to the trie's limit of words starting with prefix.
// Branches shared by more words are visited first and ties go in rune order,
// so popular completions survive the limit and results are repeatable.
func (t *Trie) SearchPrefix(prefix string) []string {
	n := t.find(prefix)
	if n == nil {
		return nil
	}
	results := make([]string, 0, t.limit)
	return t.collect(n, []rune(prefix), results)
}

func (t *Trie) find(prefix string) *node {
	n := t.root
	for _, r := range prefix {
		child, ok := n.children[r]
		if !ok {
			return nil
		}
		n = child
	}
	return n
}

func (t *Trie) collect(n *node, word []rune, results []string) []string {
	if len(results) >= t.limit {
		return results
	}
	if n.terminal {
		results = append(results, string(word))
	}

	keys := make([]rune, 0, len(n.children))
	for r := range n.children {
		keys = append(keys, r)
	}
	slices.SortFunc(keys, func(a, b rune) int {
		if c := cmp.Compare(n.children[b].freq, n.children[a].freq); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	for _, r := range keys {
		if len(results) >= t.limit {
			break
		}
		results = t.collect(n.children[r], append(word, r), results)
	}
	return results
}
