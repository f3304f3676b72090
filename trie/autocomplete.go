// Copyright (C) 2026, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package trie

import (
	"slices"

	"github.com/luxfi/lrucache/lru"
)

// Autocompleter memoizes prefix searches in an LRU cache. Any insert
// invalidates every memoized result.
type Autocompleter struct {
	trie *Trie
	memo *lru.Cache[string, []string]
}

// NewAutocompleter returns suggestions capped at limit and remembers the
// results of up to memoSize distinct prefixes.
func NewAutocompleter(limit, memoSize int) (*Autocompleter, error) {
	t, err := New(limit)
	if err != nil {
		return nil, err
	}
	memo, err := lru.New[string, []string](memoSize)
	if err != nil {
		return nil, err
	}
	return &Autocompleter{trie: t, memo: memo}, nil
}

// Insert adds word to the dictionary.
func (a *Autocompleter) Insert(word string) {
	a.trie.Insert(word)
	a.memo.Flush()
}

// Suggest returns the words starting with prefix.
func (a *Autocompleter) Suggest(prefix string) []string {
	if cached, ok := a.memo.Get(prefix); ok {
		return slices.Clone(cached)
	}
	results := a.trie.SearchPrefix(prefix)
	a.memo.Put(prefix, results)
	return slices.Clone(results)
}

// Memoized returns the number of prefixes with a cached result.
func (a *Autocompleter) Memoized() int {
	return a.memo.Len()
}
