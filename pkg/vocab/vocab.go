// Package vocab implements the character vocabulary used by the local
// char-level model: a dense rune-to-index table and its inverse.
package vocab

import (
	"fmt"
	"sort"
)

// Vocab maps runes to dense token indices and back.
type Vocab struct {
	stoi map[rune]int
	itos []rune
}

// Build collects the unique runes of text in sorted order and assigns
// each a dense index.
func Build(text string) *Vocab {
	seen := make(map[rune]struct{})
	for _, r := range text {
		seen[r] = struct{}{}
	}
	runes := make([]rune, 0, len(seen))
	for r := range seen {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	return New(runes)
}

// New builds a vocabulary from an ordered rune list. Duplicates keep
// their first index.
func New(runes []rune) *Vocab {
	v := &Vocab{
		stoi: make(map[rune]int, len(runes)),
		itos: make([]rune, 0, len(runes)),
	}
	for _, r := range runes {
		if _, ok := v.stoi[r]; ok {
			continue
		}
		v.stoi[r] = len(v.itos)
		v.itos = append(v.itos, r)
	}
	return v
}

func (v *Vocab) Size() int {
	return len(v.itos)
}

func (v *Vocab) Contains(r rune) bool {
	_, ok := v.stoi[r]
	return ok
}

// Encode maps text to token indices. A rune outside the vocabulary is
// fatal; there is no unknown token.
func (v *Vocab) Encode(text string) ([]int, error) {
	ids := make([]int, 0, len(text))
	for _, r := range text {
		id, ok := v.stoi[r]
		if !ok {
			return nil, fmt.Errorf("vocab: rune %q not in vocabulary", r)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Decode maps token indices back to text.
func (v *Vocab) Decode(ids []int) (string, error) {
	out := make([]rune, 0, len(ids))
	for _, id := range ids {
		if id < 0 || id >= len(v.itos) {
			return "", fmt.Errorf("vocab: index %d out of range [0,%d)", id, len(v.itos))
		}
		out = append(out, v.itos[id])
	}
	return string(out), nil
}
