package util

import "strings"

// FoldSet is a case-insensitive set of strings.
type FoldSet map[string]struct{}

func NewFoldSet(values ...string) FoldSet {
	set := make(FoldSet, len(values))
	for _, v := range values {
		set.Add(v)
	}
	return set
}

func (s FoldSet) Add(v string) {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return
	}
	s[v] = struct{}{}
}

func (s FoldSet) Has(v string) bool {
	if len(s) == 0 {
		return false
	}
	_, ok := s[strings.ToLower(strings.TrimSpace(v))]
	return ok
}

// DedupeNonEmptyStrings returns a copy of values without empty strings or duplicates, preserving order.
func DedupeNonEmptyStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
