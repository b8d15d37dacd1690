// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package recommend

import (
	"sort"
	"strings"
)

// AspectSet is the ordered set of aspect fields discovered in a review set.
// It is computed once per run and shared by profile building and similarity,
// so every AspectProfile of a run has the same dimensionality.
type AspectSet struct {
	names  []string
	index  map[string]int
	suffix string
}

// AspectProfile is a dense per-aspect vector aligned with an AspectSet.
type AspectProfile []float64

// DiscoverAspects collects every review field ending in suffix. Names are
// sorted so the set does not depend on map iteration order.
func DiscoverAspects(reviews []Review, suffix string) AspectSet {
	seen := make(map[string]struct{})
	for i := range reviews {
		for name := range reviews[i].Aspects {
			if strings.HasSuffix(name, suffix) {
				seen[name] = struct{}{}
			}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return NewAspectSet(names, suffix)
}

// NewAspectSet builds a set from names in the given order.
func NewAspectSet(names []string, suffix string) AspectSet {
	index := make(map[string]int, len(names))
	ordered := make([]string, 0, len(names))
	for _, name := range names {
		if _, dup := index[name]; dup {
			continue
		}
		index[name] = len(ordered)
		ordered = append(ordered, name)
	}
	return AspectSet{names: ordered, index: index, suffix: suffix}
}

// Len returns the number of aspects.
func (s AspectSet) Len() int { return len(s.names) }

// Empty reports whether no aspect fields were found.
func (s AspectSet) Empty() bool { return len(s.names) == 0 }

// Name returns the field name at position i, suffix included.
func (s AspectSet) Name(i int) string { return s.names[i] }

// Label returns the display name at position i with the suffix stripped.
func (s AspectSet) Label(i int) string {
	return strings.TrimSuffix(s.names[i], s.suffix)
}

// Index returns the position of a field name.
func (s AspectSet) Index(name string) (int, bool) {
	i, ok := s.index[name]
	return i, ok
}

// Vector projects a review onto the set. Missing aspects are 0.
func (s AspectSet) Vector(r *Review) AspectProfile {
	v := make(AspectProfile, len(s.names))
	for name, score := range r.Aspects {
		if i, ok := s.index[name]; ok {
			v[i] = score
		}
	}
	return v
}
