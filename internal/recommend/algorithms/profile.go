// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package algorithms

import (
	"math"

	"github.com/tomtom215/aspectrank/internal/recommend"
)

// BuildProfile averages the aspect vectors of reviews. A review without an
// aspect contributes 0 to that aspect, so it pulls the mean down instead of
// being left out of the denominator. An empty input yields the zero profile.
func BuildProfile(aspects recommend.AspectSet, reviews []*recommend.Review) recommend.AspectProfile {
	profile := make(recommend.AspectProfile, aspects.Len())
	if len(reviews) == 0 {
		return profile
	}
	for _, r := range reviews {
		for name, score := range r.Aspects {
			if i, ok := aspects.Index(name); ok {
				profile[i] += score
			}
		}
	}
	n := float64(len(reviews))
	for i := range profile {
		profile[i] /= n
	}
	return profile
}

// CosineSimilarity returns dot(u, v) / (|u| |v|). It is 0 when either vector
// has zero norm or the lengths differ.
func CosineSimilarity(u, v recommend.AspectProfile) float64 {
	if len(u) != len(v) {
		return 0
	}
	var dot, nu, nv float64
	for i := range u {
		dot += u[i] * v[i]
		nu += u[i] * u[i]
		nv += v[i] * v[i]
	}
	if nu == 0 || nv == 0 {
		return 0
	}
	return dot / (math.Sqrt(nu) * math.Sqrt(nv))
}

// meanRating averages the ratings present on reviews, 0 when none has one.
func meanRating(reviews []*recommend.Review) float64 {
	var sum float64
	var n int
	for _, r := range reviews {
		if r.Rating != nil {
			sum += *r.Rating
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
