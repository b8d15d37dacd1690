// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package algorithms

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/tomtom215/aspectrank/internal/recommend"
)

func TestNewEASE(t *testing.T) {
	e := NewEASE(EASEConfig{})
	if e.Name() != "ease" {
		t.Errorf("Name() = %q, want ease", e.Name())
	}
	def := DefaultEASEConfig()
	if e.config != def {
		t.Errorf("config = %+v, want %+v", e.config, def)
	}
}

func TestEASE_RecommendsWithinCluster(t *testing.T) {
	idx := clusteredIndex()
	e := NewEASE(EASEConfig{L2Regularization: 1})

	p, err := e.Train(context.Background(), idx.Matrix())
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	if !e.IsTrained() {
		t.Error("IsTrained() = false after Train")
	}

	u1, _ := idx.UserIndex("u1")
	c, _ := idx.ItemIndex("c")
	x, _ := idx.ItemIndex("x")
	scores := p.Predict(u1, []int{c, x})
	if scores[0] <= scores[1] {
		t.Errorf("score(u1, c) = %f, score(u1, x) = %f, want c higher", scores[0], scores[1])
	}
}

func TestEASE_ZeroDiagonal(t *testing.T) {
	e := NewEASE(EASEConfig{L2Regularization: 10})
	if _, err := e.Train(context.Background(), clusteredIndex().Matrix()); err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	for i := range e.B {
		if e.B[i][i] != 0 {
			t.Errorf("B[%d][%d] = %f, want 0", i, i, e.B[i][i])
		}
	}
}

func TestEASE_TrainErrors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     EASEConfig
		m       *recommend.SparseMatrix
		wantErr error
	}{
		{
			name:    "empty matrix",
			m:       reviewInteractions().Matrix(),
			wantErr: ErrEmptyMatrix,
		},
		{
			name:    "too many items",
			cfg:     EASEConfig{MaxItems: 2},
			m:       clusteredIndex().Matrix(),
			wantErr: ErrTooManyItems,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewEASE(tt.cfg).Train(context.Background(), tt.m)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Train() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEASE_PredictBounds(t *testing.T) {
	e := NewEASE(EASEConfig{})
	if got := e.Predict(0, []int{0, 1}); got[0] != 0 || got[1] != 0 {
		t.Errorf("untrained Predict() = %v, want zeros", got)
	}

	if _, err := e.Train(context.Background(), clusteredIndex().Matrix()); err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	got := e.Predict(0, []int{-1, 999})
	for i, s := range got {
		if !math.IsInf(s, -1) {
			t.Errorf("Predict()[%d] = %f, want -Inf for unknown item", i, s)
		}
	}
}

func TestCholeskyInverse(t *testing.T) {
	A := [][]float64{
		{4, 2, 0},
		{2, 5, 1},
		{0, 1, 3},
	}
	L, err := choleskyDecomposition(A)
	if err != nil {
		t.Fatalf("choleskyDecomposition() error = %v", err)
	}
	inv := choleskyInverse(L)

	for i := range A {
		for j := range A {
			var sum float64
			for k := range A {
				sum += A[i][k] * inv[k][j]
			}
			want := 0.0
			if i == j {
				want = 1
			}
			if math.Abs(sum-want) > 1e-9 {
				t.Errorf("(A*inv)[%d][%d] = %f, want %f", i, j, sum, want)
			}
		}
	}

	if _, err := choleskyDecomposition([][]float64{{0, 1}, {1, 0}}); err == nil {
		t.Error("choleskyDecomposition() of indefinite matrix: expected error")
	}
}
