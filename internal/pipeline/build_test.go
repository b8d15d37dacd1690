// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package pipeline

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/aspectrank/internal/config"
	"github.com/tomtom215/aspectrank/internal/likes"
)

func TestEngineConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Recommend.TopN = 7
	cfg.Recommend.NRec = 11
	cfg.Recommend.AspectSuffix = "_sent"
	cfg.Recommend.LikeRating = 3
	cfg.Recommend.Workers = 2
	cfg.Recommend.TopAspects = 5

	rc := EngineConfig(cfg)
	if rc.TopN != 7 || rc.NRec != 11 || rc.AspectSuffix != "_sent" || rc.LikeRating != 3 || rc.Workers != 2 {
		t.Errorf("EngineConfig() = %+v", rc)
	}
	if rc.Content.TopAspects != 5 {
		t.Errorf("TopAspects = %d, want 5", rc.Content.TopAspects)
	}
	if rc.Content.SimilarityWeight != 0.7 {
		t.Errorf("SimilarityWeight = %v, want default 0.7", rc.Content.SimilarityWeight)
	}
	if err := rc.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestNewTrainer(t *testing.T) {
	tests := []struct {
		model    string
		wantName string
		wantNil  bool
		wantErr  bool
	}{
		{model: ModelALS, wantName: "als"},
		{model: ModelBPR, wantName: "bpr"},
		{model: ModelEASE, wantName: "ease"},
		{model: ModelNone, wantNil: true},
		{model: "", wantNil: true},
		{model: "lightfm", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			cfg := config.Default().Collaborative
			cfg.Model = tt.model

			trainer, err := NewTrainer(cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewTrainer() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if tt.wantNil {
				if trainer != nil {
					t.Errorf("NewTrainer() = %v, want nil", trainer)
				}
				return
			}
			if trainer.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", trainer.Name(), tt.wantName)
			}
		})
	}
}

func TestNewEngine_Model(t *testing.T) {
	cfg := config.Default()
	cfg.Collaborative.Model = ModelNone

	engine, err := NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	if engine.Model() != "" {
		t.Errorf("Model() = %q, want empty", engine.Model())
	}
}

func TestNewLikesStore(t *testing.T) {
	cfg := config.Default()
	if store := NewLikesStore(cfg, zerolog.Nop()); store != nil {
		t.Errorf("NewLikesStore() without URI = %T, want nil", store)
	}

	cfg.Mongo.URI = "mongodb://localhost:27017/shop"
	store := NewLikesStore(cfg, zerolog.Nop())
	if _, ok := store.(*likes.BreakerStore); !ok {
		t.Errorf("NewLikesStore() = %T, want *likes.BreakerStore", store)
	}
}
