// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

//go:build integration

package likes

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/tomtom215/aspectrank/internal/testinfra"
)

func seedUsers(t *testing.T, ctx context.Context, uri, db string, docs []interface{}) {
	t.Helper()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Disconnect(ctx) //nolint:errcheck

	if _, err := client.Database(db).Collection("users").InsertMany(ctx, docs); err != nil {
		t.Fatalf("seed users: %v", err)
	}
}

func TestMongoStore_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	testinfra.SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	container, err := testinfra.NewMongoContainer(ctx, testinfra.WithStartTimeout(90*time.Second))
	if err != nil {
		t.Fatalf("NewMongoContainer() error = %v", err)
	}
	defer testinfra.CleanupContainer(t, ctx, container.Container)

	t.Run("empty server yields no likes", func(t *testing.T) {
		store, err := NewMongoStore(ctx, MongoConfig{URI: container.URI, Timeout: 10 * time.Second}, zerolog.Nop())
		if err != nil {
			t.Fatalf("NewMongoStore() error = %v", err)
		}
		defer store.Close(ctx) //nolint:errcheck

		lists, err := store.LikedItems(ctx)
		if err != nil {
			t.Fatalf("LikedItems() error = %v", err)
		}
		if len(lists) != 0 {
			t.Errorf("got %d lists from an empty server, want 0", len(lists))
		}
	})

	seedUsers(t, ctx, container.URI, "shop", []interface{}{
		bson.D{{Key: "user_id", Value: "U1"}, {Key: "likedProducts", Value: bson.A{"A", "B"}}, {Key: "email", Value: "u1@example.com"}},
		bson.D{{Key: "user_id", Value: "U2"}},
		bson.D{{Key: "name", Value: "no id"}, {Key: "likedProducts", Value: bson.A{"C"}}},
	})

	tests := []struct {
		name string
		cfg  MongoConfig
	}{
		{"configured database", MongoConfig{URI: container.URI, Database: "shop"}},
		{"uri default database", MongoConfig{URI: container.URI + "/shop"}},
		{"first application database", MongoConfig{URI: container.URI}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewMongoStore(ctx, tt.cfg, zerolog.Nop())
			if err != nil {
				t.Fatalf("NewMongoStore() error = %v", err)
			}
			defer store.Close(ctx) //nolint:errcheck

			breaker := NewBreakerStore(store, BreakerConfig{Name: "integration"}, zerolog.Nop())
			lists, err := breaker.LikedItems(ctx)
			if err != nil {
				t.Fatalf("LikedItems() error = %v", err)
			}
			if len(lists) != 2 {
				t.Fatalf("got %d lists, want 2: %+v", len(lists), lists)
			}
			if lists[0].UserID != "U1" || len(lists[0].Items) != 2 {
				t.Errorf("lists[0] = %+v", lists[0])
			}
			if lists[1].UserID != "U2" || len(lists[1].Items) != 0 {
				t.Errorf("lists[1] = %+v", lists[1])
			}
		})
	}

	t.Run("unreachable server", func(t *testing.T) {
		_, err := NewMongoStore(ctx, MongoConfig{URI: "mongodb://127.0.0.1:1", Timeout: time.Second}, zerolog.Nop())
		if err == nil {
			t.Fatal("NewMongoStore() against a closed port: expected error")
		}
	})
}
