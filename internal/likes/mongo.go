// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package likes

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.mongodb.org/mongo-driver/v2/x/mongo/driver/connstring"

	"github.com/tomtom215/aspectrank/internal/recommend"
)

// systemDatabases are never picked as the application database.
var systemDatabases = map[string]struct{}{
	"admin":  {},
	"local":  {},
	"config": {},
}

// MongoConfig configures the MongoDB store.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// MongoStore reads liked-items lists from a MongoDB collection.
type MongoStore struct {
	client     *mongo.Client
	uri        string
	database   string
	collection string
	timeout    time.Duration
	logger     zerolog.Logger
}

// NewMongoStore connects and pings the server.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewMongoStore(ctx context.Context, cfg MongoConfig, logger zerolog.Logger) (*MongoStore, error) {
	uri := strings.TrimSpace(cfg.URI)
	if uri == "" {
		return nil, ErrNotConfigured
	}
	if cfg.Collection == "" {
		cfg.Collection = "users"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(cfg.Timeout).
		SetConnectTimeout(cfg.Timeout).
		SetAppName("aspectrank")
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: connect: %w", ErrUnavailable, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("%w: ping: %w", ErrUnavailable, err)
	}

	return &MongoStore{
		client:     client,
		uri:        uri,
		database:   strings.TrimSpace(cfg.Database),
		collection: cfg.Collection,
		timeout:    cfg.Timeout,
		logger:     logger.With().Str("component", "likes").Logger(),
	}, nil
}

// Close disconnects from the server.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// LikedItems reads every user document's liked-items list.
func (s *MongoStore) LikedItems(ctx context.Context) ([]recommend.LikedItems, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	dbName, err := s.resolveDatabase(ctx)
	if err != nil {
		return nil, err
	}
	if dbName == "" {
		s.logger.Warn().Msg("No accessible database found, proceeding without likes")
		return nil, nil
	}

	coll := s.client.Database(dbName).Collection(s.collection)
	findOpts := options.Find().SetProjection(bson.D{
		{Key: "user_id", Value: 1},
		{Key: "likedProducts", Value: 1},
	})
	cursor, err := coll.Find(ctx, bson.D{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: find in %s.%s: %w", ErrUnavailable, dbName, s.collection, err)
	}
	defer cursor.Close(ctx)

	var out []recommend.LikedItems
	skipped := 0
	for cursor.Next(ctx) {
		var doc userDocument
		if err := cursor.Decode(&doc); err != nil {
			skipped++
			continue
		}
		entry, ok := doc.toLikedItems()
		if !ok {
			skipped++
			continue
		}
		out = append(out, entry)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate %s.%s: %w", ErrUnavailable, dbName, s.collection, err)
	}

	s.logger.Info().
		Str("database", dbName).
		Str("collection", s.collection).
		Int("users", len(out)).
		Int("liked_items", Count(out)).
		Int("skipped", skipped).
		Msg("Loaded liked items")
	return out, nil
}

// resolveDatabase returns the database to read, or "" when the server has
// no application database.
func (s *MongoStore) resolveDatabase(ctx context.Context) (string, error) {
	if s.database != "" {
		return s.database, nil
	}
	if name := DefaultDatabase(s.uri); name != "" {
		return name, nil
	}

	names, err := s.client.ListDatabaseNames(ctx, bson.D{})
	if err != nil {
		return "", fmt.Errorf("%w: list databases: %w", ErrUnavailable, err)
	}
	return firstApplicationDatabase(names), nil
}

// DefaultDatabase returns the database named in a connection URI path, or ""
// when the URI has none or does not parse.
func DefaultDatabase(uri string) string {
	cs, err := connstring.Parse(uri)
	if err != nil {
		return ""
	}
	return cs.Database
}

func firstApplicationDatabase(names []string) string {
	for _, name := range names {
		if _, system := systemDatabases[name]; !system {
			return name
		}
	}
	return ""
}

// userDocument is the projection of a user document. user_id and the list
// entries are kept raw because older documents store numeric ids.
type userDocument struct {
	UserID        interface{}   `bson:"user_id"`
	LikedProducts []interface{} `bson:"likedProducts"`
}

// toLikedItems converts the document. It reports false when the document
// has no usable user_id.
func (d *userDocument) toLikedItems() (recommend.LikedItems, bool) {
	userID := identifier(d.UserID)
	if userID == "" {
		return recommend.LikedItems{}, false
	}
	items := make([]string, 0, len(d.LikedProducts))
	for _, raw := range d.LikedProducts {
		if id := identifier(raw); id != "" {
			items = append(items, id)
		}
	}
	return recommend.LikedItems{UserID: userID, Items: items}, true
}

// identifier renders string and integer ids as strings.
func identifier(v interface{}) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bson.ObjectID:
		return x.Hex()
	default:
		return ""
	}
}
