// Aspectrank - Aspect-Based Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aspectrank

package config

import (
	"fmt"
	"net/url"

	"github.com/tomtom215/aspectrank/internal/validation"
)

// Validate checks struct-tag rules and the cross-field constraints that tags
// cannot express.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}
	if err := c.validateMongo(); err != nil {
		return err
	}
	return c.validateData()
}

// validateMongo only checks the URI shape. A missing URI is allowed here and
// reported by the batch pipeline, since content ranking does not need it.
func (c *Config) validateMongo() error {
	if c.Mongo.URI == "" {
		return nil
	}
	u, err := url.Parse(c.Mongo.URI)
	if err != nil {
		return fmt.Errorf("MONGO_URI failed to parse: %w", err)
	}
	if u.Scheme != "mongodb" && u.Scheme != "mongodb+srv" {
		return fmt.Errorf("MONGO_URI scheme must be mongodb or mongodb+srv, got: %s", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("MONGO_URI host is required")
	}
	return nil
}

func (c *Config) validateData() error {
	if c.Data.OutputPath == c.Data.ReviewsPath || c.Data.OutputPath == c.Data.MetadataPath {
		return fmt.Errorf("OUTPUT_PATH must not overwrite an input file: %s", c.Data.OutputPath)
	}
	return nil
}

// HasLikesStore reports whether a liked-items store is configured.
func (c *Config) HasLikesStore() bool {
	return c.Mongo.URI != ""
}
