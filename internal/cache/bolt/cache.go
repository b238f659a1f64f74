// Copyright 2024 Dimitrij Drus <dadrus@gmx.de>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package bolt

import (
	"context"
	"encoding/binary"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/dadrus/kvasir/internal/app"
	"github.com/dadrus/kvasir/internal/cache"
	"github.com/dadrus/kvasir/internal/kvasir"
	"github.com/dadrus/kvasir/internal/x/errorchain"
	"github.com/dadrus/kvasir/internal/x/stringx"
)

const (
	defaultBucket = "kvasir"

	// each stored value is prefixed with the expiration time stamp
	expiryPrefixLength = 8
)

// by intention. Used only during application bootstrap.
func init() { // nolint: gochecknoinits
	cache.Register("bolt", cache.FactoryFunc(NewCache))
}

func NewCache(_ app.Context, conf map[string]any) (cache.Cache, error) {
	type Config struct {
		Path   string `mapstructure:"path" validate:"required"`
		Bucket string `mapstructure:"bucket"`
	}

	cfg := Config{Bucket: defaultBucket}

	if err := decodeConfig(conf, &cfg); err != nil {
		return nil, err
	}

	if len(cfg.Path) == 0 {
		return nil, errorchain.NewWithMessage(kvasir.ErrConfiguration,
			"bolt cache requires a path")
	}

	db, err := bolt.Open(cfg.Path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errorchain.NewWithMessagef(kvasir.ErrInternal,
			"failed opening bolt database at %s", cfg.Path).CausedBy(err)
	}

	if err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(stringx.ToBytes(cfg.Bucket))

		return err
	}); err != nil {
		db.Close()

		return nil, errorchain.NewWithMessage(kvasir.ErrInternal,
			"failed creating bolt bucket").CausedBy(err)
	}

	return &Cache{db: db, bucket: stringx.ToBytes(cfg.Bucket)}, nil
}

type Cache struct {
	db     *bolt.DB
	bucket []byte
}

func (c *Cache) Start(_ context.Context) error { return nil }

func (c *Cache) Stop(_ context.Context) error { return c.db.Close() }

func (c *Cache) Get(_ context.Context, key string) ([]byte, error) {
	var value []byte

	err := c.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(c.bucket).Get(stringx.ToBytes(key))
		if len(raw) < expiryPrefixLength {
			return cache.ErrNoCacheEntry
		}

		expiresAt := int64(binary.BigEndian.Uint64(raw[:expiryPrefixLength])) // nolint: gosec
		if time.Now().UnixNano() >= expiresAt {
			return cache.ErrNoCacheEntry
		}

		value = make([]byte, len(raw)-expiryPrefixLength)
		copy(value, raw[expiryPrefixLength:])

		return nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	raw := make([]byte, expiryPrefixLength+len(value))
	binary.BigEndian.PutUint64(raw[:expiryPrefixLength], uint64(time.Now().Add(ttl).UnixNano())) // nolint: gosec
	copy(raw[expiryPrefixLength:], value)

	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(c.bucket).Put(stringx.ToBytes(key), raw)
	})
}

func (c *Cache) Delete(_ context.Context, key string) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(c.bucket).Delete(stringx.ToBytes(key))
	})
}

func (c *Cache) Clear(_ context.Context) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(c.bucket); err != nil {
			return err
		}

		_, err := tx.CreateBucket(c.bucket)

		return err
	})
}
