// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package morph

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// VariantCache memoises variant sets. It is safe for concurrent use, so several
// sessions can share one.
type VariantCache struct {
	cache *gocache.Cache
}

// NewVariantCache creates a cache whose entries expire after ttl; ttl <= 0 keeps them
// for the life of the process.
func NewVariantCache(ttl time.Duration) *VariantCache {
	if ttl <= 0 {
		return &VariantCache{cache: gocache.New(gocache.NoExpiration, 0)}
	}
	return &VariantCache{cache: gocache.New(ttl, 2*ttl)}
}

// FirstName returns FirstNameVariants(name), computed once per name.
func (c *VariantCache) FirstName(name string) *Variants {
	return c.get("f:"+name, func() *Variants { return FirstNameVariants(name) })
}

// Surname returns SurnameVariants(name), computed once per name.
func (c *VariantCache) Surname(name string) *Variants {
	return c.get("s:"+name, func() *Variants { return SurnameVariants(name) })
}

func (c *VariantCache) get(key string, build func() *Variants) *Variants {
	if c == nil {
		return build()
	}
	if v, found := c.cache.Get(key); found {
		return v.(*Variants)
	}
	v := build()
	c.cache.SetDefault(key, v)
	return v
}

// Len reports the number of cached sets.
func (c *VariantCache) Len() int {
	return c.cache.ItemCount()
}
