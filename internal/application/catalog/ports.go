package catalog

import (
	"context"
	"io"
)

// ProductCache caches rendered product pages by slug
type ProductCache interface {
	// Get returns nil without error on a miss
	Get(ctx context.Context, slug string) (*ProductDetailResponse, error)
	Set(ctx context.Context, slug string, detail *ProductDetailResponse) error
	Invalidate(ctx context.Context, slugs ...string) error
}

// ImageStorage stores product images in an object store
type ImageStorage interface {
	Upload(ctx context.Context, storageKey string, body io.Reader, contentType string) error
	DeleteObject(ctx context.Context, storageKey string) error
	// PublicURL returns the URL the storefront loads the object from
	PublicURL(storageKey string) string
}

// NopProductCache never caches
type NopProductCache struct{}

// Get always misses
func (NopProductCache) Get(context.Context, string) (*ProductDetailResponse, error) { return nil, nil }

// Set discards the value
func (NopProductCache) Set(context.Context, string, *ProductDetailResponse) error { return nil }

// Invalidate does nothing
func (NopProductCache) Invalidate(context.Context, ...string) error { return nil }

var _ ProductCache = NopProductCache{}
