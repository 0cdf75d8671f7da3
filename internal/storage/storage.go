package storage

import (
	"context"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// AssetStorage is the boundary to the bucket holding catalog media
// (exercise images). Content tooling puts the objects there; this
// application only resolves keys to short-lived URLs.
type AssetStorage interface {
	// PresignGet creates a temporary URL that allows GET requests for an
	// object directly from the storage provider.
	PresignGet(ctx context.Context, objectKey string, expires time.Duration) (string, error)
}
