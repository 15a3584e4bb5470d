// Package storage abstracts the external object store that holds employee
// photos. Only the resulting URL is ever persisted locally.
package storage

import (
	"context"
	"io"
)

//go:generate mockgen -source=storage.go -destination=mock/uploader_mock.go -package=mock
type Uploader interface {
	// Upload streams the file to the object store and returns the public
	// URL it ends up at.
	Upload(ctx context.Context, filename string, r io.Reader) (string, error)
}
