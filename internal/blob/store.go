package blob

import (
	"context"
	"io"
)

// Store persists binary attachment payloads and returns a publicly
// resolvable URL for each stored object.
type Store interface {
	Put(ctx context.Context, fileName string, contentType string, r io.Reader) (string, error)
}
