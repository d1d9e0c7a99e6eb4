package repositories

import (
	"context"
	"errors"
)

// ErrNotExists is returned by a backend when no document has ever been
// written. The repository treats it as a bootstrap case, not a failure.
var ErrNotExists = errors.New("pipeline document does not exist")

// Backend reads and writes the pipeline document as an opaque byte blob.
// Every write replaces the whole document; there is no append path.
type Backend interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}
