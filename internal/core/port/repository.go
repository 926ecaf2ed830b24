package port

import (
	"context"
	"io"
)

type MediaStore interface {
	// Save writes r under name, replacing any previous object with that name.
	Save(ctx context.Context, name string, r io.Reader) (int64, error)
}
