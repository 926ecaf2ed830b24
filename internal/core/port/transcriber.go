package port

import "context"

type Transcriber interface {
	Transcribe(ctx context.Context) (string, error)
}
