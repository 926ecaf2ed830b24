package stub

import "context"

// Text is returned for every request.
const Text = "This is a sample transcription generated for NLP processing."

// Transcriber stands in for a speech recognition backend.
type Transcriber struct{}

func NewTranscriber() *Transcriber {
	return &Transcriber{}
}

func (t *Transcriber) Transcribe(ctx context.Context) (string, error) {
	return Text, nil
}
