package service

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"time"

	"github.com/Wyydra/rendezvous/internal/core/domain"
	"github.com/Wyydra/rendezvous/internal/core/port"
	"github.com/rs/zerolog/log"
)

const (
	DefaultMediaKind = "media"

	// second resolution, 14 digits
	mediaTimestampLayout = "20060102150405"
	mediaExt             = ".webm"
)

var kindPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

type MediaService struct {
	store port.MediaStore
	now   func() time.Time
}

func NewMediaService(store port.MediaStore) *MediaService {
	return &MediaService{
		store: store,
		now:   time.Now,
	}
}

// MediaFilename builds the stored name for a recording of the given kind.
func MediaFilename(kind string, at time.Time) string {
	return kind + "_" + at.Format(mediaTimestampLayout) + mediaExt
}

// Upload stores r and returns the generated filename. Two uploads of the same
// kind within one second share a name and the later one wins.
func (s *MediaService) Upload(ctx context.Context, kind string, r io.Reader) (string, error) {
	if r == nil {
		return "", domain.ErrNoFile
	}
	if kind == "" {
		kind = DefaultMediaKind
	}
	if !kindPattern.MatchString(kind) {
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidKind, kind)
	}

	name := MediaFilename(kind, s.now())
	n, err := s.store.Save(ctx, name, r)
	if err != nil {
		return "", fmt.Errorf("save %s: %w", name, err)
	}

	log.Info().Str("file", name).Int64("bytes", n).Msg("Media uploaded")
	return name, nil
}
