package service

import (
	"context"
	"sort"
	"strings"
	"unicode"

	"github.com/Wyydra/rendezvous/internal/core/domain"
	"github.com/Wyydra/rendezvous/internal/core/port"
)

const (
	maxKeywords   = 8
	minKeywordLen = 5
)

type TextService struct {
	transcriber port.Transcriber
}

func NewTextService(transcriber port.Transcriber) *TextService {
	return &TextService{
		transcriber: transcriber,
	}
}

func (s *TextService) Transcribe(ctx context.Context) (string, error) {
	return s.transcriber.Transcribe(ctx)
}

func (s *TextService) Summarize(text string) domain.Summary {
	return domain.Summary{
		Summary:  SummarizeText(text),
		Keywords: ExtractKeywords(text, maxKeywords),
	}
}

// SummarizeText keeps the first two period-delimited sentences.
func SummarizeText(text string) string {
	sentences := strings.Split(text, ".")
	if len(sentences) > 2 {
		sentences = sentences[:2]
	}
	return strings.TrimSpace(strings.Join(sentences, "."))
}

// ExtractKeywords takes the limit most frequent tokens, ties broken by first
// occurrence, and keeps those longer than four characters.
func ExtractKeywords(text string, limit int) []string {
	words := strings.Fields(cleanText(text))

	type entry struct {
		word  string
		count int
	}
	index := make(map[string]*entry)
	entries := make([]*entry, 0)
	for _, w := range words {
		if e, ok := index[w]; ok {
			e.count++
			continue
		}
		e := &entry{word: w, count: 1}
		index[w] = e
		entries = append(entries, e)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].count > entries[j].count
	})
	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	keywords := make([]string, 0, len(entries))
	for _, e := range entries {
		if len(e.word) >= minKeywordLen {
			keywords = append(keywords, e.word)
		}
	}
	return keywords
}

// cleanText lowercases and drops everything but ASCII letters, digits and
// whitespace.
func cleanText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}
