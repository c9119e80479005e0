// Package engine implements the citation store and usage tracker: ingest
// with fingerprint deduplication, deterministic key assignment, append-only
// usage tracking, and ordinal freezing for numbered styles.
//
// An Engine is an explicitly constructed instance owned by the surrounding
// application and passed by reference to every operation. All mutations run
// under a single write lock per instance, so dedupe-check-then-insert and
// first-usage ordinal assignment are atomic. Reads take the read lock and
// copy state out, so callers never observe a partially applied merge.
package engine

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/matsen/citeline/internal/citation"
)

// AddInput carries the raw citation metadata submitted by the document
// pipeline. Authors arrive in either "Last, First" or "First Last" form and
// are normalized at ingestion.
type AddInput struct {
	Title          string   `json:"title"`
	Authors        []string `json:"authors"`
	Year           int      `json:"year,omitempty"`
	Journal        string   `json:"journal,omitempty"`
	Volume         string   `json:"volume,omitempty"`
	Pages          string   `json:"pages,omitempty"`
	DOI            string   `json:"doi,omitempty"`
	LinkedEntities []string `json:"linked_entities,omitempty"`
}

// AddCitation ingests citation metadata and returns the citation key.
//
// If an existing citation shares the incoming (title, year) fingerprint,
// the two are merged: non-empty incoming fields win (last-non-null-wins),
// linked entities are unioned, and the existing key is returned unchanged.
// Otherwise a new record is created under a deterministic key.
func (e *Engine) AddCitation(in AddInput) (string, error) {
	if in.Title == "" {
		return "", citation.ValidationError{Field: "title", Reason: "required"}
	}
	authors := citation.ParseAuthors(in.Authors)
	if len(authors) == 0 {
		return "", citation.ValidationError{Field: "authors", Reason: "at least one non-empty author required"}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	fp := Fingerprint(in.Title, in.Year)
	if key, ok := e.byFingerprint[fp]; ok {
		e.merge(e.byKey[key], in)
		e.logger.Debug("merged duplicate citation",
			zap.String("key", key),
			zap.String("fingerprint", fp))
		return key, nil
	}

	key, err := e.assignKey(authors[0], in.Year)
	if err != nil {
		e.logger.Error("key assignment failed", zap.Error(err))
		return "", err
	}

	c := &citation.Citation{
		Key:            key,
		Title:          in.Title,
		Authors:        authors,
		Year:           in.Year,
		Journal:        in.Journal,
		Volume:         in.Volume,
		Pages:          in.Pages,
		DOI:            in.DOI,
		LinkedEntities: unionEntities(nil, in.LinkedEntities),
		CreatedAt:      e.now().UTC(),
	}

	e.byKey[key] = c
	e.byFingerprint[fp] = key
	e.order = append(e.order, key)

	e.logger.Debug("added citation",
		zap.String("key", key),
		zap.Int("authors", len(authors)))
	return key, nil
}

// merge enriches an existing citation with incoming data. Non-empty
// incoming fields overwrite; empty incoming fields never erase. Linked
// entities are unioned. The key, creation time, and ordinal are untouched.
func (e *Engine) merge(existing *citation.Citation, in AddInput) {
	if in.Journal != "" {
		existing.Journal = in.Journal
	}
	if in.Volume != "" {
		existing.Volume = in.Volume
	}
	if in.Pages != "" {
		existing.Pages = in.Pages
	}
	if in.DOI != "" {
		existing.DOI = in.DOI
	}
	existing.LinkedEntities = unionEntities(existing.LinkedEntities, in.LinkedEntities)
}

// assignKey produces the deterministic key for a new citation:
// slug of the first author's surname plus the year (or "nd" when unknown).
// When the base key is already taken by a different source, suffixes
// a, b, c, ... (then aa, ab, ...) are appended in creation order.
// Caller must hold the write lock.
func (e *Engine) assignKey(first citation.Author, year int) (string, error) {
	yearPart := "nd"
	if year > 0 {
		yearPart = strconv.Itoa(year)
	}
	base := slug.Make(first.Last) + yearPart

	n := e.baseKeyCount[base]
	key := base
	if n > 0 {
		key = base + disambiguationSuffix(n-1)
	}
	if _, taken := e.byKey[key]; taken {
		// Unreachable while baseKeyCount stays in step with byKey.
		return "", citation.ConsistencyError{
			Reason: fmt.Sprintf("key collision not resolved by disambiguation: %s", key),
		}
	}
	e.baseKeyCount[base] = n + 1
	return key, nil
}

// disambiguationSuffix maps 0,1,...,25,26,... to a,b,...,z,aa,... using
// bijective base-26 so the sequence never collides or ends.
func disambiguationSuffix(n int) string {
	var out []byte
	for {
		out = append([]byte{byte('a' + n%26)}, out...)
		n = n/26 - 1
		if n < 0 {
			return string(out)
		}
	}
}

// TrackCitation records one usage of a citation in generated text.
// The key must already exist and the confidence must lie in [0, 1];
// out-of-range values fail rather than being clamped, so downstream
// analytics are never silently corrupted.
//
// A citation's first usage freezes its ordinal in the same critical
// section, giving concurrent first-usages a strict, non-colliding,
// monotonically increasing sequence.
func (e *Engine) TrackCitation(key, contextText, section string, confidence float64) (citation.UsageRecord, error) {
	if confidence < 0 || confidence > 1 {
		return citation.UsageRecord{}, citation.ValidationError{
			Field:  "confidence",
			Reason: fmt.Sprintf("%g outside [0.0, 1.0]", confidence),
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	c, ok := e.byKey[key]
	if !ok {
		return citation.UsageRecord{}, citation.NotFoundError{Key: key}
	}

	if c.Ordinal == 0 {
		c.Ordinal = e.nextOrdinal
		e.nextOrdinal++
	}

	rec := citation.UsageRecord{
		ID:          uuid.NewString(),
		CitationKey: key,
		ContextText: contextText,
		Section:     section,
		Confidence:  confidence,
		RecordedAt:  e.now().UTC(),
	}
	e.usages = append(e.usages, rec)
	e.usageIdx[key] = append(e.usageIdx[key], len(e.usages)-1)

	e.logger.Debug("tracked citation usage",
		zap.String("key", key),
		zap.Int("ordinal", c.Ordinal),
		zap.Float64("confidence", confidence))
	return rec, nil
}

// GetCitation returns the citation stored under key.
func (e *Engine) GetCitation(key string) (citation.Citation, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	c, ok := e.byKey[key]
	if !ok {
		return citation.Citation{}, citation.NotFoundError{Key: key}
	}
	return c.Clone(), nil
}

// ListCitations returns copies of all citations in insertion order,
// optionally restricted to those with at least one usage. Presentation
// order is the bibliography generator's concern, not the store's.
func (e *Engine) ListCitations(usedOnly bool) []citation.Citation {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make([]citation.Citation, 0, len(e.order))
	for _, key := range e.order {
		c := e.byKey[key]
		if usedOnly && !c.Used() {
			continue
		}
		out = append(out, c.Clone())
	}
	return out
}

// GetUsage returns the usage records for a citation in insertion
// (chronological) order.
func (e *Engine) GetUsage(key string) ([]citation.UsageRecord, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if _, ok := e.byKey[key]; !ok {
		return nil, citation.NotFoundError{Key: key}
	}
	idxs := e.usageIdx[key]
	out := make([]citation.UsageRecord, len(idxs))
	for i, idx := range idxs {
		out[i] = e.usages[idx]
	}
	return out, nil
}

// UsageCount returns how many times a citation has been used.
func (e *Engine) UsageCount(key string) (int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if _, ok := e.byKey[key]; !ok {
		return 0, citation.NotFoundError{Key: key}
	}
	return len(e.usageIdx[key]), nil
}

// AverageConfidence returns the mean confidence across a citation's usage
// records. The second return is false when the citation was never used.
func (e *Engine) AverageConfidence(key string) (float64, bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if _, ok := e.byKey[key]; !ok {
		return 0, false, citation.NotFoundError{Key: key}
	}
	idxs := e.usageIdx[key]
	if len(idxs) == 0 {
		return 0, false, nil
	}
	var sum float64
	for _, idx := range idxs {
		sum += e.usages[idx].Confidence
	}
	return sum / float64(len(idxs)), true, nil
}

// Usages returns copies of all usage records in chronological order.
func (e *Engine) Usages() []citation.UsageRecord {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return append([]citation.UsageRecord(nil), e.usages...)
}

// Reset clears all engine state. Individual citations are never deleted;
// this whole-store reset is the only way state is discarded.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.byKey = make(map[string]*citation.Citation)
	e.byFingerprint = make(map[string]string)
	e.baseKeyCount = make(map[string]int)
	e.order = nil
	e.usages = nil
	e.usageIdx = make(map[string][]int)
	e.nextOrdinal = 1
	e.logger.Info("citation store reset")
}
