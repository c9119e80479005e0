package engine

import (
	"fmt"
	"strconv"

	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"github.com/matsen/citeline/internal/citation"
)

// Snapshot returns a complete copy of engine state, sufficient for an
// external storage collaborator to reconstruct the store exactly.
func (e *Engine) Snapshot() citation.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	snap := citation.Snapshot{
		Citations:   make([]citation.Citation, 0, len(e.order)),
		Usages:      append([]citation.UsageRecord(nil), e.usages...),
		NextOrdinal: e.nextOrdinal,
	}
	for _, key := range e.order {
		snap.Citations = append(snap.Citations, e.byKey[key].Clone())
	}
	return snap
}

// Restore replaces engine state with the contents of a snapshot,
// validating the data invariants first: keys must be unique and every
// usage record must resolve to a citation. On error the engine is left
// unchanged.
func (e *Engine) Restore(snap citation.Snapshot) error {
	byKey := make(map[string]*citation.Citation, len(snap.Citations))
	byFingerprint := make(map[string]string, len(snap.Citations))
	baseKeyCount := make(map[string]int)
	order := make([]string, 0, len(snap.Citations))
	maxOrdinal := 0

	for i := range snap.Citations {
		c := snap.Citations[i].Clone()
		if c.Key == "" || c.Title == "" || len(c.Authors) == 0 {
			return citation.ConsistencyError{
				Reason: fmt.Sprintf("snapshot citation %d missing key, title, or authors", i),
			}
		}
		if _, dup := byKey[c.Key]; dup {
			return citation.ConsistencyError{Reason: "duplicate key in snapshot: " + c.Key}
		}
		byKey[c.Key] = &c
		byFingerprint[Fingerprint(c.Title, c.Year)] = c.Key
		baseKeyCount[baseKeyFor(c)]++
		order = append(order, c.Key)
		if c.Ordinal > maxOrdinal {
			maxOrdinal = c.Ordinal
		}
	}

	usageIdx := make(map[string][]int, len(byKey))
	usages := make([]citation.UsageRecord, len(snap.Usages))
	for i, rec := range snap.Usages {
		if _, ok := byKey[rec.CitationKey]; !ok {
			return citation.ConsistencyError{
				Reason: "usage record references unknown key: " + rec.CitationKey,
			}
		}
		usages[i] = rec
		usageIdx[rec.CitationKey] = append(usageIdx[rec.CitationKey], i)
	}

	nextOrdinal := snap.NextOrdinal
	if nextOrdinal <= maxOrdinal {
		nextOrdinal = maxOrdinal + 1
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.byKey = byKey
	e.byFingerprint = byFingerprint
	e.baseKeyCount = baseKeyCount
	e.order = order
	e.usages = usages
	e.usageIdx = usageIdx
	e.nextOrdinal = nextOrdinal

	e.logger.Info("restored citation store",
		zap.Int("citations", len(order)),
		zap.Int("usages", len(usages)))
	return nil
}

// baseKeyFor recomputes the undisambiguated key a citation was derived
// from, so Restore can rebuild the disambiguation counters.
func baseKeyFor(c citation.Citation) string {
	yearPart := "nd"
	if c.Year > 0 {
		yearPart = strconv.Itoa(c.Year)
	}
	return slug.Make(c.FirstAuthor().Last) + yearPart
}
