package engine

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/matsen/citeline/internal/citation"
)

// Engine holds the canonical citation set and its usage records.
// The zero value is not usable; construct with New.
type Engine struct {
	mu     sync.RWMutex
	logger *zap.Logger
	now    func() time.Time

	byKey         map[string]*citation.Citation
	byFingerprint map[string]string // fingerprint → key
	baseKeyCount  map[string]int    // base key → keys created with that base
	order         []string          // keys in insertion order

	usages      []citation.UsageRecord
	usageIdx    map[string][]int // key → indices into usages
	nextOrdinal int
}

// New creates an empty Engine. A nil logger disables logging.
func New(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		logger:        logger,
		now:           time.Now,
		byKey:         make(map[string]*citation.Citation),
		byFingerprint: make(map[string]string),
		baseKeyCount:  make(map[string]int),
		usageIdx:      make(map[string][]int),
		nextOrdinal:   1,
	}
}
