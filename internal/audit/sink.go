// Package audit provides an append-only, date-partitioned JSONL sink for
// decision and execution records. Appends are at-most-effort: a failed write
// is counted, logged at debug, and discarded. Callers never observe audit
// errors and must not change behavior based on them.
package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aryannx/hf-sentiment-engine/internal/metrics"
)

// Appender is the capability components hold for audit writes.
type Appender interface {
	Append(payload any)
}

// Sink writes one JSON object per line to <dir>/<component>_<YYYY-MM-DD>.jsonl,
// partitioned by UTC date. Safe for concurrent use; writers within a process
// are serialized through the sink's mutex and the file is opened O_APPEND so
// separate processes interleave at line granularity.
type Sink struct {
	dir       string
	component string
	logger    *zap.Logger

	mu  sync.Mutex
	now func() time.Time
}

// NewSink creates a sink for one component ("compliance", "oms", "risk").
// Directory creation is deferred to the first append so construction never
// fails; an unwritable directory simply makes every append a no-op.
func NewSink(dir, component string, logger *zap.Logger) *Sink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sink{
		dir:       dir,
		component: component,
		logger:    logger,
		now:       time.Now,
	}
}

// Append writes the payload wrapped in a record envelope with a UTC timestamp
// and a record ID. Failures are swallowed.
func (s *Sink) Append(payload any) {
	if s == nil {
		return
	}

	ts := s.now().UTC()
	record := map[string]any{
		"record_id": uuid.NewString(),
		"ts":        ts.Format(time.RFC3339Nano),
		"component": s.component,
		"payload":   payload,
	}

	data, err := json.Marshal(record)
	if err != nil {
		s.discard(err)
		return
	}
	data = append(data, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.discard(err)
		return
	}

	name := s.component + "_" + ts.Format("2006-01-02") + ".jsonl"
	file, err := os.OpenFile(filepath.Join(s.dir, name), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		s.discard(err)
		return
	}
	defer file.Close()

	if _, err := file.Write(data); err != nil {
		s.discard(err)
	}
}

func (s *Sink) discard(err error) {
	metrics.AuditWriteFailures.WithLabelValues(s.component).Inc()
	s.logger.Debug("audit append discarded", zap.String("component", s.component), zap.Error(err))
}
