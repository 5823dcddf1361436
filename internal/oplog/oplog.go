package oplog

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"app/internal/domain/model"

	"go.uber.org/zap"
)

const (
	// FlushThreshold is the pending-entry count that triggers an immediate flush.
	FlushThreshold = 5

	// DefaultFlushInterval is how often the scheduler writes out whatever is
	// pending, regardless of caller activity.
	DefaultFlushInterval = 600 * time.Second

	timeLayout = "2006-01-02 15:04:05"
)

// OperationLog buffers human-readable operation records in memory and
// appends them to a log file once FlushThreshold entries are pending or the
// scheduler fires. A failed write keeps the entries buffered so they are
// retried on the next trigger; a successful write drains them before the
// lock is released, so no entry is ever flushed twice.
type OperationLog struct {
	mu      sync.Mutex
	pending []string
	path    string
	logger  *zap.Logger
	now     func() time.Time
}

func New(path string, logger *zap.Logger) *OperationLog {
	return &OperationLog{
		path:   path,
		logger: logger,
		now:    time.Now,
	}
}

// Record buffers one formatted operation entry. Crossing the flush threshold
// flushes synchronously under the same lock; write failures are reported to
// the logger, never to the caller.
func (l *OperationLog) Record(op model.Operation, id int64, name string, quantity int64) {
	entry := fmt.Sprintf("[%s] %s: ID = %d, Name = %s, Quantity = %d",
		l.now().Format(timeLayout), op, id, name, quantity)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.pending = append(l.pending, entry)
	if len(l.pending) >= FlushThreshold {
		l.flushLocked()
	}
}

// FlushPending writes out any buffered entries. Called by the scheduler and
// once more on shutdown.
func (l *OperationLog) FlushPending() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.flushLocked()
}

// PendingCount reports how many entries are buffered but not yet flushed.
func (l *OperationLog) PendingCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}

// RunScheduler flushes pending entries every interval until ctx is canceled.
func (l *OperationLog) RunScheduler(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.FlushPending()
		}
	}
}

// flushLocked appends the whole pending batch to the file and drains the
// buffer, all while holding l.mu. On failure the buffer is left intact for
// the next trigger.
func (l *OperationLog) flushLocked() {
	if len(l.pending) == 0 {
		return
	}

	if err := l.appendBatch(); err != nil {
		l.logger.Error("operation log flush failed",
			zap.String("path", l.path),
			zap.Int("pending", len(l.pending)),
			zap.Error(err))
		return
	}

	l.pending = l.pending[:0]
}

func (l *OperationLog) appendBatch() error {
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("=== Operations Log ===\n")
	b.WriteString("Timestamp: " + l.now().Format(timeLayout) + "\n")
	fmt.Fprintf(&b, "Operations count: %d\n\n", len(l.pending))
	for _, entry := range l.pending {
		b.WriteString(entry)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
