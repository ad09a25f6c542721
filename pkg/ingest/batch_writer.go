package ingest

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"
)

// WriteFunc performs database writes inside a transaction.
type WriteFunc func(tx *sql.Tx) error

// ErrBatchWriterClosed is returned by Submit after Close.
var ErrBatchWriterClosed = &BatchWriterError{"batch writer closed"}

// BatchWriterError is a typed error for writer operations.
type BatchWriterError struct{ msg string }

func (e *BatchWriterError) Error() string { return e.msg }

// BatchWriter buffers write callbacks and commits them in batched
// transactions, flushing on size or on a timer.
type BatchWriter struct {
	mu     sync.Mutex
	buf    []WriteFunc
	cap    int
	closed bool

	ticker   *time.Ticker
	commitCh chan []WriteFunc
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
	db       *sql.DB

	errMu   sync.Mutex
	lastErr error
}

// NewBatchWriter creates a writer flushing every bufferSize submissions or
// every flushInterval, whichever comes first (0 disables the timer).
func NewBatchWriter(conn *sql.DB, bufferSize int, flushInterval time.Duration) *BatchWriter {
	if bufferSize <= 0 {
		bufferSize = 10
	}
	ctx, cancel := context.WithCancel(context.Background())
	bw := &BatchWriter{
		buf:      make([]WriteFunc, 0, bufferSize),
		cap:      bufferSize,
		commitCh: make(chan []WriteFunc, 2),
		ctx:      ctx,
		cancel:   cancel,
		db:       conn,
	}

	bw.wg.Add(1)
	go bw.committer()

	if flushInterval > 0 {
		bw.ticker = time.NewTicker(flushInterval)
		bw.wg.Add(1)
		go bw.tickLoop()
	}
	return bw
}

// Submit enqueues a write callback.
func (bw *BatchWriter) Submit(w WriteFunc) error {
	bw.mu.Lock()
	defer bw.mu.Unlock()
	if bw.closed {
		return ErrBatchWriterClosed
	}
	bw.buf = append(bw.buf, w)
	if len(bw.buf) >= bw.cap {
		bw.flushLocked()
	}
	return nil
}

// flushLocked assumes bw.mu is held. A full commit channel propagates
// backpressure to Submit.
func (bw *BatchWriter) flushLocked() {
	if len(bw.buf) == 0 {
		return
	}
	batch := bw.buf
	bw.buf = make([]WriteFunc, 0, bw.cap)

	select {
	case bw.commitCh <- batch:
	case <-bw.ctx.Done():
		bw.recordErr(fmt.Errorf("batch writer: dropped batch of %d items on shutdown", len(batch)))
	}
}

func (bw *BatchWriter) committer() {
	defer bw.wg.Done()
	for batch := range bw.commitCh {
		if err := bw.commitBatch(batch); err != nil {
			bw.recordErr(err)
		}
	}
}

func (bw *BatchWriter) commitBatch(batch []WriteFunc) error {
	tx, err := bw.db.Begin()
	if err != nil {
		return fmt.Errorf("begin batch tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // no-op once committed
	}()

	for _, w := range batch {
		if err := w(tx); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch of %d items: %w", len(batch), err)
	}
	return nil
}

func (bw *BatchWriter) tickLoop() {
	defer bw.wg.Done()
	for {
		select {
		case <-bw.ctx.Done():
			return
		case <-bw.ticker.C:
			bw.mu.Lock()
			bw.flushLocked()
			bw.mu.Unlock()
		}
	}
}

func (bw *BatchWriter) recordErr(err error) {
	bw.errMu.Lock()
	if bw.lastErr == nil {
		bw.lastErr = err
	}
	bw.errMu.Unlock()
}

// Close flushes pending writes, stops the goroutines, and returns the first
// error seen during asynchronous commits.
func (bw *BatchWriter) Close() error {
	bw.mu.Lock()
	if bw.closed {
		bw.mu.Unlock()
		return ErrBatchWriterClosed
	}
	bw.closed = true
	if bw.ticker != nil {
		bw.ticker.Stop()
	}
	bw.flushLocked()
	bw.mu.Unlock()

	close(bw.commitCh)
	bw.wg.Wait()
	bw.cancel()

	bw.errMu.Lock()
	defer bw.errMu.Unlock()
	return bw.lastErr
}
