package logger

import (
	"bufio"
	"errors"
	"io"
	"sync"
)

// asyncWriter decouples log formatting from sink I/O: records are queued and
// a single goroutine fans them out to every sink. The first write error is
// sticky and fails all later calls.
type asyncWriter struct {
	records chan []byte
	flushCh chan chan error
	drained chan struct{}
	closing sync.Once

	errMu sync.Mutex
	err   error

	sinks []*bufio.Writer
}

func newAsyncWriter(writers []io.Writer, bufSize int) *asyncWriter {
	if bufSize <= 0 {
		bufSize = 64 * 1024
	}
	w := &asyncWriter{
		records: make(chan []byte, 256),
		flushCh: make(chan chan error),
		drained: make(chan struct{}),
	}
	for _, out := range writers {
		if out != nil {
			w.sinks = append(w.sinks, bufio.NewWriterSize(out, bufSize))
		}
	}
	go w.run()
	return w
}

func (w *asyncWriter) run() {
	for {
		select {
		case rec, ok := <-w.records:
			if !ok {
				_ = w.flushSinks()
				close(w.drained)
				return
			}
			if len(rec) > 0 {
				w.recordErr(w.writeSinks(rec))
			}
		case ack := <-w.flushCh:
			ack <- w.flushSinks()
		}
	}
}

// Write queues a copy of p. It blocks when the queue is full so that no
// record is ever dropped.
func (w *asyncWriter) Write(p []byte) error {
	if err := w.firstErr(); err != nil {
		return err
	}
	if len(p) == 0 {
		return nil
	}
	rec := make([]byte, len(p))
	copy(rec, p)
	w.records <- rec
	return nil
}

// Flush waits until everything buffered so far has reached the sinks.
func (w *asyncWriter) Flush() error {
	if err := w.firstErr(); err != nil {
		return err
	}
	ack := make(chan error, 1)
	w.flushCh <- ack
	return <-ack
}

// Close drains the queue and reports the first write error, if any.
func (w *asyncWriter) Close() error {
	w.closing.Do(func() { close(w.records) })
	<-w.drained
	return w.firstErr()
}

func (w *asyncWriter) writeSinks(rec []byte) error {
	for _, sink := range w.sinks {
		if _, err := sink.Write(rec); err != nil {
			return err
		}
		if err := sink.Flush(); err != nil {
			return err
		}
	}
	return nil
}

func (w *asyncWriter) flushSinks() error {
	var errs []error
	for _, sink := range w.sinks {
		if err := sink.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (w *asyncWriter) firstErr() error {
	w.errMu.Lock()
	defer w.errMu.Unlock()
	return w.err
}

func (w *asyncWriter) recordErr(err error) {
	if err == nil {
		return
	}
	w.errMu.Lock()
	defer w.errMu.Unlock()
	if w.err == nil {
		w.err = err
	}
}
