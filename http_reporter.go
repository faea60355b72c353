package zipkin

import (
	"bytes"
	"fmt"
	"net/http"
	"sync"
	"time"

	godebug "github.com/tj/go-debug"
)

var debug = godebug.Debug("zipkin")

const (
	defaultBatchSize     = 100
	defaultFlushInterval = time.Second
	defaultClientTimeout = 5 * time.Second
)

// HTTPReporterOptions allows creating a customized HTTPReporter via
// NewHTTPReporter. The object must not be updated while a reporter is using
// it.
type HTTPReporterOptions struct {
	// URL is the collector span intake, e.g.
	// http://localhost:9411/api/v2/spans.
	URL string

	// BatchSize is the number of buffered spans that triggers an early
	// flush. Defaults to 100.
	BatchSize int

	// FlushInterval is how often buffered spans are sent regardless of
	// batch size. Defaults to 1s.
	FlushInterval time.Duration

	// Client is used to POST batches. Defaults to an http.Client with a 5s
	// timeout.
	Client *http.Client

	// Encoder serializes span batches. Defaults to the JSON encoder.
	Encoder SpanEncoder
}

// HTTPReporter batches spans and POSTs them to a Zipkin collector as a JSON
// list. Report never blocks on the network; delivery happens on a background
// goroutine.
type HTTPReporter struct {
	opts HTTPReporterOptions

	mu    sync.Mutex
	batch []*Span

	done      chan struct{}
	closeOnce sync.Once
}

// NewHTTPReporter creates a batching collector reporter and starts its flush
// loop. Callers must Close it to drain buffered spans.
func NewHTTPReporter(opts HTTPReporterOptions) *HTTPReporter {
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}
	if opts.FlushInterval <= 0 {
		opts.FlushInterval = defaultFlushInterval
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: defaultClientTimeout}
	}
	if opts.Encoder == nil {
		opts.Encoder = NewJSONSpanEncoder()
	}

	r := &HTTPReporter{
		opts: opts,
		done: make(chan struct{}),
	}
	go r.loop()
	return r
}

// Report buffers sp for the next batch.
func (r *HTTPReporter) Report(sp *Span) {
	r.mu.Lock()
	r.batch = append(r.batch, sp)
	full := len(r.batch) >= r.opts.BatchSize
	r.mu.Unlock()

	if full {
		go r.flushLogged("batch full")
	}
}

// Flush sends all buffered spans to the collector immediately.
func (r *HTTPReporter) Flush() error {
	r.mu.Lock()
	batch := r.batch
	r.batch = nil
	r.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	body := r.opts.Encoder.EncodeList(batch)
	debug("posting %d spans (%d bytes) to %s", len(batch), len(body), r.opts.URL)

	req, err := http.NewRequest("POST", r.opts.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := r.opts.Client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		return fmt.Errorf("collector returned status %d", res.StatusCode)
	}
	return nil
}

// Close stops the flush loop and drains buffered spans.
func (r *HTTPReporter) Close() error {
	r.closeOnce.Do(func() {
		close(r.done)
	})
	return r.Flush()
}

func (r *HTTPReporter) loop() {
	ticker := time.NewTicker(r.opts.FlushInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.flushLogged("interval")
		case <-r.done:
			return
		}
	}
}

func (r *HTTPReporter) flushLogged(reason string) {
	if err := r.Flush(); err != nil {
		debug("flush (%s) failed: %v", reason, err)
	}
}
