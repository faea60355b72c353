package zipkin

import (
	"fmt"
	"io"
	"sync"
)

// SpanReporter delivers finished spans to a collector or sink.
type SpanReporter interface {
	Report(*Span)
}

type spanReporter struct {
	io.Writer
	SpanEncoder
	sync.Mutex
}

// NewSpanReporter creates a reporter that writes one encoded span per line
// to w.
func NewSpanReporter(w io.Writer, e SpanEncoder) SpanReporter {
	return &spanReporter{Writer: w, SpanEncoder: e}
}

func (r *spanReporter) Report(sp *Span) {
	bytes := append(r.Encode(sp), '\n')
	expectedBytes := len(bytes)

	r.Lock()
	defer r.Unlock()
	n, err := r.Write(bytes)

	if err != nil {
		fmt.Println(err)
		return
	}

	if expectedBytes != n {
		fmt.Printf("Expect %d bytes reported, but had %d instead\n", expectedBytes, n)
	}
}
