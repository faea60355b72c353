package zipkin

import "fmt"

// SpanEncoder is the format-agnostic contract for span serialization. Every
// variant pairs an exact size computation with a write pass that emits the
// same number of bytes, so callers can presize batch buffers with SizeInBytes
// before paying for Encode.
type SpanEncoder interface {
	// SizeInBytes returns the exact encoded length of sp in bytes.
	SizeInBytes(sp *Span) int

	// Encode returns the wire representation of a single span.
	Encode(sp *Span) []byte

	// EncodeList returns the wire representation of a batch of spans.
	EncodeList(spans []*Span) []byte
}

// jsonSpanEncoder implements SpanEncoder for the Zipkin v2 JSON format.
type jsonSpanEncoder struct{}

// NewJSONSpanEncoder creates the encoder for the Zipkin v2 JSON format. It
// is stateless and safe for concurrent use.
func NewJSONSpanEncoder() SpanEncoder {
	return jsonSpanEncoder{}
}

func (jsonSpanEncoder) SizeInBytes(sp *Span) int {
	return spanSizeInBytes(sp)
}

func (jsonSpanEncoder) Encode(sp *Span) []byte {
	size := spanSizeInBytes(sp)
	b := newBuffer(size)
	writeSpan(sp, b)
	return checked(b, size)
}

func (jsonSpanEncoder) EncodeList(spans []*Span) []byte {
	size := listSizeInBytes(spans)
	b := newBuffer(size)
	writeList(spans, b)
	return checked(b, size)
}

func listSizeInBytes(spans []*Span) int {
	size := 2 // []
	if len(spans) > 1 {
		size += len(spans) - 1 // joining commas
	}
	for _, sp := range spans {
		size += spanSizeInBytes(sp)
	}
	return size
}

func writeList(spans []*Span, b *buffer) {
	b.writeByte('[')
	for i, sp := range spans {
		if i > 0 {
			b.writeByte(',')
		}
		writeSpan(sp, b)
	}
	b.writeByte(']')
}

// checked enforces the size/write contract. A mismatch is a defect in an
// encoder pair, never a runtime condition, so it panics rather than
// returning an error.
func checked(b *buffer, size int) []byte {
	if len(b.bytes) != size {
		panic(fmt.Sprintf(
			"span encoding bug: sized %d bytes but wrote %d", size, len(b.bytes)))
	}
	return b.bytes
}
