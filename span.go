package zipkin

// Kind clarifies the relationship between a span and a remote party during an
// RPC or messaging exchange.
type Kind string

// Available span kinds.
const (
	Client   Kind = "CLIENT"
	Server   Kind = "SERVER"
	Producer Kind = "PRODUCER"
	Consumer Kind = "CONSUMER"
)

// SpanContext holds the identity of a span within its trace. It is the part
// of a span that crosses process boundaries via propagation.
type SpanContext struct {
	TraceID  TraceID
	ID       ID
	ParentID *ID
	Debug    bool
	Sampled  *bool
}

// Span is the Zipkin v2 span record consumed by the encoders. It is a plain
// value record: the encoders read it and never mutate or retain it.
//
// Optional fields follow zero-value-means-absent semantics: an empty Name or
// Kind, a zero Timestamp or Duration, a nil endpoint, and empty
// Annotations/Tags collections contribute no bytes and no JSON member.
type Span struct {
	SpanContext
	Name      string
	Kind      Kind
	Timestamp uint64 // epoch microseconds, 0 means unset
	Duration  uint64 // microseconds, 0 means unset
	Shared    bool

	LocalEndpoint  *Endpoint
	RemoteEndpoint *Endpoint

	// Annotations are kept in insertion order, which is time order.
	Annotations []Annotation

	Tags map[string]string
}
