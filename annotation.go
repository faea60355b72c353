package zipkin

// Annotation associates an event that explains latency with a timestamp in
// epoch microseconds. Both fields are always present.
type Annotation struct {
	Timestamp uint64
	Value     string
}
