package zipkin

// Endpoint describes the network context of the service that recorded a span
// or of its remote peer. IP literals are pre-formatted by the caller and are
// emitted verbatim, never escaped.
type Endpoint struct {
	ServiceName string
	IPv4        string
	IPv6        string
	Port        uint16
}

// Empty reports whether the endpoint carries no information. An empty
// endpoint still encodes (as "{}") when a span references it; use nil on the
// span to suppress the member entirely.
func (e *Endpoint) Empty() bool {
	return e.ServiceName == "" && e.IPv4 == "" && e.IPv6 == "" && e.Port == 0
}
