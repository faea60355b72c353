// Zipkin v2 span encoding for Go
//
// zipkin encodes trace spans into the Zipkin v2 JSON wire format using a
// two-pass discipline: an exact size computation followed by a write into a
// buffer of exactly that length. Reporters deliver encoded spans to any
// io.Writer or batch them to a Zipkin collector over HTTP.

package zipkin
