package zipkin

import (
	"strconv"
	"strings"

	opentracing "github.com/opentracing/opentracing-go"
)

// B3 propagation headers.
const (
	b3TraceID      = "X-B3-TraceId"
	b3SpanID       = "X-B3-SpanId"
	b3ParentSpanID = "X-B3-ParentSpanId"
	b3Sampled      = "X-B3-Sampled"
	b3Flags        = "X-B3-Flags"
)

// InjectB3 writes sc into the carrier using B3 headers. The carrier must
// implement opentracing.TextMapWriter.
func InjectB3(sc SpanContext, opaqueCarrier interface{}) error {
	carrier, ok := opaqueCarrier.(opentracing.TextMapWriter)
	if !ok {
		return opentracing.ErrInvalidCarrier
	}
	if sc.TraceID.Empty() {
		return opentracing.ErrInvalidSpanContext
	}

	carrier.Set(b3TraceID, sc.TraceID.String())
	carrier.Set(b3SpanID, sc.ID.String())
	if sc.ParentID != nil {
		carrier.Set(b3ParentSpanID, sc.ParentID.String())
	}
	if sc.Debug {
		carrier.Set(b3Flags, "1")
	} else if sc.Sampled != nil {
		if *sc.Sampled {
			carrier.Set(b3Sampled, "1")
		} else {
			carrier.Set(b3Sampled, "0")
		}
	}
	return nil
}

// ExtractB3 reads a SpanContext from a carrier populated by InjectB3 or any
// B3-conformant peer. The carrier must implement opentracing.TextMapReader.
func ExtractB3(opaqueCarrier interface{}) (SpanContext, error) {
	var sc SpanContext
	carrier, ok := opaqueCarrier.(opentracing.TextMapReader)
	if !ok {
		return sc, opentracing.ErrInvalidCarrier
	}

	requiredFieldCount := 0
	err := carrier.ForeachKey(func(k, v string) error {
		var err error
		switch strings.ToLower(k) {
		case "x-b3-traceid":
			if sc.TraceID, err = TraceIDFromHex(v); err != nil {
				return opentracing.ErrSpanContextCorrupted
			}
			requiredFieldCount++
		case "x-b3-spanid":
			if sc.ID, err = IDFromHex(v); err != nil {
				return opentracing.ErrSpanContextCorrupted
			}
			requiredFieldCount++
		case "x-b3-parentspanid":
			id, err := IDFromHex(v)
			if err != nil {
				return opentracing.ErrSpanContextCorrupted
			}
			sc.ParentID = &id
		case "x-b3-sampled":
			sampled, err := strconv.ParseBool(v)
			if err != nil {
				return opentracing.ErrSpanContextCorrupted
			}
			sc.Sampled = &sampled
		case "x-b3-flags":
			if v == "1" {
				sc.Debug = true
			}
		}
		return nil
	})
	if err != nil {
		return SpanContext{}, err
	}

	if requiredFieldCount < 2 {
		if requiredFieldCount == 0 {
			return SpanContext{}, opentracing.ErrSpanContextNotFound
		}
		return SpanContext{}, opentracing.ErrSpanContextCorrupted
	}
	return sc, nil
}
