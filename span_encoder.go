package zipkin

import "sort"

// Encoders come in pairs: a size pass computing the exact encoded length and
// a write pass that must emit exactly that many bytes. Both passes share
// their traversal order and presence tests; the byte-count comments name the
// fixed overhead each member contributes.

func endpointSizeInBytes(e *Endpoint) int {
	size := 1 // {
	if e.ServiceName != "" {
		size += 16 // "serviceName":""
		size += jsonEscapedSize(e.ServiceName)
	}
	if e.IPv4 != "" {
		if size != 1 {
			size++ // ,
		}
		size += 9 // "ipv4":""
		size += len(e.IPv4)
	}
	if e.IPv6 != "" {
		if size != 1 {
			size++ // ,
		}
		size += 9 // "ipv6":""
		size += len(e.IPv6)
	}
	if e.Port != 0 {
		if size != 1 {
			size++ // ,
		}
		size += 7 // "port":
		size += asciiSizeInBytes(uint64(e.Port))
	}
	return size + 1 // }
}

func writeEndpoint(e *Endpoint, b *buffer) {
	b.writeByte('{')
	wroteField := false
	if e.ServiceName != "" {
		b.writeASCII(`"serviceName":"`)
		b.writeEscaped(e.ServiceName)
		b.writeByte('"')
		wroteField = true
	}
	if e.IPv4 != "" {
		if wroteField {
			b.writeByte(',')
		}
		b.writeASCII(`"ipv4":"`)
		b.writeASCII(e.IPv4)
		b.writeByte('"')
		wroteField = true
	}
	if e.IPv6 != "" {
		if wroteField {
			b.writeByte(',')
		}
		b.writeASCII(`"ipv6":"`)
		b.writeASCII(e.IPv6)
		b.writeByte('"')
		wroteField = true
	}
	if e.Port != 0 {
		if wroteField {
			b.writeByte(',')
		}
		b.writeASCII(`"port":`)
		b.writeUint(uint64(e.Port))
	}
	b.writeByte('}')
}

func annotationSizeInBytes(a Annotation) int {
	size := 25 // {"timestamp":,"value":""}
	size += asciiSizeInBytes(a.Timestamp)
	size += jsonEscapedSize(a.Value)
	return size
}

func writeAnnotation(a Annotation, b *buffer) {
	b.writeASCII(`{"timestamp":`)
	b.writeUint(a.Timestamp)
	b.writeASCII(`,"value":"`)
	b.writeEscaped(a.Value)
	b.writeASCII(`"}`)
}

// spanSizeInBytes and writeSpan emit members in a fixed order: traceId,
// parentId, id, kind, name, timestamp, duration, localEndpoint,
// remoteEndpoint, annotations, tags, debug, shared. Because traceId and id
// are always present, every optional member after them carries a fixed
// leading comma; unlike the endpoint pair there is no first-field tracking.
func spanSizeInBytes(s *Span) int {
	size := 13 // {"traceId":""
	size += s.TraceID.hexLength()
	if s.ParentID != nil {
		size += 30 // ,"parentId":"0123456789abcdef"
	}
	size += 24 // ,"id":"0123456789abcdef"
	if s.Kind != "" {
		size += 10 // ,"kind":""
		size += len(s.Kind)
	}
	if s.Name != "" {
		size += 10 // ,"name":""
		size += jsonEscapedSize(s.Name)
	}
	if s.Timestamp != 0 {
		size += 13 // ,"timestamp":
		size += asciiSizeInBytes(s.Timestamp)
	}
	if s.Duration != 0 {
		size += 12 // ,"duration":
		size += asciiSizeInBytes(s.Duration)
	}
	if s.LocalEndpoint != nil {
		size += 17 // ,"localEndpoint":
		size += endpointSizeInBytes(s.LocalEndpoint)
	}
	if s.RemoteEndpoint != nil {
		size += 18 // ,"remoteEndpoint":
		size += endpointSizeInBytes(s.RemoteEndpoint)
	}
	if len(s.Annotations) > 0 {
		size += 17 // ,"annotations":[]
		size += len(s.Annotations) - 1 // joining commas
		for _, a := range s.Annotations {
			size += annotationSizeInBytes(a)
		}
	}
	if len(s.Tags) > 0 {
		size += 10 // ,"tags":{}
		size += len(s.Tags) - 1 // joining commas
		for k, v := range s.Tags {
			size += 5 // "":""
			size += jsonEscapedSize(k)
			size += jsonEscapedSize(v)
		}
	}
	if s.Debug {
		size += 13 // ,"debug":true
	}
	if s.Shared {
		size += 14 // ,"shared":true
	}
	return size + 1 // }
}

func writeSpan(s *Span, b *buffer) {
	b.writeASCII(`{"traceId":"`)
	b.writeASCII(s.TraceID.String())
	b.writeByte('"')
	if s.ParentID != nil {
		b.writeASCII(`,"parentId":"`)
		b.writeASCII(s.ParentID.String())
		b.writeByte('"')
	}
	b.writeASCII(`,"id":"`)
	b.writeASCII(s.ID.String())
	b.writeByte('"')
	if s.Kind != "" {
		b.writeASCII(`,"kind":"`)
		b.writeASCII(string(s.Kind))
		b.writeByte('"')
	}
	if s.Name != "" {
		b.writeASCII(`,"name":"`)
		b.writeEscaped(s.Name)
		b.writeByte('"')
	}
	if s.Timestamp != 0 {
		b.writeASCII(`,"timestamp":`)
		b.writeUint(s.Timestamp)
	}
	if s.Duration != 0 {
		b.writeASCII(`,"duration":`)
		b.writeUint(s.Duration)
	}
	if s.LocalEndpoint != nil {
		b.writeASCII(`,"localEndpoint":`)
		writeEndpoint(s.LocalEndpoint, b)
	}
	if s.RemoteEndpoint != nil {
		b.writeASCII(`,"remoteEndpoint":`)
		writeEndpoint(s.RemoteEndpoint, b)
	}
	if len(s.Annotations) > 0 {
		b.writeASCII(`,"annotations":[`)
		for i, a := range s.Annotations {
			if i > 0 {
				b.writeByte(',')
			}
			writeAnnotation(a, b)
		}
		b.writeByte(']')
	}
	if len(s.Tags) > 0 {
		b.writeASCII(`,"tags":{`)
		for i, k := range sortedTagKeys(s.Tags) {
			if i > 0 {
				b.writeByte(',')
			}
			b.writeByte('"')
			b.writeEscaped(k)
			b.writeASCII(`":"`)
			b.writeEscaped(s.Tags[k])
			b.writeByte('"')
		}
		b.writeByte('}')
	}
	if s.Debug {
		b.writeASCII(`,"debug":true`)
	}
	if s.Shared {
		b.writeASCII(`,"shared":true`)
	}
	b.writeByte('}')
}

// sortedTagKeys fixes the tag iteration order so repeated encodings of the
// same span are byte-identical. The size pass never needs the order: the
// total is the same whichever way the map is walked.
func sortedTagKeys(tags map[string]string) []string {
	keys := make([]string, 0, len(tags))
	for k := range tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
