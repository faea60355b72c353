package zipkin

import (
	"encoding/json"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("SpanEncoder", func() {

	var enc SpanEncoder

	BeforeEach(func() {
		enc = NewJSONSpanEncoder()
	})

	parse := func(b []byte) map[string]interface{} {
		out := make(map[string]interface{})
		Ω(json.Unmarshal(b, &out)).Should(Succeed())
		return out
	}

	Describe("Encode", func() {
		It("encodes a minimal span to the exact golden bytes", func() {
			sp := &Span{SpanContext: SpanContext{
				TraceID: TraceID{Low: 0x4fa41ba2d2687c5},
				ID:      0x44f,
			}}
			bytes := enc.Encode(sp)
			Ω(string(bytes)).Should(Equal(
				`{"traceId":"04fa41ba2d2687c5","id":"000000000000044f"}`))
			Ω(enc.SizeInBytes(sp)).Should(Equal(len(bytes)))
		})

		It("encodes a fully populated span to the exact golden bytes", func() {
			parentID := ID(0x315)
			sp := &Span{
				SpanContext: SpanContext{
					TraceID:  TraceID{Low: 0x7b},
					ID:       0x1c8,
					ParentID: &parentID,
				},
				Kind:      Client,
				Name:      "get /api",
				Timestamp: 1472470996199000,
				Duration:  207000,
				LocalEndpoint: &Endpoint{
					ServiceName: "frontend",
					IPv4:        "127.0.0.1",
				},
				RemoteEndpoint: &Endpoint{
					ServiceName: "backend",
					IPv4:        "192.168.99.101",
					Port:        9000,
				},
				Annotations: []Annotation{
					{Timestamp: 1472470996238000, Value: "foo"},
					{Timestamp: 1472470996403000, Value: "bar"},
				},
				Tags: map[string]string{
					"http.path":            "/api",
					"clnt/finagle.version": "6.45.0",
				},
			}
			bytes := enc.Encode(sp)
			Ω(string(bytes)).Should(Equal(`{"traceId":"000000000000007b"` +
				`,"parentId":"0000000000000315","id":"00000000000001c8"` +
				`,"kind":"CLIENT","name":"get /api","timestamp":1472470996199000` +
				`,"duration":207000` +
				`,"localEndpoint":{"serviceName":"frontend","ipv4":"127.0.0.1"}` +
				`,"remoteEndpoint":{"serviceName":"backend","ipv4":"192.168.99.101","port":9000}` +
				`,"annotations":[{"timestamp":1472470996238000,"value":"foo"}` +
				`,{"timestamp":1472470996403000,"value":"bar"}]` +
				`,"tags":{"clnt/finagle.version":"6.45.0","http.path":"/api"}}`))
			Ω(enc.SizeInBytes(sp)).Should(Equal(len(bytes)))
		})

		It("renders a 128-bit trace id as 32 hex characters", func() {
			sp := &Span{SpanContext: SpanContext{
				TraceID: TraceID{High: 0x48485a3953bb6124, Low: 0x86154a4ba6e91385},
				ID:      0x1c8,
			}}
			bytes := enc.Encode(sp)
			Ω(string(bytes)).Should(Equal(
				`{"traceId":"48485a3953bb612486154a4ba6e91385","id":"00000000000001c8"}`))
			Ω(enc.SizeInBytes(sp)).Should(Equal(len(bytes)))
		})

		It("encodes debug and shared flags only when true", func() {
			sp := &Span{
				SpanContext: SpanContext{TraceID: TraceID{Low: 1}, ID: 2, Debug: true},
				Shared:      true,
			}
			bytes := enc.Encode(sp)
			Ω(string(bytes)).Should(HaveSuffix(`,"debug":true,"shared":true}`))
			Ω(enc.SizeInBytes(sp)).Should(Equal(len(bytes)))
			Ω(parse(bytes)).Should(HaveLen(4))
		})

		It("encodes a present but empty endpoint as an empty object", func() {
			sp := &Span{
				SpanContext:   SpanContext{TraceID: TraceID{Low: 1}, ID: 2},
				LocalEndpoint: &Endpoint{},
			}
			bytes := enc.Encode(sp)
			Ω(string(bytes)).Should(ContainSubstring(`,"localEndpoint":{}`))
			Ω(enc.SizeInBytes(sp)).Should(Equal(len(bytes)))
		})

		It("sizes and writes identically for every optional field combination", func() {
			parentID := ID(0xabcdef42)
			for mask := 0; mask < 1<<11; mask++ {
				sp := &Span{SpanContext: SpanContext{
					TraceID: TraceID{Low: 0x7b},
					ID:      0x1c8,
				}}
				expected := []string{"traceId", "id"}
				if mask&(1<<0) != 0 {
					sp.ParentID = &parentID
					expected = append(expected, "parentId")
				}
				if mask&(1<<1) != 0 {
					sp.Kind = Producer
					expected = append(expected, "kind")
				}
				if mask&(1<<2) != 0 {
					sp.Name = "a \"quoted\"\nname"
					expected = append(expected, "name")
				}
				if mask&(1<<3) != 0 {
					sp.Timestamp = 1472470996199000
					expected = append(expected, "timestamp")
				}
				if mask&(1<<4) != 0 {
					sp.Duration = 9
					expected = append(expected, "duration")
				}
				if mask&(1<<5) != 0 {
					sp.LocalEndpoint = &Endpoint{ServiceName: "frontend"}
					expected = append(expected, "localEndpoint")
				}
				if mask&(1<<6) != 0 {
					sp.RemoteEndpoint = &Endpoint{IPv6: "::1", Port: 443}
					expected = append(expected, "remoteEndpoint")
				}
				if mask&(1<<7) != 0 {
					sp.Annotations = []Annotation{
						{Timestamp: 1, Value: "ws"},
						{Timestamp: 2, Value: "wr"},
					}
					expected = append(expected, "annotations")
				}
				if mask&(1<<8) != 0 {
					sp.Tags = map[string]string{"error": "true", "http.path": "/api"}
					expected = append(expected, "tags")
				}
				if mask&(1<<9) != 0 {
					sp.Debug = true
					expected = append(expected, "debug")
				}
				if mask&(1<<10) != 0 {
					sp.Shared = true
					expected = append(expected, "shared")
				}

				bytes := enc.Encode(sp)
				Ω(len(bytes)).Should(Equal(enc.SizeInBytes(sp)),
					"combination %011b produced %s", mask, bytes)

				out := parse(bytes)
				Ω(out).Should(HaveLen(len(expected)),
					"combination %011b produced %s", mask, bytes)
				for _, key := range expected {
					Ω(out).Should(HaveKey(key), "combination %011b", mask)
				}
			}
		})

		It("produces byte-identical output across repeated encodings", func() {
			sp := &Span{
				SpanContext: SpanContext{TraceID: TraceID{Low: 1}, ID: 2},
				Tags: map[string]string{
					"e": "5", "a": "1", "d": "4", "b": "2", "c": "3",
				},
			}
			first := enc.Encode(sp)
			for i := 0; i < 100; i++ {
				Ω(enc.Encode(sp)).Should(Equal(first))
			}
		})

		It("round-trips strings needing escapes through a JSON parser", func() {
			name := "quote \" slash \\ newline \n control \x01 utf8 日本é"
			sp := &Span{
				SpanContext: SpanContext{TraceID: TraceID{Low: 1}, ID: 2},
				Name:        name,
				Annotations: []Annotation{{Timestamp: 1, Value: name}},
				Tags:        map[string]string{name: name},
			}
			bytes := enc.Encode(sp)
			Ω(len(bytes)).Should(Equal(enc.SizeInBytes(sp)))

			out := parse(bytes)
			Ω(out["name"]).Should(Equal(name))
			annotations := out["annotations"].([]interface{})
			Ω(annotations[0].(map[string]interface{})["value"]).Should(Equal(name))
			tags := out["tags"].(map[string]interface{})
			Ω(tags[name]).Should(Equal(name))
		})
	})

	Describe("EncodeList", func() {
		It("encodes an empty list as exactly two bytes", func() {
			Ω(string(enc.EncodeList(nil))).Should(Equal(`[]`))
			Ω(string(enc.EncodeList([]*Span{}))).Should(Equal(`[]`))
		})

		It("joins spans with single commas inside brackets", func() {
			spans := []*Span{
				{SpanContext: SpanContext{TraceID: TraceID{Low: 1}, ID: 1}},
				{SpanContext: SpanContext{TraceID: TraceID{Low: 2}, ID: 2}, Name: "two"},
				{SpanContext: SpanContext{TraceID: TraceID{Low: 3}, ID: 3}, Duration: 30},
			}
			bytes := enc.EncodeList(spans)

			expectedSize := 2 + len(spans) - 1
			for _, sp := range spans {
				expectedSize += enc.SizeInBytes(sp)
			}
			Ω(len(bytes)).Should(Equal(expectedSize))

			var out []map[string]interface{}
			Ω(json.Unmarshal(bytes, &out)).Should(Succeed())
			Ω(out).Should(HaveLen(3))
			Ω(out[1]["name"]).Should(Equal("two"))
		})
	})
})

var _ = Describe("endpoint encoding", func() {

	encode := func(e *Endpoint) []byte {
		size := endpointSizeInBytes(e)
		b := newBuffer(size)
		writeEndpoint(e, b)
		Ω(len(b.bytes)).Should(Equal(size), "endpoint %+v", e)
		return b.bytes
	}

	It("places commas only between present fields", func() {
		Ω(string(encode(&Endpoint{}))).Should(Equal(`{}`))
		Ω(string(encode(&Endpoint{ServiceName: "svc"}))).Should(
			Equal(`{"serviceName":"svc"}`))
		Ω(string(encode(&Endpoint{Port: 80}))).Should(Equal(`{"port":80}`))
		Ω(string(encode(&Endpoint{IPv4: "10.0.0.1", Port: 8080}))).Should(
			Equal(`{"ipv4":"10.0.0.1","port":8080}`))
		Ω(string(encode(&Endpoint{
			ServiceName: "svc",
			IPv4:        "10.0.0.1",
			IPv6:        "2001:db8::c001",
			Port:        8080,
		}))).Should(Equal(
			`{"serviceName":"svc","ipv4":"10.0.0.1","ipv6":"2001:db8::c001","port":8080}`))
	})

	It("sizes and writes identically for every field combination", func() {
		for mask := 0; mask < 1<<4; mask++ {
			e := &Endpoint{}
			if mask&(1<<0) != 0 {
				e.ServiceName = "a \"quoted\" service"
			}
			if mask&(1<<1) != 0 {
				e.IPv4 = "192.168.99.101"
			}
			if mask&(1<<2) != 0 {
				e.IPv6 = "2001:db8::c001"
			}
			if mask&(1<<3) != 0 {
				e.Port = 65535
			}
			bytes := encode(e)
			Ω(json.Valid(bytes)).Should(BeTrue(), "combination %04b: %s", mask, bytes)
		}
	})
})

var _ = Describe("annotation encoding", func() {

	It("encodes the fixed-shape object with exact size", func() {
		a := Annotation{Timestamp: 1, Value: "cs"}
		size := annotationSizeInBytes(a)
		b := newBuffer(size)
		writeAnnotation(a, b)
		Ω(string(b.bytes)).Should(Equal(`{"timestamp":1,"value":"cs"}`))
		Ω(len(b.bytes)).Should(Equal(size))
	})

	It("sizes escaped values and wide timestamps exactly", func() {
		a := Annotation{Timestamp: 18446744073709551615, Value: "tab\there"}
		size := annotationSizeInBytes(a)
		b := newBuffer(size)
		writeAnnotation(a, b)
		Ω(len(b.bytes)).Should(Equal(size))
		Ω(string(b.bytes)).Should(Equal(
			`{"timestamp":18446744073709551615,"value":"tab\there"}`))
	})
})
