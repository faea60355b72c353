package zipkin

import (
	"fmt"
	"strconv"
)

// ID is a 64-bit span identifier. It always renders as exactly 16 lowercase
// hex characters, which is what keeps the fixed-width size accounting in the
// span encoder exact: an id can never be shorter or longer than the encoder
// accounts for.
type ID uint64

func (i ID) String() string {
	return fmt.Sprintf("%016x", uint64(i))
}

// IDFromHex parses a span id from its hex representation.
func IDFromHex(h string) (ID, error) {
	v, err := strconv.ParseUint(h, 16, 64)
	if err != nil {
		return 0, err
	}
	return ID(v), nil
}

// TraceID is a 128-bit trace identifier carried as two 64-bit halves. It
// renders as 16 hex characters when High is zero and 32 otherwise.
type TraceID struct {
	High uint64
	Low  uint64
}

func (t TraceID) String() string {
	if t.High == 0 {
		return fmt.Sprintf("%016x", t.Low)
	}
	return fmt.Sprintf("%016x%016x", t.High, t.Low)
}

// hexLength is the number of characters String produces.
func (t TraceID) hexLength() int {
	if t.High == 0 {
		return 16
	}
	return 32
}

// Empty reports whether the trace id is unset.
func (t TraceID) Empty() bool {
	return t.High == 0 && t.Low == 0
}

// TraceIDFromHex parses a trace id of up to 32 hex characters. Inputs of 16
// characters or fewer populate only the low half.
func TraceIDFromHex(h string) (TraceID, error) {
	var t TraceID
	if len(h) > 32 {
		return t, fmt.Errorf("trace id too long: %q", h)
	}
	var err error
	if len(h) > 16 {
		if t.High, err = strconv.ParseUint(h[:len(h)-16], 16, 64); err != nil {
			return t, err
		}
		t.Low, err = strconv.ParseUint(h[len(h)-16:], 16, 64)
		return t, err
	}
	t.Low, err = strconv.ParseUint(h, 16, 64)
	return t, err
}
