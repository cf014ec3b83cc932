package pgwire

import "context"

// DecodeTracer traces the decoding of range values received from a server.
type DecodeTracer interface {
	// TraceDecodeStart is called at the beginning of Decode. The returned context is passed to TraceDecodeEnd.
	TraceDecodeStart(ctx context.Context, data TraceDecodeStartData) context.Context
	TraceDecodeEnd(ctx context.Context, data TraceDecodeEndData)
}

type TraceDecodeStartData struct {
	TypeName string
	OID      uint32
	Format   int16
}

type TraceDecodeEndData struct {
	Value string
	Err   error
}
