package tokenizer

import (
	"bytes"
	"sync"
)

// quotedValuePool recycles the *bytes.Buffer used to accumulate a quoted
// field's decoded value across calls to NextColumn. Adapted from the
// teacher's fastparser bufferPool, which pooled []byte buffers for the same
// reason (quoted-field accumulation is the allocation hot path of a CSV
// tokenizer); this pools a *bytes.Buffer instead, since the quoted-value
// state machine here builds its result incrementally with Write, not by
// appending pre-sliced byte ranges.
var quotedValuePool = sync.Pool{
	New: func() any {
		buf := new(bytes.Buffer)
		buf.Grow(64)
		return buf
	},
}

// maxRetainedQuotedValueCapacity bounds what gets put back in the pool, so
// one exceptionally large quoted field doesn't pin that much memory for the
// lifetime of the process.
const maxRetainedQuotedValueCapacity = 64 * 1024

func getQuotedValueBuffer() *bytes.Buffer {
	buf := quotedValuePool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putQuotedValueBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxRetainedQuotedValueCapacity {
		return
	}
	quotedValuePool.Put(buf)
}
