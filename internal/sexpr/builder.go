package sexpr

import (
	"encoding/binary"
	"math"
)

// Builder appends nodes to a reusable buffer. Lists are opened with
// BeginList and closed with EndList; the body length is patched on close.
type Builder struct {
	buf   []byte
	open  []int
	unbal bool
}

// Reset clears the builder, keeping its buffer capacity.
func (builder *Builder) Reset() {
	builder.buf = builder.buf[:0]
	builder.open = builder.open[:0]
	builder.unbal = false
}

// BeginList opens a nested list.
func (builder *Builder) BeginList() *Builder {
	builder.open = append(builder.open, len(builder.buf))
	builder.buf = append(builder.buf, byte(KindList), 0, 0, 0, 0)
	return builder
}

// EndList closes the innermost open list.
func (builder *Builder) EndList() *Builder {
	if len(builder.open) == 0 {
		builder.unbal = true
		return builder
	}
	start := builder.open[len(builder.open)-1]
	builder.open = builder.open[:len(builder.open)-1]
	length := len(builder.buf) - start - listHeaderSize
	binary.LittleEndian.PutUint32(builder.buf[start+tagSize:start+listHeaderSize], uint32(length))
	return builder
}

// U32 appends a u32 node.
func (builder *Builder) U32(value uint32) *Builder {
	builder.buf = append(builder.buf, byte(KindU32))
	builder.buf = binary.LittleEndian.AppendUint32(builder.buf, value)
	return builder
}

// U64 appends a u64 node.
func (builder *Builder) U64(value uint64) *Builder {
	builder.buf = append(builder.buf, byte(KindU64))
	builder.buf = binary.LittleEndian.AppendUint64(builder.buf, value)
	return builder
}

// F32 appends an f32 node.
func (builder *Builder) F32(value float32) *Builder {
	builder.buf = append(builder.buf, byte(KindF32))
	builder.buf = binary.LittleEndian.AppendUint32(builder.buf, math.Float32bits(value))
	return builder
}

// Bytes returns a copy of the encoded nodes. It fails if a list is still
// open or EndList was called without a matching BeginList.
func (builder *Builder) Bytes() ([]byte, error) {
	if builder.unbal || len(builder.open) != 0 {
		return nil, ErrUnbalanced
	}
	return append([]byte(nil), builder.buf...), nil
}
