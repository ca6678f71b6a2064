package engine

import (
	"unsafe"
)

// Scalar is an element type that can be uploaded to a buffer as is.
type Scalar interface {
	~float32 | ~uint32 | ~int32 | ~uint16 | ~int16 | ~uint8 | ~int8
}

// Bytes reinterprets s as its raw bytes without copying.
func Bytes[T Scalar](s []T) []byte {
	if len(s) == 0 {
		return nil
	}
	var zero T
	return unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*int(unsafe.Sizeof(zero)))
}

// Buffer owns a linear data buffer committed to one target.
//
// Allocate, AllocateData, UpdateData and ReadData operate on whatever
// buffer is bound to the target, so the buffer must be bound first.
// Neither the binding nor the range of UpdateData is checked.
type Buffer struct {
	Object

	target Target
	size   int
}

func NewBuffer(api API, target Target) (*Buffer, error) {
	b := &Buffer{target: target}
	if err := b.create(api, "buffer", genBuffer, deleteBuffer); err != nil {
		return nil, err
	}
	return b, nil
}

func NewVertexBuffer(api API) (*Buffer, error) {
	return NewBuffer(api, ArrayBuffer)
}

func NewElementBuffer(api API) (*Buffer, error) {
	return NewBuffer(api, ElementArrayBuffer)
}

func genBuffer(api API) Handle       { return api.GenBuffer() }
func deleteBuffer(api API, h Handle) { api.DeleteBuffer(h) }

// UnbindBuffer clears the buffer bound to target.
func UnbindBuffer(api API, target Target) {
	api.BindBuffer(target, NullHandle)
}

// Bind makes b the active buffer of its target.
func (b *Buffer) Bind() {
	b.api.BindBuffer(b.target, b.handle)
}

// BindTo binds b to another target than the one it was created for.
func (b *Buffer) BindTo(target Target) {
	b.api.BindBuffer(target, b.handle)
}

func (b *Buffer) Target() Target {
	return b.target
}

// Size returns the byte size of the last allocation.
func (b *Buffer) Size() int {
	return b.size
}

// Allocate reserves size bytes without content, discarding previous data.
func (b *Buffer) Allocate(size int, usage Usage) {
	b.api.BufferData(b.target, size, nil, usage)
	b.size = size
}

// AllocateData reserves len(data) bytes initialized with data.
func (b *Buffer) AllocateData(data []byte, usage Usage) {
	b.api.BufferData(b.target, len(data), data, usage)
	b.size = len(data)
}

// UpdateData overwrites len(data) bytes starting at offset. offset+len(data)
// must not exceed Size.
func (b *Buffer) UpdateData(data []byte, offset int) {
	b.api.BufferSubData(b.target, offset, data)
}

// ReadData reads length bytes starting at offset back from the buffer.
func (b *Buffer) ReadData(offset, length int) []byte {
	data := make([]byte, length)
	b.api.GetBufferSubData(b.target, offset, data)
	return data
}

// Move returns a buffer owning b's handle; b is left null.
func (b *Buffer) Move() *Buffer {
	n := &Buffer{target: b.target, size: b.size}
	b.moveTo(&n.Object)
	b.size = 0
	return n
}

func AllocateSlice[T Scalar](b *Buffer, data []T, usage Usage) {
	b.AllocateData(Bytes(data), usage)
}

// UpdateSlice overwrites elements starting at element index first.
func UpdateSlice[T Scalar](b *Buffer, data []T, first int) {
	var zero T
	b.UpdateData(Bytes(data), first*int(unsafe.Sizeof(zero)))
}
