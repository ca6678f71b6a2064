// Package enginetest provides an in-memory graphics api, platform and
// window for testing code built on package engine without a GPU.
package enginetest

import (
	"fmt"

	"github.com/der-antikeks/glcourse/engine"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"github.com/willf/bitset"
)

var (
	ErrInvalidOperation = errors.New("invalid operation")
	ErrInvalidValue     = errors.New("invalid value")
)

// Attribute is the recorded state of one vertex array slot.
type Attribute struct {
	engine.VertexAttribute
	Stride, Offset int
	Buffer         engine.Handle
	Enabled        bool
}

// Draw is one recorded draw call.
type Draw struct {
	Mode        engine.Primitive
	Count       int
	Type        engine.DataType
	Offset      int
	VertexArray engine.Handle
	Program     engine.Handle
}

// Recorder implements engine.API in memory. It keeps buffer contents,
// binding state and the sequence of calls, and raises a sticky error on
// misuse the way the real api does.
type Recorder struct {
	// InitErr is returned by Init.
	InitErr error
	// FailAlloc makes every Gen and Create call return engine.NullHandle.
	FailAlloc bool
	// Limit fails allocations once this many handles were acquired, 0 for
	// no limit.
	Limit int
	// Fail maps a stage to the info log it fails with.
	Fail map[engine.ShaderStage]string
	// Missing lists uniform names without a location.
	Missing map[string]bool

	Initialized bool
	Rect        [4]int
	Color       [4]float32
	Clears      int
	Draws       []Draw

	next     engine.Handle
	live     *bitset.BitSet
	kinds    map[engine.Handle]string
	acquired int
	released int

	buffers     map[engine.Handle][]byte
	bound       map[engine.Target]engine.Handle
	vertexArray engine.Handle
	attributes  map[engine.Handle]map[uint32]Attribute
	elements    map[engine.Handle]engine.Handle

	stages    map[engine.Handle]engine.ShaderStage
	infoLogs  map[engine.Handle]string
	linked    map[engine.Handle]bool
	program   engine.Handle
	locations map[string]int32
	uniforms  map[int32]mgl32.Mat4

	calls []string
	err   error
}

func NewRecorder() *Recorder {
	return &Recorder{
		Fail:    map[engine.ShaderStage]string{},
		Missing: map[string]bool{},

		live:  bitset.New(64),
		kinds: map[engine.Handle]string{},

		buffers:    map[engine.Handle][]byte{},
		bound:      map[engine.Target]engine.Handle{},
		attributes: map[engine.Handle]map[uint32]Attribute{},
		elements:   map[engine.Handle]engine.Handle{},

		stages:    map[engine.Handle]engine.ShaderStage{},
		infoLogs:  map[engine.Handle]string{},
		linked:    map[engine.Handle]bool{},
		locations: map[string]int32{},
		uniforms:  map[int32]mgl32.Mat4{},
	}
}

func (r *Recorder) record(format string, args ...interface{}) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

// raise keeps the first error until Error is called.
func (r *Recorder) raise(err error, format string, args ...interface{}) {
	if r.err == nil {
		r.err = errors.Wrapf(err, format, args...)
	}
}

func (r *Recorder) gen(kind string) engine.Handle {
	if r.FailAlloc || (r.Limit > 0 && r.acquired >= r.Limit) {
		return engine.NullHandle
	}

	r.next++
	r.live.Set(uint(r.next))
	r.kinds[r.next] = kind
	r.acquired++
	return r.next
}

func (r *Recorder) del(kind string, h engine.Handle) bool {
	if h == engine.NullHandle {
		return false
	}
	if !r.live.Test(uint(h)) || r.kinds[h] != kind {
		r.raise(ErrInvalidValue, "delete %v %v", kind, h)
		return false
	}

	r.live.Clear(uint(h))
	r.released++
	return true
}

func (r *Recorder) isLive(kind string, h engine.Handle) bool {
	return r.live.Test(uint(h)) && r.kinds[h] == kind
}

// Calls returns the recorded call sequence.
func (r *Recorder) Calls() []string {
	return r.calls
}

// Reset forgets the recorded call sequence.
func (r *Recorder) Reset() {
	r.calls = nil
}

// Live returns the number of handles acquired and not yet released.
func (r *Recorder) Live() int {
	return int(r.live.Count())
}

func (r *Recorder) Acquired() int { return r.acquired }
func (r *Recorder) Released() int { return r.released }

// Data returns the contents of buffer h.
func (r *Recorder) Data(h engine.Handle) []byte {
	return r.buffers[h]
}

// Bound returns the buffer bound to target.
func (r *Recorder) Bound(target engine.Target) engine.Handle {
	return r.bound[target]
}

func (r *Recorder) BoundVertexArray() engine.Handle {
	return r.vertexArray
}

// Attribute returns slot of vertex array va.
func (r *Recorder) Attribute(va engine.Handle, slot uint32) (Attribute, bool) {
	a, ok := r.attributes[va][slot]
	return a, ok
}

// ElementBuffer returns the element buffer captured by vertex array va.
func (r *Recorder) ElementBuffer(va engine.Handle) engine.Handle {
	return r.elements[va]
}

func (r *Recorder) Program() engine.Handle {
	return r.program
}

func (r *Recorder) Linked(h engine.Handle) bool {
	return r.linked[h]
}

// Uniform returns the matrix set at location l.
func (r *Recorder) Uniform(l int32) (mgl32.Mat4, bool) {
	m, ok := r.uniforms[l]
	return m, ok
}

// api

func (r *Recorder) Init() error {
	r.record("Init")
	if r.InitErr != nil {
		return r.InitErr
	}
	r.Initialized = true
	return nil
}

func (r *Recorder) Error() error {
	err := r.err
	r.err = nil
	return err
}

func (r *Recorder) GenBuffer() engine.Handle {
	h := r.gen("buffer")
	r.record("GenBuffer %v", h)
	return h
}

func (r *Recorder) DeleteBuffer(h engine.Handle) {
	r.record("DeleteBuffer %v", h)
	if !r.del("buffer", h) {
		return
	}

	delete(r.buffers, h)
	for t, b := range r.bound {
		if b == h {
			r.bound[t] = engine.NullHandle
		}
	}
}

func (r *Recorder) BindBuffer(target engine.Target, h engine.Handle) {
	r.record("BindBuffer %v %v", target, h)
	if h != engine.NullHandle && !r.isLive("buffer", h) {
		r.raise(ErrInvalidValue, "bind buffer %v", h)
		return
	}

	r.bound[target] = h
	if target == engine.ElementArrayBuffer && r.vertexArray != engine.NullHandle {
		r.elements[r.vertexArray] = h
	}
}

func (r *Recorder) BufferData(target engine.Target, size int, data []byte, usage engine.Usage) {
	r.record("BufferData %v %v", target, size)
	h := r.bound[target]
	if h == engine.NullHandle {
		r.raise(ErrInvalidOperation, "buffer data without buffer bound to %v", target)
		return
	}
	if size < 0 {
		r.raise(ErrInvalidValue, "buffer data size %v", size)
		return
	}

	buf := make([]byte, size)
	copy(buf, data)
	r.buffers[h] = buf
}

func (r *Recorder) subRange(op string, target engine.Target, offset, n int) []byte {
	h := r.bound[target]
	if h == engine.NullHandle {
		r.raise(ErrInvalidOperation, "%v without buffer bound to %v", op, target)
		return nil
	}

	buf := r.buffers[h]
	if offset < 0 || offset+n > len(buf) {
		r.raise(ErrInvalidValue, "%v [%v:%v] of %v bytes", op, offset, offset+n, len(buf))
		return nil
	}
	return buf[offset : offset+n]
}

func (r *Recorder) BufferSubData(target engine.Target, offset int, data []byte) {
	r.record("BufferSubData %v %v %v", target, offset, len(data))
	if dst := r.subRange("buffer sub data", target, offset, len(data)); dst != nil {
		copy(dst, data)
	}
}

func (r *Recorder) GetBufferSubData(target engine.Target, offset int, data []byte) {
	r.record("GetBufferSubData %v %v %v", target, offset, len(data))
	if src := r.subRange("get buffer sub data", target, offset, len(data)); src != nil {
		copy(data, src)
	}
}

func (r *Recorder) GenVertexArray() engine.Handle {
	h := r.gen("vertex array")
	r.record("GenVertexArray %v", h)
	return h
}

func (r *Recorder) DeleteVertexArray(h engine.Handle) {
	r.record("DeleteVertexArray %v", h)
	if !r.del("vertex array", h) {
		return
	}

	delete(r.attributes, h)
	delete(r.elements, h)
	if r.vertexArray == h {
		r.vertexArray = engine.NullHandle
	}
}

func (r *Recorder) BindVertexArray(h engine.Handle) {
	r.record("BindVertexArray %v", h)
	if h != engine.NullHandle && !r.isLive("vertex array", h) {
		r.raise(ErrInvalidValue, "bind vertex array %v", h)
		return
	}
	r.vertexArray = h
}

func (r *Recorder) VertexAttribPointer(slot uint32, attr engine.VertexAttribute, stride, offset int) {
	r.record("VertexAttribPointer %v %v %v %v %v", slot, attr.Components, stride, offset, attr.Type.IsInteger())
	if r.vertexArray == engine.NullHandle || r.bound[engine.ArrayBuffer] == engine.NullHandle {
		r.raise(ErrInvalidOperation, "vertex attrib pointer %v", slot)
		return
	}

	attrs := r.attributes[r.vertexArray]
	if attrs == nil {
		attrs = map[uint32]Attribute{}
		r.attributes[r.vertexArray] = attrs
	}

	a := attrs[slot]
	a.VertexAttribute = attr
	a.Stride = stride
	a.Offset = offset
	a.Buffer = r.bound[engine.ArrayBuffer]
	attrs[slot] = a
}

func (r *Recorder) EnableVertexAttribArray(slot uint32) {
	r.record("EnableVertexAttribArray %v", slot)
	if r.vertexArray == engine.NullHandle {
		r.raise(ErrInvalidOperation, "enable vertex attrib array %v", slot)
		return
	}

	attrs := r.attributes[r.vertexArray]
	if attrs == nil {
		attrs = map[uint32]Attribute{}
		r.attributes[r.vertexArray] = attrs
	}

	a := attrs[slot]
	a.Enabled = true
	attrs[slot] = a
}

func (r *Recorder) CreateShader(stage engine.ShaderStage) engine.Handle {
	h := r.gen("shader")
	r.record("CreateShader %v %v", stage, h)
	if h != engine.NullHandle {
		r.stages[h] = stage
	}
	return h
}

func (r *Recorder) CompileShader(h engine.Handle, source string) bool {
	r.record("CompileShader %v", h)
	if !r.isLive("shader", h) {
		r.raise(ErrInvalidValue, "compile shader %v", h)
		return false
	}

	if msg, ok := r.Fail[r.stages[h]]; ok {
		r.infoLogs[h] = msg
		return false
	}
	return true
}

func limit(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func (r *Recorder) ShaderInfoLog(h engine.Handle, n int) string {
	return limit(r.infoLogs[h], n)
}

func (r *Recorder) DeleteShader(h engine.Handle) {
	r.record("DeleteShader %v", h)
	if r.del("shader", h) {
		delete(r.stages, h)
		delete(r.infoLogs, h)
	}
}

func (r *Recorder) CreateProgram() engine.Handle {
	h := r.gen("program")
	r.record("CreateProgram %v", h)
	return h
}

func (r *Recorder) LinkProgram(p engine.Handle, shaders ...engine.Handle) bool {
	r.record("LinkProgram %v %v", p, shaders)
	if !r.isLive("program", p) {
		r.raise(ErrInvalidValue, "link program %v", p)
		return false
	}

	if msg, ok := r.Fail[engine.StageLink]; ok {
		r.infoLogs[p] = msg
		return false
	}

	r.linked[p] = true
	return true
}

func (r *Recorder) ProgramInfoLog(h engine.Handle, n int) string {
	return limit(r.infoLogs[h], n)
}

func (r *Recorder) UseProgram(h engine.Handle) {
	r.record("UseProgram %v", h)
	if h != engine.NullHandle && !r.linked[h] {
		r.raise(ErrInvalidOperation, "use program %v", h)
		return
	}
	r.program = h
}

func (r *Recorder) DeleteProgram(h engine.Handle) {
	r.record("DeleteProgram %v", h)
	if r.del("program", h) {
		delete(r.linked, h)
		delete(r.infoLogs, h)
		if r.program == h {
			r.program = engine.NullHandle
		}
	}
}

func (r *Recorder) UniformLocation(p engine.Handle, name string) int32 {
	r.record("UniformLocation %v %v", p, name)
	if r.Missing[name] {
		return -1
	}

	l, ok := r.locations[name]
	if !ok {
		l = int32(len(r.locations))
		r.locations[name] = l
	}
	return l
}

func (r *Recorder) UniformMatrix4(l int32, m mgl32.Mat4) {
	r.record("UniformMatrix4 %v", l)
	if r.program == engine.NullHandle {
		r.raise(ErrInvalidOperation, "uniform without program")
		return
	}
	r.uniforms[l] = m
}

func (r *Recorder) Viewport(x, y, width, height int) {
	r.record("Viewport %v %v %v %v", x, y, width, height)
	r.Rect = [4]int{x, y, width, height}
}

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.record("ClearColor %v %v %v %v", red, green, blue, alpha)
	r.Color = [4]float32{red, green, blue, alpha}
}

func (r *Recorder) Clear() {
	r.record("Clear")
	r.Clears++
}

func (r *Recorder) DrawElements(mode engine.Primitive, count int, typ engine.DataType, offset int) {
	r.record("DrawElements %v %v", count, offset)
	if r.vertexArray == engine.NullHandle {
		r.raise(ErrInvalidOperation, "draw without vertex array")
		return
	}

	ebo := r.elements[r.vertexArray]
	if ebo == engine.NullHandle {
		r.raise(ErrInvalidOperation, "draw without element buffer")
		return
	}
	if offset+count*typ.Size() > len(r.buffers[ebo]) {
		r.raise(ErrInvalidValue, "draw %v indices past element buffer", count)
		return
	}

	r.Draws = append(r.Draws, Draw{
		Mode:        mode,
		Count:       count,
		Type:        typ,
		Offset:      offset,
		VertexArray: r.vertexArray,
		Program:     r.program,
	})
}
