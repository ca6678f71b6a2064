package engine

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Handle identifies a native graphics resource. NullHandle means no resource.
type Handle uint32

const NullHandle Handle = 0

// Target is the binding point of a buffer.
type Target int

const (
	ArrayBuffer        Target = iota // vertex data
	ElementArrayBuffer               // index data
)

func (t Target) String() string {
	switch t {
	case ArrayBuffer:
		return "ArrayBuffer"
	case ElementArrayBuffer:
		return "ElementArrayBuffer"
	}
	return "Target(?)"
}

// Usage is the allocation hint of a buffer.
type Usage int

const (
	StaticDraw Usage = iota
	DynamicDraw
	StreamDraw
)

// DataType is the component type of vertex attributes and index data.
type DataType int

const (
	Float DataType = iota
	Byte
	UnsignedByte
	Short
	UnsignedShort
	Int
	UnsignedInt
)

// Size returns the size of one component in bytes.
func (t DataType) Size() int {
	switch t {
	case Byte, UnsignedByte:
		return 1
	case Short, UnsignedShort:
		return 2
	default:
		return 4
	}
}

// IsInteger reports whether components are read as integers.
func (t DataType) IsInteger() bool {
	return t != Float
}

// Primitive is the assembly mode of a draw call.
type Primitive int

const (
	Triangles Primitive = iota
	TriangleFan
	Lines
	Points
)

// ShaderStage names a compile or link step of a program.
type ShaderStage int

const (
	StageVertex ShaderStage = iota
	StageFragment
	StageLink
)

func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	case StageLink:
		return "link"
	}
	return "stage(?)"
}

// API is the underlying graphics API. Every call operates on the context
// current on the calling thread and on its implicit bind state.
type API interface {
	// Init loads the function pointers for the current context.
	Init() error
	// Error returns and clears the sticky error flag.
	Error() error

	GenBuffer() Handle
	DeleteBuffer(h Handle)
	BindBuffer(target Target, h Handle)
	// BufferData reserves size bytes; data may be nil for no initial content.
	BufferData(target Target, size int, data []byte, usage Usage)
	BufferSubData(target Target, offset int, data []byte)
	GetBufferSubData(target Target, offset int, data []byte)

	GenVertexArray() Handle
	DeleteVertexArray(h Handle)
	BindVertexArray(h Handle)
	VertexAttribPointer(slot uint32, attr VertexAttribute, stride, offset int)
	EnableVertexAttribArray(slot uint32)

	CreateShader(stage ShaderStage) Handle
	CompileShader(h Handle, source string) bool
	ShaderInfoLog(h Handle, limit int) string
	DeleteShader(h Handle)
	CreateProgram() Handle
	LinkProgram(program Handle, shaders ...Handle) bool
	ProgramInfoLog(h Handle, limit int) string
	UseProgram(h Handle)
	DeleteProgram(h Handle)
	UniformLocation(program Handle, name string) int32
	UniformMatrix4(location int32, m mgl32.Mat4)

	Viewport(x, y, width, height int)
	ClearColor(r, g, b, a float32)
	Clear()
	DrawElements(mode Primitive, count int, typ DataType, offset int)
}

// Platform is the windowing system that owns the event queue.
type Platform interface {
	Init() error
	Terminate()
	PollEvents()
}

// Window is a native window with a rendering context.
type Window interface {
	IsValid() bool
	ShouldClose() bool
	SwapBuffers()
	MakeContextCurrent()
	FramebufferSize() (width, height int)
	SetFramebufferSizeCallback(func(width, height int))
}
