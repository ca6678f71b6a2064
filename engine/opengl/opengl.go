// Package opengl implements engine.API on OpenGL 3.3 core.
package opengl

import (
	"strings"

	"github.com/der-antikeks/glcourse/engine"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var targets = map[engine.Target]uint32{
	engine.ArrayBuffer:        gl.ARRAY_BUFFER,
	engine.ElementArrayBuffer: gl.ELEMENT_ARRAY_BUFFER,
}

var usages = map[engine.Usage]uint32{
	engine.StaticDraw:  gl.STATIC_DRAW,
	engine.DynamicDraw: gl.DYNAMIC_DRAW,
	engine.StreamDraw:  gl.STREAM_DRAW,
}

var types = map[engine.DataType]uint32{
	engine.Float:         gl.FLOAT,
	engine.Byte:          gl.BYTE,
	engine.UnsignedByte:  gl.UNSIGNED_BYTE,
	engine.Short:         gl.SHORT,
	engine.UnsignedShort: gl.UNSIGNED_SHORT,
	engine.Int:           gl.INT,
	engine.UnsignedInt:   gl.UNSIGNED_INT,
}

var primitives = map[engine.Primitive]uint32{
	engine.Triangles:   gl.TRIANGLES,
	engine.TriangleFan: gl.TRIANGLE_FAN,
	engine.Lines:       gl.LINES,
	engine.Points:      gl.POINTS,
}

var stages = map[engine.ShaderStage]uint32{
	engine.StageVertex:   gl.VERTEX_SHADER,
	engine.StageFragment: gl.FRAGMENT_SHADER,
}

var glErrors = map[uint32]string{
	gl.INVALID_ENUM:                  "invalid enum",
	gl.INVALID_VALUE:                 "invalid value",
	gl.INVALID_OPERATION:             "invalid operation",
	gl.INVALID_FRAMEBUFFER_OPERATION: "invalid framebuffer operation",
	gl.OUT_OF_MEMORY:                 "out of memory",
}

// API calls OpenGL directly. It must only be used on the thread whose
// context is current.
type API struct{}

func New() *API {
	return &API{}
}

func (*API) Init() error {
	if err := gl.Init(); err != nil {
		return errors.Wrap(err, "gl init")
	}

	log.WithField("version", gl.GoStr(gl.GetString(gl.VERSION))).Info("opengl loaded")
	return nil
}

func (*API) Error() error {
	if code := gl.GetError(); code != gl.NO_ERROR {
		if msg, ok := glErrors[code]; ok {
			return errors.New(msg)
		}
		return errors.Errorf("gl error 0x%x", code)
	}
	return nil
}

func (*API) GenBuffer() engine.Handle {
	var h uint32
	gl.GenBuffers(1, &h)
	return engine.Handle(h)
}

func (*API) DeleteBuffer(h engine.Handle) {
	u := uint32(h)
	gl.DeleteBuffers(1, &u)
}

func (*API) BindBuffer(target engine.Target, h engine.Handle) {
	gl.BindBuffer(targets[target], uint32(h))
}

func (*API) BufferData(target engine.Target, size int, data []byte, usage engine.Usage) {
	if len(data) == 0 {
		gl.BufferData(targets[target], size, nil, usages[usage])
		return
	}
	gl.BufferData(targets[target], size, gl.Ptr(data), usages[usage])
}

func (*API) BufferSubData(target engine.Target, offset int, data []byte) {
	if len(data) == 0 {
		return
	}
	gl.BufferSubData(targets[target], offset, len(data), gl.Ptr(data))
}

func (*API) GetBufferSubData(target engine.Target, offset int, data []byte) {
	if len(data) == 0 {
		return
	}
	gl.GetBufferSubData(targets[target], offset, len(data), gl.Ptr(data))
}

func (*API) GenVertexArray() engine.Handle {
	var h uint32
	gl.GenVertexArrays(1, &h)
	return engine.Handle(h)
}

func (*API) DeleteVertexArray(h engine.Handle) {
	u := uint32(h)
	gl.DeleteVertexArrays(1, &u)
}

func (*API) BindVertexArray(h engine.Handle) {
	gl.BindVertexArray(uint32(h))
}

func (*API) VertexAttribPointer(slot uint32, attr engine.VertexAttribute, stride, offset int) {
	typ := types[attr.Type]
	if attr.Type.IsInteger() && !attr.Normalized {
		gl.VertexAttribIPointer(slot, int32(attr.Components), typ, int32(stride), gl.PtrOffset(offset))
		return
	}
	gl.VertexAttribPointer(slot, int32(attr.Components), typ, attr.Normalized, int32(stride), gl.PtrOffset(offset))
}

func (*API) EnableVertexAttribArray(slot uint32) {
	gl.EnableVertexAttribArray(slot)
}

func (*API) CreateShader(stage engine.ShaderStage) engine.Handle {
	return engine.Handle(gl.CreateShader(stages[stage]))
}

func (*API) CompileShader(h engine.Handle, source string) bool {
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(uint32(h), 1, csources, nil)
	free()
	gl.CompileShader(uint32(h))

	var status int32
	gl.GetShaderiv(uint32(h), gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

func (*API) ShaderInfoLog(h engine.Handle, limit int) string {
	msg := strings.Repeat("\x00", limit+1)
	gl.GetShaderInfoLog(uint32(h), int32(limit), nil, gl.Str(msg))
	return gl.GoStr(gl.Str(msg))
}

func (*API) DeleteShader(h engine.Handle) {
	gl.DeleteShader(uint32(h))
}

func (*API) CreateProgram() engine.Handle {
	return engine.Handle(gl.CreateProgram())
}

func (*API) LinkProgram(p engine.Handle, shaders ...engine.Handle) bool {
	for _, s := range shaders {
		gl.AttachShader(uint32(p), uint32(s))
	}
	gl.LinkProgram(uint32(p))

	var status int32
	gl.GetProgramiv(uint32(p), gl.LINK_STATUS, &status)
	return status == gl.TRUE
}

func (*API) ProgramInfoLog(h engine.Handle, limit int) string {
	msg := strings.Repeat("\x00", limit+1)
	gl.GetProgramInfoLog(uint32(h), int32(limit), nil, gl.Str(msg))
	return gl.GoStr(gl.Str(msg))
}

func (*API) UseProgram(h engine.Handle) {
	gl.UseProgram(uint32(h))
}

func (*API) DeleteProgram(h engine.Handle) {
	gl.DeleteProgram(uint32(h))
}

func (*API) UniformLocation(p engine.Handle, name string) int32 {
	return gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
}

func (*API) UniformMatrix4(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (*API) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

func (*API) ClearColor(r, g, b, a float32) {
	gl.ClearColor(r, g, b, a)
}

func (*API) Clear() {
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

func (*API) DrawElements(mode engine.Primitive, count int, typ engine.DataType, offset int) {
	gl.DrawElements(primitives[mode], int32(count), types[typ], gl.PtrOffset(offset))
}
