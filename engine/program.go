package engine

import (
	"github.com/go-gl/mathgl/mgl32"
	log "github.com/sirupsen/logrus"
)

type Program struct {
	Object

	uniforms map[string]int32
}

// NewProgram compiles both shaders and links them. The first failing step
// is returned as a *ShaderError together with the program, which is then
// unusable; whether to go on is up to the caller.
func NewProgram(api API, vertex, fragment string) (*Program, error) {
	prg := &Program{uniforms: make(map[string]int32)}
	if err := prg.create(api, "program", createProgram, deleteProgram); err != nil {
		return nil, err
	}

	// vertex shader
	vshader, err := compileShader(api, StageVertex, vertex)
	if vshader != NullHandle {
		defer api.DeleteShader(vshader)
	}
	if err != nil {
		return prg, err
	}

	// fragment shader
	fshader, err := compileShader(api, StageFragment, fragment)
	if fshader != NullHandle {
		defer api.DeleteShader(fshader)
	}
	if err != nil {
		return prg, err
	}

	// program
	if !api.LinkProgram(prg.handle, vshader, fshader) {
		return prg, &ShaderError{
			Stage: StageLink,
			Log:   truncateLog(api.ProgramInfoLog(prg.handle, InfoLogLimit)),
		}
	}

	log.WithField("handle", prg.handle).Debug("program linked")
	return prg, nil
}

func createProgram(api API) Handle    { return api.CreateProgram() }
func deleteProgram(api API, h Handle) { api.DeleteProgram(h) }

func compileShader(api API, stage ShaderStage, source string) (Handle, error) {
	h := api.CreateShader(stage)
	if h == NullHandle {
		return NullHandle, &ShaderError{Stage: stage, Log: ErrAllocation.Error()}
	}

	if !api.CompileShader(h, source) {
		return h, &ShaderError{
			Stage: stage,
			Log:   truncateLog(api.ShaderInfoLog(h, InfoLogLimit)),
		}
	}
	return h, nil
}

func (p *Program) Use() {
	p.api.UseProgram(p.handle)
}

// Uniform returns the location of name, -1 if the program has no such
// uniform. Locations are cached per program.
func (p *Program) Uniform(name string) int32 {
	if l, ok := p.uniforms[name]; ok {
		return l
	}

	l := p.api.UniformLocation(p.handle, name)
	p.uniforms[name] = l
	return l
}

// SetMat4 sets a matrix uniform of the program in use.
func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	if l := p.Uniform(name); l >= 0 {
		p.api.UniformMatrix4(l, m)
	}
}

// Move returns a program owning p's handle; p is left null.
func (p *Program) Move() *Program {
	n := &Program{uniforms: p.uniforms}
	p.moveTo(&n.Object)
	p.uniforms = make(map[string]int32)
	return n
}
