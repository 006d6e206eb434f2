package glf

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Program is a linked vertex+fragment pairing. It owns its GPU object until
// Delete is called.
type Program struct {
	dev        Device
	handle     uint32
	log        string
	linked     bool
	projection string
	uniforms   map[string]int32
}

// Handle returns the GPU handle, or 0 once deleted.
func (p *Program) Handle() uint32 { return p.handle }

// Log returns the link log captured on failure.
func (p *Program) Log() string { return p.log }

// Linked reports whether the program linked successfully and is fit to draw with.
func (p *Program) Linked() bool { return p.linked }

// Use makes the program the active one.
func (p *Program) Use() {
	if p.handle == 0 {
		return
	}
	p.dev.UseProgram(p.handle)
}

// Uniform returns the location of the named uniform, or -1 if the program
// has no such active uniform. Locations are cached per program.
func (p *Program) Uniform(name string) int32 {
	if loc, ok := p.uniforms[name]; ok {
		return loc
	}
	if p.handle == 0 {
		return -1
	}
	loc := p.dev.UniformLocation(p.handle, name)
	if p.linked {
		if p.uniforms == nil {
			p.uniforms = make(map[string]int32)
		}
		p.uniforms[name] = loc
	}
	return loc
}

// ProjectionLocation returns the location of the projection matrix uniform.
func (p *Program) ProjectionLocation() int32 {
	return p.Uniform(p.projection)
}

// SetProjection uploads m into the projection uniform of the active program.
// The program must be in use.
func (p *Program) SetProjection(m mgl32.Mat4) {
	p.dev.UniformMatrix4(p.ProjectionLocation(), &m)
}

// Delete releases the GPU object. Safe to call more than once.
func (p *Program) Delete() {
	if p.handle == 0 {
		return
	}
	p.dev.DeleteProgram(p.handle)
	p.handle = 0
	p.linked = false
	p.uniforms = nil
}

// LinkProgram compiles the vertex and fragment stages at the given paths and
// links them into a program. Both stage objects are detached and deleted
// before LinkProgram returns, whatever the outcome.
//
// In the default permissive mode the Program is returned even when a stage
// failed to compile or the link failed; the error then carries every
// *CompileError and the *LinkError, and the logs have been written to the
// diagnostics writer. A strict builder deletes the failed program and
// returns nil.
func (b *Builder) LinkProgram(vertexPath, fragmentPath string) (*Program, error) {
	vs, vErr := b.CompileShader(VertexShader, vertexPath)
	if vs == nil {
		return nil, vErr
	}
	fs, fErr := b.CompileShader(FragmentShader, fragmentPath)
	if fs == nil {
		vs.Delete()
		return nil, fErr
	}
	return b.link(vs, fs, errors.Join(vErr, fErr))
}

// LinkSources is LinkProgram for in-memory sources.
func (b *Builder) LinkSources(vertexSrc, fragmentSrc string) (*Program, error) {
	vs, vErr := b.CompileShaderSource(VertexShader, vertexSrc)
	fs, fErr := b.CompileShaderSource(FragmentShader, fragmentSrc)
	return b.link(vs, fs, errors.Join(vErr, fErr))
}

func (b *Builder) link(vs, fs *Shader, stageErr error) (*Program, error) {
	handle := b.dev.CreateProgram()
	b.attachAndLink(handle, vs, fs)

	prog := &Program{dev: b.dev, handle: handle, projection: b.cfg.ProjectionUniform}
	if !b.dev.ProgramLinked(handle) {
		prog.log = b.dev.ProgramInfoLog(handle)
		_, _ = fmt.Fprintf(b.cfg.Diagnostics, "Linker failure: %s\n", prog.log)
		err := errors.Join(stageErr, &LinkError{Log: prog.log})
		if b.cfg.Strict {
			prog.Delete()
			return nil, err
		}
		return prog, err
	}
	prog.linked = true
	prog.ProjectionLocation()
	Logger().Info("glf: program linked", "handle", handle,
		"vertex", vs.path, "fragment", fs.path)
	return prog, stageErr
}

// attachAndLink attaches both stages, links, then detaches and deletes the
// stages on the way out.
func (b *Builder) attachAndLink(program uint32, stages ...*Shader) {
	defer func() {
		for _, sh := range stages {
			b.dev.DetachShader(program, sh.handle)
			sh.Delete()
		}
	}()
	for _, sh := range stages {
		b.dev.AttachShader(program, sh.handle)
	}
	b.dev.LinkProgram(program)
}

// LinkProgram builds a program from two source files with the default BuildConfig.
func LinkProgram(dev Device, vertexPath, fragmentPath string) (*Program, error) {
	return NewBuilder(dev, BuildConfig{}).LinkProgram(vertexPath, fragmentPath)
}
