// Package gltest provides an in-memory [glf.Device] for tests. It models the
// GL objects and bindings the sprite layer touches, records every call, and
// snapshots the bound state at each draw, so code built on glf can be tested
// without a GPU or a window.
package gltest

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/phanxgames/glf"
)

// ShaderObject is a shader stage known to the device.
type ShaderObject struct {
	Kind     glf.ShaderKind
	Source   string
	Compiled bool
	Log      string
}

// ProgramObject is a program known to the device.
type ProgramObject struct {
	Attached []uint32
	Linked   bool
	Log      string
	// Uniforms maps the uniform names declared by the linked stages to locations.
	Uniforms map[string]int32
	// Matrices holds the last value uploaded to each mat4 location.
	Matrices map[int32]mgl32.Mat4
	// LastMatrix is the location most recently written by UniformMatrix4,
	// or -1 before any upload.
	LastMatrix int32
}

// BufferObject is a buffer known to the device.
type BufferObject struct {
	Data  []byte
	Usage glf.BufferUsage
	// Specs counts BufferData calls against this buffer.
	Specs int
}

// TextureObject is a texture known to the device.
type TextureObject struct {
	Width, Height int
	Pixels        []byte
}

// AttribPointer is a recorded VertexAttribPointer call.
type AttribPointer struct {
	Size       int32
	Type       glf.AttribType
	Normalized bool
	Stride     int32
	Offset     uintptr
	Buffer     uint32 // array buffer bound when the pointer was declared
}

// DrawCall is the device state captured at a DrawElements call.
type DrawCall struct {
	Mode          glf.DrawMode
	Count         int32
	IndexType     glf.IndexType
	Offset        uintptr
	Program       uint32
	Texture       uint32
	TextureUnit   uint32
	ArrayBuffer   uint32
	ElementBuffer uint32
	Enabled       []uint32
	Pointers      map[uint32]AttribPointer
	Vertices      []byte
	Indices       []byte
	Projection    mgl32.Mat4
}

// Device is a recording glf.Device. The zero value is not usable; call New.
type Device struct {
	// CompileFunc decides the compile outcome of a stage. The default fails
	// empty sources and sources containing an #error directive.
	CompileFunc func(kind glf.ShaderKind, src string) (ok bool, log string)
	// LinkFunc decides the link outcome. The default requires exactly one
	// compiled vertex and one compiled fragment stage.
	LinkFunc func(stages []*ShaderObject) (ok bool, log string)

	// Calls logs every method call with its arguments, in order.
	Calls []string
	// Draws captures the state at every DrawElements call.
	Draws []DrawCall
	// Errors records invalid operations, the way glGetError would.
	Errors []string

	Shaders  map[uint32]*ShaderObject
	Programs map[uint32]*ProgramObject
	Buffers  map[uint32]*BufferObject
	Textures map[uint32]*TextureObject

	CurrentProgram uint32
	ArrayBinding   uint32
	ElementBinding uint32
	ActiveUnit     uint32
	TextureBinding uint32
	EnabledAttribs map[uint32]bool
	Pointers       map[uint32]AttribPointer

	// Framebuffer is returned by ReadPixels, bottom row first.
	Framebuffer       []byte
	FramebufferWidth  int
	FramebufferHeight int

	next uint32
}

var _ glf.Device = (*Device)(nil)

// New returns an empty device.
func New() *Device {
	return &Device{
		Shaders:        make(map[uint32]*ShaderObject),
		Programs:       make(map[uint32]*ProgramObject),
		Buffers:        make(map[uint32]*BufferObject),
		Textures:       make(map[uint32]*TextureObject),
		EnabledAttribs: make(map[uint32]bool),
		Pointers:       make(map[uint32]AttribPointer),
	}
}

func (d *Device) call(format string, args ...any) {
	d.Calls = append(d.Calls, fmt.Sprintf(format, args...))
}

func (d *Device) fail(format string, args ...any) {
	d.Errors = append(d.Errors, fmt.Sprintf(format, args...))
}

func (d *Device) alloc() uint32 {
	d.next++
	return d.next
}

// ResetCalls clears the call log and the captured draws.
func (d *Device) ResetCalls() {
	d.Calls = nil
	d.Draws = nil
}

// LiveShaders returns the number of shader objects not yet deleted.
func (d *Device) LiveShaders() int { return len(d.Shaders) }

// LivePrograms returns the number of program objects not yet deleted.
func (d *Device) LivePrograms() int { return len(d.Programs) }

// LiveBuffers returns the number of buffer objects not yet deleted.
func (d *Device) LiveBuffers() int { return len(d.Buffers) }

// LiveTextures returns the number of texture objects not yet deleted.
func (d *Device) LiveTextures() int { return len(d.Textures) }

// --- Shaders ---

func (d *Device) CreateShader(kind glf.ShaderKind) uint32 {
	h := d.alloc()
	d.Shaders[h] = &ShaderObject{Kind: kind}
	d.call("CreateShader(%s) = %d", kind, h)
	return h
}

func (d *Device) ShaderSource(shader uint32, src string) {
	d.call("ShaderSource(%d)", shader)
	sh, ok := d.Shaders[shader]
	if !ok {
		d.fail("ShaderSource: unknown shader %d", shader)
		return
	}
	sh.Source = src
}

func (d *Device) CompileShader(shader uint32) {
	d.call("CompileShader(%d)", shader)
	sh, ok := d.Shaders[shader]
	if !ok {
		d.fail("CompileShader: unknown shader %d", shader)
		return
	}
	compile := d.CompileFunc
	if compile == nil {
		compile = defaultCompile
	}
	sh.Compiled, sh.Log = compile(sh.Kind, sh.Source)
	if sh.Compiled {
		sh.Log = ""
	}
}

func defaultCompile(_ glf.ShaderKind, src string) (bool, string) {
	if strings.TrimSpace(src) == "" {
		return false, "ERROR: 0:1: '' : syntax error: no main function found"
	}
	for i, line := range strings.Split(src, "\n") {
		if msg, ok := strings.CutPrefix(strings.TrimSpace(line), "#error"); ok {
			return false, fmt.Sprintf("ERROR: 0:%d: '#error' :%s", i, msg)
		}
	}
	return true, ""
}

func (d *Device) ShaderCompiled(shader uint32) bool {
	d.call("ShaderCompiled(%d)", shader)
	sh, ok := d.Shaders[shader]
	return ok && sh.Compiled
}

func (d *Device) ShaderInfoLog(shader uint32) string {
	d.call("ShaderInfoLog(%d)", shader)
	if sh, ok := d.Shaders[shader]; ok {
		return sh.Log
	}
	return ""
}

func (d *Device) DeleteShader(shader uint32) {
	d.call("DeleteShader(%d)", shader)
	if _, ok := d.Shaders[shader]; !ok {
		d.fail("DeleteShader: unknown shader %d", shader)
		return
	}
	delete(d.Shaders, shader)
}

// --- Programs ---

func (d *Device) CreateProgram() uint32 {
	h := d.alloc()
	d.Programs[h] = &ProgramObject{LastMatrix: -1}
	d.call("CreateProgram() = %d", h)
	return h
}

func (d *Device) AttachShader(program, shader uint32) {
	d.call("AttachShader(%d, %d)", program, shader)
	p, ok := d.Programs[program]
	if !ok {
		d.fail("AttachShader: unknown program %d", program)
		return
	}
	if _, ok := d.Shaders[shader]; !ok {
		d.fail("AttachShader: unknown shader %d", shader)
		return
	}
	if slices.Contains(p.Attached, shader) {
		d.fail("AttachShader: shader %d already attached to %d", shader, program)
		return
	}
	p.Attached = append(p.Attached, shader)
}

func (d *Device) DetachShader(program, shader uint32) {
	d.call("DetachShader(%d, %d)", program, shader)
	p, ok := d.Programs[program]
	if !ok {
		d.fail("DetachShader: unknown program %d", program)
		return
	}
	i := slices.Index(p.Attached, shader)
	if i < 0 {
		d.fail("DetachShader: shader %d not attached to %d", shader, program)
		return
	}
	p.Attached = slices.Delete(p.Attached, i, i+1)
}

var uniformDecl = regexp.MustCompile(`(?m)^\s*uniform\s+\w+\s+(\w+)`)

func (d *Device) LinkProgram(program uint32) {
	d.call("LinkProgram(%d)", program)
	p, ok := d.Programs[program]
	if !ok {
		d.fail("LinkProgram: unknown program %d", program)
		return
	}
	stages := make([]*ShaderObject, 0, len(p.Attached))
	for _, h := range p.Attached {
		stages = append(stages, d.Shaders[h])
	}
	link := d.LinkFunc
	if link == nil {
		link = defaultLink
	}
	p.Linked, p.Log = link(stages)
	p.Uniforms = nil
	if !p.Linked {
		return
	}
	p.Log = ""
	p.Uniforms = make(map[string]int32)
	for _, st := range stages {
		for _, m := range uniformDecl.FindAllStringSubmatch(st.Source, -1) {
			if _, seen := p.Uniforms[m[1]]; !seen {
				p.Uniforms[m[1]] = int32(len(p.Uniforms))
			}
		}
	}
}

func defaultLink(stages []*ShaderObject) (bool, string) {
	var vertex, fragment int
	for _, st := range stages {
		if !st.Compiled {
			return false, fmt.Sprintf("error: %s shader not compiled", st.Kind)
		}
		switch st.Kind {
		case glf.VertexShader:
			vertex++
		case glf.FragmentShader:
			fragment++
		}
	}
	if vertex != 1 || fragment != 1 {
		return false, fmt.Sprintf("error: need one vertex and one fragment shader, have %d and %d", vertex, fragment)
	}
	return true, ""
}

func (d *Device) ProgramLinked(program uint32) bool {
	d.call("ProgramLinked(%d)", program)
	p, ok := d.Programs[program]
	return ok && p.Linked
}

func (d *Device) ProgramInfoLog(program uint32) string {
	d.call("ProgramInfoLog(%d)", program)
	if p, ok := d.Programs[program]; ok {
		return p.Log
	}
	return ""
}

func (d *Device) UseProgram(program uint32) {
	d.call("UseProgram(%d)", program)
	if program != 0 {
		p, ok := d.Programs[program]
		if !ok || !p.Linked {
			d.fail("UseProgram: program %d is not a linked program", program)
		}
	}
	d.CurrentProgram = program
}

func (d *Device) DeleteProgram(program uint32) {
	d.call("DeleteProgram(%d)", program)
	if _, ok := d.Programs[program]; !ok {
		d.fail("DeleteProgram: unknown program %d", program)
		return
	}
	delete(d.Programs, program)
	if d.CurrentProgram == program {
		d.CurrentProgram = 0
	}
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	d.call("UniformLocation(%d, %s)", program, name)
	p, ok := d.Programs[program]
	if !ok || !p.Linked {
		return -1
	}
	if loc, ok := p.Uniforms[name]; ok {
		return loc
	}
	return -1
}

func (d *Device) UniformMatrix4(location int32, m *mgl32.Mat4) {
	d.call("UniformMatrix4(%d)", location)
	if location < 0 {
		return
	}
	p, ok := d.Programs[d.CurrentProgram]
	if !ok {
		d.fail("UniformMatrix4: no program in use")
		return
	}
	if p.Matrices == nil {
		p.Matrices = make(map[int32]mgl32.Mat4)
	}
	p.Matrices[location] = *m
	p.LastMatrix = location
}

// --- Buffers ---

func (d *Device) GenBuffer() uint32 {
	h := d.alloc()
	d.Buffers[h] = &BufferObject{}
	d.call("GenBuffer() = %d", h)
	return h
}

func (d *Device) BindBuffer(target glf.BufferTarget, buffer uint32) {
	d.call("BindBuffer(%s, %d)", target, buffer)
	if buffer != 0 {
		if _, ok := d.Buffers[buffer]; !ok {
			d.fail("BindBuffer: unknown buffer %d", buffer)
			return
		}
	}
	switch target {
	case glf.ArrayBuffer:
		d.ArrayBinding = buffer
	case glf.ElementArrayBuffer:
		d.ElementBinding = buffer
	}
}

func (d *Device) binding(target glf.BufferTarget) uint32 {
	if target == glf.ElementArrayBuffer {
		return d.ElementBinding
	}
	return d.ArrayBinding
}

func (d *Device) BufferData(target glf.BufferTarget, data []byte, usage glf.BufferUsage) {
	d.call("BufferData(%s, %d)", target, len(data))
	h := d.binding(target)
	b, ok := d.Buffers[h]
	if h == 0 || !ok {
		d.fail("BufferData: no buffer bound to %s", target)
		return
	}
	b.Data = slices.Clone(data)
	b.Usage = usage
	b.Specs++
}

func (d *Device) DeleteBuffer(buffer uint32) {
	d.call("DeleteBuffer(%d)", buffer)
	if _, ok := d.Buffers[buffer]; !ok {
		d.fail("DeleteBuffer: unknown buffer %d", buffer)
		return
	}
	delete(d.Buffers, buffer)
	if d.ArrayBinding == buffer {
		d.ArrayBinding = 0
	}
	if d.ElementBinding == buffer {
		d.ElementBinding = 0
	}
}

// --- Textures ---

func (d *Device) GenTexture() uint32 {
	h := d.alloc()
	d.Textures[h] = &TextureObject{}
	d.call("GenTexture() = %d", h)
	return h
}

func (d *Device) ActiveTexture(unit uint32) {
	d.call("ActiveTexture(%d)", unit)
	d.ActiveUnit = unit
}

func (d *Device) BindTexture(texture uint32) {
	d.call("BindTexture(%d)", texture)
	if texture != 0 {
		if _, ok := d.Textures[texture]; !ok {
			d.fail("BindTexture: unknown texture %d", texture)
			return
		}
	}
	d.TextureBinding = texture
}

func (d *Device) TexImage2D(width, height int, rgba []byte) {
	d.call("TexImage2D(%d, %d)", width, height)
	t, ok := d.Textures[d.TextureBinding]
	if d.TextureBinding == 0 || !ok {
		d.fail("TexImage2D: no texture bound")
		return
	}
	if len(rgba) != width*height*4 {
		d.fail("TexImage2D: %d bytes for %dx%d RGBA", len(rgba), width, height)
	}
	t.Width, t.Height = width, height
	t.Pixels = slices.Clone(rgba)
}

func (d *Device) DeleteTexture(texture uint32) {
	d.call("DeleteTexture(%d)", texture)
	if _, ok := d.Textures[texture]; !ok {
		d.fail("DeleteTexture: unknown texture %d", texture)
		return
	}
	delete(d.Textures, texture)
	if d.TextureBinding == texture {
		d.TextureBinding = 0
	}
}

// --- Vertex attributes and drawing ---

func (d *Device) EnableVertexAttribArray(index uint32) {
	d.call("EnableVertexAttribArray(%d)", index)
	d.EnabledAttribs[index] = true
}

func (d *Device) DisableVertexAttribArray(index uint32) {
	d.call("DisableVertexAttribArray(%d)", index)
	delete(d.EnabledAttribs, index)
}

func (d *Device) VertexAttribPointer(index uint32, size int32, typ glf.AttribType, normalized bool, stride int32, offset uintptr) {
	d.call("VertexAttribPointer(%d, %d, %d, %t, %d, %d)", index, size, typ, normalized, stride, offset)
	if d.ArrayBinding == 0 {
		d.fail("VertexAttribPointer: no array buffer bound for attribute %d", index)
		return
	}
	d.Pointers[index] = AttribPointer{
		Size:       size,
		Type:       typ,
		Normalized: normalized,
		Stride:     stride,
		Offset:     offset,
		Buffer:     d.ArrayBinding,
	}
}

// EnabledList returns the enabled attribute indices in ascending order.
func (d *Device) EnabledList() []uint32 {
	out := make([]uint32, 0, len(d.EnabledAttribs))
	for i := range d.EnabledAttribs {
		out = append(out, i)
	}
	slices.Sort(out)
	return out
}

func (d *Device) DrawElements(mode glf.DrawMode, count int32, typ glf.IndexType, offset uintptr) {
	d.call("DrawElements(%d, %d, %d, %d)", mode, count, typ, offset)
	if d.CurrentProgram == 0 {
		d.fail("DrawElements: no program in use")
	}
	if d.ElementBinding == 0 {
		d.fail("DrawElements: no element buffer bound")
	}
	dc := DrawCall{
		Mode:          mode,
		Count:         count,
		IndexType:     typ,
		Offset:        offset,
		Program:       d.CurrentProgram,
		Texture:       d.TextureBinding,
		TextureUnit:   d.ActiveUnit,
		ArrayBuffer:   d.ArrayBinding,
		ElementBuffer: d.ElementBinding,
		Enabled:       d.EnabledList(),
		Pointers:      make(map[uint32]AttribPointer, len(d.Pointers)),
	}
	for i, p := range d.Pointers {
		dc.Pointers[i] = p
	}
	if b, ok := d.Buffers[d.ArrayBinding]; ok {
		dc.Vertices = slices.Clone(b.Data)
	}
	if b, ok := d.Buffers[d.ElementBinding]; ok {
		dc.Indices = slices.Clone(b.Data)
	}
	if p, ok := d.Programs[d.CurrentProgram]; ok && p.LastMatrix >= 0 {
		dc.Projection = p.Matrices[p.LastMatrix]
	}
	d.Draws = append(d.Draws, dc)
}

// SetFramebuffer sets the pixels ReadPixels returns, bottom row first.
func (d *Device) SetFramebuffer(width, height int, rgba []byte) {
	d.FramebufferWidth, d.FramebufferHeight = width, height
	d.Framebuffer = slices.Clone(rgba)
}

func (d *Device) ReadPixels(x, y, width, height int) []byte {
	d.call("ReadPixels(%d, %d, %d, %d)", x, y, width, height)
	out := make([]byte, width*height*4)
	for row := 0; row < height; row++ {
		sy := y + row
		if sy < 0 || sy >= d.FramebufferHeight {
			continue
		}
		for col := 0; col < width; col++ {
			sx := x + col
			if sx < 0 || sx >= d.FramebufferWidth {
				continue
			}
			src := (sy*d.FramebufferWidth + sx) * 4
			dst := (row*width + col) * 4
			copy(out[dst:dst+4], d.Framebuffer[src:src+4])
		}
	}
	return out
}
