// Package gldevice implements glf.Device on OpenGL 3.3 core through go-gl.
//
// A Device must be created and used on the thread that owns the current GL
// context; callers lock that goroutine with runtime.LockOSThread.
package gldevice

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/phanxgames/glf"
)

// Device issues GL calls against the current context. The core profile
// requires a bound vertex array object for attribute state, so one is
// created and bound for the Device's lifetime.
type Device struct {
	vao uint32
}

var _ glf.Device = (*Device)(nil)

// New loads the GL function pointers for the current context and binds a
// vertex array object.
func New() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gldevice: init: %w", err)
	}
	d := &Device{}
	gl.GenVertexArrays(1, &d.vao)
	gl.BindVertexArray(d.vao)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	glf.Logger().Info("gldevice: context ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))
	return d, nil
}

// Close deletes the vertex array object.
func (d *Device) Close() {
	if d.vao != 0 {
		gl.BindVertexArray(0)
		gl.DeleteVertexArrays(1, &d.vao)
		d.vao = 0
	}
}

// Viewport sets the GL viewport, for example after a framebuffer resize.
func (d *Device) Viewport(x, y, width, height int) {
	gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

// Clear clears the color buffer to c.
func (d *Device) Clear(c glf.Color) {
	gl.ClearColor(c.R, c.G, c.B, c.A)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// EnableAlphaBlend turns on straight-alpha blending for sprite edges.
func (d *Device) EnableAlphaBlend() {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
}

func (d *Device) CreateShader(kind glf.ShaderKind) uint32 {
	return gl.CreateShader(shaderType(kind))
}

func (d *Device) ShaderSource(shader uint32, src string) {
	csrc, free := gl.Strs(src + "\x00")
	defer free()
	gl.ShaderSource(shader, 1, csrc, nil)
}

func (d *Device) CompileShader(shader uint32) { gl.CompileShader(shader) }

func (d *Device) ShaderCompiled(shader uint32) bool {
	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

func (d *Device) ShaderInfoLog(shader uint32) string {
	var n int32
	gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n+1)
	gl.GetShaderInfoLog(shader, n, nil, &buf[0])
	return trimLog(buf)
}

func (d *Device) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (d *Device) CreateProgram() uint32 { return gl.CreateProgram() }

func (d *Device) AttachShader(program, shader uint32) { gl.AttachShader(program, shader) }

func (d *Device) DetachShader(program, shader uint32) { gl.DetachShader(program, shader) }

func (d *Device) LinkProgram(program uint32) { gl.LinkProgram(program) }

func (d *Device) ProgramLinked(program uint32) bool {
	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	return status == gl.TRUE
}

func (d *Device) ProgramInfoLog(program uint32) string {
	var n int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n+1)
	gl.GetProgramInfoLog(program, n, nil, &buf[0])
	return trimLog(buf)
}

func (d *Device) UseProgram(program uint32) { gl.UseProgram(program) }

func (d *Device) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (d *Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) UniformMatrix4(location int32, m *mgl32.Mat4) {
	if location < 0 {
		return
	}
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (d *Device) GenBuffer() uint32 {
	var b uint32
	gl.GenBuffers(1, &b)
	return b
}

func (d *Device) BindBuffer(target glf.BufferTarget, buffer uint32) {
	gl.BindBuffer(bufferTarget(target), buffer)
}

func (d *Device) BufferData(target glf.BufferTarget, data []byte, usage glf.BufferUsage) {
	var ptr unsafe.Pointer
	if len(data) > 0 {
		ptr = gl.Ptr(data)
	}
	gl.BufferData(bufferTarget(target), len(data), ptr, bufferUsage(usage))
}

func (d *Device) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (d *Device) GenTexture() uint32 {
	var t uint32
	gl.GenTextures(1, &t)
	return t
}

func (d *Device) ActiveTexture(unit uint32) { gl.ActiveTexture(gl.TEXTURE0 + unit) }

func (d *Device) BindTexture(texture uint32) { gl.BindTexture(gl.TEXTURE_2D, texture) }

// TexImage2D uploads tightly packed RGBA pixels into the bound texture with
// linear filtering and edge clamping.
func (d *Device) TexImage2D(width, height int, rgba []byte) {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	var ptr unsafe.Pointer
	if len(rgba) > 0 {
		ptr = gl.Ptr(rgba)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, ptr)
}

func (d *Device) DeleteTexture(texture uint32) { gl.DeleteTextures(1, &texture) }

func (d *Device) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (d *Device) DisableVertexAttribArray(index uint32) { gl.DisableVertexAttribArray(index) }

func (d *Device) VertexAttribPointer(index uint32, size int32, typ glf.AttribType, normalized bool, stride int32, offset uintptr) {
	gl.VertexAttribPointerWithOffset(index, size, attribType(typ), normalized, stride, offset)
}

func (d *Device) DrawElements(mode glf.DrawMode, count int32, typ glf.IndexType, offset uintptr) {
	gl.DrawElementsWithOffset(drawMode(mode), count, indexType(typ), offset)
}

func (d *Device) ReadPixels(x, y, width, height int) []byte {
	out := make([]byte, 4*width*height)
	if len(out) == 0 {
		return out
	}
	gl.ReadPixels(int32(x), int32(y), int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(out))
	return out
}

// trimLog converts a NUL-terminated info log to a string.
func trimLog(buf []byte) string {
	return strings.TrimRight(string(buf), "\x00")
}

func shaderType(k glf.ShaderKind) uint32 {
	if k == glf.FragmentShader {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

func bufferTarget(t glf.BufferTarget) uint32 {
	if t == glf.ElementArrayBuffer {
		return gl.ELEMENT_ARRAY_BUFFER
	}
	return gl.ARRAY_BUFFER
}

func bufferUsage(u glf.BufferUsage) uint32 {
	switch u {
	case glf.DynamicDraw:
		return gl.DYNAMIC_DRAW
	case glf.StreamDraw:
		return gl.STREAM_DRAW
	default:
		return gl.STATIC_DRAW
	}
}

func attribType(t glf.AttribType) uint32 {
	if t == glf.Uint8 {
		return gl.UNSIGNED_BYTE
	}
	return gl.FLOAT
}

func indexType(t glf.IndexType) uint32 {
	switch t {
	case glf.IndexUint16:
		return gl.UNSIGNED_SHORT
	case glf.IndexUint32:
		return gl.UNSIGNED_INT
	default:
		return gl.UNSIGNED_BYTE
	}
}

func drawMode(m glf.DrawMode) uint32 {
	switch m {
	case glf.TriangleStrip:
		return gl.TRIANGLE_STRIP
	case glf.Triangles:
		return gl.TRIANGLES
	default:
		return gl.TRIANGLE_FAN
	}
}
