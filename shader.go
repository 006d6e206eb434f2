package glf

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Shader is a single compiled shader stage. It owns its GPU object until
// Delete is called; stages built by LinkProgram are deleted automatically.
type Shader struct {
	dev      Device
	handle   uint32
	kind     ShaderKind
	path     string
	source   string
	log      string
	compiled bool
}

// Handle returns the GPU handle, or 0 once deleted.
func (sh *Shader) Handle() uint32 { return sh.handle }

// Kind returns the stage kind.
func (sh *Shader) Kind() ShaderKind { return sh.kind }

// Path returns the file the source was read from (empty for in-memory source).
func (sh *Shader) Path() string { return sh.path }

// Source returns the source text submitted to the driver.
func (sh *Shader) Source() string { return sh.source }

// Log returns the compile log captured on failure.
func (sh *Shader) Log() string { return sh.log }

// Compiled reports whether the driver accepted the source.
func (sh *Shader) Compiled() bool { return sh.compiled }

// Delete releases the GPU object. Safe to call more than once.
func (sh *Shader) Delete() {
	if sh.handle == 0 {
		return
	}
	sh.dev.DeleteShader(sh.handle)
	sh.handle = 0
}

// ReadShaderSource reads a shader file line by line, prefixing every line
// with a newline. A missing file returns an empty string and the open error.
func ReadShaderSource(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var b strings.Builder
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		b.WriteByte('\n')
		b.WriteString(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return b.String(), fmt.Errorf("read %s: %w", path, err)
	}
	return b.String(), nil
}

// Builder compiles shader stages and links programs against one Device.
type Builder struct {
	dev Device
	cfg BuildConfig
}

// NewBuilder returns a Builder for dev. Zero-valued config fields take
// their defaults.
func NewBuilder(dev Device, cfg BuildConfig) *Builder {
	return &Builder{dev: dev, cfg: cfg.withDefaults()}
}

// Config returns the effective configuration.
func (b *Builder) Config() BuildConfig { return b.cfg }

// CompileShader compiles the stage stored at path.
//
// On a compile failure the log is written to the diagnostics writer and the
// Shader is returned together with a *CompileError; its handle stays valid
// and must still be deleted. An unreadable file compiles as empty source
// unless the builder is strict, in which case no GPU object is created.
func (b *Builder) CompileShader(kind ShaderKind, path string) (*Shader, error) {
	src, err := ReadShaderSource(path)
	if err != nil {
		if b.cfg.Strict {
			return nil, fmt.Errorf("glf: read %s shader: %w", kind, err)
		}
		Logger().Warn("glf: shader source unreadable, compiling empty source",
			"kind", kind.String(), "path", path, "err", err)
	}
	return b.compile(kind, path, src)
}

// CompileShaderSource compiles an in-memory stage.
func (b *Builder) CompileShaderSource(kind ShaderKind, src string) (*Shader, error) {
	return b.compile(kind, "", src)
}

func (b *Builder) compile(kind ShaderKind, path, src string) (*Shader, error) {
	handle := b.dev.CreateShader(kind)
	b.dev.ShaderSource(handle, src)
	b.dev.CompileShader(handle)

	sh := &Shader{dev: b.dev, handle: handle, kind: kind, path: path, source: src}
	if !b.dev.ShaderCompiled(handle) {
		sh.log = b.dev.ShaderInfoLog(handle)
		_, _ = fmt.Fprintf(b.cfg.Diagnostics, "Compile failure in %s shader:\n%s\n", kind, sh.log)
		return sh, &CompileError{Kind: kind, Path: path, Log: sh.log}
	}
	sh.compiled = true
	Logger().Debug("glf: shader compiled", "kind", kind.String(), "path", path, "handle", handle)
	return sh, nil
}

// CompileShader compiles the stage at path with the default BuildConfig.
func CompileShader(dev Device, kind ShaderKind, path string) (*Shader, error) {
	return NewBuilder(dev, BuildConfig{}).CompileShader(kind, path)
}
