package glf

import (
	"io"
	"os"
)

// DefaultProjectionUniform is the mat4 uniform the renderer uploads the
// projection matrix into when BuildConfig.ProjectionUniform is empty.
const DefaultProjectionUniform = "Projection"

// BuildConfig controls how shaders and programs are built.
type BuildConfig struct {
	// Diagnostics receives compile and link failure logs. Defaults to os.Stderr.
	Diagnostics io.Writer

	// Strict makes an unreadable shader source an error instead of an empty
	// compile, and makes a failed link delete the program and return nil.
	// The zero value keeps the permissive behavior: a handle is always
	// returned and failures are reported through the error and Diagnostics.
	Strict bool

	// ProjectionUniform names the mat4 uniform programs receive the
	// projection matrix through.
	ProjectionUniform string
}

func (c BuildConfig) withDefaults() BuildConfig {
	if c.Diagnostics == nil {
		c.Diagnostics = os.Stderr
	}
	if c.ProjectionUniform == "" {
		c.ProjectionUniform = DefaultProjectionUniform
	}
	return c
}
