package glf

import (
	"errors"
	"fmt"
)

// ErrInvalidGrid is returned when a sprite-sheet grid has a non-positive
// column or row count.
var ErrInvalidGrid = errors.New("glf: grid dimensions must be positive")

// ErrNilSprite is returned when an animation is bound to a nil sprite.
var ErrNilSprite = errors.New("glf: nil sprite")

// ErrRegionNotFound is returned when an atlas has no region of the
// requested name.
var ErrRegionNotFound = errors.New("glf: atlas region not found")

// CompileError reports a shader stage that failed to compile. The stage
// object still exists when this error is returned alongside a Shader.
type CompileError struct {
	Kind ShaderKind
	Path string
	Log  string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("glf: compile failure in %s shader %q: %s", e.Kind, e.Path, e.Log)
}

// LinkError reports a program that failed to link.
type LinkError struct {
	Log string
}

func (e *LinkError) Error() string {
	return fmt.Sprintf("glf: link failure: %s", e.Log)
}
