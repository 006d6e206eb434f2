// Package glfwwindow opens a GLFW window with an OpenGL 3.3 core context
// and answers glf.InputQuery from its polled state.
//
// GLFW must only be used from the main thread: call runtime.LockOSThread
// in an init function of package main.
package glfwwindow

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/phanxgames/glf"
)

// Options describes the window to open.
type Options struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
	// VSync waits for one vertical blank per SwapBuffers.
	VSync bool
}

func (o Options) withDefaults() Options {
	if o.Title == "" {
		o.Title = "glf"
	}
	if o.Width <= 0 {
		o.Width = 800
	}
	if o.Height <= 0 {
		o.Height = 600
	}
	return o
}

// OptionsFromConfig maps the window section of an AppConfig.
func OptionsFromConfig(c glf.WindowConfig) Options {
	return Options{
		Title:     c.Title,
		Width:     c.Width,
		Height:    c.Height,
		Resizable: c.Resizable,
		VSync:     c.VSync,
	}
}

// Window owns a GLFW window and its current GL context.
type Window struct {
	win *glfw.Window

	// OnResize, if set, is called from PollEvents with the new framebuffer size.
	OnResize func(width, height int)
}

var _ glf.InputQuery = (*Window)(nil)

// Open initializes GLFW, creates the window and makes its context current.
func Open(opts Options) (*Window, error) {
	opts = opts.withDefaults()
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfwwindow: init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if opts.Resizable {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.False)
	}

	win, err := glfw.CreateWindow(opts.Width, opts.Height, opts.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfwwindow: create window: %w", err)
	}
	win.MakeContextCurrent()
	if opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	w := &Window{win: win}
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		if w.OnResize != nil {
			w.OnResize(width, height)
		}
	})
	glf.Logger().Info("glfwwindow: opened", "title", opts.Title, "width", opts.Width, "height", opts.Height)
	return w, nil
}

// IsKeyPressed reports whether key is in any state other than released,
// so a repeating key counts as pressed.
func (w *Window) IsKeyPressed(key glf.Key) bool {
	if key == glf.KeyUnknown {
		return false
	}
	return w.win.GetKey(glfw.Key(key)) != glfw.Release
}

// IsMousePressed reports whether button is held.
func (w *Window) IsMousePressed(button glf.MouseButton) bool {
	return w.win.GetMouseButton(glfw.MouseButton(button)) != glfw.Release
}

// CursorPos returns the cursor in window coordinates.
func (w *Window) CursorPos() (x, y float64) {
	return w.win.GetCursorPos()
}

// ShouldClose reports whether the user asked to close the window.
func (w *Window) ShouldClose() bool { return w.win.ShouldClose() }

// SetShouldClose flags the window for closing.
func (w *Window) SetShouldClose(v bool) { w.win.SetShouldClose(v) }

// SwapBuffers presents the back buffer.
func (w *Window) SwapBuffers() { w.win.SwapBuffers() }

// PollEvents processes pending window events.
func (w *Window) PollEvents() { glfw.PollEvents() }

// Size returns the window size in screen coordinates.
func (w *Window) Size() (width, height int) { return w.win.GetSize() }

// FramebufferSize returns the drawable size in pixels.
func (w *Window) FramebufferSize() (width, height int) { return w.win.GetFramebufferSize() }

// Time returns the seconds since GLFW was initialized.
func (w *Window) Time() float64 { return glfw.GetTime() }

// Close destroys the window and terminates GLFW.
func (w *Window) Close() {
	if w.win == nil {
		return
	}
	w.win.Destroy()
	w.win = nil
	glfw.Terminate()
}
