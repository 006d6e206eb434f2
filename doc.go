// Package glf is a minimal sprite layer sitting directly on OpenGL 3.3 core.
//
// It covers three things: building shader programs with their diagnostics
// captured, drawing textured quads with a fixed vertex layout, and stepping
// a sprite's texture window across a sprite sheet. Window creation and
// input are thin pass-throughs to GLFW (see glf/glfwwindow) or to
// [Ebitengine] (see glf/ebiteninput).
//
// # Quick start
//
// The GL context belongs to the thread that created it, so lock the main
// goroutine to its thread before opening a window:
//
//	runtime.LockOSThread()
//	win, _ := glfwwindow.Open(glfwwindow.Options{Title: "demo", Width: 800, Height: 600})
//	dev, _ := gldevice.New()
//	fw, _ := glf.New(dev, win, glf.DefaultAppConfig())
//	defer fw.Close()
//
//	hero, _ := fw.LoadSprite("hero.png", 100, 50)
//	for !win.ShouldClose() {
//		fw.BeginFrame()
//		fw.DrawSprite(hero)
//		fw.EndFrame()
//		win.SwapBuffers()
//		win.PollEvents()
//	}
//
// # Building programs
//
// [Builder] compiles stages and links programs against a [Device]. Compile
// and link logs are written to [BuildConfig].Diagnostics with fixed
// templates and also returned as [*CompileError] and [*LinkError]. By
// default a program handle is returned even when the build failed; set
// [BuildConfig].Strict to get nil instead.
//
// # Drawing
//
// A [Sprite] is four [Vertex] values plus a texture and two buffers.
// [Renderer.Draw] respecifies both buffers on every call, so no GPU state
// survives between frames. The projection comes from [Ortho], [ScreenOrtho]
// or a [Camera].
//
// # Animation
//
// [Animator] slides a sprite's UVs one grid cell at a time; [Animate] does a
// fixed number of steps and [Player] maps elapsed time to frames using
// tweens from [gween].
//
// # Tooling
//
// [ShaderWatcher] relinks programs when their sources change,
// [ScriptedInput] and [TestRunner] replay input from a JSON script, and
// [Screenshots] writes frames to PNG. Logging goes through [log/slog]; see
// [SetLogger].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package glf
