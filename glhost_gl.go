//go:build gl

package main

import (
	"fmt"
	"runtime"

	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// GL calls must come from the thread that owns the context.
func init() { runtime.LockOSThread() }

// glHost owns a GLFW window and its GL 4.3 core context.
type glHost struct {
	window *glfw.Window
}

// newGLHost creates a window with a current GL 4.3 core context. A hidden
// window serves as an offscreen context for headless compute.
func newGLHost(visible bool, width, height int, title string) (*glHost, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initializing GLFW: %w", err)
	}
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	if !visible {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}
	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("creating window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)
	if err := gl.Init(); err != nil {
		window.Destroy()
		glfw.Terminate()
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	return &glHost{window: window}, nil
}

// Close destroys the window and shuts GLFW down.
func (h *glHost) Close() {
	if h.window != nil {
		h.window.Destroy()
		h.window = nil
	}
	glfw.Terminate()
}
