package glfwcontext

import (
	"fmt"
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"

	options "github.com/codingInSpace/lava-meteor/options"
)

const windowTitle = "Hello GLSL"

// Context wraps the GLFW window and tracks per-window input callbacks
// and the frame counter used for the FPS title display.
type Context struct {
	window       *glfw.Window
	keyCallbacks map[glfw.Key]func()

	frames    int
	lastStamp float64
	fps       float64
}

// New creates an OpenGL 3.3 core-profile window and returns a Context
// with the GL context made current on the calling thread.
func New(opts *options.Options) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	// Recording renders to an offscreen target, so keep the window hidden.
	if *opts.Record {
		glfw.WindowHint(glfw.Visible, glfw.False)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	}

	win, err := glfw.CreateWindow(*opts.Width, *opts.Height, windowTitle, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open GLFW window: %w", err)
	}
	win.MakeContextCurrent()

	// Swap interval 0 lets the loop free-run; 1 blocks on vertical sync.
	if *opts.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	c := &Context{
		window:       win,
		keyCallbacks: make(map[glfw.Key]func()),
		lastStamp:    glfw.GetTime(),
	}
	win.SetKeyCallback(c.glfwKeyCallback)

	return c, nil
}

// RegisterKeyCallback registers a function to be called when key is pressed.
func (c *Context) RegisterKeyCallback(key glfw.Key, f func()) {
	c.keyCallbacks[key] = f
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}

	if action == glfw.Press {
		if callback, ok := c.keyCallbacks[key]; ok {
			callback()
		}
	}
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

// EndFrame presents the rendered image and processes pending window events.
func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

// Window returns the underlying *glfw.Window for cursor and button queries.
func (c *Context) Window() *glfw.Window {
	return c.window
}

// UpdateFPS counts the finished frame and refreshes the window title
// about once per second. Returns the last measured frames per second.
func (c *Context) UpdateFPS() float64 {
	c.frames++
	now := glfw.GetTime()
	if elapsed := now - c.lastStamp; elapsed >= 1.0 {
		c.fps = float64(c.frames) / elapsed
		c.window.SetTitle(fmt.Sprintf("%s (%.1f FPS)", windowTitle, c.fps))
		c.frames = 0
		c.lastStamp = now
	}
	return c.fps
}

// Shutdown destroys the window.
func (c *Context) Shutdown() {
	c.window.Destroy()
}

// InitGraphics initializes GLFW. Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down GLFW. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}
