// Package renderer owns the scene (mesh, texture, shader program) and
// drives the per-frame loop.
package renderer

import (
	"fmt"
	"log"
	"math"

	gl "github.com/go-gl/gl/v3.3-core/gl"
	glfw "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/codingInSpace/lava-meteor/glfwcontext"
	"github.com/codingInSpace/lava-meteor/mesh"
	"github.com/codingInSpace/lava-meteor/options"
	"github.com/codingInSpace/lava-meteor/rotator"
	"github.com/codingInSpace/lava-meteor/shader"
	"github.com/codingInSpace/lava-meteor/texture"
	"github.com/codingInSpace/lava-meteor/transform"
)

// textureUnit is the unit the mesh texture is bound to; the tex
// uniform receives this index.
const textureUnit = 0

type Renderer struct {
	opts    *options.Options
	context *glfwcontext.Context

	shape   *mesh.Mesh
	tex     *texture.Texture
	program *shader.Program
	rot     rotator.Rotator

	reloadRequested bool
	wireframe       bool
}

// New opens the window, makes the GL context current and initializes
// the GL bindings.
func New(opts *options.Options) (*Renderer, error) {
	ctx, err := glfwcontext.New(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize glfw context: %w", err)
	}

	if err := gl.Init(); err != nil {
		ctx.Shutdown()
		return nil, fmt.Errorf("failed to initialize OpenGL bindings: %w", err)
	}

	log.Printf("GL vendor:   %s", gl.GoStr(gl.GetString(gl.VENDOR)))
	log.Printf("GL renderer: %s", gl.GoStr(gl.GetString(gl.RENDERER)))
	log.Printf("GL version:  %s", gl.GoStr(gl.GetString(gl.VERSION)))

	return &Renderer{opts: opts, context: ctx}, nil
}

// InitScene loads the mesh, texture and shader program and registers
// the runtime hotkeys.
func (r *Renderer) InitScene() error {
	if *r.opts.MeshPath != "" {
		shape, err := mesh.LoadOBJ(*r.opts.MeshPath)
		if err != nil {
			return err
		}
		r.shape = shape
	} else {
		r.shape = mesh.NewSphere(*r.opts.SphereRadius, *r.opts.SphereSegments)
	}
	r.shape.LogInfo()
	r.shape.Upload()

	tex, err := texture.Load(*r.opts.TexturePath)
	if err != nil {
		return err
	}
	r.tex = tex

	program, err := shader.Load(*r.opts.VertexPath, *r.opts.FragmentPath)
	if err != nil {
		return err
	}
	r.program = program

	// Space reloads the shader pair, W toggles wireframe. The flags
	// are picked up between frames.
	r.context.RegisterKeyCallback(glfw.KeySpace, func() {
		r.reloadRequested = true
	})
	r.context.RegisterKeyCallback(glfw.KeyW, func() {
		r.wireframe = !r.wireframe
	})

	return nil
}

// modelView composes the frame's model-view matrix: rotate about Y by
// the azimuth, then about X by the elevation, then push the object
// back to z = -5 in front of the camera.
func (r *Renderer) modelView() mgl32.Mat4 {
	ry := transform.RotateY(float32(r.rot.Phi * math.Pi / 180))
	rx := transform.RotateX(float32(r.rot.Theta * math.Pi / 180))
	return transform.Mul(transform.Translate(0, 0, -5), transform.Mul(rx, ry))
}

// drawFrame clears the bound framebuffer and renders the mesh once.
func (r *Renderer) drawFrame(time float64, mv, proj mgl32.Mat4) {
	gl.ClearColor(0.3, 0.3, 0.3, 0.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.program.Use()
	if r.program.LocTex != -1 {
		gl.Uniform1i(r.program.LocTex, textureUnit)
	}
	if r.program.LocTime != -1 {
		gl.Uniform1f(r.program.LocTime, float32(time))
	}
	if r.program.LocMV != -1 {
		gl.UniformMatrix4fv(r.program.LocMV, 1, false, &mv[0])
	}
	if r.program.LocP != -1 {
		gl.UniformMatrix4fv(r.program.LocP, 1, false, &proj[0])
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	if r.wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	r.tex.Bind(textureUnit)
	r.shape.Draw()

	gl.UseProgram(0)
}

// Run drives the interactive render loop until the window closes.
func (r *Renderer) Run() {
	for !r.context.ShouldClose() {
		fbWidth, fbHeight := r.context.GetFramebufferSize()
		if fbHeight == 0 {
			fbHeight = 1
		}
		gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
		proj := transform.Perspective(float32(fbWidth) / float32(fbHeight))

		r.rot.Poll(r.context.Window())

		r.drawFrame(r.context.Time(), r.modelView(), proj)

		r.context.EndFrame()
		r.context.UpdateFPS()

		if r.reloadRequested {
			r.reloadRequested = false
			r.reloadShader()
		}
	}
}

// reloadShader rebuilds the program from its source files. On failure
// the current program stays bound and the error goes to the console.
func (r *Renderer) reloadShader() {
	next, err := r.program.Reload()
	if err != nil {
		log.Printf("Shader reload failed, keeping previous program: %v", err)
		return
	}
	r.program.Destroy()
	r.program = next
	log.Printf("Shader program reloaded")
}

// Shutdown releases the scene's GL objects and the window.
func (r *Renderer) Shutdown() {
	if r.program != nil {
		r.program.Destroy()
	}
	if r.tex != nil {
		r.tex.Destroy()
	}
	if r.shape != nil {
		r.shape.Destroy()
	}
	r.context.Shutdown()
}
