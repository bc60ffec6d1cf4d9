package renderer

import (
	"fmt"

	gl "github.com/go-gl/gl/v3.3-core/gl"

	"github.com/codingInSpace/lava-meteor/encoder"
	"github.com/codingInSpace/lava-meteor/transform"
)

// offscreenTarget is an FBO with a color texture and depth
// renderbuffer, used when recording instead of the window framebuffer.
type offscreenTarget struct {
	fbo               uint32
	textureID         uint32
	depthRenderbuffer uint32
	width             int
	height            int
}

func newOffscreenTarget(width, height int) (*offscreenTarget, error) {
	t := &offscreenTarget{width: width, height: height}

	gl.GenFramebuffers(1, &t.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)

	gl.GenTextures(1, &t.textureID)
	gl.BindTexture(gl.TEXTURE_2D, t.textureID)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, t.textureID, 0)

	gl.GenRenderbuffers(1, &t.depthRenderbuffer)
	gl.BindRenderbuffer(gl.RENDERBUFFER, t.depthRenderbuffer)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, int32(width), int32(height))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, t.depthRenderbuffer)

	if gl.CheckFramebufferStatus(gl.FRAMEBUFFER) != gl.FRAMEBUFFER_COMPLETE {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
		return nil, fmt.Errorf("offscreen fbo is not complete")
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	return t, nil
}

// readPixels returns the target's RGBA contents, bottom row first as
// GL delivers them. The encoder flips rows for the video.
func (t *offscreenTarget) readPixels() []byte {
	pixels := make([]byte, t.width*t.height*4)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, t.fbo)
	gl.ReadPixels(0, 0, int32(t.width), int32(t.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	return pixels
}

func (t *offscreenTarget) destroy() {
	gl.DeleteFramebuffers(1, &t.fbo)
	gl.DeleteTextures(1, &t.textureID)
	gl.DeleteRenderbuffers(1, &t.depthRenderbuffer)
}

// Turntable parameters for recorded clips: a slight downward tilt and
// a steady spin, since there is no mouse to drive the rotator.
const (
	recordTiltDegrees = 20.0
	recordSpinDegSec  = 45.0
)

// RunOffscreen renders duration*fps frames at a fixed timestep into an
// offscreen target and streams them to the video encoder.
func (r *Renderer) RunOffscreen() error {
	width := *r.opts.Width
	height := *r.opts.Height

	target, err := newOffscreenTarget(width, height)
	if err != nil {
		return err
	}
	defer target.destroy()

	enc := encoder.Start(width, height, *r.opts.FPS, *r.opts.OutputFile, *r.opts.FFMPEGPath)

	proj := transform.Perspective(float32(width) / float32(height))
	totalFrames := int(*r.opts.Duration * float64(*r.opts.FPS))
	timeStep := 1.0 / float64(*r.opts.FPS)

	for i := 0; i < totalFrames; i++ {
		simTime := float64(i) * timeStep

		r.rot.Phi = recordSpinDegSec * simTime
		r.rot.Theta = recordTiltDegrees

		gl.BindFramebuffer(gl.FRAMEBUFFER, target.fbo)
		gl.Viewport(0, 0, int32(width), int32(height))
		r.drawFrame(simTime, r.modelView(), proj)
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

		enc.Submit(&encoder.Frame{Pixels: target.readPixels(), PTS: int64(i)})
	}

	return enc.Close()
}
