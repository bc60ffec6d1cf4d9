package main

import (
	"flag"
	"log"
	"runtime"

	"github.com/codingInSpace/lava-meteor/glfwcontext"
	"github.com/codingInSpace/lava-meteor/options"
	"github.com/codingInSpace/lava-meteor/renderer"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	opts := &options.Options{
		TexturePath:    flag.String("texture", "textures/earth2048.tga", "Texture image file (TGA, PNG or JPEG)"),
		MeshPath:       flag.String("mesh", "", "OBJ mesh file (default: a procedural sphere)"),
		VertexPath:     flag.String("vert", "shaders/vertex.glsl", "Vertex shader source file"),
		FragmentPath:   flag.String("frag", "shaders/fragment.glsl", "Fragment shader source file"),
		Width:          flag.Int("width", 960, "Window width"),
		Height:         flag.Int("height", 540, "Window height"),
		VSync:          flag.Bool("vsync", false, "Wait for vertical sync between frames"),
		SphereRadius:   flag.Float64("radius", 1.0, "Procedural sphere radius"),
		SphereSegments: flag.Int("segments", 50, "Procedural sphere latitude segments"),

		Record:     flag.Bool("record", false, "Render offscreen to a video file instead of a window"),
		Duration:   flag.Float64("duration", 10.0, "Duration to record in seconds"),
		FPS:        flag.Int("fps", 60, "Frames per second for recording"),
		OutputFile: flag.String("output", "output.mp4", "Output file name for recording"),
		FFMPEGPath: flag.String("ffmpeg", "", "Path to ffmpeg executable"),
	}
	flag.Parse()

	if err := glfwcontext.InitGraphics(); err != nil {
		log.Fatalf("Failed to initialise GLFW: %v", err)
	}
	defer glfwcontext.TerminateGraphics()

	r, err := renderer.New(opts)
	if err != nil {
		log.Fatalf("Failed to create renderer: %v", err)
	}
	defer r.Shutdown()

	if err := r.InitScene(); err != nil {
		log.Fatalf("Failed to initialise scene: %v", err)
	}

	if *opts.Record {
		log.Println("Starting offscreen render loop...")
		if err := r.RunOffscreen(); err != nil {
			log.Fatalf("Offscreen rendering failed: %v", err)
		}
		log.Printf("Successfully rendered to %s", *opts.OutputFile)
	} else {
		log.Println("Starting interactive render loop...")
		r.Run()
	}
}
