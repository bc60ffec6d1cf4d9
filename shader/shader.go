// Package shader builds GL shader programs from GLSL source files and
// tracks the uniform locations the render loop updates each frame.
package shader

import (
	"fmt"
	"os"
	"strings"

	gl "github.com/go-gl/gl/v3.3-core/gl"
)

// Program is a linked shader program plus the locations of the
// uniforms the host sets. A location of -1 means the shader does not
// declare that uniform and the upload is skipped.
type Program struct {
	ID uint32

	LocMV   int32
	LocP    int32
	LocTime int32
	LocTex  int32

	vertexPath   string
	fragmentPath string
}

// Load compiles and links a program from the two source files and
// looks up the uniform contract (MV, P, time, tex).
func Load(vertexPath, fragmentPath string) (*Program, error) {
	vsrc, err := os.ReadFile(vertexPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read vertex shader: %w", err)
	}
	fsrc, err := os.ReadFile(fragmentPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read fragment shader: %w", err)
	}

	id, err := newProgram(string(vsrc), string(fsrc))
	if err != nil {
		return nil, err
	}

	p := &Program{
		ID:           id,
		vertexPath:   vertexPath,
		fragmentPath: fragmentPath,
	}
	p.LocMV = gl.GetUniformLocation(id, gl.Str("MV\x00"))
	p.LocP = gl.GetUniformLocation(id, gl.Str("P\x00"))
	p.LocTime = gl.GetUniformLocation(id, gl.Str("time\x00"))
	p.LocTex = gl.GetUniformLocation(id, gl.Str("tex\x00"))
	return p, nil
}

// Reload builds a fresh program from the same source files. The
// receiver is left untouched, so a failed reload keeps the previous
// program usable.
func (p *Program) Reload() (*Program, error) {
	return Load(p.vertexPath, p.fragmentPath)
}

func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

func (p *Program) Destroy() {
	gl.DeleteProgram(p.ID)
	p.ID = 0
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", logText)
	}

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %v", logText)
	}
	return shader, nil
}
