//go:build gl

package glwave

import (
	"strings"

	"github.com/go-gl/gl/v4.3-core/gl"

	"wavesurface/internal/wave"
)

func compileShader(name string, kind uint32, source string) (uint32, error) {
	shader := gl.CreateShader(kind)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, &wave.KernelError{Kernel: name, Log: strings.TrimRight(log, "\x00")}
	}
	return shader, nil
}

// linkProgram links the shaders into a program and deletes them.
func linkProgram(name string, shaders ...uint32) (uint32, error) {
	program := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)
	for _, s := range shaders {
		gl.DeleteShader(s)
	}

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, &wave.KernelError{Kernel: name, Log: strings.TrimRight(log, "\x00")}
	}
	return program, nil
}

func compileCompute(name, source string, groupSize int) (uint32, error) {
	shader, err := compileShader(name, gl.COMPUTE_SHADER, WithGroupSize(source, groupSize))
	if err != nil {
		return 0, err
	}
	return linkProgram(name, shader)
}

func uniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
