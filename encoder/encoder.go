// Package encoder streams raw RGBA frames into FFmpeg to produce a
// video file.
package encoder

import (
	"fmt"
	"io"
	"log"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Frame is one rendered frame, bottom row first as read back from GL.
type Frame struct {
	Pixels []byte
	PTS    int64
}

const frameQueueDepth = 3

// Encoder consumes frames from a channel and feeds them to an FFmpeg
// process over stdin.
type Encoder struct {
	frames chan *Frame
	done   chan error
}

// Start launches FFmpeg and the goroutine that pipes frames into it.
// The vflip filter corrects GL's bottom-up row order.
func Start(width, height, fps int, outputFile, ffmpegPath string) *Encoder {
	pipeReader, pipeWriter := io.Pipe()

	inputArgs := ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", width, height),
		"framerate": fps,
	}
	outputArgs := ffmpeg.KwArgs{
		"c:v":     "libx264",
		"pix_fmt": "yuv420p",
		"vf":      "vflip",
	}

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(outputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()
	if ffmpegPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(ffmpegPath)
	}

	e := &Encoder{
		frames: make(chan *Frame, frameQueueDepth),
		done:   make(chan error, 1),
	}

	errc := make(chan error, 1)
	go func() {
		errc <- ffmpegCmd.Run()
	}()

	go func() {
		var writeErr error
		for frame := range e.frames {
			if writeErr != nil {
				continue // keep draining so Submit never blocks
			}
			if _, err := pipeWriter.Write(frame.Pixels); err != nil {
				log.Printf("Error writing frame %d to FFmpeg: %v", frame.PTS, err)
				writeErr = err
			}
		}
		pipeWriter.Close()
		err := <-errc
		if writeErr != nil && err == nil {
			err = writeErr
		}
		e.done <- err
	}()

	return e
}

// Submit queues a frame for encoding, blocking when the queue is full.
func (e *Encoder) Submit(f *Frame) {
	e.frames <- f
}

// Close signals the end of the stream and waits for FFmpeg to finish.
func (e *Encoder) Close() error {
	close(e.frames)
	return <-e.done
}
