package source

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os/exec"

	"github.com/ivlev/text2video/internal/system"
)

// Source выдает кадры видео строго последовательно. Поток конечен и
// перезапускается только повторным открытием источника.
type Source interface {
	// ReadFrame возвращает следующий кадр или io.EOF в конце потока.
	// Буфер кадра берется из пула; после использования его нужно вернуть
	// через system.PutFrame.
	ReadFrame() (*image.RGBA, error)
	Bounds() image.Rectangle
	Close() error
}

// FFmpegSource декодирует видео через ffmpeg в raw RGBA на stdout
type FFmpegSource struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr bytes.Buffer
	rect   image.Rectangle
	buf    []byte
	done   bool
}

func NewFFmpegSource(path string, width, height int) (*FFmpegSource, error) {
	cmd := exec.Command("ffmpeg",
		"-v", "error",
		"-i", path,
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"pipe:1",
	)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe error: %w", err)
	}

	s := &FFmpegSource{
		cmd:    cmd,
		stdout: stdout,
		rect:   image.Rect(0, 0, width, height),
		buf:    make([]byte, width*height*4),
	}
	cmd.Stderr = &s.stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}

	return s, nil
}

func (s *FFmpegSource) Bounds() image.Rectangle {
	return s.rect
}

func (s *FFmpegSource) ReadFrame() (*image.RGBA, error) {
	if s.done {
		return nil, io.EOF
	}

	// Конец потока и ошибка декодера равнозначны: кадров больше нет
	if _, err := io.ReadFull(s.stdout, s.buf); err != nil {
		s.done = true
		return nil, io.EOF
	}

	frame := system.GetFrame(s.rect)
	copy(frame.Pix, s.buf)
	return frame, nil
}

func (s *FFmpegSource) Close() error {
	s.stdout.Close()
	if s.cmd.Process != nil {
		s.cmd.Process.Kill()
	}
	s.cmd.Wait()
	return nil
}
