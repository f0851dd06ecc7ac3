package video

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os/exec"
	"strings"

	"github.com/ivlev/text2video/internal/system"
)

// Writer принимает кадры в порядке следования; файл становится валидным
// только после явного Close
type Writer interface {
	WriteFrame(img image.Image) error
	Close() error
}

// EncoderForFourCC сопоставляет fourcc контейнера имени кодека ffmpeg.
// Для h264 выбирается аппаратный энкодер, если он доступен.
func EncoderForFourCC(fourcc string) (string, error) {
	switch strings.ToLower(fourcc) {
	case "", "mp4v":
		return "mpeg4", nil
	case "avc1", "h264":
		name, _ := system.GetBestH264Encoder()
		return name, nil
	case "xvid":
		return "libxvid", nil
	case "mjpg":
		return "mjpeg", nil
	default:
		return "", fmt.Errorf("неизвестный fourcc: %q", fourcc)
	}
}

// FFmpegWriter кодирует поток raw RGBA кадров через stdin системного ffmpeg
type FFmpegWriter struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr bytes.Buffer
	closed bool
}

func NewFFmpegWriter(path string, width, height int, frameRate string, encoderName string, quality int) (*FFmpegWriter, error) {
	args := []string{
		"-y",
		"-f", "rawvideo",
		"-pixel_format", "rgba",
		"-video_size", fmt.Sprintf("%dx%d", width, height),
		"-framerate", frameRate,
		"-i", "-",
		"-pix_fmt", "yuv420p",
		"-c:v", encoderName,
	}

	// Качество в зависимости от энкодера
	switch encoderName {
	case "h264_videotoolbox":
		bitrate := quality * 100
		args = append(args, "-b:v", fmt.Sprintf("%dk", bitrate))
	case "h264_nvenc":
		args = append(args, "-cq", fmt.Sprintf("%d", quality))
	case "mpeg4":
		args = append(args, "-q:v", fmt.Sprintf("%d", mpeg4Quality(quality)))
	default: // libx264
		args = append(args, "-crf", fmt.Sprintf("%d", quality), "-preset", "medium")
	}

	args = append(args, path)

	cmd := exec.Command("ffmpeg", args...)

	w := &FFmpegWriter{cmd: cmd}
	cmd.Stderr = &w.stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe error: %w", err)
	}
	w.stdin = stdin

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("ffmpeg start error: %w", err)
	}

	return w, nil
}

// mpeg4Quality переводит CRF-подобную шкалу (1-51, меньше — лучше)
// в qscale mpeg4 (1-31)
func mpeg4Quality(quality int) int {
	q := quality * 31 / 51
	if q < 1 {
		q = 1
	}
	if q > 31 {
		q = 31
	}
	return q
}

func (w *FFmpegWriter) WriteFrame(img image.Image) error {
	return w.writeRawRGBA(w.stdin, img)
}

func (w *FFmpegWriter) writeRawRGBA(dst io.Writer, img image.Image) error {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != bounds.Dx()*4 || rgba.Rect.Min.X != 0 || rgba.Rect.Min.Y != 0 {
		rgba = image.NewRGBA(bounds)
		draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	}
	_, err := dst.Write(rgba.Pix)
	return err
}

// Close завершает поток и дожидается финализации файла ffmpeg-ом.
// Вызывается на любом пути выхода, включая аварийный.
func (w *FFmpegWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	w.stdin.Close()
	if err := w.cmd.Wait(); err != nil {
		return fmt.Errorf("ffmpeg wait error: %v, output: %s", err, w.stderr.String())
	}
	return nil
}
