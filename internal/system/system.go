package system

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

func InitResourceLimits() {
	var rLimit syscall.Rlimit
	err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось получить лимит файлов: %v", err)
		return
	}

	rLimit.Cur = 2048
	if rLimit.Cur > rLimit.Max {
		rLimit.Cur = rLimit.Max
	}

	err = syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLimit)
	if err != nil {
		log.Printf("[!] Не удалось установить лимит файлов: %v", err)
	} else {
		fmt.Printf("[*] Системный лимит открытых файлов увеличен до %d\n", rLimit.Cur)
	}
}

// FindLatestVideo ищет самый свежий видеофайл в указанной директории
func FindLatestVideo(dir string) (string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	extensions := []string{".mp4", ".mov", ".mkv", ".avi", ".webm"}
	var latestFile string
	var latestTime time.Time

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		isVideo := false
		for _, ext := range extensions {
			if strings.HasSuffix(strings.ToLower(f.Name()), ext) {
				isVideo = true
				break
			}
		}
		if isVideo {
			info, err := f.Info()
			if err != nil {
				continue
			}
			if info.ModTime().After(latestTime) {
				latestTime = info.ModTime()
				latestFile = filepath.Join(dir, f.Name())
			}
		}
	}

	if latestFile == "" {
		return "", fmt.Errorf("в папке %s не найдено видеофайлов", dir)
	}

	return latestFile, nil
}

// ListVideos возвращает все видеофайлы директории в алфавитном порядке
func ListVideos(dir string) ([]string, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	extensions := []string{".mp4", ".mov", ".mkv", ".avi", ".webm"}
	var videos []string

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		for _, ext := range extensions {
			if strings.HasSuffix(strings.ToLower(f.Name()), ext) {
				videos = append(videos, filepath.Join(dir, f.Name()))
				break
			}
		}
	}

	if len(videos) == 0 {
		return nil, fmt.Errorf("в папке %s не найдено видеофайлов", dir)
	}

	return videos, nil
}

// VideoInfo — метаданные видеопотока по данным контейнера.
// FrameCount берется из метаданных и может расходиться с фактическим
// количеством декодированных кадров.
type VideoInfo struct {
	Width      int
	Height     int
	FrameRate  string // рациональное число для ffmpeg, напр. "30000/1001"
	FPS        float64
	FrameCount int
}

// ProbeVideo получает параметры первого видеопотока через ffprobe
func ProbeVideo(path string) (VideoInfo, error) {
	var info VideoInfo

	cmd := exec.Command("ffprobe", "-v", "error", "-select_streams", "v:0",
		"-show_entries", "stream=width,height,r_frame_rate,nb_frames",
		"-of", "csv=p=0", path)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return info, fmt.Errorf("ffprobe error: %v, output: %s", err, string(out))
	}

	fields := strings.Split(strings.TrimSpace(string(out)), ",")
	if len(fields) < 4 {
		return info, fmt.Errorf("неожиданный вывод ffprobe: %q", string(out))
	}

	info.Width, err = strconv.Atoi(fields[0])
	if err != nil {
		return info, fmt.Errorf("ширина кадра: %w", err)
	}
	info.Height, err = strconv.Atoi(fields[1])
	if err != nil {
		return info, fmt.Errorf("высота кадра: %w", err)
	}

	info.FrameRate = fields[2]
	info.FPS, err = ParseFrameRate(info.FrameRate)
	if err != nil {
		return info, err
	}

	// Контейнер может не хранить nb_frames (например, MKV) — тогда
	// оцениваем по длительности и частоте кадров.
	if n, err := strconv.Atoi(fields[3]); err == nil && n > 0 {
		info.FrameCount = n
	} else {
		dur, err := probeDuration(path)
		if err != nil {
			return info, fmt.Errorf("не удалось определить количество кадров: %w", err)
		}
		info.FrameCount = int(dur * info.FPS)
	}

	return info, nil
}

func probeDuration(path string) (float64, error) {
	cmd := exec.Command("ffprobe", "-v", "error", "-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1", path)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return 0, err
	}

	var duration float64
	_, err = fmt.Sscanf(strings.TrimSpace(string(out)), "%f", &duration)
	if err != nil {
		return 0, err
	}

	return duration, nil
}

// ParseFrameRate разбирает частоту кадров в виде рационального числа
// ("30000/1001") или простого десятичного значения ("25")
func ParseFrameRate(rate string) (float64, error) {
	if num, den, ok := strings.Cut(rate, "/"); ok {
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, fmt.Errorf("частота кадров %q: %w", rate, err)
		}
		d, err := strconv.ParseFloat(den, 64)
		if err != nil || d == 0 {
			return 0, fmt.Errorf("частота кадров %q: некорректный знаменатель", rate)
		}
		return n / d, nil
	}

	f, err := strconv.ParseFloat(rate, 64)
	if err != nil {
		return 0, fmt.Errorf("частота кадров %q: %w", rate, err)
	}
	return f, nil
}

func GetBestH264Encoder() (string, string) {
	// Приоритеты:
	// 1. MacOS (VideoToolbox)
	// 2. NVIDIA (NVENC)
	// 3. Software (libx264)

	encoders := []struct {
		name string
		args string
	}{
		{"h264_videotoolbox", ""},
		{"h264_nvenc", ""},
	}

	for _, enc := range encoders {
		cmd := exec.Command("ffmpeg", "-encoders")
		out, err := cmd.CombinedOutput()
		if err == nil && strings.Contains(string(out), enc.name) {
			return enc.name, enc.args
		}
	}

	return "libx264", ""
}

// DefaultWorkers возвращает количество логических ядер для пакетного режима
func DefaultWorkers() int {
	count, err := cpu.Counts(true)
	if err != nil || count < 1 {
		return runtime.NumCPU()
	}
	return count
}

// AvailableMemory возвращает объем доступной памяти в байтах (0 — неизвестно)
func AvailableMemory() uint64 {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 0
	}
	return vm.Available
}
