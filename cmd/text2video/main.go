package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ivlev/text2video/internal/captions"
	"github.com/ivlev/text2video/internal/config"
	"github.com/ivlev/text2video/internal/engine"
	"github.com/ivlev/text2video/internal/overlay"
	"github.com/ivlev/text2video/internal/system"
	"github.com/ivlev/text2video/internal/video"
)

func main() {
	// Увеличиваем лимиты системы (для macOS/Linux)
	system.InitResourceLimits()

	// Создаем нужные директории, если их нет
	dirs := []string{"input/video", "input/script", "output"}
	for _, d := range dirs {
		os.MkdirAll(d, 0755)
	}

	inputPtr := flag.String("input", "", "Путь к видео (по умолчанию: самый свежий файл в input/video/)")
	outputPtr := flag.String("output", "", "Путь к результату (если пусто, генерируется автоматически в output/)")
	scriptPtr := flag.String("script", "", "Путь к YAML-сценарию (по умолчанию: самый свежий файл в input/script/)")
	textPtr := flag.String("text", "", "Реплики прямо в аргументе, разделитель '|', перенос строки — литерал \\n")
	widthPtr := flag.Int("width", 1080, "Ширина")
	heightPtr := flag.Int("height", 1920, "Высота")
	fourccPtr := flag.String("fourcc", "mp4v", "Кодек контейнера: mp4v, avc1, xvid, mjpg")
	qualityPtr := flag.Int("quality", 0, "Качество видео (0 - авто)")
	fontScalePtr := flag.Float64("font-scale", 2.0, "Масштаб шрифта")
	spacingPtr := flag.Int("line-spacing", 20, "Межстрочный интервал в пикселях")
	thicknessPtr := flag.Int("thickness", 3, "Толщина штриха текста")
	autoColorPtr := flag.Bool("auto-color", false, "Подбирать цвета текста по яркости первого кадра")
	introPtr := flag.String("intro", "", "Титульная заставка: PDF (первая страница) или PNG/JPEG")
	introDurPtr := flag.Float64("intro-duration", 2.0, "Длительность заставки (сек)")
	introDPIPtr := flag.Int("intro-dpi", 150, "DPI рендера PDF-заставки")
	qrPtr := flag.String("qr", "", "Ссылка для QR-кода в углу кадра (если пусто, QR не рисуется)")
	qrSizePtr := flag.Int("qr-size", 96, "Размер QR-кода в пикселях")
	qrMarginPtr := flag.Int("qr-margin", 24, "Отступ QR-кода от края кадра")
	batchPtr := flag.Bool("batch", false, "Обработать все видео в директории входа одним сценарием")
	workersPtr := flag.Int("workers", system.DefaultWorkers(), "Потоки пакетного режима")
	statsPtr := flag.Bool("stats", false, "Показать отчет о производительности")

	flag.Parse()

	script, err := loadScript(*textPtr, *scriptPtr)
	if err != nil {
		log.Fatalf("[-] Ошибка сценария: %v", err)
	}
	if script.TotalLen() == 0 {
		log.Fatalf("[-] Ошибка: сценарий пуст, нужна хотя бы одна непустая реплика")
	}

	encoderName, err := video.EncoderForFourCC(*fourccPtr)
	if err != nil {
		log.Fatalf("[-] Ошибка: %v", err)
	}
	if encoderName != "mpeg4" && encoderName != "libx264" {
		fmt.Printf("[*] Обнаружено аппаратное ускорение: %s\n", encoderName)
	}

	quality := *qualityPtr
	if quality == 0 {
		switch encoderName {
		case "h264_videotoolbox":
			quality = 75 // Хорошее качество для VideoToolbox
		case "h264_nvenc":
			quality = 28 // Эквивалент CRF для NVENC
		default:
			quality = 23 // Стандартный CRF для x264 и шкалы mpeg4
		}
	}

	renderer, err := overlay.NewFaceRenderer(*fontScalePtr)
	if err != nil {
		log.Fatalf("[-] Ошибка шрифта: %v", err)
	}

	baseCfg := config.Config{
		Width:         *widthPtr,
		Height:        *heightPtr,
		FourCC:        *fourccPtr,
		VideoEncoder:  encoderName,
		Quality:       quality,
		Workers:       *workersPtr,
		FontScale:     *fontScalePtr,
		LineSpacing:   *spacingPtr,
		Thickness:     *thicknessPtr,
		AutoColor:     *autoColorPtr,
		IntroPath:     *introPtr,
		IntroDuration: *introDurPtr,
		IntroDPI:      *introDPIPtr,
		QRLink:        *qrPtr,
		QRSize:        *qrSizePtr,
		QRMargin:      *qrMarginPtr,
		ShowStats:     *statsPtr,
		BuildVersion:  buildVersion,
	}

	if *batchPtr {
		if err := runBatch(baseCfg, script, *inputPtr, *outputPtr); err != nil {
			log.Fatalf("[-] Ошибка пакетной обработки: %v", err)
		}
		return
	}

	inputPath := *inputPtr
	if inputPath == "" {
		latest, err := system.FindLatestVideo("input/video")
		if err != nil {
			log.Fatalf("[-] Ошибка: %v. Положите видео в input/video/", err)
		}
		inputPath = latest
		fmt.Printf("[*] Выбран файл: %s\n", inputPath)
	}

	cfg := baseCfg
	cfg.InputPath = inputPath
	cfg.OutputVideo = *outputPtr
	if cfg.OutputVideo == "" {
		cfg.OutputVideo = outputName(inputPath)
	}

	project := engine.NewVideoProject(&cfg, script, renderer)
	if err := project.Run(); err != nil {
		log.Fatalf("[-] Ошибка проекта: %v", err)
	}

	fmt.Printf("[+++] Успех! Результат: %s\n", cfg.OutputVideo)
}

const buildVersion = "1.0"

// loadScript собирает сценарий из -text, -script или самого свежего
// YAML-файла в input/script/
func loadScript(inline, path string) (*captions.Script, error) {
	if inline != "" {
		return captions.ParseInline(inline), nil
	}

	if path == "" {
		latest, err := captions.FindLatestScript("input/script")
		if err != nil {
			return nil, fmt.Errorf("%w (либо задайте реплики через -text)", err)
		}
		path = latest
		fmt.Printf("[*] Выбран сценарий: %s\n", path)
	}

	return captions.ReadScript(path)
}

// runBatch обрабатывает все видео директории одним сценарием. Каждое видео
// обрабатывается последовательно, но сами задания идут параллельно.
// Шрифтовой рендерер не потокобезопасен, поэтому создается на каждое задание.
func runBatch(baseCfg config.Config, script *captions.Script, inputDir, outputDir string) error {
	if inputDir == "" {
		inputDir = "input/video"
	}
	if outputDir == "" {
		outputDir = "output"
	}

	videos, err := system.ListVideos(inputDir)
	if err != nil {
		return err
	}
	fmt.Printf("[*] Пакетный режим: %d видео, %d потоков\n", len(videos), baseCfg.Workers)

	var g errgroup.Group
	g.SetLimit(baseCfg.Workers)

	for _, path := range videos {
		g.Go(func() error {
			cfg := baseCfg
			cfg.InputPath = path
			cfg.OutputVideo = filepath.Join(outputDir, filepath.Base(outputName(path)))

			renderer, err := overlay.NewFaceRenderer(cfg.FontScale)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			project := engine.NewVideoProject(&cfg, script, renderer)
			if err := project.Run(); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			fmt.Printf("[>] Готово: %s -> %s\n", path, cfg.OutputVideo)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Println("[+++] Успех! Все видео обработаны")
	return nil
}

// outputName генерирует имя результата по имени источника и времени запуска
func outputName(inputPath string) string {
	baseName := filepath.Base(inputPath)
	ext := filepath.Ext(baseName)
	nameOnly := strings.TrimSuffix(baseName, ext)
	cleanName := strings.ReplaceAll(nameOnly, " ", "_")
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join("output", fmt.Sprintf("%s_%s.mp4", cleanName, timestamp))
}
