package engine

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/ivlev/text2video/internal/analyzer"
	"github.com/ivlev/text2video/internal/captions"
	"github.com/ivlev/text2video/internal/config"
	"github.com/ivlev/text2video/internal/overlay"
	"github.com/ivlev/text2video/internal/schedule"
	"github.com/ivlev/text2video/internal/source"
	"github.com/ivlev/text2video/internal/system"
	"github.com/ivlev/text2video/internal/video"
)

type VideoProject struct {
	Config *config.Config
	Script *captions.Script
	Text   overlay.TextRenderer
}

func NewVideoProject(cfg *config.Config, script *captions.Script, tr overlay.TextRenderer) *VideoProject {
	return &VideoProject{
		Config: cfg,
		Script: script,
		Text:   tr,
	}
}

// Run выполняет один проход: probe -> расписание -> покадровый цикл
// декодирование -> масштабирование -> наложение текста -> кодирование.
// Обработка строго последовательная, по одному кадру за раз.
func (p *VideoProject) Run() (retErr error) {
	startTime := time.Now()
	cfg := p.Config

	if len(p.Script.Captions) == 0 {
		return fmt.Errorf("сценарий не содержит реплик")
	}

	info, err := system.ProbeVideo(cfg.InputPath)
	if err != nil {
		return err
	}

	// Расписание строится по количеству кадров из метаданных. Если декодер
	// выдаст больше кадров, хвост пройдет без текста; меньше — последние
	// реплики не будут показаны целиком.
	sched, err := schedule.Compute(info.FrameCount, p.Script.Captions)
	if err != nil {
		return fmt.Errorf("расчет расписания: %w", err)
	}

	fmt.Println("--- [PROJECT: CAPTION ENGINE] ---")
	fmt.Printf("[*] Источник: %s | Кадров (метаданные): %d @ %.2f FPS\n", cfg.InputPath, info.FrameCount, info.FPS)
	fmt.Printf("[*] Выход: %s | %dx%d | Кодек: %s\n", cfg.OutputVideo, cfg.Width, cfg.Height, cfg.VideoEncoder)
	fmt.Printf("[*] Реплик: %d | Кадры на реплику: %v\n", len(p.Script.Captions), sched)
	fmt.Println("-----------------------------")

	src, err := source.NewFFmpegSource(cfg.InputPath, info.Width, info.Height)
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := video.NewFFmpegWriter(cfg.OutputVideo, cfg.Width, cfg.Height, info.FrameRate, cfg.VideoEncoder, cfg.Quality)
	if err != nil {
		return err
	}
	// Файл должен быть финализирован на любом пути выхода
	defer func() {
		if cerr := out.Close(); cerr != nil && retErr == nil {
			retErr = cerr
		}
	}()

	var badge *overlay.QRBadge
	if cfg.QRLink != "" {
		badge, err = overlay.NewQRBadge(cfg.QRLink, cfg.QRSize, cfg.QRMargin)
		if err != nil {
			return fmt.Errorf("QR-код: %w", err)
		}
	}

	if cfg.IntroPath != "" {
		if err := p.writeIntro(out, info.FPS); err != nil {
			return err
		}
	}

	style := p.baseStyle()
	styleResolved := !cfg.AutoColor

	playback := &Playback{Schedule: sched, Captions: p.Script.Captions}
	target := image.Rect(0, 0, cfg.Width, cfg.Height)

	frameCount := 0
	for {
		frame, err := src.ReadFrame()
		if err != nil {
			break // конец потока либо сбой декодера
		}

		resized := system.GetFrame(target)
		xdraw.ApproxBiLinear.Scale(resized, target, frame, frame.Bounds(), xdraw.Src, nil)
		system.PutFrame(frame)

		if !styleResolved {
			if !analyzer.IsDark(resized) {
				style = style.Inverted()
				fmt.Println("[*] Светлая сцена: цвета текста инвертированы")
			}
			styleResolved = true
		}

		if text, ok := playback.Next(); ok {
			overlay.Annotate(resized, text, cfg.Width, cfg.Height, style, p.Text)
		}

		if badge != nil {
			badge.Apply(resized)
		}

		if err := out.WriteFrame(resized); err != nil {
			system.PutFrame(resized)
			return fmt.Errorf("запись кадра %d: %w", frameCount, err)
		}
		system.PutFrame(resized)
		frameCount++
	}

	totalTime := time.Since(startTime)
	fps := float64(frameCount) / totalTime.Seconds()

	if cfg.ShowStats {
		report := fmt.Sprintf(
			"--- [PERFORMANCE REPORT] ---\n"+
				"Build: %s\n"+
				"Total Time: %.2fs\n"+
				"Frames: %d (metadata: %d)\n"+
				"Effective FPS: %.2f\n"+
				"----------------------------\n",
			cfg.BuildVersion, totalTime.Seconds(), frameCount, info.FrameCount, fps,
		)
		fmt.Print(report)

		// Логирование в файл
		logEntry := fmt.Sprintf("[%s] Build: %s | Input: %s | Frames: %d | Total: %.2fs | FPS: %.2f\n",
			time.Now().Format("2006-01-02 15:04:05"),
			cfg.BuildVersion,
			filepath.Base(cfg.InputPath),
			frameCount,
			totalTime.Seconds(),
			fps,
		)

		f, err := os.OpenFile("benchmark.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err == nil {
			f.WriteString(logEntry)
			f.Close()
		} else {
			fmt.Printf("[!] Не удалось записать benchmark.log: %v\n", err)
		}
	}

	fmt.Printf("[>] Обработано кадров: %d\n", frameCount)
	return nil
}

func (p *VideoProject) baseStyle() overlay.Style {
	style := overlay.DefaultStyle()
	if p.Config.FontScale > 0 {
		style.FontScale = p.Config.FontScale
	}
	if p.Config.LineSpacing > 0 {
		style.LineSpacing = p.Config.LineSpacing
	}
	if p.Config.Thickness > 0 {
		style.Thickness = p.Config.Thickness
	}
	return style
}

// writeIntro пишет титульную заставку перед основным циклом. Кадры заставки
// не входят в расписание реплик.
func (p *VideoProject) writeIntro(out video.Writer, fps float64) error {
	cfg := p.Config

	still, err := source.LoadStill(cfg.IntroPath, cfg.IntroDPI)
	if err != nil {
		return fmt.Errorf("заставка: %w", err)
	}

	target := image.Rect(0, 0, cfg.Width, cfg.Height)
	card := system.GetFrame(target)
	defer system.PutFrame(card)

	xdraw.CatmullRom.Scale(card, target, still, still.Bounds(), xdraw.Src, nil)

	n := int(cfg.IntroDuration * fps)
	for i := 0; i < n; i++ {
		if err := out.WriteFrame(card); err != nil {
			return fmt.Errorf("запись заставки: %w", err)
		}
	}

	fmt.Printf("[*] Заставка: %d кадров из %s\n", n, cfg.IntroPath)
	return nil
}
