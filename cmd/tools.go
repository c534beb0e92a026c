package cmd

import (
	"fmt"
	"log/slog"
	"runtime"

	"github.com/mlihgenel/gifclip/internal/config"
	"github.com/mlihgenel/gifclip/internal/deps"
	"github.com/mlihgenel/gifclip/internal/playback"
)

// toolPaths çözümlenmiş harici araç yollarıdır; bulunamayan araç boş kalır.
type toolPaths struct {
	ffmpeg  string
	ffprobe string
	mpv     string
}

func resolveTools(cfg *config.Config) toolPaths {
	var paths toolPaths
	paths.ffmpeg, _ = deps.Locate("ffmpeg", "FFMPEG_PATH", cfg.FFmpeg)
	paths.ffprobe, _ = deps.Locate("ffprobe", "FFPROBE_PATH", cfg.FFprobe)
	paths.mpv, _ = deps.Locate("mpv", "MPV_PATH", cfg.MPV)
	return paths
}

func toolStatuses(cfg *config.Config) []deps.Status {
	return deps.Check(deps.Tools(cfg.FFmpeg, cfg.FFprobe, cfg.MPV))
}

// newEngine config'teki player seçimine göre önizleme motorunu kurar.
func newEngine(cfg *config.Config, mpvPath string, logger *slog.Logger) (playback.Engine, error) {
	switch cfg.Player {
	case config.PlayerNone:
		return &playback.Headless{}, nil
	case config.PlayerMPV:
		if mpvPath == "" {
			return nil, fmt.Errorf("player = mpv seçili fakat mpv bulunamadı (MPV_PATH veya mpv ayarını kontrol edin)")
		}
		if runtime.GOOS == "windows" {
			return nil, fmt.Errorf("mpv önizlemesi Windows'ta desteklenmiyor; player = none kullanın")
		}
		return playback.NewMPV(mpvPath, logger), nil
	default:
		if mpvPath == "" || runtime.GOOS == "windows" {
			logger.Info("preview player unavailable, running headless")
			return &playback.Headless{}, nil
		}
		return playback.NewMPV(mpvPath, logger), nil
	}
}
