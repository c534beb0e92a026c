package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mlihgenel/gifclip/internal/export"
	"github.com/pelletier/go-toml/v2"
)

// FileName proje dizininden yukarı doğru aranan yapılandırma dosyasıdır.
const FileName = ".gifclip.toml"

// Player önizleme motoru seçimidir.
const (
	PlayerAuto = "auto"
	PlayerMPV  = "mpv"
	PlayerNone = "none"
)

// Config gifclip varsayılanlarını tutar. Dosya salt okunurdur; uygulama
// kullanıcı tercihlerini geri yazmaz.
type Config struct {
	FFmpeg     string `toml:"ffmpeg"`
	FFprobe    string `toml:"ffprobe"`
	MPV        string `toml:"mpv"`
	Player     string `toml:"player"`
	OutputDir  string `toml:"output_dir"`
	Resolution string `toml:"resolution"`
	FPS        int    `toml:"fps"`
	SeekOnEnd  *bool  `toml:"seek_on_end"`
	LogLevel   string `toml:"log_level"`
	LogFile    string `toml:"log_file"`
}

// Default dosya bulunmadığında kullanılan değerleri döner.
func Default() Config {
	return Config{
		Player:     PlayerAuto,
		Resolution: "HD (720p)",
		FPS:        export.DefaultFPS,
		LogLevel:   "info",
	}
}

// SeekOnEndEnabled bitiş noktası değiştiğinde önizlemenin atlayıp atlamayacağını döner.
func (c Config) SeekOnEndEnabled() bool {
	return c.SeekOnEnd == nil || *c.SeekOnEnd
}

// Load explicitPath verilmişse onu, verilmemişse currentDir'den yukarı
// doğru bulunan ilk .gifclip.toml dosyasını okur. Dosya yoksa varsayılanlar
// ve boş yol döner.
func Load(explicitPath, currentDir string) (*Config, string, error) {
	cfg := Default()

	path := strings.TrimSpace(explicitPath)
	if path == "" {
		found, err := findConfigPath(currentDir)
		if err != nil {
			return nil, "", err
		}
		path = found
	}

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, "", fmt.Errorf("yapılandırma açılamadı: %w", err)
		}
		defer file.Close()

		if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
			return nil, "", fmt.Errorf("%s okunamadı: %w", path, err)
		}
	}

	cfg.normalize(path)
	if err := cfg.Validate(); err != nil {
		if path != "" {
			return nil, "", fmt.Errorf("%s: %w", path, err)
		}
		return nil, "", err
	}
	return &cfg, path, nil
}

func (c *Config) normalize(path string) {
	c.Player = strings.ToLower(strings.TrimSpace(c.Player))
	if c.Player == "" {
		c.Player = PlayerAuto
	}
	c.Resolution = strings.TrimSpace(c.Resolution)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.OutputDir = resolveRelative(path, expandHome(strings.TrimSpace(c.OutputDir)))
	c.LogFile = resolveRelative(path, expandHome(strings.TrimSpace(c.LogFile)))
}

// Validate değerlerin geçerli aralıkta olduğunu kontrol eder.
func (c Config) Validate() error {
	switch c.Player {
	case PlayerAuto, PlayerMPV, PlayerNone:
	default:
		return fmt.Errorf("player auto, mpv veya none olmalı: %q", c.Player)
	}
	if c.FPS < export.MinFPS || c.FPS > export.MaxFPS {
		return fmt.Errorf("fps %d-%d aralığında olmalı", export.MinFPS, export.MaxFPS)
	}
	if _, err := export.ResolveResolution(c.Resolution); err != nil {
		return err
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("geçersiz log_level: %q", c.LogLevel)
	}
	return nil
}

func findConfigPath(startDir string) (string, error) {
	if strings.TrimSpace(startDir) == "" {
		return "", fmt.Errorf("geçersiz çalışma dizini")
	}

	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, FileName)
		info, statErr := os.Stat(candidate)
		if statErr == nil && !info.IsDir() {
			return candidate, nil
		}
		if statErr != nil && !os.IsNotExist(statErr) {
			return "", statErr
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}

// resolveRelative göreli yolları yapılandırma dosyasının dizinine göre çözer.
func resolveRelative(configPath, p string) string {
	if p == "" || filepath.IsAbs(p) || configPath == "" {
		return p
	}
	return filepath.Join(filepath.Dir(configPath), p)
}
