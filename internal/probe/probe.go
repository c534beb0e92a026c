package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// Result ffprobe JSON çıktısının ilgili alanlarıdır.
type Result struct {
	Format  Format   `json:"format"`
	Streams []Stream `json:"streams"`
}

// Format kapsayıcı seviyesindeki bilgiler.
type Format struct {
	Filename   string `json:"filename"`
	FormatName string `json:"format_name"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
}

// Stream tek bir akışın bilgileri.
type Stream struct {
	Index      int    `json:"index"`
	CodecType  string `json:"codec_type"`
	CodecName  string `json:"codec_name"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	RFrameRate string `json:"r_frame_rate,omitempty"`
	Duration   string `json:"duration,omitempty"`
}

// VideoInfo ilk video akışının özetidir.
type VideoInfo struct {
	Codec  string
	Width  int
	Height int
	FPS    float64
}

// Inspect ffprobe'u çalıştırır ve JSON yanıtını çözer.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, errors.New("ffprobe: boş dosya yolu")
	}

	cmd := exec.CommandContext(ctx, binary, "-v", "error", "-show_format", "-show_streams", "-of", "json", "--", path)
	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return Result{}, fmt.Errorf("ffprobe hatası: %w: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return Result{}, fmt.Errorf("ffprobe hatası: %w", err)
	}
	return Decode(output)
}

// Decode ham ffprobe JSON çıktısını çözer.
func Decode(data []byte) (Result, error) {
	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return Result{}, fmt.Errorf("ffprobe çıktısı okunamadı: %w", err)
	}
	return result, nil
}

// DurationMs kapsayıcı süresini milisaniye olarak döner. Kapsayıcı süresi
// yoksa ilk video akışının süresi denenir.
func (r Result) DurationMs() (int64, bool) {
	candidates := []string{r.Format.Duration}
	for _, s := range r.Streams {
		if strings.EqualFold(s.CodecType, "video") {
			candidates = append(candidates, s.Duration)
			break
		}
	}
	for _, raw := range candidates {
		sec, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || math.IsNaN(sec) || sec <= 0 {
			continue
		}
		return int64(math.Round(sec * 1000)), true
	}
	return 0, false
}

// Video ilk video akışının bilgilerini döner.
func (r Result) Video() (VideoInfo, bool) {
	for _, s := range r.Streams {
		if !strings.EqualFold(s.CodecType, "video") {
			continue
		}
		return VideoInfo{
			Codec:  s.CodecName,
			Width:  s.Width,
			Height: s.Height,
			FPS:    parseFrameRate(s.RFrameRate),
		}, true
	}
	return VideoInfo{}, false
}

// parseFrameRate "30000/1001" gibi kare oranlarını float'a çevirir
func parseFrameRate(rate string) float64 {
	parts := strings.SplitN(rate, "/", 2)
	if len(parts) == 2 {
		num, err1 := strconv.ParseFloat(parts[0], 64)
		den, err2 := strconv.ParseFloat(parts[1], 64)
		if err1 == nil && err2 == nil && den != 0 {
			return num / den
		}
	}
	if f, err := strconv.ParseFloat(rate, 64); err == nil {
		return f
	}
	return 0
}

// FFprobe playback.Prober arayüzünü ffprobe ile karşılar.
type FFprobe struct {
	Binary string
}

// Duration dosyanın süresini milisaniye olarak döner.
func (p FFprobe) Duration(ctx context.Context, path string) (int64, error) {
	result, err := Inspect(ctx, p.Binary, path)
	if err != nil {
		return 0, err
	}
	ms, ok := result.DurationMs()
	if !ok {
		return 0, fmt.Errorf("video süresi okunamadı: %s", path)
	}
	return ms, nil
}
