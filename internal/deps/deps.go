package deps

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// ErrNotFound araç hiçbir konumda bulunamadığında döner.
var ErrNotFound = errors.New("araç bulunamadı")

// Tool gifclip'in kullandığı harici bir araçtır.
type Tool struct {
	Name        string
	EnvVar      string
	Override    string // config'ten gelen tam yol
	VersionFlag string
	Description string
	Optional    bool
}

// Status bir aracın durum raporudur.
type Status struct {
	Name        string
	Description string
	Optional    bool
	Available   bool
	Path        string
	Version     string
	Detail      string
}

// Tools gifclip'in ihtiyaç duyduğu araç listesini döner.
func Tools(ffmpeg, ffprobe, mpv string) []Tool {
	return []Tool{
		{Name: "ffmpeg", EnvVar: "FFMPEG_PATH", Override: ffmpeg, VersionFlag: "-version", Description: "GIF dışa aktarma"},
		{Name: "ffprobe", EnvVar: "FFPROBE_PATH", Override: ffprobe, VersionFlag: "-version", Description: "video süresi ve bilgisi"},
		{Name: "mpv", EnvVar: "MPV_PATH", Override: mpv, VersionFlag: "--version", Description: "önizleme oynatıcısı", Optional: true},
	}
}

// Locate aracı sırasıyla config yolu, ortam değişkeni, PATH ve bilinen
// konumlarda arar.
func Locate(name, envVar, override string) (string, error) {
	if p := strings.TrimSpace(override); p != "" {
		if path, err := exec.LookPath(p); err == nil {
			return path, nil
		}
		return "", fmt.Errorf("%s yolu geçersiz: %s", name, p)
	}
	if envVar != "" {
		if p := strings.TrimSpace(os.Getenv(envVar)); p != "" {
			if path, err := exec.LookPath(p); err == nil {
				return path, nil
			}
			return "", fmt.Errorf("%s geçersiz: %s", envVar, p)
		}
	}

	for _, p := range append([]string{name}, knownPaths(name)...) {
		if path, err := exec.LookPath(p); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%s: %w", name, ErrNotFound)
}

// knownPaths PATH dışındaki yaygın kurulum konumlarıdır.
var knownPaths = func(name string) []string {
	var paths []string
	switch runtime.GOOS {
	case "darwin":
		paths = append(paths, "/opt/homebrew/bin/"+name, "/usr/local/bin/"+name)
	case "linux":
		paths = append(paths, "/usr/bin/"+name, "/usr/local/bin/"+name, "/snap/bin/"+name)
	case "windows":
		paths = append(paths, `C:\ffmpeg\bin\`+name+".exe")
	}
	return paths
}

// versionOf aracın sürüm satırını okur; testlerde değiştirilir.
var versionOf = func(path, flag string) string {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	out, err := exec.CommandContext(ctx, path, flag).Output()
	if err != nil {
		return ""
	}
	return firstLine(out)
}

func firstLine(out []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text())
	}
	return ""
}

// Check araçların durumunu raporlar.
func Check(tools []Tool) []Status {
	results := make([]Status, 0, len(tools))
	for _, tool := range tools {
		status := Status{
			Name:        tool.Name,
			Description: tool.Description,
			Optional:    tool.Optional,
		}
		path, err := Locate(tool.Name, tool.EnvVar, tool.Override)
		if err != nil {
			status.Detail = err.Error()
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Path = path
		if tool.VersionFlag != "" {
			status.Version = versionOf(path, tool.VersionFlag)
		}
		results = append(results, status)
	}
	return results
}

// Missing zorunlu olup bulunamayan araçları döner.
func Missing(statuses []Status) []string {
	var missing []string
	for _, s := range statuses {
		if !s.Available && !s.Optional {
			missing = append(missing, s.Name)
		}
	}
	return missing
}
