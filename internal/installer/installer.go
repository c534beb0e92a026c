package installer

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// InstallInfo bir aracın kurulum komutunu tutar.
type InstallInfo struct {
	ToolName    string
	Command     string
	Args        []string
	Description string
	ManualURL   string
	Supported   bool
}

type toolPackages struct {
	display   string
	manualURL string
	packages  map[string]string // paket yöneticisi -> paket adı
}

var catalog = map[string]toolPackages{
	"ffmpeg": {
		display:   "FFmpeg",
		manualURL: "https://ffmpeg.org/download.html",
		packages: map[string]string{
			"brew": "ffmpeg", "apt": "ffmpeg", "dnf": "ffmpeg", "yum": "ffmpeg",
			"pacman": "ffmpeg", "choco": "ffmpeg", "winget": "Gyan.FFmpeg",
		},
	},
	"mpv": {
		display:   "mpv",
		manualURL: "https://mpv.io/installation/",
		packages: map[string]string{
			"brew": "mpv", "apt": "mpv", "dnf": "mpv", "yum": "mpv",
			"pacman": "mpv", "choco": "mpvio", "winget": "mpv.net",
		},
	},
}

// lookPath testlerde değiştirilir.
var lookPath = exec.LookPath

// DetectPackageManager mevcut paket yöneticisini tespit eder.
func DetectPackageManager() string {
	var order []string
	switch runtime.GOOS {
	case "darwin":
		order = []string{"brew"}
	case "linux":
		order = []string{"apt", "dnf", "yum", "pacman"}
	case "windows":
		order = []string{"choco", "winget"}
	}
	for _, pm := range order {
		if _, err := lookPath(pm); err == nil {
			return pm
		}
	}
	return ""
}

// Tools otomatik kurulabilen araçları döner.
func Tools() []string {
	return []string{"ffmpeg", "mpv"}
}

// GetInstallInfo araç için algılanan paket yöneticisine göre kurulum bilgisini döner.
func GetInstallInfo(toolName string) InstallInfo {
	return InstallInfoFor(toolName, DetectPackageManager())
}

// InstallInfoFor araç ve paket yöneticisi için kurulum komutunu oluşturur.
func InstallInfoFor(toolName, pm string) InstallInfo {
	toolName = strings.ToLower(strings.TrimSpace(toolName))
	entry, ok := catalog[toolName]
	if !ok {
		return InstallInfo{ToolName: toolName}
	}

	info := InstallInfo{ToolName: entry.display, ManualURL: entry.manualURL}
	pkg, ok := entry.packages[pm]
	if !ok {
		return info
	}

	switch pm {
	case "brew":
		info.Command, info.Args = "brew", []string{"install", pkg}
	case "apt", "dnf", "yum":
		info.Command, info.Args = "sudo", []string{pm, "install", "-y", pkg}
	case "pacman":
		info.Command, info.Args = "sudo", []string{"pacman", "-S", "--noconfirm", pkg}
	case "choco":
		info.Command, info.Args = "choco", []string{"install", pkg, "-y"}
	case "winget":
		info.Command, info.Args = "winget", []string{"install", pkg}
	}
	info.Description = strings.Join(append([]string{info.Command}, info.Args...), " ")
	info.Supported = true
	return info
}

// InstallTool aracı paket yöneticisiyle kurar; kurulum çıktısı terminale akar.
func InstallTool(toolName string) (string, error) {
	info := GetInstallInfo(toolName)
	if !info.Supported {
		return "", fmt.Errorf(
			"%s otomatik olarak kurulamıyor.\nManuel kurulum: %s",
			info.ToolName, info.ManualURL,
		)
	}

	cmd := exec.Command(info.Command, info.Args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%s kurulumu başarısız: %w", info.ToolName, err)
	}
	return info.Description, nil
}
