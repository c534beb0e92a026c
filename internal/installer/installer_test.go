package installer

import (
	"errors"
	"runtime"
	"strings"
	"testing"
)

func TestInstallInfoForPackageManagers(t *testing.T) {
	tests := []struct {
		tool string
		pm   string
		want string
	}{
		{"ffmpeg", "brew", "brew install ffmpeg"},
		{"ffmpeg", "apt", "sudo apt install -y ffmpeg"},
		{"ffmpeg", "pacman", "sudo pacman -S --noconfirm ffmpeg"},
		{"ffmpeg", "winget", "winget install Gyan.FFmpeg"},
		{"mpv", "dnf", "sudo dnf install -y mpv"},
		{"mpv", "choco", "choco install mpvio -y"},
		{"MPV", "brew", "brew install mpv"},
	}
	for _, tt := range tests {
		info := InstallInfoFor(tt.tool, tt.pm)
		if !info.Supported {
			t.Fatalf("%s/%s should be supported", tt.tool, tt.pm)
		}
		if info.Description != tt.want {
			t.Fatalf("%s/%s: expected %q, got %q", tt.tool, tt.pm, tt.want, info.Description)
		}
		if strings.Join(append([]string{info.Command}, info.Args...), " ") != tt.want {
			t.Fatalf("command and args disagree with description: %+v", info)
		}
	}
}

func TestInstallInfoUnsupported(t *testing.T) {
	info := InstallInfoFor("ffmpeg", "")
	if info.Supported || info.ManualURL == "" {
		t.Fatalf("expected manual url without package manager: %+v", info)
	}
	if InstallInfoFor("pandoc", "apt").Supported {
		t.Fatalf("unknown tools must not be installable")
	}
}

func TestDetectPackageManagerOrder(t *testing.T) {
	original := lookPath
	defer func() { lookPath = original }()

	available := map[string]bool{"dnf": true, "pacman": true, "winget": true, "brew": true}
	lookPath = func(name string) (string, error) {
		if available[name] {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}

	want := map[string]string{"linux": "dnf", "darwin": "brew", "windows": "winget"}
	if expected, ok := want[runtime.GOOS]; ok {
		if got := DetectPackageManager(); got != expected {
			t.Fatalf("expected %s, got %s", expected, got)
		}
	}
}
