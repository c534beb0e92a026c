package deps

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeExecutable(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\necho fake 1.0\n"), 0755); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	return path
}

func TestLocatePrefersOverride(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable bit required")
	}
	dir := t.TempDir()
	override := writeExecutable(t, dir, "my-ffmpeg")
	env := writeExecutable(t, dir, "env-ffmpeg")
	t.Setenv("FFMPEG_PATH", env)

	got, err := Locate("ffmpeg", "FFMPEG_PATH", override)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != override {
		t.Fatalf("expected override %s, got %s", override, got)
	}
}

func TestLocateUsesEnvVar(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable bit required")
	}
	env := writeExecutable(t, t.TempDir(), "env-ffprobe")
	t.Setenv("FFPROBE_PATH", env)

	got, err := Locate("ffprobe", "FFPROBE_PATH", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != env {
		t.Fatalf("expected env path %s, got %s", env, got)
	}
}

func TestLocateInvalidOverride(t *testing.T) {
	if _, err := Locate("ffmpeg", "", filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error for invalid override")
	}
}

func withoutKnownPaths(t *testing.T) {
	t.Helper()
	original := knownPaths
	knownPaths = func(string) []string { return nil }
	t.Cleanup(func() { knownPaths = original })
}

func TestLocateNotFound(t *testing.T) {
	withoutKnownPaths(t)
	t.Setenv("PATH", t.TempDir())
	_, err := Locate("gifclip-no-such-tool", "", "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCheckReportsStatusAndMissing(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable bit required")
	}
	original := versionOf
	versionOf = func(path, flag string) string { return "fake " + flag }
	defer func() { versionOf = original }()
	withoutKnownPaths(t)

	dir := t.TempDir()
	t.Setenv("PATH", dir)
	t.Setenv("FFMPEG_PATH", "")
	t.Setenv("FFPROBE_PATH", "")
	t.Setenv("MPV_PATH", "")
	ffmpeg := writeExecutable(t, dir, "custom-ffmpeg")

	statuses := Check(Tools(ffmpeg, "", ""))
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}
	if !statuses[0].Available || statuses[0].Path != ffmpeg || statuses[0].Version != "fake -version" {
		t.Fatalf("unexpected ffmpeg status: %+v", statuses[0])
	}
	if statuses[1].Available || statuses[1].Detail == "" {
		t.Fatalf("expected ffprobe to be missing: %+v", statuses[1])
	}
	if !statuses[2].Optional {
		t.Fatalf("mpv must be optional")
	}

	missing := Missing(statuses)
	if len(missing) != 1 || missing[0] != "ffprobe" {
		t.Fatalf("unexpected missing list: %v", missing)
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine([]byte("ffmpeg version 7.1\nbuilt with gcc\n")); got != "ffmpeg version 7.1" {
		t.Fatalf("unexpected first line: %q", got)
	}
	if got := firstLine(nil); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
