package cmd

import (
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mlihgenel/gifclip/internal/config"
	"github.com/mlihgenel/gifclip/internal/deps"
	"github.com/mlihgenel/gifclip/internal/export"
	"github.com/mlihgenel/gifclip/internal/playback"
	"github.com/mlihgenel/gifclip/internal/probe"
)

func TestBuildExportPlanFromFlags(t *testing.T) {
	dir := t.TempDir()
	video := writeVideo(t, dir, "clip.mp4")

	plan, err := buildExportPlan(exportOptions{
		Video:      video,
		Start:      "1.5",
		End:        "00:00:04",
		Resolution: "SD (480p)",
		FPS:        15,
		Output:     dir,
	})
	if err != nil {
		t.Fatalf("buildExportPlan: %v", err)
	}
	if plan.Params.StartArg() != "1.50" || plan.Params.DurationArg() != "2.50" {
		t.Fatalf("unexpected trim args: %s %s", plan.Params.StartArg(), plan.Params.DurationArg())
	}
	if plan.Params.VerticalResolution != 480 || plan.Params.FPS != 15 {
		t.Fatalf("unexpected params: %+v", plan.Params)
	}
	if plan.GIFPath() != filepath.Join(dir, export.GIFFileName) {
		t.Fatalf("unexpected gif path: %s", plan.GIFPath())
	}
}

func TestBuildExportPlanRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	video := writeVideo(t, dir, "clip.mp4")
	base := exportOptions{Video: video, Start: "2", End: "5", Resolution: "HD (720p)", FPS: 10, Output: dir}

	t.Run("missing end", func(t *testing.T) {
		opts := base
		opts.End = ""
		if _, err := buildExportPlan(opts); err == nil {
			t.Fatalf("expected error")
		}
	})
	t.Run("end before start", func(t *testing.T) {
		opts := base
		opts.End = "00:00:01"
		_, err := buildExportPlan(opts)
		var rangeErr *export.InvalidRangeError
		if !errors.As(err, &rangeErr) {
			t.Fatalf("expected InvalidRangeError, got %v", err)
		}
	})
	t.Run("unknown resolution", func(t *testing.T) {
		opts := base
		opts.Resolution = "4K"
		_, err := buildExportPlan(opts)
		var resErr *export.UnknownResolutionError
		if !errors.As(err, &resErr) {
			t.Fatalf("expected UnknownResolutionError, got %v", err)
		}
	})
	t.Run("fps out of range", func(t *testing.T) {
		opts := base
		opts.FPS = 60
		if _, err := buildExportPlan(opts); err == nil {
			t.Fatalf("expected fps error")
		}
	})
	t.Run("bad time code", func(t *testing.T) {
		opts := base
		opts.Start = "iki"
		if _, err := buildExportPlan(opts); err == nil || !strings.Contains(err.Error(), "--start") {
			t.Fatalf("expected --start error, got %v", err)
		}
	})
	t.Run("missing video", func(t *testing.T) {
		opts := base
		opts.Video = filepath.Join(dir, "yok.mp4")
		if _, err := buildExportPlan(opts); err == nil {
			t.Fatalf("expected missing video error")
		}
	})
	t.Run("missing output", func(t *testing.T) {
		opts := base
		opts.Output = ""
		if _, err := buildExportPlan(opts); err == nil {
			t.Fatalf("expected output error")
		}
	})
}

func TestNewEngineFollowsPlayerSetting(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := config.Default()
	cfg.Player = config.PlayerNone
	engine, err := newEngine(&cfg, "/usr/bin/mpv", logger)
	if err != nil {
		t.Fatalf("newEngine: %v", err)
	}
	if _, ok := engine.(*playback.Headless); !ok {
		t.Fatalf("player=none should be headless, got %T", engine)
	}

	cfg.Player = config.PlayerAuto
	engine, err = newEngine(&cfg, "", logger)
	if err != nil {
		t.Fatalf("newEngine: %v", err)
	}
	if _, ok := engine.(*playback.Headless); !ok {
		t.Fatalf("auto without mpv should be headless, got %T", engine)
	}

	cfg.Player = config.PlayerMPV
	if _, err := newEngine(&cfg, "", logger); err == nil {
		t.Fatalf("player=mpv without binary should fail")
	}
}

func TestInstallTargetsMapsFFprobeToFFmpeg(t *testing.T) {
	statuses := []deps.Status{
		{Name: "ffmpeg", Available: false},
		{Name: "ffprobe", Available: false},
		{Name: "mpv", Available: true, Optional: true},
	}
	targets := installTargets(statuses)
	if len(targets) != 1 || targets[0] != "ffmpeg" {
		t.Fatalf("unexpected install targets: %v", targets)
	}
}

func TestStatusTableMarksMissingTools(t *testing.T) {
	out := statusTable([]deps.Status{
		{Name: "ffmpeg", Available: true, Path: "/usr/bin/ffmpeg", Version: "ffmpeg version 6.1"},
		{Name: "mpv", Optional: true, Detail: "araç bulunamadı"},
	})
	for _, want := range []string{"ffmpeg version 6.1", "isteğe bağlı", "araç bulunamadı"} {
		if !strings.Contains(out, want) {
			t.Fatalf("status table missing %q:\n%s", want, out)
		}
	}
}

func TestResolutionRowsMarkDefault(t *testing.T) {
	rows := resolutionRows("HD (720p)")
	if len(rows) != len(export.ResolutionLabels()) {
		t.Fatalf("unexpected row count: %d", len(rows))
	}
	found := false
	for _, row := range rows {
		if row[0] == "HD (720p) (varsayılan)" && row[1] == "720px" {
			found = true
		}
	}
	if !found {
		t.Fatalf("default resolution not marked: %v", rows)
	}
}

func TestInfoRowsSummarizeProbe(t *testing.T) {
	result, err := probe.Decode([]byte(`{
		"format": {"filename": "clip.mp4", "format_name": "mov,mp4", "duration": "12.345", "size": "1048576", "bit_rate": "800000"},
		"streams": [{"index": 0, "codec_type": "video", "codec_name": "h264", "width": 1280, "height": 720, "r_frame_rate": "30/1"}]
	}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	got := map[string]string{}
	for _, row := range infoRows("clip.mp4", result) {
		got[row[0]] = row[1]
	}
	if got["Süre"] != "00:00:12.345" {
		t.Fatalf("unexpected duration: %q", got["Süre"])
	}
	if got["Çözünürlük"] != "1280x720" || got["Video codec"] != "h264" {
		t.Fatalf("unexpected video info: %v", got)
	}
	if got["Boyut"] != "1.0 MB" {
		t.Fatalf("unexpected size: %q", got["Boyut"])
	}
	if got["FPS"] != "30.00" {
		t.Fatalf("unexpected fps: %q", got["FPS"])
	}
}

func TestOnlyRootCommandRunsShell(t *testing.T) {
	if !runsShell(rootCmd) {
		t.Fatalf("root command should start the interactive shell")
	}
	for _, sub := range []string{"export", "info", "deps", "resolutions"} {
		c, _, err := rootCmd.Find([]string{sub})
		if err != nil {
			t.Fatalf("find %s: %v", sub, err)
		}
		if runsShell(c) {
			t.Fatalf("%s should log like a subcommand, not the shell", sub)
		}
	}
}
