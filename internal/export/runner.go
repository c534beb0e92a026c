package export

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/exec"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// CommandRunner harici bir komutu çalıştırıp birleşik çıktısını döner.
type CommandRunner interface {
	Run(ctx context.Context, binary string, args []string) ([]byte, error)
}

type execCommandRunner struct{}

func (execCommandRunner) Run(ctx context.Context, binary string, args []string) ([]byte, error) {
	return exec.CommandContext(ctx, binary, args...).CombinedOutput()
}

// Result başarılı bir export'un özetidir.
type Result struct {
	ID          string
	GIFPath     string
	PalettePath string
	SizeBytes   int64
	Elapsed     time.Duration
}

// SizeText çıktı boyutunu okunabilir biçimde döner.
func (r Result) SizeText() string {
	if r.SizeBytes <= 0 {
		return "bilinmiyor"
	}
	return humanize.Bytes(uint64(r.SizeBytes))
}

// Runner iki geçişli planı sırayla çalıştırır.
type Runner struct {
	Binary  string
	Exec    CommandRunner
	Logger  *slog.Logger
	LockDir string
}

// NewRunner verilen ffmpeg yolu ile runner oluşturur.
func NewRunner(binary string, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		Binary: binary,
		Exec:   execCommandRunner{},
		Logger: logger,
	}
}

// Run palet geçişini, ardından kodlama geçişini çalıştırır. Palet geçişi
// başarısızsa kodlama geçişi hiç başlatılmaz. Otomatik tekrar deneme yoktur.
func (r *Runner) Run(ctx context.Context, plan Plan) (Result, error) {
	started := time.Now()
	id := uuid.NewString()
	logger := r.Logger.With("export_id", id, "input", plan.Input, "output_folder", plan.OutputFolder)

	lock, err := acquireFolderLock(r.LockDir, plan.OutputFolder)
	if err != nil {
		logger.Warn("export rejected", "error", err)
		return Result{}, err
	}
	defer lock.release()

	binary := r.Binary
	if binary == "" {
		binary = "ffmpeg"
	}
	runner := r.Exec
	if runner == nil {
		runner = execCommandRunner{}
	}

	for _, pass := range plan.Passes() {
		passStarted := time.Now()
		logger.Info("ffmpeg pass started", "pass", pass.Name, "command", pass.CommandLine(binary))

		output, err := runner.Run(ctx, binary, pass.Args)
		if err != nil {
			failure := &ToolFailureError{Pass: pass.Name, Output: string(output), Err: err}
			var exitErr *exec.ExitError
			if errors.As(err, &exitErr) {
				failure.ExitCode = exitErr.ExitCode()
			}
			logger.Error("ffmpeg pass failed", "pass", pass.Name, "exit_code", failure.ExitCode, "error", err)
			return Result{}, failure
		}
		logger.Debug("ffmpeg pass finished", "pass", pass.Name, "elapsed", time.Since(passStarted))
	}

	result := Result{
		ID:          id,
		GIFPath:     plan.GIFPath(),
		PalettePath: plan.PalettePath(),
		Elapsed:     time.Since(started),
	}
	if info, err := os.Stat(result.GIFPath); err == nil {
		result.SizeBytes = info.Size()
	}
	logger.Info("export finished", "gif", result.GIFPath, "size", result.SizeText(), "elapsed", result.Elapsed)
	return result, nil
}
