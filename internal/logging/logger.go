// Package logging gifclip'in slog tabanlı günlükleyicisini kurar.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
)

// Özel çıktı hedefleri
const (
	SinkStderr  = "stderr"
	SinkDiscard = "discard"
)

// Options günlükleyici kurulum parametreleridir.
type Options struct {
	Level  string
	Format string // "text" veya "json"
	Path   string // dosya yolu, "stderr" veya "discard"
}

// New seçeneklere göre logger oluşturur. Dönen closer dosya çıktısını kapatır.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	writer, closer, err := openSink(opts.Path)
	if err != nil {
		return nil, nil, err
	}

	handlerOpts := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}
	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(opts.Format)) {
	case "", "text":
		handler = slog.NewTextHandler(writer, handlerOpts)
	case "json":
		handler = slog.NewJSONHandler(writer, handlerOpts)
	default:
		_ = closer.Close()
		return nil, nil, fmt.Errorf("log format: desteklenmeyen değer %q", opts.Format)
	}
	return slog.New(handler), closer, nil
}

// ParseLevel seviye adını slog seviyesine çevirir; bilinmeyenler info olur.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Sink çalışma kipine göre çıktı hedefini seçer. Etkileşimli kipte stderr
// bir terminalse günlükler ekranı bozmasın diye dosyaya yazılır ya da atılır.
func Sink(interactive bool, logFile string, stderrIsTTY bool) string {
	if logFile != "" {
		return logFile
	}
	if interactive && stderrIsTTY {
		return SinkDiscard
	}
	return SinkStderr
}

// StderrIsTerminal stderr'in bir terminale bağlı olup olmadığını döner.
func StderrIsTerminal() bool {
	fd := os.Stderr.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func openSink(path string) (io.Writer, io.Closer, error) {
	switch strings.TrimSpace(path) {
	case "", SinkStderr:
		return os.Stderr, nopCloser{}, nil
	case SinkDiscard:
		return io.Discard, nopCloser{}, nil
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("log dizini oluşturulamadı: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("log dosyası açılamadı %s: %w", path, err)
	}
	return file, file, nil
}
