package export

import (
	"errors"
	"fmt"
	"strings"
)

// ErrExportInProgress aynı çıktı dizinine ikinci bir export başlatıldığında döner.
var ErrExportInProgress = errors.New("bu çıktı dizininde zaten bir GIF dönüşümü çalışıyor")

// InvalidRangeError bitiş başlangıçtan büyük olmadığında döner.
type InvalidRangeError struct {
	StartMs int64
	EndMs   int64
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("başlangıç zamanı bitiş zamanından küçük olmalı (başlangıç=%dms, bitiş=%dms)", e.StartMs, e.EndMs)
}

// UnknownResolutionError tanımsız çözünürlük etiketi için döner.
type UnknownResolutionError struct {
	Label string
}

func (e *UnknownResolutionError) Error() string {
	return fmt.Sprintf("bilinmeyen çözünürlük: %q (geçerli: %s)", e.Label, strings.Join(ResolutionLabels(), ", "))
}

// ToolFailureError ffmpeg geçişlerinden biri başarısız olduğunda döner.
type ToolFailureError struct {
	Pass     string
	ExitCode int
	Output   string
	Err      error
}

func (e *ToolFailureError) Error() string {
	msg := fmt.Sprintf("FFmpeg %s geçişi başarısız", e.Pass)
	if e.ExitCode > 0 {
		msg += fmt.Sprintf(" (çıkış kodu %d)", e.ExitCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + tailLines(out, 8)
	}
	return msg
}

func (e *ToolFailureError) Unwrap() error { return e.Err }

func tailLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[len(lines)-n:], "\n")
}
