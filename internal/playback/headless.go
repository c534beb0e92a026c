package playback

import (
	"context"
	"fmt"
	"os"
)

// Headless önizleme penceresi olmayan motordur; oynatıcı bulunamadığında kullanılır.
type Headless struct {
	position int64
}

func (h *Headless) Open(_ context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s bir dizin", path)
	}
	h.position = 0
	return nil
}

func (h *Headless) Play() error  { return nil }
func (h *Headless) Pause() error { return nil }

func (h *Headless) SeekTo(ms int64) error {
	h.position = ms
	return nil
}

// Position son seek konumudur.
func (h *Headless) Position() int64 { return h.position }

func (h *Headless) Close() error { return nil }
