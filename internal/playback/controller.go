package playback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrNoMedia yüklü medya yokken oynatma komutu verildiğinde döner.
var ErrNoMedia = errors.New("yüklü video yok")

// MediaLoadError oynatma motoru dosyayı açamadığında döner.
type MediaLoadError struct {
	Path string
	Err  error
}

func (e *MediaLoadError) Error() string {
	return fmt.Sprintf("video açılamadı (%s): %v", e.Path, e.Err)
}

func (e *MediaLoadError) Unwrap() error { return e.Err }

// Engine harici oynatma motorudur (ör. mpv).
type Engine interface {
	Open(ctx context.Context, path string) error
	Play() error
	Pause() error
	SeekTo(ms int64) error
	Close() error
}

// Prober dosya süresini milisaniye olarak çözer.
type Prober interface {
	Duration(ctx context.Context, path string) (int64, error)
}

// EventKind controller olay türüdür.
type EventKind int

const (
	DurationKnown EventKind = iota
)

// Event controller tarafından yayınlanan olaydır.
type Event struct {
	Kind       EventKind
	Path       string
	DurationMs int64
}

// Controller yüklü dosyaya bağlı oturum durumunu tutar ve motoru sarar.
type Controller struct {
	engine Engine
	prober Prober
	logger *slog.Logger

	mu      sync.Mutex
	path    string
	loaded  bool
	playing bool

	events chan Event
}

// NewController verilen motor ve süre çözücüyle bir controller oluşturur.
func NewController(engine Engine, prober Prober, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		engine: engine,
		prober: prober,
		logger: logger,
		events: make(chan Event, 4),
	}
}

// Events süre bilgisi gibi olayları taşıyan kanaldır.
func (c *Controller) Events() <-chan Event { return c.events }

// Load dosyayı açar, oynatmayı başlatır ve süre bilindiğinde tek bir
// DurationKnown olayı yayınlar. Hata durumunda yüklü medya kalmaz.
func (c *Controller) Load(ctx context.Context, path string) error {
	c.mu.Lock()
	c.loaded = false
	c.playing = false
	c.path = ""
	c.mu.Unlock()

	if err := c.engine.Open(ctx, path); err != nil {
		c.logger.Warn("media open failed", "path", path, "error", err)
		return &MediaLoadError{Path: path, Err: err}
	}

	durationMs, err := c.prober.Duration(ctx, path)
	if err != nil {
		c.logger.Warn("media duration unknown", "path", path, "error", err)
		_ = c.engine.Pause()
		return &MediaLoadError{Path: path, Err: err}
	}

	c.mu.Lock()
	c.path = path
	c.loaded = true
	c.mu.Unlock()

	if err := c.engine.Play(); err != nil {
		c.logger.Debug("autoplay failed", "path", path, "error", err)
	} else {
		c.mu.Lock()
		c.playing = true
		c.mu.Unlock()
	}

	c.logger.Info("media loaded", "path", path, "duration_ms", durationMs)
	c.emit(Event{Kind: DurationKnown, Path: path, DurationMs: durationMs})
	return nil
}

func (c *Controller) emit(evt Event) {
	select {
	case c.events <- evt:
	default:
		// Okunmamış eski olayı at, son yüklemenin olayı kalsın
		select {
		case <-c.events:
		default:
		}
		c.events <- evt
	}
}

// Play oynatmayı başlatır.
func (c *Controller) Play() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return ErrNoMedia
	}
	if err := c.engine.Play(); err != nil {
		return err
	}
	c.playing = true
	return nil
}

// Pause oynatmayı duraklatır.
func (c *Controller) Pause() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return ErrNoMedia
	}
	if err := c.engine.Pause(); err != nil {
		return err
	}
	c.playing = false
	return nil
}

// SeekTo önizlemeyi verilen konuma atlatır.
func (c *Controller) SeekTo(ms int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return ErrNoMedia
	}
	return c.engine.SeekTo(ms)
}

// ToggleInteraction oynat/duraklat durumunu değiştirir.
func (c *Controller) ToggleInteraction() error {
	c.mu.Lock()
	playing := c.playing
	c.mu.Unlock()
	if playing {
		return c.Pause()
	}
	return c.Play()
}

// Playing oynatma durumunu döner.
func (c *Controller) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

// Loaded medyanın yüklü olup olmadığını döner.
func (c *Controller) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// Path yüklü dosyanın yoludur.
func (c *Controller) Path() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.path
}

// Close motoru kapatır.
func (c *Controller) Close() error {
	c.mu.Lock()
	c.loaded = false
	c.playing = false
	c.mu.Unlock()
	return c.engine.Close()
}
