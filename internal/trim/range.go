package trim

import (
	"log/slog"

	"github.com/mlihgenel/gifclip/internal/timecode"
)

// Boundary trim penceresinin hangi ucunun değiştiğini belirtir.
type Boundary int

const (
	BoundaryStart Boundary = iota
	BoundaryEnd
)

func (b Boundary) String() string {
	if b == BoundaryEnd {
		return "end"
	}
	return "start"
}

// Source değişikliğin hangi giriş kontrolünden geldiğini belirtir.
type Source int

const (
	// SourceReset yeni süre bilindiğinde (dosya yükleme) üretilir; iki kontrol de yenilenir.
	SourceReset Source = iota
	// SourcePosition slider kaynaklıdır; eşlenen zaman alanı yenilenir.
	SourcePosition
	// SourceTimeCode zaman alanı kaynaklıdır; eşlenen slider yenilenir.
	SourceTimeCode
)

// Change dinleyicilere iletilen tek bir sınır güncellemesidir.
type Change struct {
	Boundary Boundary
	Ms       int64
	Source   Source
}

// Listener model değişikliklerini alan fonksiyondur.
type Listener func(Change)

// Seeker oynatma tarafına konum atlatma isteği gönderir.
type Seeker interface {
	SeekTo(ms int64) error
}

// Option Range davranışını ayarlar.
type Option func(*Range)

// WithSeekOnEnd bitiş sınırı değiştiğinde önizlemenin atlatılıp atlatılmayacağını belirler.
// Varsayılan açıktır.
func WithSeekOnEnd(enabled bool) Option {
	return func(r *Range) { r.seekOnEnd = enabled }
}

// WithLogger seek hatalarının yazılacağı logger'ı ayarlar.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Range) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// Range seçili trim penceresinin tek doğruluk kaynağıdır.
//
// start < end koşulu setter'larda zorlanmaz; export öncesi Valid ile kontrol edilir.
// Dinleyiciler çalışırken gelen setter çağrıları yok sayılır, böylece bir
// kontrolün yansıtılan değeri yeni bir kullanıcı değişikliği gibi görünmez.
type Range struct {
	durationMs int64
	startMs    int64
	endMs      int64
	known      bool

	seeker    Seeker
	seekOnEnd bool
	logger    *slog.Logger

	listeners   []subscription
	nextID      int
	dispatching bool
	reentered   int
}

type subscription struct {
	id int
	fn Listener
}

// New boş bir trim modeli oluşturur. seeker nil olabilir.
func New(seeker Seeker, opts ...Option) *Range {
	r := &Range{
		seeker:    seeker,
		seekOnEnd: true,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Subscribe bir dinleyici ekler; dönen fonksiyon kaydı siler.
func (r *Range) Subscribe(l Listener) func() {
	id := r.nextID
	r.nextID++
	r.listeners = append(r.listeners, subscription{id: id, fn: l})
	return func() {
		for i, sub := range r.listeners {
			if sub.id == id {
				r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
				return
			}
		}
	}
}

func (r *Range) Start() int64    { return r.startMs }
func (r *Range) End() int64      { return r.endMs }
func (r *Range) Duration() int64 { return r.durationMs }
func (r *Range) Known() bool     { return r.known }

// Length seçili pencerenin uzunluğudur; geçersiz aralıkta negatif olabilir.
func (r *Range) Length() int64 { return r.endMs - r.startMs }

// Valid export için end > start koşulunu kontrol eder.
func (r *Range) Valid() bool { return r.endMs > r.startMs }

// Reentered dinleyici içinden yapılıp yok sayılan setter çağrılarının sayısıdır.
func (r *Range) Reentered() int { return r.reentered }

// StartTimeCode başlangıcı zaman kodu olarak döner.
func (r *Range) StartTimeCode() timecode.TimeCode { return timecode.FromMilliseconds(r.startMs) }

// EndTimeCode bitişi zaman kodu olarak döner.
func (r *Range) EndTimeCode() timecode.TimeCode { return timecode.FromMilliseconds(r.endMs) }

// Reset modeli dosya yüklenmemiş haline döndürür.
func (r *Range) Reset() {
	if r.dispatching {
		r.reentered++
		return
	}
	r.durationMs, r.startMs, r.endMs, r.known = 0, 0, 0, false
}

// SetDuration medya süresini ayarlar ve pencereyi [0, duration] yapar.
func (r *Range) SetDuration(ms int64) {
	if r.dispatching {
		r.reentered++
		return
	}
	r.durationMs = ms
	r.startMs = 0
	r.endMs = ms
	r.known = true
	r.notify(
		Change{Boundary: BoundaryStart, Ms: 0, Source: SourceReset},
		Change{Boundary: BoundaryEnd, Ms: ms, Source: SourceReset},
	)
}

// SetStartFromPosition slider konumundan başlangıcı ayarlar ve önizlemeyi oraya atlatır.
func (r *Range) SetStartFromPosition(ms int64) {
	r.set(BoundaryStart, ms, SourcePosition)
}

// SetEndFromPosition slider konumundan bitişi ayarlar; seekOnEnd açıksa önizlemeyi atlatır.
func (r *Range) SetEndFromPosition(ms int64) {
	r.set(BoundaryEnd, ms, SourcePosition)
}

// SetStartFromTimeCode zaman alanından başlangıcı ayarlar.
func (r *Range) SetStartFromTimeCode(tc timecode.TimeCode) {
	r.set(BoundaryStart, tc.Total(), SourceTimeCode)
}

// SetEndFromTimeCode zaman alanından bitişi ayarlar.
func (r *Range) SetEndFromTimeCode(tc timecode.TimeCode) {
	r.set(BoundaryEnd, tc.Total(), SourceTimeCode)
}

func (r *Range) set(b Boundary, ms int64, src Source) {
	if r.dispatching {
		r.reentered++
		return
	}
	if b == BoundaryStart {
		r.startMs = ms
	} else {
		r.endMs = ms
	}
	// Kullanıcı eylemi başına tek seek; eşlenen kontrolün yenilenmesi tekrar seek etmez.
	if b == BoundaryStart || r.seekOnEnd {
		r.seek(ms)
	}
	r.notify(Change{Boundary: b, Ms: ms, Source: src})
}

func (r *Range) seek(ms int64) {
	if r.seeker == nil {
		return
	}
	if err := r.seeker.SeekTo(ms); err != nil {
		r.logger.Debug("preview seek failed", "position_ms", ms, "error", err)
	}
}

func (r *Range) notify(changes ...Change) {
	r.dispatching = true
	defer func() { r.dispatching = false }()
	for _, c := range changes {
		for _, sub := range r.listeners {
			sub.fn(c)
		}
	}
}
