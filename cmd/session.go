package cmd

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/mlihgenel/gifclip/internal/config"
	"github.com/mlihgenel/gifclip/internal/playback"
	"github.com/mlihgenel/gifclip/internal/timecode"
	"github.com/mlihgenel/gifclip/internal/trim"
)

// session açık video, çıktı klasörü ve kırpma durumunu tutar. Model
// kopyalansa da aynı session paylaşılır.
type session struct {
	videoPath    string
	outputFolder string
	loading      bool
	loadErr      error

	trim *trim.Range

	// Her sınır için slider konumu ve zaman alanı; eşlenen kontrol dinleyici
	// tarafından sessizce güncellenir.
	startSlider int64
	endSlider   int64
	startField  textinput.Model
	endField    textinput.Model
}

func newSession(controller *playback.Controller, cfg *config.Config, logger *slog.Logger) *session {
	s := &session{
		outputFolder: cfg.OutputDir,
		startField:   newTimeField("Başlangıç "),
		endField:     newTimeField("Bitiş     "),
	}
	s.trim = trim.New(controller,
		trim.WithSeekOnEnd(cfg.SeekOnEndEnabled()),
		trim.WithLogger(logger),
	)
	s.trim.Subscribe(s.reflect)
	return s
}

func newTimeField(prompt string) textinput.Model {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = "00:00:00.000"
	ti.CharLimit = len("00:00:00.000")
	ti.Width = 14
	ti.SetValue(timecode.FromMilliseconds(0).String())
	return ti
}

// begin yeni bir yüklemeyi başlatır; önceki seçim süre bilindiğinde sıfırlanır.
func (s *session) begin(path string) {
	s.videoPath = path
	s.loading = true
	s.loadErr = nil
}

func (s *session) finishLoad(path string, err error) {
	if path != s.videoPath {
		return
	}
	s.loading = false
	s.loadErr = err
	if err != nil {
		s.trim.Reset()
		s.reflect(trim.Change{Boundary: trim.BoundaryStart, Ms: 0, Source: trim.SourceReset})
		s.reflect(trim.Change{Boundary: trim.BoundaryEnd, Ms: 0, Source: trim.SourceReset})
	}
}

func (s *session) ready() bool {
	return s.videoPath != "" && !s.loading && s.loadErr == nil && s.trim.Known()
}

// reflect model değişikliğini yalnızca eşlenen kontrole yansıtır.
func (s *session) reflect(c trim.Change) {
	switch c.Source {
	case trim.SourcePosition:
		s.setField(c.Boundary, c.Ms)
	case trim.SourceTimeCode:
		s.setSlider(c.Boundary, c.Ms)
	default:
		s.setField(c.Boundary, c.Ms)
		s.setSlider(c.Boundary, c.Ms)
	}
}

func (s *session) field(b trim.Boundary) *textinput.Model {
	if b == trim.BoundaryStart {
		return &s.startField
	}
	return &s.endField
}

func (s *session) slider(b trim.Boundary) *int64 {
	if b == trim.BoundaryStart {
		return &s.startSlider
	}
	return &s.endSlider
}

func (s *session) setField(b trim.Boundary, ms int64) {
	if ms < 0 {
		ms = 0
	}
	s.field(b).SetValue(timecode.FromMilliseconds(ms).String())
}

// setSlider değeri slider aralığına [0, süre] sıkıştırır.
func (s *session) setSlider(b trim.Boundary, ms int64) {
	*s.slider(b) = clampMs(ms, s.trim.Duration())
}

// moveSlider slider'ı kaydırır ve modele konum kaynaklı değişiklik olarak iletir.
func (s *session) moveSlider(b trim.Boundary, delta int64) {
	pos := clampMs(*s.slider(b)+delta, s.trim.Duration())
	if pos == *s.slider(b) {
		return
	}
	*s.slider(b) = pos
	if b == trim.BoundaryStart {
		s.trim.SetStartFromPosition(pos)
	} else {
		s.trim.SetEndFromPosition(pos)
	}
}

// commitField zaman alanındaki metni modele iletir. Değer slider gibi
// [0, süre] aralığına sıkıştırılır; değişmemişse olay üretilmez.
func (s *session) commitField(b trim.Boundary) error {
	tc, err := timecode.Parse(s.field(b).Value())
	if err != nil {
		return err
	}
	ms := clampMs(tc.Total(), s.trim.Duration())
	current := s.trim.Start()
	if b == trim.BoundaryEnd {
		current = s.trim.End()
	}
	if ms == current {
		s.setField(b, current)
		return nil
	}
	if b == trim.BoundaryStart {
		s.trim.SetStartFromTimeCode(timecode.FromMilliseconds(ms))
	} else {
		s.trim.SetEndFromTimeCode(timecode.FromMilliseconds(ms))
	}
	s.setField(b, ms)
	return nil
}

// revertField düzenlenmiş ama onaylanmamış metni model değerine döndürür.
func (s *session) revertField(b trim.Boundary) {
	if b == trim.BoundaryStart {
		s.setField(b, s.trim.Start())
	} else {
		s.setField(b, s.trim.End())
	}
}

func clampMs(ms, max int64) int64 {
	if ms < 0 {
		return 0
	}
	if ms > max {
		return max
	}
	return ms
}
