package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mlihgenel/gifclip/internal/timecode"
	"github.com/mlihgenel/gifclip/internal/trim"
)

// Düzenleyicide odaklanılabilen kontroller, ekrandaki sırayla.
const (
	focusStartSlider = iota
	focusStartField
	focusEndSlider
	focusEndField
	trimFocusCount
)

// sliderSteps ok tuşlarıyla yapılan kaydırma adımlarıdır (ms).
var sliderSteps = []int64{100, 500, 1000, 5000, 10000}

func (m interactiveModel) goToTrimEditor() interactiveModel {
	m.state = stateTrimEditor
	m.cursor = 0
	return m
}

func (m interactiveModel) trimStep() int64 {
	return sliderSteps[m.trimStepIdx]
}

func (m interactiveModel) focusedBoundary() (trim.Boundary, bool) {
	switch m.trimFocus {
	case focusStartSlider:
		return trim.BoundaryStart, false
	case focusStartField:
		return trim.BoundaryStart, true
	case focusEndSlider:
		return trim.BoundaryEnd, false
	default:
		return trim.BoundaryEnd, true
	}
}

func (m interactiveModel) updateTrimEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	b, isField := m.focusedBoundary()

	if isField {
		switch key {
		case "enter":
			m.commitField(b)
			return m, nil
		case "tab", "down":
			m.commitField(b)
			return m.moveTrimFocus(1)
		case "shift+tab", "up":
			m.commitField(b)
			return m.moveTrimFocus(-1)
		case "esc":
			m.session.revertField(b)
			m.trimErr = ""
			return m.goToMainMenu(), nil
		}
		field := m.session.field(b)
		var cmd tea.Cmd
		*field, cmd = field.Update(msg)
		return m, cmd
	}

	switch key {
	case "left", "h":
		m.moveSlider(b, -m.trimStep())
	case "right", "l":
		m.moveSlider(b, m.trimStep())
	case "[":
		if m.trimStepIdx > 0 {
			m.trimStepIdx--
		}
	case "]":
		if m.trimStepIdx < len(sliderSteps)-1 {
			m.trimStepIdx++
		}
	case " ", "space":
		m.togglePlayback()
	case "tab", "down", "j":
		return m.moveTrimFocus(1)
	case "shift+tab", "up", "k":
		return m.moveTrimFocus(-1)
	case "enter":
		return m.goToOptions(), nil
	case "esc", "q":
		return m.goToMainMenu(), nil
	}
	return m, nil
}

func (m interactiveModel) moveTrimFocus(delta int) (tea.Model, tea.Cmd) {
	if b, isField := m.focusedBoundary(); isField {
		m.session.field(b).Blur()
	}
	m.trimFocus = (m.trimFocus + delta + trimFocusCount) % trimFocusCount
	if b, isField := m.focusedBoundary(); isField {
		return m, m.session.field(b).Focus()
	}
	return m, nil
}

func (m *interactiveModel) moveSlider(b trim.Boundary, delta int64) {
	if !m.session.ready() {
		return
	}
	m.session.moveSlider(b, delta)
	m.trimErr = ""
}

func (m *interactiveModel) commitField(b trim.Boundary) {
	if !m.session.ready() {
		m.session.revertField(b)
		return
	}
	if err := m.session.commitField(b); err != nil {
		m.trimErr = "Geçersiz zaman: " + err.Error()
		return
	}
	m.trimErr = ""
}

// togglePlayback önizlemede oynat/duraklat yapar; boşluk tuşu ve fare
// tıklaması buraya bağlanır.
func (m *interactiveModel) togglePlayback() {
	if err := m.env.controller.ToggleInteraction(); err != nil {
		m.env.logger.Debug("toggle playback ignored", "error", err)
	}
}

func (m interactiveModel) goToOptions() interactiveModel {
	if !m.session.ready() {
		m.trimErr = "Video henüz hazır değil."
		return m
	}
	m.state = stateOptions
	m.cursor = 0
	m.optionsErr = ""
	return m
}

func (m interactiveModel) viewTrimEditor() string {
	var b strings.Builder
	s := m.session

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(" ◆ Kırpma Düzenleyici "))
	b.WriteString("\n\n")

	if s.videoPath == "" {
		b.WriteString(errorStyle.Render("  Açık video yok."))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("  Esc Ana Menü"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(infoStyle.Render(fmt.Sprintf("  Dosya: %s", filepath.Base(s.videoPath))))
	b.WriteString("\n")
	switch {
	case s.loading:
		b.WriteString(dimStyle.Render("  ⏳ Video yükleniyor..."))
	case s.loadErr != nil:
		b.WriteString(errorStyle.Render("  " + s.loadErr.Error()))
	case m.env.controller.Playing():
		b.WriteString(successStyle.Render("  ▶ Oynatılıyor"))
	default:
		b.WriteString(dimStyle.Render("  ⏸ Duraklatıldı"))
	}
	b.WriteString("\n")

	totalLabel := "bilinmiyor"
	if s.trim.Known() {
		totalLabel = timecode.FromMilliseconds(s.trim.Duration()).String()
	}
	b.WriteString(infoStyle.Render(fmt.Sprintf("  Video Süresi: %s", totalLabel)))
	b.WriteString("\n\n")

	barWidth := 64
	if m.width > 0 && m.width < 90 {
		barWidth = 42
	}
	b.WriteString("  ")
	b.WriteString(timelineBar(s.startSlider, s.endSlider, s.trim.Duration(), barWidth))
	b.WriteString("\n\n")

	b.WriteString(m.trimRow(focusStartSlider, fmt.Sprintf("Başlangıç slider  %s", timecode.FromMilliseconds(s.startSlider))))
	b.WriteString(m.trimRow(focusStartField, s.startField.View()))
	b.WriteString(m.trimRow(focusEndSlider, fmt.Sprintf("Bitiş slider      %s", timecode.FromMilliseconds(s.endSlider))))
	b.WriteString(m.trimRow(focusEndField, s.endField.View()))
	b.WriteString("\n")

	lengthLabel := "-"
	if s.trim.Valid() {
		lengthLabel = timecode.FromMilliseconds(s.trim.Length()).String()
	}
	b.WriteString(infoStyle.Render(fmt.Sprintf("  Aralık Süresi: %s", lengthLabel)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  Adım: %s", formatStep(m.trimStep()))))
	b.WriteString("\n")

	if m.trimErr != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("  Hata: " + m.trimErr))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  ←/→ Slider  •  Tab/↑↓ Odak  •  [ ] Adım  •  Boşluk/tık Oynat-Duraklat"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  Zaman alanında Enter onaylar  •  Slider'da Enter Devam  •  Esc Geri"))
	b.WriteString("\n")
	return b.String()
}

func (m interactiveModel) trimRow(focus int, content string) string {
	if m.trimFocus == focus {
		return selectedItemStyle.Render("▸ "+content) + "\n"
	}
	return normalItemStyle.Render(content) + "\n"
}

func formatStep(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	return fmt.Sprintf("%ds", ms/1000)
}

// timelineBar slider konumlarını süreye oranlayarak çizer.
func timelineBar(startMs, endMs, durationMs int64, width int) string {
	if width < 20 {
		width = 20
	}
	if durationMs <= 0 {
		durationMs = 1
	}

	pos := func(ms int64) int {
		p := int(ms * int64(width-1) / durationMs)
		if p < 0 {
			return 0
		}
		if p > width-1 {
			return width - 1
		}
		return p
	}
	startPos, endPos := pos(startMs), pos(endMs)
	lo, hi := startPos, endPos
	if lo > hi {
		lo, hi = hi, lo
	}

	rangeStyle := lipgloss.NewStyle().Foreground(accentColor)
	if startMs >= endMs {
		rangeStyle = lipgloss.NewStyle().Foreground(dangerColor)
	}
	baseStyle := lipgloss.NewStyle().Foreground(dimTextColor)
	markerStyle := lipgloss.NewStyle().Foreground(warningColor).Bold(true)

	var b strings.Builder
	b.WriteString(baseStyle.Render("["))
	for i := 0; i < width; i++ {
		switch {
		case i == startPos || i == endPos:
			b.WriteString(markerStyle.Render("◆"))
		case i > lo && i < hi:
			b.WriteString(rangeStyle.Render("━"))
		default:
			b.WriteString(baseStyle.Render("─"))
		}
	}
	b.WriteString(baseStyle.Render("]"))
	return b.String()
}
