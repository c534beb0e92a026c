package cmd

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mlihgenel/gifclip/internal/export"
	"github.com/mlihgenel/gifclip/internal/timecode"
)

const (
	optionResolution = iota
	optionFPS
	optionOutputFolder
	optionContinue
	optionRowCount
)

// updateOptions seçenek satırlarındaki sağ/sol ayarlarını işler. İşlenmeyen
// tuşlar genel gezinmeye bırakılır.
func (m interactiveModel) updateOptions(msg tea.KeyMsg) (interactiveModel, bool) {
	delta := 0
	switch msg.String() {
	case "left", "h", "-":
		delta = -1
	case "right", "l", "+":
		delta = 1
	default:
		return m, false
	}

	switch m.cursor {
	case optionResolution:
		n := len(export.ResolutionLabels())
		m.resolutionIdx = (m.resolutionIdx + delta + n) % n
	case optionFPS:
		m.fps += delta
		if m.fps < export.MinFPS {
			m.fps = export.MinFPS
		}
		if m.fps > export.MaxFPS {
			m.fps = export.MaxFPS
		}
	default:
		return m, false
	}
	return m, true
}

func (m interactiveModel) resolutionLabel() string {
	return export.ResolutionLabels()[m.resolutionIdx]
}

// preparePlan pencereyi doğrular ve ffmpeg planını oluşturur. Geçersiz
// aralık düzenleyicide gösterilir; hiçbir süreç başlatılmaz.
func (m interactiveModel) preparePlan() interactiveModel {
	params, err := export.Build(m.session.trim, m.resolutionLabel(), m.fps)
	if err != nil {
		var rangeErr *export.InvalidRangeError
		if errors.As(err, &rangeErr) {
			m.env.logger.Info("export rejected", "start_ms", rangeErr.StartMs, "end_ms", rangeErr.EndMs)
			m.trimErr = err.Error()
			return m.goToTrimEditor()
		}
		m.optionsErr = err.Error()
		return m
	}
	if strings.TrimSpace(m.session.outputFolder) == "" {
		m.optionsErr = "Önce çıktı klasörü seçin."
		m.cursor = optionOutputFolder
		return m
	}

	m.plan = export.NewPlan(params, m.session.videoPath, m.session.outputFolder)
	m.optionsErr = ""
	m.state = statePlanPreview
	m.cursor = 0
	return m
}

func (m interactiveModel) viewOptions() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(" ◆ GIF Seçenekleri "))
	b.WriteString("\n\n")

	tr := m.session.trim
	b.WriteString(infoStyle.Render(fmt.Sprintf("  Aralık: %s → %s", tr.StartTimeCode(), tr.EndTimeCode())))
	b.WriteString("\n\n")

	folder := "seçilmedi"
	if m.session.outputFolder != "" {
		folder = shortenPath(m.session.outputFolder)
	}
	rows := []string{
		fmt.Sprintf("Çözünürlük:  ◂ %s ▸", m.resolutionLabel()),
		fmt.Sprintf("FPS:         ◂ %d ▸", m.fps),
		fmt.Sprintf("Çıktı:       %s", folder),
		"Devam: komutları önizle",
	}
	for i, row := range rows {
		if i == m.cursor {
			b.WriteString(selectedItemStyle.Render("▸ " + row))
		} else {
			b.WriteString(normalItemStyle.Render(row))
		}
		b.WriteString("\n")
	}

	if m.optionsErr != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("  Hata: " + m.optionsErr))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  ←/→ Değer değiştir (FPS %d-%d)  •  Enter Seç  •  Esc Düzenleyici", export.MinFPS, export.MaxFPS)))
	b.WriteString("\n")
	return b.String()
}

func (m interactiveModel) viewPlanPreview() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(" ◆ Dönüştürme Planı "))
	b.WriteString("\n\n")

	p := m.plan.Params
	b.WriteString(infoStyle.Render(fmt.Sprintf("  Başlangıç: %ss  •  Süre: %ss  •  %dp  •  %d fps",
		p.StartArg(), p.DurationArg(), p.VerticalResolution, p.FPS)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  Pencere: %s → %s",
		timecode.FromMilliseconds(m.session.trim.Start()), timecode.FromMilliseconds(m.session.trim.End()))))
	b.WriteString("\n\n")

	binary := m.env.ffmpegPath
	if binary == "" {
		binary = "ffmpeg"
	}
	for i, pass := range m.plan.Passes() {
		b.WriteString(pathStyle.Render(fmt.Sprintf("  %d/2 %s", i+1, pass.Name)))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  " + pass.CommandLine(binary)))
		b.WriteString("\n\n")
	}

	if m.env.ffmpegPath == "" {
		b.WriteString(errorStyle.Render("  ⚠ FFmpeg bulunamadı; dönüştürme başarısız olacak. (gifclip deps --install)"))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("  palette.png ve output.gif mevcutsa üzerine yazılır."))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("  Enter Dönüştür  •  Esc Seçenekler"))
	b.WriteString("\n")
	return b.String()
}
