package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mlihgenel/gifclip/internal/config"
	"github.com/mlihgenel/gifclip/internal/deps"
	"github.com/mlihgenel/gifclip/internal/export"
	"github.com/mlihgenel/gifclip/internal/playback"
	"github.com/mlihgenel/gifclip/internal/probe"
	"github.com/mlihgenel/gifclip/internal/ui"
	"github.com/mlihgenel/gifclip/internal/watch"
)

// ========================================
// Renk Paleti ve Stiller
// ========================================

var (
	primaryColor   = lipgloss.Color("#7C3AED") // Mor
	secondaryColor = lipgloss.Color("#06B6D4") // Cyan
	accentColor    = lipgloss.Color("#10B981") // Yeşil
	warningColor   = lipgloss.Color("#F59E0B") // Sarı
	dangerColor    = lipgloss.Color("#EF4444") // Kırmızı
	textColor      = lipgloss.Color("#E2E8F0") // Açık gri
	dimTextColor   = lipgloss.Color("#64748B") // Koyu gri

	gradientColors = []lipgloss.Color{
		"#818CF8", "#A78BFA", "#C084FC", "#E879F9", "#F472B6",
	}

	menuTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(primaryColor).
			Padding(0, 2).
			MarginBottom(1)

	selectedItemStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(secondaryColor).
				PaddingLeft(2)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(textColor).
			PaddingLeft(4)

	dimStyle = lipgloss.NewStyle().
			Foreground(dimTextColor)

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(dangerColor)

	infoStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	pathStyle = lipgloss.NewStyle().
			Foreground(warningColor).
			Bold(true)

	resultBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(1, 3).
			MarginTop(1)

	selectedFileStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(accentColor).
				PaddingLeft(2)

	folderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(warningColor)
)

// ========================================
// State Machine
// ========================================

type screenState int

const (
	stateMainMenu screenState = iota
	stateVideoBrowser
	stateFolderBrowser
	stateTrimEditor
	stateOptions
	statePlanPreview
	stateConverting
	stateExportDone
	stateDependencies
	stateAbout
)

const (
	menuOpenVideo = iota
	menuTrimEditor
	menuOutputFolder
	menuDependencies
	menuAbout
	menuQuit
)

// shellEnv kabuğun dış dünyaya bağlandığı bileşenlerdir.
type shellEnv struct {
	cfg        *config.Config
	logger     *slog.Logger
	ffmpegPath string
	controller *playback.Controller
	runner     *export.Runner
	watcher    *watch.DirWatcher // nil olabilir
	statuses   []deps.Status
}

// ========================================
// Model
// ========================================

type interactiveModel struct {
	state  screenState
	cursor int

	choices     []string
	choiceIcons []string
	choiceDescs []string
	menuMsg     string

	env     *shellEnv
	session *session

	// Dosya tarayıcı
	browserDir   string
	browserItems []browserEntry
	folderReturn screenState

	// Kırpma düzenleyici
	trimFocus   int
	trimStepIdx int
	trimErr     string

	// Seçenekler
	resolutionIdx int
	fps           int
	optionsErr    string

	// Dışa aktarma
	plan      export.Plan
	spinner   spinner.Model
	result    export.Result
	resultErr error

	initialVideo string

	width  int
	height int

	quitting bool
}

type browserEntry struct {
	name  string
	path  string
	isDir bool
}

// Mesajlar
type videoLoadedMsg struct {
	path string
	err  error
}

type playbackEventMsg playback.Event

type dirChangedMsg struct{}

type exportDoneMsg struct {
	result export.Result
	err    error
}

func newInteractiveModel(env *shellEnv, initialVideo string) interactiveModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Bold(true).Foreground(secondaryColor)

	resolutionIdx := 0
	for i, label := range export.ResolutionLabels() {
		if label == env.cfg.Resolution {
			resolutionIdx = i
		}
	}

	m := interactiveModel{
		env:           env,
		session:       newSession(env.controller, env.cfg, env.logger),
		browserDir:    startBrowserDir(initialVideo),
		resolutionIdx: resolutionIdx,
		fps:           env.cfg.FPS,
		spinner:       s,
		initialVideo:  initialVideo,
		width:         80,
		height:        24,
	}
	return m.goToMainMenu()
}

func startBrowserDir(initialVideo string) string {
	if initialVideo != "" {
		if abs, err := filepath.Abs(initialVideo); err == nil {
			return filepath.Dir(abs)
		}
	}
	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}
	return getHomeDir()
}

// ========================================
// bubbletea Interface
// ========================================

func (m interactiveModel) Init() tea.Cmd {
	cmds := []tea.Cmd{waitPlaybackEvent(m.env.controller.Events())}
	if m.env.watcher != nil {
		cmds = append(cmds, waitDirChange(m.env.watcher.Events()))
	}
	if m.initialVideo != "" {
		if abs, err := filepath.Abs(m.initialVideo); err == nil {
			m.session.begin(abs)
			cmds = append(cmds, loadVideoCmd(m.env.controller, abs))
		}
	}
	return tea.Batch(cmds...)
}

func waitPlaybackEvent(events <-chan playback.Event) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-events
		if !ok {
			return nil
		}
		return playbackEventMsg(evt)
	}
}

func waitDirChange(events <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return dirChangedMsg{}
	}
}

func loadVideoCmd(controller *playback.Controller, path string) tea.Cmd {
	return func() tea.Msg {
		return videoLoadedMsg{path: path, err: controller.Load(context.Background(), path)}
	}
}

func (m interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if m.state != stateConverting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case videoLoadedMsg:
		m.session.finishLoad(msg.path, msg.err)
		if msg.err != nil {
			m.env.logger.Warn("video load failed", "path", msg.path, "error", msg.err)
		}
		return m, nil

	case playbackEventMsg:
		if msg.Kind == playback.DurationKnown && msg.Path == m.session.videoPath {
			m.session.trim.SetDuration(msg.DurationMs)
			m.trimErr = ""
		}
		return m, waitPlaybackEvent(m.env.controller.Events())

	case dirChangedMsg:
		if m.state == stateVideoBrowser || m.state == stateFolderBrowser {
			m.loadBrowserItems()
			if max := m.getMaxCursor(); m.cursor > max {
				m.cursor = max
			}
		}
		var next tea.Cmd
		if m.env.watcher != nil {
			next = waitDirChange(m.env.watcher.Events())
		}
		return m, next

	case exportDoneMsg:
		m.state = stateExportDone
		m.result = msg.result
		m.resultErr = msg.err
		return m, nil

	case tea.MouseMsg:
		if m.state == stateTrimEditor && msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.togglePlayback()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.state == stateConverting {
			return m, nil
		}
		if m.state == stateTrimEditor {
			return m.updateTrimEditor(msg)
		}
		if m.state == stateOptions {
			if next, handled := m.updateOptions(msg); handled {
				return next, nil
			}
		}

		switch msg.String() {
		case "q":
			if m.state == stateMainMenu {
				m.quitting = true
				return m, tea.Quit
			}
			return m.goToMainMenu(), nil

		case "esc":
			return m.goBack(), nil

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}

		case "down", "j":
			if m.cursor < m.getMaxCursor() {
				m.cursor++
			}

		case "enter":
			return m.handleEnter()
		}
	}

	return m, nil
}

func (m interactiveModel) getMaxCursor() int {
	switch m.state {
	case stateVideoBrowser:
		return len(m.browserItems) - 1
	case stateFolderBrowser:
		return len(m.browserItems) // +1 "Bu klasörü seç"
	case stateOptions:
		return optionRowCount - 1
	case stateMainMenu:
		return len(m.choices) - 1
	default:
		return 0
	}
}

func (m interactiveModel) View() string {
	if m.quitting {
		return gradientText("  👋 Görüşürüz!", gradientColors) + "\n\n"
	}

	switch m.state {
	case stateMainMenu:
		return m.viewMainMenu()
	case stateVideoBrowser:
		return m.viewBrowser(" ◆ Video Seçin ", false)
	case stateFolderBrowser:
		return m.viewBrowser(" ◆ Çıktı Klasörü Seçin ", true)
	case stateTrimEditor:
		return m.viewTrimEditor()
	case stateOptions:
		return m.viewOptions()
	case statePlanPreview:
		return m.viewPlanPreview()
	case stateConverting:
		return m.viewConverting()
	case stateExportDone:
		return m.viewExportDone()
	case stateDependencies:
		return m.viewDependencies()
	case stateAbout:
		return m.viewAbout()
	default:
		return ""
	}
}

// ========================================
// İşlem Mantığı
// ========================================

func (m interactiveModel) handleEnter() (tea.Model, tea.Cmd) {
	switch m.state {
	case stateMainMenu:
		m.menuMsg = ""
		switch m.cursor {
		case menuOpenVideo:
			return m.goToBrowser(stateVideoBrowser), nil
		case menuTrimEditor:
			if m.session.videoPath == "" {
				m.menuMsg = "Önce bir video açın."
				return m, nil
			}
			return m.goToTrimEditor(), nil
		case menuOutputFolder:
			m.folderReturn = stateMainMenu
			return m.goToBrowser(stateFolderBrowser), nil
		case menuDependencies:
			m.state = stateDependencies
			m.cursor = 0
			return m, nil
		case menuAbout:
			m.state = stateAbout
			m.cursor = 0
			return m, nil
		case menuQuit:
			m.quitting = true
			return m, tea.Quit
		}

	case stateVideoBrowser:
		if m.cursor < 0 || m.cursor >= len(m.browserItems) {
			return m, nil
		}
		item := m.browserItems[m.cursor]
		if item.isDir {
			m.enterDir(item.path)
			return m, nil
		}
		m.session.begin(item.path)
		m.trimErr = ""
		m.env.logger.Info("video selected", "path", item.path)
		return m.goToTrimEditor(), loadVideoCmd(m.env.controller, item.path)

	case stateFolderBrowser:
		if m.cursor < len(m.browserItems) {
			m.enterDir(m.browserItems[m.cursor].path)
			return m, nil
		}
		m.session.outputFolder = m.browserDir
		m.optionsErr = ""
		m.state = m.folderReturn
		m.cursor = 0
		if m.state == stateMainMenu {
			return m.goToMainMenu(), nil
		}
		if m.state == stateOptions {
			m.cursor = optionOutputFolder
		}
		return m, nil

	case stateOptions:
		if m.cursor == optionOutputFolder {
			m.folderReturn = stateOptions
			if m.session.outputFolder != "" {
				m.browserDir = m.session.outputFolder
			}
			return m.goToBrowser(stateFolderBrowser), nil
		}
		return m.preparePlan(), nil

	case statePlanPreview:
		m.state = stateConverting
		m.resultErr = nil
		m.result = export.Result{}
		return m, tea.Batch(m.spinner.Tick, m.doExport())

	case stateExportDone:
		return m.goToTrimEditor(), nil

	case stateDependencies, stateAbout:
		return m.goToMainMenu(), nil
	}

	return m, nil
}

func (m interactiveModel) goToMainMenu() interactiveModel {
	m.state = stateMainMenu
	m.cursor = 0
	m.browserItems = nil
	m.choices = []string{
		"Video Aç",
		"Kırp ve GIF Oluştur",
		"Çıktı Klasörü",
		"Sistem Kontrolü",
		"Hakkında",
		"Çıkış",
	}
	m.choiceIcons = []string{"🎬", "✂️", "📁", "🔧", "ℹ️", "👋"}
	m.choiceDescs = []string{
		"Önizlenecek videoyu seç",
		"Başlangıç/bitiş noktalarını ayarla ve GIF üret",
		"palette.png ve output.gif'in yazılacağı klasör",
		"FFmpeg, FFprobe ve mpv durumu",
		"gifclip hakkında",
		"Uygulamadan çık",
	}
	return m
}

func (m interactiveModel) goBack() interactiveModel {
	switch m.state {
	case stateFolderBrowser:
		m.state = m.folderReturn
		m.cursor = 0
		if m.state == stateMainMenu {
			return m.goToMainMenu()
		}
		return m
	case stateOptions:
		return m.goToTrimEditor()
	case statePlanPreview:
		m.state = stateOptions
		m.cursor = 0
		return m
	case stateExportDone:
		return m.goToTrimEditor()
	default:
		return m.goToMainMenu()
	}
}

func (m interactiveModel) doExport() tea.Cmd {
	runner := m.env.runner
	plan := m.plan
	return func() tea.Msg {
		result, err := runner.Run(context.Background(), plan)
		return exportDoneMsg{result: result, err: err}
	}
}

// ========================================
// Ekranlar
// ========================================

func (m interactiveModel) viewMainMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(gradientText("  gifclip", gradientColors))
	b.WriteString(lipgloss.NewStyle().Foreground(dimTextColor).Italic(true).Render(fmt.Sprintf("  v%s  •  Videodan GIF kırpıcı", appVersion)))
	b.WriteString("\n\n")
	b.WriteString(menuTitleStyle.Render(" ◆ Ana Menü "))
	b.WriteString("\n\n")

	for i, choice := range m.choices {
		icon := m.choiceIcons[i]
		if i == m.cursor {
			b.WriteString(selectedItemStyle.Render(fmt.Sprintf("▸ %s  %s", icon, choice)))
			b.WriteString("\n")
			if i < len(m.choiceDescs) && m.choiceDescs[i] != "" {
				b.WriteString(lipgloss.NewStyle().PaddingLeft(7).Foreground(dimTextColor).Italic(true).Render(m.choiceDescs[i]))
				b.WriteString("\n")
			}
		} else {
			b.WriteString(normalItemStyle.Render(fmt.Sprintf("  %s  %s", icon, choice)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	if m.session.videoPath != "" {
		b.WriteString(infoStyle.Render(fmt.Sprintf("  🎬 Video: %s", shortenPath(m.session.videoPath))))
		b.WriteString("\n")
	}
	folder := "seçilmedi"
	if m.session.outputFolder != "" {
		folder = shortenPath(m.session.outputFolder)
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("  💾 Çıktı: %s", folder)))
	b.WriteString("\n")
	if m.menuMsg != "" {
		b.WriteString(errorStyle.Render("  " + m.menuMsg))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  ↑↓ Gezin  •  Enter Seç  •  q Çıkış"))
	b.WriteString("\n")
	return b.String()
}

func (m interactiveModel) viewConverting() string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(secondaryColor).Render(fmt.Sprintf("  %s GIF oluşturuluyor", m.spinner.View())))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  🎬 %s → %s", filepath.Base(m.plan.Input), shortenPath(m.plan.GIFPath()))))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  1/2 palet üretimi, 2/2 palet ile kodlama"))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("  ⏳ İşlem devam ediyor, lütfen bekleyin..."))
	b.WriteString("\n")
	return b.String()
}

func (m interactiveModel) viewExportDone() string {
	var b strings.Builder
	b.WriteString("\n")

	if m.resultErr != nil {
		content := errorStyle.Render("  ❌ GIF Oluşturulamadı") + "\n\n"
		var failure *export.ToolFailureError
		switch {
		case errors.As(m.resultErr, &failure):
			content += fmt.Sprintf("  Geçiş: %s", failure.Pass)
			if failure.ExitCode > 0 {
				content += fmt.Sprintf("  •  Çıkış kodu: %d", failure.ExitCode)
			}
			content += "\n"
			if out := strings.TrimSpace(failure.Output); out != "" {
				content += "\n" + dimStyle.Render(indentLines(lastLines(out, 8), "  "))
			} else if failure.Err != nil {
				content += "  Hata: " + failure.Err.Error()
			}
		case errors.Is(m.resultErr, export.ErrExportInProgress):
			content += "  Bu klasöre zaten bir dışa aktarma yapılıyor."
		default:
			content += fmt.Sprintf("  Hata: %s", m.resultErr.Error())
		}
		b.WriteString(resultBoxStyle.Render(content))
	} else {
		content := successStyle.Render("  ✅ GIF Oluşturuldu!") + "\n\n"
		content += fmt.Sprintf("  📄 Çıktı:  %s\n", shortenPath(m.result.GIFPath))
		content += fmt.Sprintf("  📦 Boyut:  %s\n", m.result.SizeText())
		content += fmt.Sprintf("  ⏱️  Süre:   %s", ui.FormatDuration(m.result.Elapsed))
		b.WriteString(resultBoxStyle.Render(content))
	}

	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("  Enter Düzenleyiciye dön  •  q Ana Menü"))
	b.WriteString("\n")
	return b.String()
}

func (m interactiveModel) viewDependencies() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(" ◆ Sistem Kontrolü "))
	b.WriteString("\n\n")
	b.WriteString(statusTable(m.env.statuses))
	b.WriteString("\n\n")
	if missing := deps.Missing(m.env.statuses); len(missing) > 0 {
		b.WriteString(errorStyle.Render(fmt.Sprintf("  Eksik: %s  •  Kurulum: gifclip deps --install", strings.Join(missing, ", "))))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("  Enter/Esc Ana Menü"))
	b.WriteString("\n")
	return b.String()
}

func (m interactiveModel) viewAbout() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(" ◆ Hakkında "))
	b.WriteString("\n\n")
	lines := []string{
		fmt.Sprintf("gifclip v%s", appVersion),
		"",
		"Bir videonun seçilen aralığını palet optimizasyonlu GIF'e çevirir.",
		"Önizleme mpv, süre bilgisi ffprobe, dönüştürme FFmpeg ile yapılır.",
		"",
		"Çıktı: <klasör>/palette.png ve <klasör>/output.gif (her seferinde üzerine yazılır)",
	}
	b.WriteString(resultBoxStyle.Render(strings.Join(lines, "\n")))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("  Enter/Esc Ana Menü"))
	b.WriteString("\n")
	return b.String()
}

// ========================================
// Yardımcı fonksiyonlar
// ========================================

func getHomeDir() string {
	u, err := user.Current()
	if err != nil {
		return "/"
	}
	return u.HomeDir
}

func shortenPath(path string) string {
	home := getHomeDir()
	if home != "/" && strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}

func gradientText(text string, colors []lipgloss.Color) string {
	if len(colors) == 0 {
		return text
	}
	var result strings.Builder
	for i, r := range []rune(text) {
		style := lipgloss.NewStyle().Bold(true).Foreground(colors[i%len(colors)])
		result.WriteString(style.Render(string(r)))
	}
	return result.String()
}

func lastLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

func indentLines(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

// ========================================
// Giriş noktası
// ========================================

// RunInteractive bubbletea kabuğunu başlatır.
func RunInteractive(initialVideo string) error {
	cfg := currentConfig()
	logger := appLogger
	paths := resolveTools(cfg)

	engine, err := newEngine(cfg, paths.mpv, logger)
	if err != nil {
		return err
	}
	controller := playback.NewController(engine, probe.FFprobe{Binary: paths.ffprobe}, logger)
	defer controller.Close()

	env := &shellEnv{
		cfg:        cfg,
		logger:     logger,
		ffmpegPath: paths.ffmpeg,
		controller: controller,
		runner:     export.NewRunner(paths.ffmpeg, logger),
		statuses:   toolStatuses(cfg),
	}
	if w, err := watch.NewDirWatcher(); err == nil {
		env.watcher = w
		defer w.Close()
	} else {
		logger.Warn("directory watcher unavailable", "error", err)
	}

	p := tea.NewProgram(newInteractiveModel(env, initialVideo), tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}
