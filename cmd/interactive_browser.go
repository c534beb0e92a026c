package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var videoExtensions = map[string]bool{
	".mp4": true, ".mov": true, ".mkv": true, ".avi": true,
	".webm": true, ".m4v": true, ".wmv": true, ".flv": true,
}

func isVideoFile(name string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(name))]
}

func (m interactiveModel) goToBrowser(state screenState) interactiveModel {
	m.state = state
	m.cursor = 0
	m.watchBrowserDir()
	m.loadBrowserItems()
	return m
}

func (m *interactiveModel) enterDir(dir string) {
	m.browserDir = dir
	m.cursor = 0
	m.watchBrowserDir()
	m.loadBrowserItems()
}

func (m *interactiveModel) watchBrowserDir() {
	if m.env.watcher == nil {
		return
	}
	if err := m.env.watcher.Switch(m.browserDir); err != nil {
		m.env.logger.Debug("directory watch failed", "dir", m.browserDir, "error", err)
	}
}

// loadBrowserItems dizini listeler; klasör seçicide yalnızca klasörler,
// video seçicide klasörler ve video dosyaları gösterilir.
func (m *interactiveModel) loadBrowserItems() {
	m.browserItems = nil

	entries, err := os.ReadDir(m.browserDir)
	if err != nil {
		return
	}

	parent := filepath.Dir(m.browserDir)
	if parent != m.browserDir {
		m.browserItems = append(m.browserItems, browserEntry{
			name:  ".. (üst dizin)",
			path:  parent,
			isDir: true,
		})
	}

	var dirs []browserEntry
	var files []browserEntry
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		fullPath := filepath.Join(m.browserDir, e.Name())
		if e.IsDir() {
			dirs = append(dirs, browserEntry{name: e.Name(), path: fullPath, isDir: true})
		} else if m.state == stateVideoBrowser && isVideoFile(e.Name()) {
			files = append(files, browserEntry{name: e.Name(), path: fullPath})
		}
	}
	sort.Slice(dirs, func(i, j int) bool { return strings.ToLower(dirs[i].name) < strings.ToLower(dirs[j].name) })
	sort.Slice(files, func(i, j int) bool { return strings.ToLower(files[i].name) < strings.ToLower(files[j].name) })

	m.browserItems = append(m.browserItems, dirs...)
	m.browserItems = append(m.browserItems, files...)
}

func (m interactiveModel) viewBrowser(title string, folderMode bool) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(menuTitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(pathStyle.Render(fmt.Sprintf("  📁 %s", shortenPath(m.browserDir))))
	b.WriteString("\n\n")

	if len(m.browserItems) == 0 && !folderMode {
		b.WriteString(errorStyle.Render("  Bu dizinde video dosyası veya klasör bulunamadı!"))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("  Esc Geri"))
		b.WriteString("\n")
		return b.String()
	}

	pageSize := 15
	startIdx := 0
	if m.cursor >= pageSize {
		startIdx = m.cursor - pageSize + 1
	}
	endIdx := startIdx + pageSize
	if endIdx > len(m.browserItems) {
		endIdx = len(m.browserItems)
	}

	for i := startIdx; i < endIdx; i++ {
		item := m.browserItems[i]
		switch {
		case item.isDir && i == m.cursor:
			b.WriteString(selectedItemStyle.Render(fmt.Sprintf("▸ 📁 %s/", item.name)))
		case item.isDir:
			b.WriteString(normalItemStyle.Render(fmt.Sprintf("  📁 %s/", folderStyle.Render(item.name))))
		case i == m.cursor:
			b.WriteString(selectedFileStyle.Render(fmt.Sprintf("▸ 🎬 %s", item.name)))
		default:
			b.WriteString(normalItemStyle.Render(fmt.Sprintf("  🎬 %s", item.name)))
		}
		b.WriteString("\n")
	}

	if folderMode {
		b.WriteString("\n")
		label := "✔ Bu klasörü seç"
		if m.cursor == len(m.browserItems) {
			b.WriteString(selectedFileStyle.Render("▸ " + label))
		} else {
			b.WriteString(normalItemStyle.Render("  " + label))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if len(m.browserItems) > pageSize {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  (%d-%d arası, toplam %d)", startIdx+1, endIdx, len(m.browserItems))))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render("  ↑↓ Gezin  •  Enter Seç/Gir  •  Esc Geri"))
	b.WriteString("\n")
	return b.String()
}
