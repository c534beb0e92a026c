package ui

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// ANSI renk kodları
const (
	Reset  = "\033[0m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
)

const (
	IconSuccess = "✅"
	IconError   = "❌"
	IconWarning = "⚠️ "
	IconInfo    = "ℹ️ "
	IconVideo   = "🎬"
	IconTime    = "⏱️ "
)

// Out alt komutların yazdığı hedeftir; testlerde değiştirilir.
var Out io.Writer = os.Stdout

// PrintSuccess başarılı mesaj
func PrintSuccess(msg string) {
	fmt.Fprintf(Out, "%s %s%s%s\n", IconSuccess, Green, msg, Reset)
}

// PrintError hata mesajı
func PrintError(msg string) {
	fmt.Fprintf(Out, "%s %s%s%s\n", IconError, Red, msg, Reset)
}

// PrintWarning uyarı mesajı
func PrintWarning(msg string) {
	fmt.Fprintf(Out, "%s %s%s%s\n", IconWarning, Yellow, msg, Reset)
}

// PrintInfo bilgi mesajı
func PrintInfo(msg string) {
	fmt.Fprintf(Out, "%s %s%s%s\n", IconInfo, Blue, msg, Reset)
}

// PrintDuration süre bilgisi
func PrintDuration(d time.Duration) {
	fmt.Fprintf(Out, "%s  Süre: %s%s%s\n", IconTime, Cyan, FormatDuration(d), Reset)
}

// PrintTable başlık ve satırları yuvarlatılmış bir tablo olarak yazdırır.
func PrintTable(headers []string, rows [][]string) {
	if out := RenderTable(headers, rows); out != "" {
		fmt.Fprintln(Out, out)
	}
}

// RenderTable tabloyu metin olarak üretir; eksik hücreler boş kalır.
// Başlık verilmezse satırlar başlıksız çizilir.
func RenderTable(headers []string, rows [][]string) string {
	columns := len(headers)
	for _, row := range rows {
		if len(row) > columns {
			columns = len(row)
		}
	}
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.Style().Format.Header = text.FormatDefault

	if len(headers) > 0 {
		header := make(table.Row, columns)
		for i := range header {
			if i < len(headers) {
				header[i] = headers[i]
			} else {
				header[i] = ""
			}
		}
		tw.AppendHeader(header)
	}

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		configs = append(configs, table.ColumnConfig{Number: i + 1, AlignHeader: text.AlignLeft})
	}
	tw.SetColumnConfigs(configs)
	return tw.Render()
}

// FormatDuration süreyi okunabilir formata çevirir
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm %ds", minutes, seconds)
}
