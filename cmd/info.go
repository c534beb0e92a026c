package cmd

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mlihgenel/gifclip/internal/probe"
	"github.com/mlihgenel/gifclip/internal/timecode"
	"github.com/mlihgenel/gifclip/internal/ui"
)

var infoCmd = &cobra.Command{
	Use:   "info <video>",
	Short: "Video hakkında ffprobe özeti göster",
	Long: `Videonun süresini, kapsayıcı formatını ve ilk video akışını gösterir.

Örnek:
  gifclip info klip.mp4`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := resolveTools(currentConfig())
		if paths.ffprobe == "" {
			err := fmt.Errorf("FFprobe bulunamadı! Kurulum için: gifclip deps --install")
			ui.PrintError(err.Error())
			return err
		}

		result, err := probe.Inspect(cmd.Context(), paths.ffprobe, args[0])
		if err != nil {
			ui.PrintError(err.Error())
			return err
		}
		ui.PrintTable([]string{"Alan", "Değer"}, infoRows(args[0], result))
		return nil
	},
}

func infoRows(path string, result probe.Result) [][]string {
	rows := [][]string{{"Dosya", path}}
	if result.Format.FormatName != "" {
		rows = append(rows, []string{"Format", result.Format.FormatName})
	}
	if ms, ok := result.DurationMs(); ok {
		rows = append(rows, []string{"Süre", timecode.FromMilliseconds(ms).String()})
	} else {
		rows = append(rows, []string{"Süre", "bilinmiyor"})
	}
	if size, err := strconv.ParseUint(result.Format.Size, 10, 64); err == nil {
		rows = append(rows, []string{"Boyut", humanize.Bytes(size)})
	}
	if rate, err := strconv.ParseInt(result.Format.BitRate, 10, 64); err == nil {
		rows = append(rows, []string{"Bit hızı", humanize.SI(float64(rate), "bit/s")})
	}
	if v, ok := result.Video(); ok {
		rows = append(rows,
			[]string{"Video codec", v.Codec},
			[]string{"Çözünürlük", fmt.Sprintf("%dx%d", v.Width, v.Height)},
		)
		if v.FPS > 0 {
			rows = append(rows, []string{"FPS", strconv.FormatFloat(v.FPS, 'f', 2, 64)})
		}
	}
	return rows
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
