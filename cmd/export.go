package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/gifclip/internal/export"
	"github.com/mlihgenel/gifclip/internal/timecode"
	"github.com/mlihgenel/gifclip/internal/trim"
	"github.com/mlihgenel/gifclip/internal/ui"
)

var (
	exportStart      string
	exportEnd        string
	exportResolution string
	exportFPS        int
	exportOutput     string
	exportDryRun     bool
)

// exportOptions export komutunun ham girdileridir.
type exportOptions struct {
	Video      string
	Start      string
	End        string
	Resolution string
	FPS        int
	Output     string
}

var exportCmd = &cobra.Command{
	Use:   "export <video>",
	Short: "Videonun bir aralığını GIF olarak dışa aktar",
	Long: `Etkileşimli kabuktaki ile aynı iki geçişli FFmpeg planını çalıştırır.

Zamanlar HH:mm:ss.zzz, HH:mm:ss, mm:ss veya saniye olarak verilebilir.
Çıktı: <output>/palette.png ve <output>/output.gif (üzerine yazılır).

Örnekler:
  gifclip export klip.mp4 --start 00:00:02 --end 00:00:07 --output ./gifs
  gifclip export klip.mp4 --start 1.5 --end 4 --resolution "SD (480p)" --fps 15 -o .
  gifclip export klip.mp4 --end 00:00:03.250 -o ./gifs --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := currentConfig()
		opts := exportOptions{
			Video:      args[0],
			Start:      exportStart,
			End:        exportEnd,
			Resolution: exportResolution,
			FPS:        exportFPS,
			Output:     exportOutput,
		}
		if opts.Resolution == "" {
			opts.Resolution = cfg.Resolution
		}
		if opts.FPS == 0 {
			opts.FPS = cfg.FPS
		}
		if opts.Output == "" {
			opts.Output = cfg.OutputDir
		}

		plan, err := buildExportPlan(opts)
		if err != nil {
			ui.PrintError(err.Error())
			return err
		}

		paths := resolveTools(cfg)
		binary := paths.ffmpeg
		if exportDryRun {
			if binary == "" {
				binary = "ffmpeg"
			}
			for _, pass := range plan.Passes() {
				fmt.Fprintln(ui.Out, pass.CommandLine(binary))
			}
			return nil
		}
		if binary == "" {
			err := errors.New("FFmpeg bulunamadı! Kurulum için: gifclip deps --install")
			ui.PrintError(err.Error())
			return err
		}

		ui.PrintInfo(fmt.Sprintf("%s → %s", filepath.Base(plan.Input), plan.GIFPath()))
		result, err := export.NewRunner(binary, appLogger).Run(cmd.Context(), plan)
		if err != nil {
			ui.PrintError(err.Error())
			return err
		}
		ui.PrintSuccess(fmt.Sprintf("GIF oluşturuldu: %s (%s)", result.GIFPath, result.SizeText()))
		ui.PrintDuration(result.Elapsed)
		return nil
	},
}

// buildExportPlan komut satırı girdilerini kabuktaki ile aynı modelden
// geçirerek plan üretir.
func buildExportPlan(opts exportOptions) (export.Plan, error) {
	if strings.TrimSpace(opts.End) == "" {
		return export.Plan{}, errors.New("--end gerekli")
	}
	if strings.TrimSpace(opts.Output) == "" {
		return export.Plan{}, errors.New("--output gerekli (veya yapılandırmada output_dir)")
	}
	if opts.FPS < export.MinFPS || opts.FPS > export.MaxFPS {
		return export.Plan{}, fmt.Errorf("fps %d-%d aralığında olmalı", export.MinFPS, export.MaxFPS)
	}

	start := strings.TrimSpace(opts.Start)
	if start == "" {
		start = "0"
	}
	startTC, err := timecode.Parse(start)
	if err != nil {
		return export.Plan{}, fmt.Errorf("--start: %w", err)
	}
	endTC, err := timecode.Parse(opts.End)
	if err != nil {
		return export.Plan{}, fmt.Errorf("--end: %w", err)
	}

	video, err := filepath.Abs(opts.Video)
	if err != nil {
		return export.Plan{}, err
	}
	if info, err := os.Stat(video); err != nil {
		return export.Plan{}, fmt.Errorf("video okunamadı: %w", err)
	} else if info.IsDir() {
		return export.Plan{}, fmt.Errorf("%s bir dizin", video)
	}
	output, err := filepath.Abs(opts.Output)
	if err != nil {
		return export.Plan{}, err
	}

	window := trim.New(nil)
	window.SetStartFromTimeCode(startTC)
	window.SetEndFromTimeCode(endTC)

	params, err := export.Build(window, opts.Resolution, opts.FPS)
	if err != nil {
		return export.Plan{}, err
	}
	return export.NewPlan(params, video, output), nil
}

func init() {
	exportCmd.Flags().StringVarP(&exportStart, "start", "s", "0", "Başlangıç zamanı")
	exportCmd.Flags().StringVarP(&exportEnd, "end", "e", "", "Bitiş zamanı")
	exportCmd.Flags().StringVarP(&exportResolution, "resolution", "r", "", "Çözünürlük etiketi (bkz. gifclip resolutions)")
	exportCmd.Flags().IntVar(&exportFPS, "fps", 0, "Kare hızı (1-30, varsayılan yapılandırmadan)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Çıktı klasörü (mevcut olmalı)")
	exportCmd.Flags().BoolVar(&exportDryRun, "dry-run", false, "FFmpeg komutlarını yazdır, çalıştırma")
	rootCmd.AddCommand(exportCmd)
}
