package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/gifclip/internal/deps"
	"github.com/mlihgenel/gifclip/internal/installer"
	"github.com/mlihgenel/gifclip/internal/ui"
)

var depsInstall bool

var depsCmd = &cobra.Command{
	Use:   "deps",
	Short: "FFmpeg, FFprobe ve mpv durumunu göster",
	Long: `Harici araçların bulunup bulunmadığını ve sürümlerini gösterir.

--install ile eksik araçlar algılanan paket yöneticisiyle kurulur
(brew, apt, dnf, yum, pacman, choco, winget). FFprobe FFmpeg paketiyle gelir.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := currentConfig()
		statuses := toolStatuses(cfg)
		fmt.Fprintln(ui.Out, statusTable(statuses))

		if !depsInstall {
			if missing := deps.Missing(statuses); len(missing) > 0 {
				ui.PrintWarning("Eksik araçlar var. Kurmak için: gifclip deps --install")
			}
			return nil
		}

		packages := installTargets(statuses)
		if len(packages) == 0 {
			ui.PrintSuccess("Tüm araçlar kurulu.")
			return nil
		}
		for _, tool := range packages {
			ui.PrintInfo(fmt.Sprintf("%s kuruluyor...", tool))
			desc, err := installer.InstallTool(tool)
			if err != nil {
				ui.PrintError(err.Error())
				return err
			}
			appLogger.Info("tool installed", "tool", tool, "command", desc)
			ui.PrintSuccess(fmt.Sprintf("%s kuruldu (%s)", tool, desc))
		}
		return nil
	},
}

// installTargets eksik araçları kurulacak paketlere çevirir.
func installTargets(statuses []deps.Status) []string {
	seen := map[string]bool{}
	var targets []string
	for _, s := range statuses {
		if s.Available {
			continue
		}
		pkg := s.Name
		if pkg == "ffprobe" {
			pkg = "ffmpeg"
		}
		if !seen[pkg] {
			seen[pkg] = true
			targets = append(targets, pkg)
		}
	}
	return targets
}

func statusTable(statuses []deps.Status) string {
	rows := make([][]string, 0, len(statuses))
	for _, s := range statuses {
		state := "✅ hazır"
		if !s.Available {
			state = "❌ eksik"
			if s.Optional {
				state = "⚠️  eksik (isteğe bağlı)"
			}
		}
		detail := s.Version
		if !s.Available {
			detail = s.Detail
		}
		rows = append(rows, []string{s.Name, s.Description, state, s.Path, detail})
	}
	return ui.RenderTable([]string{"Araç", "Kullanım", "Durum", "Yol", "Sürüm / Ayrıntı"}, rows)
}

func init() {
	depsCmd.Flags().BoolVar(&depsInstall, "install", false, "Eksik araçları paket yöneticisiyle kur")
	rootCmd.AddCommand(depsCmd)
}
