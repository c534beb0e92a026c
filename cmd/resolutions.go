package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/gifclip/internal/export"
	"github.com/mlihgenel/gifclip/internal/ui"
)

var resolutionsCmd = &cobra.Command{
	Use:   "resolutions",
	Short: "Desteklenen GIF çözünürlüklerini listele",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ui.PrintTable([]string{"Etiket", "Yükseklik"}, resolutionRows(currentConfig().Resolution))
	},
}

func resolutionRows(current string) [][]string {
	var rows [][]string
	for _, label := range export.ResolutionLabels() {
		height, _ := export.ResolveResolution(label)
		name := label
		if label == current {
			name += " (varsayılan)"
		}
		rows = append(rows, []string{name, strconv.Itoa(height) + "px"})
	}
	return rows
}

func init() {
	rootCmd.AddCommand(resolutionsCmd)
}
