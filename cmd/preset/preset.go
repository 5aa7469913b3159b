package preset

import (
	"fmt"
	"strconv"

	"github.com/costumeworks/suitfan/cmd/global"
	"github.com/costumeworks/suitfan/internal/presets"
	"github.com/costumeworks/suitfan/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var Command = &cobra.Command{
	Use:              "preset",
	Short:            "Preset related commands",
	Long:             ``,
	TraverseChildren: true,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the built-in preset table to console",
	Run: func(cmd *cobra.Command, args []string) {
		tableConfig := &table.Config{
			ShowIndex:       false,
			Color:           !global.NoColor,
			AlternateColors: true,
			TitleColorCode:  ansi.ColorCode("white+buf"),
			AltColorCodes: []string{
				ansi.ColorCode("white"),
				ansi.ColorCode("white:236"),
			},
		}

		var rows [][]string
		for idx, p := range presets.Table {
			rows = append(rows, []string{
				strconv.Itoa(idx),
				fmt.Sprintf("%.0f%%", p.Fan.Float()*100),
				fmt.Sprintf("%.0f%%", p.Dummy.Float()*100),
				fmt.Sprintf("%.2f / %.2f / %.2f", p.R.Float(), p.G.Float(), p.B.Float()),
			})
		}

		presetTable := table.Table{
			Headers: []string{"Index", "Fan", "Dummy", "R / G / B"},
			Rows:    rows,
		}

		err := presetTable.WriteTable(cmd.OutOrStdout(), tableConfig)
		if err != nil {
			ui.Fatal("Error printing preset table: %v", err)
		}
	},
}

func init() {
	Command.AddCommand(listCmd)
}
