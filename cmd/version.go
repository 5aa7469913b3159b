package cmd

import (
	"github.com/costumeworks/suitfan/internal/ui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of suitfan",
	Long:  `All software has versions. This is suitfan's`,
	Run: func(cmd *cobra.Command, args []string) {
		ui.Println("0.1.0")
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
