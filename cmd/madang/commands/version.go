package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is stamped at build time via -ldflags.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Prints the madang version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("madang", Version)
	},
}

func init() {
	AddCommand(versionCmd)
}
