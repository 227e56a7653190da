package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/madang-lab/madang/script"
)

var preprocessOut string

var preprocessCmd = &cobra.Command{
	Use:   "preprocess <script_file>",
	Short: "Rewrites a script into canonical statement form",
	Long: `The preprocess command runs the full rewrite pipeline over a script
file and prints the canonical text. Diagnostics (malformed pragmas, blocks
left unconverted) go to stderr and never fail the command.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		res := script.Preprocess(string(src))
		printDiagnostics(res.Diagnostics)
		if preprocessOut != "" {
			return os.WriteFile(preprocessOut, []byte(res.Text), 0644)
		}
		fmt.Println(res.Text)
		return nil
	},
}

func printDiagnostics(diags []script.Diagnostic) {
	warn := color.New(color.FgYellow)
	errc := color.New(color.FgRed)
	for _, d := range diags {
		out := warn
		if d.Level == script.LevelError {
			out = errc
		}
		out.Fprintln(os.Stderr, d.String())
	}
}

func init() {
	AddCommand(preprocessCmd)
	preprocessCmd.Flags().StringVarP(&preprocessOut, "output", "o", "", "Write canonical text to a file instead of stdout")
}
