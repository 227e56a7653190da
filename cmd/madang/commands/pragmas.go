package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/madang-lab/madang/script"
)

var pragmasJSON bool

var pragmasCmd = &cobra.Command{
	Use:   "pragmas <script_file>",
	Short: "Lists the directive lines of a script",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		res := script.Preprocess(string(src))
		printDiagnostics(res.Diagnostics)
		if pragmasJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res.Pragmas)
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "KIND\tLINE\tARGS")
		for _, p := range res.Pragmas {
			args, _ := json.Marshal(p.Args)
			fmt.Fprintf(w, "%s\t%d\t%s\n", p.Kind, p.Loc.Line+1, args)
		}
		return w.Flush()
	},
}

func init() {
	AddCommand(pragmasCmd)
	pragmasCmd.Flags().BoolVar(&pragmasJSON, "json", false, "Emit pragmas as JSON")
}
