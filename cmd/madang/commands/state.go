package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/madang-lab/madang/state"
	"github.com/madang-lab/madang/viz"
)

var (
	stateView        string
	statePreferPatch bool
)

var stateCmd = &cobra.Command{
	Use:   "state <state_json_file>",
	Short: "Normalizes a raw runtime state payload",
	Long: `The state command normalizes a raw state payload (flat or v2
enveloped) into the canonical shape. With --view it additionally resolves
one structured view and prints the winning candidate with its provenance.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		st := state.Normalize(string(raw))
		if stateView == "" {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(st)
		}
		kind, err := parseKind(stateView)
		if err != nil {
			return err
		}
		resolved, ok := viz.Resolve(st, kind, viz.Options{PreferPatch: statePreferPatch})
		if !ok {
			return fmt.Errorf("no %s candidate in state", kind)
		}
		fmt.Printf("source: %s\n%s\n", resolved.Source, resolved.Raw)
		return nil
	},
}

func parseKind(s string) (viz.Kind, error) {
	for _, k := range viz.Kinds() {
		if k.String() == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown view kind %q (graph, space2d, table, text)", s)
}

func init() {
	AddCommand(stateCmd)
	stateCmd.Flags().StringVar(&stateView, "view", "", "Resolve one view kind: graph, space2d, table, text")
	stateCmd.Flags().BoolVar(&statePreferPatch, "prefer-patch", false, "Search patch entries before resources")
}
