package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/madang-lab/madang/runtime"
	"github.com/madang-lab/madang/script"
	"github.com/madang-lab/madang/viz"
)

var (
	runRuntimePath string
	runFrames      int
	runSeed        int64
	runPreferPatch bool
	runRawState    bool
)

var runCmd = &cobra.Command{
	Use:   "run <script_file>",
	Short: "Preprocesses a script and steps it through a JS-hosted runtime",
	Long: `The run command preprocesses a script, pushes the canonical text
into a runtime object hosted from a JS file (--runtime), steps it for the
requested number of frames, and prints the resolved views per frame.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := currentConfig
		if runRuntimePath == "" {
			runRuntimePath = cfg.RuntimePath
		}
		if runRuntimePath == "" {
			return fmt.Errorf("no runtime: pass --runtime or set runtime in madang.yaml")
		}
		if !cmd.Flags().Changed("frames") && cfg.Frames > 0 {
			runFrames = cfg.Frames
		}
		if !cmd.Flags().Changed("seed") {
			runSeed = cfg.Seed
		}
		if !cmd.Flags().Changed("prefer-patch") {
			runPreferPatch = cfg.PreferPatch
		}

		src, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		res := script.Preprocess(string(src))
		printDiagnostics(res.Diagnostics)

		rtSrc, err := os.ReadFile(runRuntimePath)
		if err != nil {
			return err
		}
		handle, err := runtime.LoadJSRuntime(string(rtSrc))
		if err != nil {
			return err
		}
		sess := runtime.NewSession(handle)
		slog.Debug("runtime capabilities", "caps", fmt.Sprintf("%+v", sess.Capabilities()))

		if err := sess.UpdateLogic(res.Text); err != nil {
			return err
		}
		if runSeed != 0 {
			if err := sess.SetSeed(runSeed); err != nil {
				return err
			}
		}
		for frame := 0; frame < runFrames; frame++ {
			st, err := sess.Step()
			if err != nil {
				return err
			}
			if runRawState {
				b, _ := json.Marshal(st)
				fmt.Println(string(b))
				continue
			}
			views := viz.ResolveAll(st, viz.Options{PreferPatch: runPreferPatch})
			fmt.Printf("frame %d (%.1fms):", st.FrameID, st.ElapsedMs)
			for _, kind := range viz.Kinds() {
				if r, ok := views[kind]; ok {
					fmt.Printf(" %s<-%s", kind, r.Source)
				}
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	AddCommand(runCmd)
	runCmd.Flags().StringVar(&runRuntimePath, "runtime", "", "Path to the JS runtime file")
	runCmd.Flags().IntVar(&runFrames, "frames", 1, "Number of frames to step")
	runCmd.Flags().Int64Var(&runSeed, "seed", 0, "RNG seed (0 leaves the runtime default)")
	runCmd.Flags().BoolVar(&runPreferPatch, "prefer-patch", false, "Search patch entries before resources")
	runCmd.Flags().BoolVar(&runRawState, "raw", false, "Print normalized state JSON instead of view summaries")
}
