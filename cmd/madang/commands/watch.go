package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/madang-lab/madang/script"
)

var watchCmd = &cobra.Command{
	Use:   "watch <script_file>",
	Short: "Re-runs the preprocessor whenever the script changes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		defer watcher.Close()
		// Watch the directory: editors replace files on save, which drops
		// a watch registered on the file itself.
		if err := watcher.Add(filepath.Dir(path)); err != nil {
			return err
		}
		preprocessOnce(path)
		target := filepath.Clean(path)
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if filepath.Clean(ev.Name) != target {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				slog.Info("script changed", "path", ev.Name)
				preprocessOnce(path)
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				slog.Error("watch error", "error", err)
			}
		}
	},
}

func preprocessOnce(path string) {
	src, err := os.ReadFile(path)
	if err != nil {
		slog.Error("read failed", "path", path, "error", err)
		return
	}
	res := script.Preprocess(string(src))
	printDiagnostics(res.Diagnostics)
	fmt.Println(res.Text)
}

func init() {
	AddCommand(watchCmd)
}
