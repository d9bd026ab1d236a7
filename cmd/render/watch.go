package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/foliocraft/foliocraft-backend/internal/render"
)

const watchDebounce = 300 * time.Millisecond

func newWatchCmd(strategy *string) *cobra.Command {
	var opts buildOptions

	cmd := &cobra.Command{
		Use:   "watch <file>",
		Short: "Rebuild the document whenever the component or customizations change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.output == "" {
				return errors.New("watch requires --output")
			}
			return watch(cmd, newEngine(*strategy), args[0], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.customizations, "customizations", "c", "", "YAML file with customization values")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file")
	return cmd
}

// watch observes the parent directories rather than the files, so editors
// that save by rename keep triggering rebuilds.
func watch(cmd *cobra.Command, e *render.Engine, file string, opts buildOptions) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	tracked := map[string]bool{}
	for _, p := range []string{file, opts.customizations} {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		tracked[abs] = true
		if err := w.Add(filepath.Dir(abs)); err != nil {
			return err
		}
	}

	out := cmd.ErrOrStderr()
	rebuild(out, e, file, opts)

	var pending <-chan time.Time
	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			abs, _ := filepath.Abs(ev.Name)
			if !tracked[abs] || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			pending = time.After(watchDebounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(out, "watch error: %v\n", err)
		case <-pending:
			pending = nil
			rebuild(out, e, file, opts)
		}
	}
}

func rebuild(out io.Writer, e *render.Engine, file string, opts buildOptions) {
	_, res, err := build(e, file, opts)
	switch {
	case errors.Is(err, errInvalidComponent):
		fmt.Fprintf(out, "%s invalid:\n%s", file, formatErrors(res))
	case err != nil:
		fmt.Fprintf(out, "build failed: %v\n", err)
	default:
		fmt.Fprintf(out, "%s rebuilt %s\n", time.Now().Format("15:04:05"), opts.output)
	}
}
