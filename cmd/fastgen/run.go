package fastgen

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/arthur-debert/fastgen/pkg/ui"
	"github.com/spf13/cobra"
)

// Run executes the CLI and returns the process exit code. File warnings
// never change it; any returned error exits with 1.
func Run(args []string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return execute(ctx, NewRootCmd(), args, os.Stderr)
}

func execute(ctx context.Context, rootCmd *cobra.Command, args []string, errOut io.Writer) int {
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if renderer, rerr := ui.NewRenderer(ui.FormatAuto, errOut); rerr == nil {
			_ = renderer.RenderError(err)
		}
		return 1
	}
	return 0
}
