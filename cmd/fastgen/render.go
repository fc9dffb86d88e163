package fastgen

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/fastgen/pkg/errors"
	"github.com/arthur-debert/fastgen/pkg/filesystem"
	"github.com/arthur-debert/fastgen/pkg/render"
	"github.com/spf13/cobra"
)

func newRenderCmd(g *globalOptions) *cobra.Command {
	var (
		varsFile string
		vars     []string
	)

	cmd := &cobra.Command{
		Use:     "render <file>",
		Short:   MsgRenderShort,
		Long:    MsgRenderLong,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			extra, err := extraVars(varsFile, vars)
			if err != nil {
				return err
			}
			data, err := filesystem.NewOS().ReadFile(args[0])
			if err != nil {
				return errors.Wrapf(err, errors.ErrNotFound, "read %s", args[0])
			}

			out, err := render.Parse(string(data)).Execute(extra)
			if err != nil {
				return errors.Wrapf(err, errors.ErrFileProcessing, "render %s", args[0])
			}
			if _, err := fmt.Fprint(cmd.OutOrStdout(), out.Text); err != nil {
				return err
			}
			if len(out.Unresolved) > 0 {
				fmt.Fprintf(cmd.ErrOrStderr(), MsgUnresolved, strings.Join(out.Unresolved, ", "))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&varsFile, "vars-file", "", MsgFlagVarsFile)
	cmd.Flags().StringArrayVar(&vars, "var", nil, MsgFlagVar)
	return cmd
}
