package fastgen

import (
	"github.com/arthur-debert/fastgen/pkg/config"
	"github.com/spf13/cobra"
)

func newConfigCmd(e *env, g *globalOptions) *cobra.Command {
	var defaultsOnly bool
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				cfg *config.Config
				err error
			)
			if defaultsOnly {
				cfg, err = config.Default()
			} else {
				cfg, err = g.loadConfig(e)
			}
			if err != nil {
				return err
			}
			data, err := cfg.Dump()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&defaultsOnly, "defaults", false, MsgFlagDefaults)
	return cmd
}
