package fastgen

import (
	"encoding/json"
	"fmt"

	"github.com/arthur-debert/fastgen/pkg/ui"
	"github.com/arthur-debert/fastgen/pkg/walker"
	"github.com/spf13/cobra"
)

func newTemplatesCmd(e *env, g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "templates",
		Short:   MsgTemplatesShort,
		Long:    MsgTemplatesLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig(e)
			if err != nil {
				return err
			}
			r, err := cfg.Rules()
			if err != nil {
				return err
			}
			src, root, err := templateSource(cfg)
			if err != nil {
				return err
			}
			found, err := walker.ListTemplates(src, root, r.ExcludedDirs())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format, _ := ui.ParseFormat(g.output); format == ui.FormatJSON {
				if found == nil {
					found = []string{}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(found)
			}
			if len(found) == 0 {
				_, err := fmt.Fprintln(out, MsgNoTemplates)
				return err
			}
			for _, t := range found {
				fmt.Fprintln(out, t)
			}
			return nil
		},
	}
}
