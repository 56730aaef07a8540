package main

import (
	"fmt"

	"github.com/olivier-w/frictionlab/internal/util"
	"github.com/spf13/cobra"
)

func newSurfacesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "surfaces",
		Short: "List the configured surface presets.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			trials, err := a.cfg.Trials()
			if err != nil {
				return err
			}
			def, err := a.cfg.Params()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, t := range trials {
				mark := ""
				if t.Surface == def.Default.Surface {
					mark = "  (default)"
				}
				fmt.Fprintf(out, "%d  %-8s μk %s  μs %s%s\n",
					i+1, t.Surface, util.FormatMu(t.Coefficient),
					util.FormatMu(t.Coefficient*t.StaticRatio), mark)
			}
			return nil
		},
	}
}
