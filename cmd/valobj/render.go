package main

import (
	"github.com/spf13/cobra"
)

func newRenderCmd(a *app) *cobra.Command {
	var out, pkg string
	cmd := &cobra.Command{
		Use:   "render FILE...",
		Short: "Render the declared classes as Go source",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.generator(out, pkg)
			if err != nil {
				return err
			}
			return a.render(cmd.Context(), cmd, g, args)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", a.settings.Out, "output directory")
	cmd.Flags().StringVarP(&pkg, "package", "p", a.settings.Package, "package name (defaults to the output directory name)")
	return cmd
}
