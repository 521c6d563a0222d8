package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syssam/valobj/compiler/gen"
)

// encoders by output format. Separator is written between two contracts.
var encoders = map[string]struct {
	encode    func(*gen.Contract) ([]byte, error)
	separator string
}{
	"json":    {encode: (*gen.Contract).EncodeJSON, separator: "\n"},
	"yaml":    {encode: (*gen.Contract).EncodeYAML, separator: "---\n"},
	"msgpack": {encode: (*gen.Contract).EncodeMsgpack},
}

func newPlanCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "plan FILE...",
		Short: "Print the emission contracts of the declared classes",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc, ok := encoders[format]
			if !ok {
				return fmt.Errorf("unknown format %q", format)
			}
			res := a.generate(cmd.Context(), args)
			w := cmd.OutOrStdout()
			for i, c := range res.Contracts() {
				buf, err := enc.encode(c)
				if err != nil {
					return fmt.Errorf("encode %s: %w", c.Class, err)
				}
				if i > 0 {
					fmt.Fprint(w, enc.separator)
				}
				if _, err := w.Write(buf); err != nil {
					return err
				}
			}
			if format == "json" && len(res.Contracts()) > 0 {
				fmt.Fprintln(w)
			}
			return report(cmd.ErrOrStderr(), res)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, yaml or msgpack")
	return cmd
}
