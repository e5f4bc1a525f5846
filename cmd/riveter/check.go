package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"riveter/internal/loader"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE",
		Short: "Validate a definition file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loader.LoadFile(args[0])
			if err != nil {
				return err
			}

			res := loader.Validate(f, loader.Builtins())
			w := cmd.OutOrStdout()

			for _, d := range res.All() {
				fmt.Fprintf(w, "%s: %s\n", d.Severity, d)
			}

			if res.HasErrors() {
				return fmt.Errorf("%s: %d error(s)", args[0], len(res.Errors))
			}

			a.logger.Debug("definition file is valid", "file", args[0], "entities", len(f.Entities))
			fmt.Fprintf(w, "%s: ok (%d entities)\n", args[0], len(f.Entities))

			return nil
		},
	}
}
