package main

import (
	"github.com/spf13/cobra"

	"riveter/internal/build"
	"riveter/internal/loader"
	"riveter/object"
)

func newBuildCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build FILE",
		Short: "Build the entities of a definition file and print them",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.cfg.BindPFlag(cfgKeyDeep, cmd.Flags().Lookup("deep")); err != nil {
				return err
			}

			f, err := loader.LoadFile(args[0])
			if err != nil {
				return err
			}

			b := &build.Builder{
				Registry:    loader.Builtins(),
				Logger:      a.logger,
				DefaultDeep: a.cfg.GetBool(cfgKeyDeep),
			}

			res, err := b.Build(f)
			if err != nil {
				return err
			}

			if a.cfg.GetBool(cfgKeyDebug) {
				for _, name := range res.Names() {
					e, _ := res.Entity(name)
					a.logger.Debug("prototype", "entity", name, "dump", object.Dump(e.Prototype()))
				}
			}

			out, err := build.ExportYAML(res)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(out)

			return err
		},
	}

	cmd.Flags().Bool("deep", false, "deep-merge entities that do not set deep themselves")

	return cmd
}
