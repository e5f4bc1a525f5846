package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"riveter/internal/loader"
	"riveter/merge"
	"riveter/object"
	"riveter/options"
)

func newMergeCmd(a *app) *cobra.Command {
	var (
		shallow bool
		policy  string
	)

	cmd := &cobra.Command{
		Use:   "merge FILE...",
		Short: "Merge YAML documents left to right and print the result",
		Long: `Merge YAML documents left to right, later files winning. Mappings are
merged recursively and sequences replaced unless --shallow is given, in which
case only top-level keys are assigned according to --policy.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("policy") && !shallow {
				return errors.New("--policy requires --shallow")
			}

			p, ok := options.ParsePolicy(policy)
			if !ok {
				return fmt.Errorf("unknown policy %q", policy)
			}

			docs := make([]*object.Object, 0, len(args))

			for _, path := range args {
				doc, err := loader.LoadDocument(path)
				if err != nil {
					return err
				}

				a.logger.Debug("loaded document", "file", path, "keys", doc.Len())
				docs = append(docs, doc)
			}

			result := object.New()
			if shallow {
				merge.Shallow(result, p, docs...)
			} else {
				merge.Deep(result, docs...)
			}

			out, err := loader.Marshal(result)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(out)

			return err
		},
	}

	cmd.Flags().BoolVar(&shallow, "shallow", false, "assign top-level keys only")
	cmd.Flags().StringVar(&policy, "policy", options.PolicyOverwrite.String(), "shallow conflict policy: overwrite or keep")

	return cmd
}
