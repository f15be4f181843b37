package main

import (
	"fmt"

	"github.com/spf13/cobra"

	paged "github.com/gogpu/paged"
	"github.com/gogpu/paged/box"
	"github.com/gogpu/paged/stacking"
)

func newInspectCmd(cfg *Config) *cobra.Command {
	var showStacking bool
	cmd := &cobra.Command{
		Use:   "inspect [tree.json]",
		Short: "Print the box tree, its pages and their stacking contexts",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := readTree(cmd, args)
			if err != nil {
				return err
			}
			opts, err := cfg.options()
			if err != nil {
				return err
			}
			pages, err := paged.Paginate(root, opts...)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprint(w, box.Dump(root))
			for i, page := range pages {
				fmt.Fprintf(w, "\npage %d/%d\n", i+1, len(pages))
				fmt.Fprint(w, box.Dump(page))
				if showStacking {
					fmt.Fprintln(w, "stacking:")
					fmt.Fprint(w, stacking.Dump(stacking.Parse(page)))
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showStacking, "stacking", true, "print each page's stacking contexts")
	return cmd
}
