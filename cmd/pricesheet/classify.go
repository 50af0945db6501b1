package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/classifier"
)

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify HEADER...",
		Short: "Show the role assigned to column headers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := classifier.New(classifier.Options{ArtifactPath: cfg.Classifier.ModelPath})

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, h := range args {
				d := c.Explain(h)
				fmt.Fprintf(w, "%s\t%s\t%s\n", h, d.Role, tierLabel(d))
			}
			return w.Flush()
		},
	}
}

func tierLabel(d classifier.Decision) string {
	if d.Tier == classifier.TierRule {
		return fmt.Sprintf("%s:%s", d.Tier, d.Rule)
	}
	return string(d.Tier)
}
