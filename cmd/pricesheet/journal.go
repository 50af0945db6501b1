package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/learner"
)

var journalLimit int

func newJournalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "List recent classifier retrain rounds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Learn.JournalPath == "" {
				return errors.New("PRICESHEET_JOURNAL_PATH is not set")
			}
			j, err := learner.OpenJournal(cfg.Learn.JournalPath)
			if err != nil {
				return err
			}
			defer j.Close()

			rounds, err := j.Rounds(cmd.Context(), journalLimit)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "VERSION\tADDED\tTOTAL\tTRAINED\tSOURCE\tID")
			for _, r := range rounds {
				fmt.Fprintf(w, "%d\t%d\t%d\t%s\t%s\t%s\n",
					r.Version, r.Added, r.Total, humanize.Time(r.TrainedAt), r.Source, r.ID)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&journalLimit, "limit", 20, "Number of rounds to list")
	return cmd
}
