package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/ukaji3/pricesheet-go/pkg/pricesheet"
	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/classifier"
	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/learner"
	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/models"
)

var (
	outputPath  string
	pretty      bool
	brewery     string
	learn       bool
	concurrency int
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse FILE...",
		Short: "Parse price lists into product records",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runParse,
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVar(&brewery, "brewery", "", "Brewery name (default: derived from file name)")
	cmd.Flags().BoolVar(&learn, "learn", false, "Retrain the classifier from headers seen in this run (default: LEARN_AUTO)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Files parsed in parallel (default: PARSE_CONCURRENCY)")

	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	if !cmd.Flags().Changed("learn") {
		learn = cfg.Learn.Auto
	}
	if concurrency <= 0 {
		concurrency = cfg.Parse.Concurrency
	}

	c := classifier.New(classifier.Options{ArtifactPath: cfg.Classifier.ModelPath})

	opts := cfg.ParserOptions()
	opts.AutoLearn = &learn

	var trainer pricesheet.Trainer
	if learn {
		l, closeFn, err := openLearner(c)
		if err != nil {
			return err
		}
		defer closeFn()
		trainer = l
	}

	p := pricesheet.New(c, trainer, opts)

	var records []models.ProductRecord
	failed := 0
	for _, res := range p.ParseFiles(ctx, args, brewery, concurrency) {
		if res.Err != nil {
			failed++
			continue
		}
		records = append(records, res.Records...)
	}
	if failed == len(args) {
		return fmt.Errorf("no file could be parsed")
	}

	if learn {
		res, err := p.SaveLearned(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to save learned samples")
		} else if res.Skipped {
			log.Info().Int("pending", p.Pending()).Msg("Too few new headers to retrain the classifier")
		}
	}

	if records == nil {
		records = []models.ProductRecord{}
	}
	return writeJSON(records)
}

// openLearner starts a learner for c, with the training journal when one
// is configured.
func openLearner(c *classifier.Classifier) (*learner.Learner, func(), error) {
	lopts := cfg.LearnerOptions()
	if cfg.Learn.JournalPath != "" {
		j, err := learner.OpenJournal(cfg.Learn.JournalPath)
		if err != nil {
			return nil, nil, err
		}
		lopts.Journal = j
	}
	l := learner.New(c, lopts)
	return l, func() {
		l.Close()
		if lopts.Journal != nil {
			lopts.Journal.Close()
		}
	}, nil
}

func writeJSON(v any) error {
	var w io.Writer = os.Stdout
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	return nil
}
