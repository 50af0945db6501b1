package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/models"
	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/order"
)

var orderOutput string

func newOrderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order WORKBOOK RECORDS.json",
		Short: "Write order quantities back into the original workbook",
		Args:  cobra.ExactArgs(2),
		RunE:  runOrder,
	}
	cmd.Flags().StringVarP(&orderOutput, "output", "o", "", "Output workbook path (required)")
	cmd.MarkFlagRequired("output")
	return cmd
}

func runOrder(cmd *cobra.Command, args []string) error {
	workbook, recordsPath := args[0], args[1]

	data, err := os.ReadFile(recordsPath)
	if err != nil {
		return fmt.Errorf("failed to read records: %w", err)
	}
	var records []models.ProductRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("failed to decode records: %w", err)
	}

	opts := order.DefaultOptions()
	opts.Header.ScanRows = cfg.Header.ScanRows
	opts.Header.MinScore = cfg.Header.MinScore
	opts.Header.LongCellChars = cfg.Header.LongCellChars

	res, err := order.ApplyFile(workbook, orderOutput, records, opts)
	if err != nil {
		return err
	}
	if res.Written == 0 {
		return errors.New("no order quantities were written")
	}
	log.Info().
		Str("file", orderOutput).
		Int("written", res.Written).
		Int("skipped", res.Skipped).
		Msg("Order written")
	return nil
}
