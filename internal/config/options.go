package config

import (
	"github.com/ukaji3/pricesheet-go/pkg/pricesheet"
	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/classifier"
	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/learner"
	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/parser"
)

// ParserOptions returns the parsing options described by the config.
func (c *Config) ParserOptions() pricesheet.Options {
	auto := c.Learn.Auto
	return pricesheet.Options{
		Header: parser.HeaderPolicy{
			ScanRows:      c.Header.ScanRows,
			MinScore:      c.Header.MinScore,
			LongCellChars: c.Header.LongCellChars,
		},
		Extract:     parser.ExtractPolicy{StockMinUnits: c.Extract.StockMinUnits},
		AutoLearn:   &auto,
		CacheSize:   c.Parse.CacheSize,
		MaxFileSize: c.Parse.MaxFileSize,
	}
}

// ModelParams returns the classifier model parameters.
func (c *Config) ModelParams() classifier.ModelParams {
	p := classifier.DefaultModelParams()
	p.MaxFeatures = c.Classifier.MaxFeatures
	return p
}

// LearnerOptions returns the retrain policy. The journal is opened by the
// caller.
func (c *Config) LearnerOptions() learner.Options {
	return learner.Options{
		ArtifactPath: c.Classifier.ModelPath,
		MinSamples:   c.Learn.MinSamples,
		MaxSamples:   c.Learn.MaxSamples,
		Params:       c.ModelParams(),
	}
}
