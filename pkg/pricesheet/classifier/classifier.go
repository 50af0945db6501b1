// Package classifier maps column header text to a semantic role.
//
// Resolution is tiered and each tier short-circuits:
//
//  1. blank headers are IGNORE;
//  2. the ordered DefaultRules;
//  3. a character n-gram naive-Bayes model loaded from an artifact;
//  4. the FallbackRules keyword heuristic, used when no model is loaded or
//     inference fails. It also keeps unmatched headers IGNORE when the
//     model was trained without IGNORE samples.
//
// A Classifier is safe for concurrent use. The model is swapped atomically
// by the learner after a retrain; readers never observe a partial model.
package classifier

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/models"
)

// Tier names the resolution step that decided a role.
type Tier string

const (
	TierEmpty    Tier = "empty"
	TierRule     Tier = "rule"
	TierModel    Tier = "model"
	TierFallback Tier = "fallback"
)

// Decision is a classified header together with the tier and rule that
// produced it.
type Decision struct {
	Header string      `json:"header"`
	Role   models.Role `json:"role"`
	Tier   Tier        `json:"tier"`
	// Rule is the matching rule name for TierRule and TierFallback.
	Rule string `json:"rule,omitempty"`
}

// Options configures a Classifier.
type Options struct {
	// ArtifactPath is the model artifact to load. Empty means rules and
	// fallback only.
	ArtifactPath string
	// Rules overrides DefaultRules when non-nil.
	Rules []Rule
}

// Classifier resolves header text to roles.
type Classifier struct {
	rules []Rule
	model atomic.Pointer[Model]
}

// New creates a classifier and loads the artifact when one is configured.
// A missing or corrupt artifact is logged and leaves the classifier on the
// keyword fallback; it is never an error.
func New(opts Options) *Classifier {
	c := &Classifier{rules: opts.Rules}
	if c.rules == nil {
		c.rules = DefaultRules
	}
	if opts.ArtifactPath == "" {
		return c
	}

	a, err := LoadArtifact(opts.ArtifactPath)
	switch {
	case err == nil:
		c.model.Store(a.Model)
		log.Debug().
			Str("path", opts.ArtifactPath).
			Int("version", a.Version).
			Int("samples", len(a.Samples)).
			Msg("Loaded classifier artifact")
	case errors.Is(err, os.ErrNotExist):
		log.Info().Str("path", opts.ArtifactPath).Msg("Classifier artifact not found; using keyword fallback")
	default:
		log.Warn().Err(err).Str("path", opts.ArtifactPath).Msg("Failed to load classifier artifact; using keyword fallback")
	}
	return c
}

// SetModel replaces the statistical model. A nil model disables the model tier.
func (c *Classifier) SetModel(m *Model) {
	c.model.Store(m)
}

// HasModel reports whether a statistical model is loaded.
func (c *Classifier) HasModel() bool {
	return c.model.Load() != nil
}

// Classify returns the role for a header.
func (c *Classifier) Classify(header string) models.Role {
	return c.Explain(header).Role
}

// ClassifyAll classifies every header in column order.
func (c *Classifier) ClassifyAll(headers []string) models.ColumnRoles {
	roles := make(models.ColumnRoles, len(headers))
	for i, h := range headers {
		roles[i] = c.Classify(h)
	}
	return roles
}

// Explain classifies a header and reports how the role was decided.
func (c *Classifier) Explain(header string) Decision {
	cleaned := strings.TrimSpace(header)
	d := Decision{Header: cleaned}
	if cleaned == "" {
		d.Role, d.Tier = models.RoleIgnore, TierEmpty
		return d
	}
	lower := strings.ToLower(cleaned)

	if r, ok := evaluate(c.rules, lower); ok {
		d.Role, d.Tier, d.Rule = r.Role, TierRule, r.Name
		return d
	}

	fallback, matched := evaluate(FallbackRules, lower)

	// A model that never saw an IGNORE sample cannot reject a column, so
	// headers without any fallback keyword stay IGNORE.
	if m := c.model.Load(); m != nil && (matched || m.Trained(models.RoleIgnore)) {
		role, err := predict(m, cleaned)
		if err == nil {
			d.Role, d.Tier = role, TierModel
			return d
		}
		log.Warn().Err(err).Str("header", cleaned).Msg("Classifier inference failed; using keyword fallback")
	}

	d.Tier = TierFallback
	if matched {
		d.Role, d.Rule = fallback.Role, fallback.Name
	} else {
		d.Role = models.RoleIgnore
	}
	return d
}

// predict runs the model on one header, converting panics and unknown
// labels into errors.
func predict(m *Model, header string) (role models.Role, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("model panic: %v", r)
		}
	}()
	roles, err := m.Predict([]string{header})
	if err != nil {
		return "", err
	}
	if !roles[0].Valid() {
		return "", fmt.Errorf("model predicted unknown role %q", roles[0])
	}
	return roles[0], nil
}
