package classifier

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jbrukh/bayesian"
	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/models"
)

// ErrNoSamples is returned when fitting on an empty training set.
var ErrNoSamples = errors.New("no training samples")

// ModelParams configures the character n-gram naive-Bayes model.
type ModelParams struct {
	// MinN and MaxN bound the n-gram lengths (inclusive).
	MinN int
	MaxN int
	// MaxFeatures keeps only the most frequent n-grams (0 keeps all).
	MaxFeatures int
}

// DefaultModelParams returns the default model parameters.
func DefaultModelParams() ModelParams {
	return ModelParams{
		MinN:        1,
		MaxN:        3,
		MaxFeatures: 500,
	}
}

// Model is a multinomial naive-Bayes classifier over character n-grams of
// header strings. Every role is registered as a class; roles absent from
// the training set are never predicted.
type Model struct {
	Params ModelParams
	// Vocabulary is the kept n-gram set. Nil keeps every n-gram.
	Vocabulary map[string]struct{}
	// Counts is the number of training samples per role.
	Counts map[models.Role]int

	// mu guards nb; scoring updates its seen counter.
	mu sync.Mutex
	nb *bayesian.Classifier
}

// ngrams splits text into lowercase character n-grams after collapsing
// whitespace.
func ngrams(text string, minN, maxN int) []string {
	text = strings.Join(strings.Fields(strings.ToLower(text)), " ")
	runes := []rune(text)
	var out []string
	for n := minN; n <= maxN; n++ {
		for i := 0; i+n <= len(runes); i++ {
			out = append(out, string(runes[i:i+n]))
		}
	}
	return out
}

// Fit trains a model on samples.
func Fit(samples []models.Sample, params ModelParams) (*Model, error) {
	if len(samples) == 0 {
		return nil, ErrNoSamples
	}
	if params.MinN <= 0 || params.MaxN < params.MinN {
		return nil, fmt.Errorf("invalid n-gram range [%d, %d]", params.MinN, params.MaxN)
	}

	docs := make([][]string, len(samples))
	total := make(map[string]int)
	for i, s := range samples {
		if !s.Role.Valid() {
			return nil, fmt.Errorf("sample %q has unknown role %q", s.Header, s.Role)
		}
		docs[i] = ngrams(s.Header, params.MinN, params.MaxN)
		for _, g := range docs[i] {
			total[g]++
		}
	}

	m := &Model{
		Params: params,
		Counts: make(map[models.Role]int),
		nb:     bayesian.NewClassifier(roleClasses()...),
	}
	if params.MaxFeatures > 0 && len(total) > params.MaxFeatures {
		terms := make([]string, 0, len(total))
		for g := range total {
			terms = append(terms, g)
		}
		sort.Slice(terms, func(i, j int) bool {
			if total[terms[i]] != total[terms[j]] {
				return total[terms[i]] > total[terms[j]]
			}
			return terms[i] < terms[j]
		})
		m.Vocabulary = make(map[string]struct{}, params.MaxFeatures)
		for _, g := range terms[:params.MaxFeatures] {
			m.Vocabulary[g] = struct{}{}
		}
	}

	for i, s := range samples {
		m.nb.Learn(m.document(docs[i]), bayesian.Class(s.Role))
		m.Counts[s.Role]++
	}
	return m, nil
}

func roleClasses() []bayesian.Class {
	classes := make([]bayesian.Class, len(models.Roles))
	for i, r := range models.Roles {
		classes[i] = bayesian.Class(r)
	}
	return classes
}

// document drops out-of-vocabulary n-grams.
func (m *Model) document(grams []string) []string {
	if m.Vocabulary == nil {
		return grams
	}
	kept := grams[:0:0]
	for _, g := range grams {
		if _, ok := m.Vocabulary[g]; ok {
			kept = append(kept, g)
		}
	}
	return kept
}

// Trained reports whether the training set held samples of role.
func (m *Model) Trained(role models.Role) bool {
	return m.Counts[role] > 0
}

func (m *Model) validate() error {
	if m == nil {
		return errors.New("nil model")
	}
	if m.nb == nil {
		return errors.New("model is not fitted")
	}
	if len(m.nb.Classes) != len(models.Roles) {
		return fmt.Errorf("model has %d classes, expected %d", len(m.nb.Classes), len(models.Roles))
	}
	trained := 0
	for _, n := range m.Counts {
		trained += n
	}
	if trained == 0 {
		return errors.New("model has no training samples")
	}
	return nil
}

// Predict returns the most probable role for every header.
func (m *Model) Predict(headers []string) ([]models.Role, error) {
	if err := m.validate(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Role, len(headers))
	for i, h := range headers {
		doc := m.document(ngrams(h, m.Params.MinN, m.Params.MaxN))
		_, best, _ := m.nb.LogScores(doc)
		out[i] = models.Role(m.nb.Classes[best])
	}
	return out, nil
}

// modelState is the gob form of a Model. The naive-Bayes tables are kept in
// the library's own serialization.
type modelState struct {
	Params     ModelParams
	Vocabulary []string
	Counts     map[models.Role]int
	NB         []byte
}

// GobEncode implements gob.GobEncoder.
func (m *Model) GobEncode() ([]byte, error) {
	if m.nb == nil {
		return nil, errors.New("model is not fitted")
	}
	st := modelState{Params: m.Params, Counts: m.Counts}
	if m.Vocabulary != nil {
		st.Vocabulary = make([]string, 0, len(m.Vocabulary))
		for g := range m.Vocabulary {
			st.Vocabulary = append(st.Vocabulary, g)
		}
		sort.Strings(st.Vocabulary)
	}

	var nb bytes.Buffer
	m.mu.Lock()
	err := m.nb.WriteTo(&nb)
	m.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("encode naive bayes: %w", err)
	}
	st.NB = nb.Bytes()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(st); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (m *Model) GobDecode(data []byte) error {
	var st modelState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&st); err != nil {
		return err
	}
	nb, err := bayesian.NewClassifierFromReader(bytes.NewReader(st.NB))
	if err != nil {
		return fmt.Errorf("decode naive bayes: %w", err)
	}

	m.Params, m.Counts, m.nb = st.Params, st.Counts, nb
	m.Vocabulary = nil
	if st.Vocabulary != nil {
		m.Vocabulary = make(map[string]struct{}, len(st.Vocabulary))
		for _, g := range st.Vocabulary {
			m.Vocabulary[g] = struct{}{}
		}
	}
	return nil
}
