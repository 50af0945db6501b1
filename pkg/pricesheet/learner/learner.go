// Package learner owns the classifier's training set and retrains the
// statistical model from header samples observed during parsing.
//
// All state lives in one goroutine. Retrain requests are sent to it over a
// channel and served one at a time, so artifact writes never overlap.
package learner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/classifier"
	"github.com/ukaji3/pricesheet-go/pkg/pricesheet/models"
)

// ErrClosed is returned by requests made after Close.
var ErrClosed = errors.New("learner closed")

// Options configures a Learner.
type Options struct {
	// ArtifactPath is where the fitted model and training set are persisted.
	// Empty keeps retrained models in memory only.
	ArtifactPath string
	// MinSamples is the smallest batch that triggers a retrain.
	MinSamples int
	// MaxSamples caps the training set; the oldest samples are dropped first.
	// Zero means unbounded.
	MaxSamples int
	// Params configures model fitting.
	Params classifier.ModelParams
	// Journal records every retrain round when non-nil.
	Journal *Journal
}

// DefaultOptions returns the default retrain policy.
func DefaultOptions() Options {
	return Options{
		MinSamples: 5,
		MaxSamples: 5000,
		Params:     classifier.DefaultModelParams(),
	}
}

// TrainingState is the versioned training set. Version increments on every
// successful retrain.
type TrainingState struct {
	Version int             `json:"version"`
	Samples []models.Sample `json:"samples"`
}

func (s TrainingState) clone() TrainingState {
	return TrainingState{
		Version: s.Version,
		Samples: append([]models.Sample(nil), s.Samples...),
	}
}

// RetrainResult reports the outcome of one retrain request.
type RetrainResult struct {
	// Version is the training-set version after the request.
	Version int `json:"version"`
	// Added is the number of samples merged by this request.
	Added int `json:"added"`
	// Total is the training-set size after the request.
	Total int `json:"total"`
	// Skipped is true when the batch was below MinSamples.
	Skipped bool `json:"skipped"`
}

type request struct {
	ctx     context.Context
	samples []models.Sample
	source  string
	// snapshot requests return the state without retraining.
	snapshot bool
	reply    chan response
}

type response struct {
	result RetrainResult
	state  TrainingState
	err    error
}

// Learner serializes retraining of a classifier.
type Learner struct {
	opts     Options
	target   *classifier.Classifier
	requests chan request
	quit     chan struct{}
	done     chan struct{}
	stop     sync.Once
}

// New starts a learner that retrains target. The initial training state is
// read from the artifact; a missing or corrupt artifact starts empty.
func New(target *classifier.Classifier, opts Options) *Learner {
	l := &Learner{
		opts:     opts,
		target:   target,
		requests: make(chan request),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go l.run(l.loadState())
	return l
}

func (l *Learner) loadState() TrainingState {
	if l.opts.ArtifactPath == "" {
		return TrainingState{}
	}
	a, err := classifier.LoadArtifact(l.opts.ArtifactPath)
	switch {
	case err == nil:
		return TrainingState{Version: a.Version, Samples: a.Samples}
	case errors.Is(err, os.ErrNotExist):
		return TrainingState{}
	default:
		log.Warn().Err(err).Str("path", l.opts.ArtifactPath).Msg("Ignoring unreadable training state")
		return TrainingState{}
	}
}

func (l *Learner) run(state TrainingState) {
	defer close(l.done)
	for {
		select {
		case req := <-l.requests:
			if req.snapshot {
				req.reply <- response{state: state.clone()}
				continue
			}
			res, err := l.retrain(req.ctx, &state, req.samples, req.source)
			req.reply <- response{result: res, err: err}
		case <-l.quit:
			return
		}
	}
}

// Retrain merges samples into the training set, refits the model, persists
// the artifact and swaps the model into the classifier. Batches smaller than
// MinSamples are answered with Skipped and change nothing.
func (l *Learner) Retrain(ctx context.Context, samples []models.Sample, source string) (RetrainResult, error) {
	resp, err := l.send(ctx, request{
		ctx:     ctx,
		samples: append([]models.Sample(nil), samples...),
		source:  source,
	})
	if err != nil {
		return RetrainResult{}, err
	}
	return resp.result, resp.err
}

// State returns a copy of the current training state.
func (l *Learner) State(ctx context.Context) (TrainingState, error) {
	resp, err := l.send(ctx, request{snapshot: true})
	if err != nil {
		return TrainingState{}, err
	}
	return resp.state, nil
}

func (l *Learner) send(ctx context.Context, req request) (response, error) {
	req.reply = make(chan response, 1)
	select {
	case l.requests <- req:
	case <-l.quit:
		return response{}, ErrClosed
	case <-ctx.Done():
		return response{}, ctx.Err()
	}
	select {
	case resp := <-req.reply:
		return resp, nil
	case <-ctx.Done():
		return response{}, ctx.Err()
	}
}

// Close stops the learner goroutine. It is safe to call more than once.
func (l *Learner) Close() error {
	l.stop.Do(func() { close(l.quit) })
	<-l.done
	return nil
}

func (l *Learner) retrain(ctx context.Context, state *TrainingState, samples []models.Sample, source string) (RetrainResult, error) {
	res := RetrainResult{Version: state.Version, Total: len(state.Samples)}
	if len(samples) < l.opts.MinSamples || len(samples) == 0 {
		res.Skipped = true
		log.Debug().
			Int("samples", len(samples)).
			Int("min_samples", l.opts.MinSamples).
			Str("source", source).
			Msg("Not enough samples to retrain")
		return res, nil
	}
	if err := ctx.Err(); err != nil {
		return res, err
	}

	merged := make([]models.Sample, 0, len(state.Samples)+len(samples))
	merged = append(merged, state.Samples...)
	merged = append(merged, samples...)
	if limit := l.opts.MaxSamples; limit > 0 && len(merged) > limit {
		merged = merged[len(merged)-limit:]
	}

	model, err := classifier.Fit(merged, l.opts.Params)
	if err != nil {
		return res, fmt.Errorf("fit model: %w", err)
	}

	next := TrainingState{Version: state.Version + 1, Samples: merged}
	trainedAt := time.Now()
	if l.opts.ArtifactPath != "" {
		a := &classifier.Artifact{
			Version:   next.Version,
			TrainedAt: trainedAt,
			Samples:   next.Samples,
			Model:     model,
		}
		if err := classifier.SaveArtifact(l.opts.ArtifactPath, a); err != nil {
			return res, fmt.Errorf("save artifact: %w", err)
		}
	}

	*state = next
	if l.target != nil {
		l.target.SetModel(model)
	}

	res = RetrainResult{Version: next.Version, Added: len(samples), Total: len(next.Samples)}
	log.Info().
		Int("version", res.Version).
		Int("added", res.Added).
		Int("total", res.Total).
		Str("source", source).
		Msg("Retrained column classifier")

	if l.opts.Journal != nil {
		round := Round{
			Version:   res.Version,
			Source:    source,
			Added:     res.Added,
			Total:     res.Total,
			TrainedAt: trainedAt,
			Samples:   samples,
		}
		if _, err := l.opts.Journal.Record(ctx, round); err != nil {
			log.Warn().Err(err).Int("version", res.Version).Msg("Failed to journal retrain round")
		}
	}
	return res, nil
}
