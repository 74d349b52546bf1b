// Cinerec - Movie Recommendations from Viewing History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinerec

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/tomtom215/cinerec/internal/logging"
	"github.com/tomtom215/cinerec/internal/metrics"
	"github.com/tomtom215/cinerec/internal/movies"
	"github.com/tomtom215/cinerec/internal/recommend/features"
	"github.com/tomtom215/cinerec/internal/recommend/forest"
)

// ErrEmptyTrainingSet is returned when no history movie can be encoded.
var ErrEmptyTrainingSet = errors.New("no usable movies in viewing history")

// Engine trains a classifier on a viewing history and selects catalog
// movies it predicts the user will like. Nothing is kept between runs; it is
// safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	runCount   atomic.Int64
	errorCount atomic.Int64
	recCount   atomic.Int64
	lastRunAt  time.Time
	lastRunMu  sync.RWMutex
}

// NewEngine creates a new recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// Run trains on history and recommends from catalog. With an automatic year
// horizon the largest year across both documents is used.
func (e *Engine) Run(ctx context.Context, history, catalog []movies.Movie) (*Result, error) {
	start := time.Now()
	e.runCount.Add(1)
	e.lastRunMu.Lock()
	e.lastRunAt = start
	e.lastRunMu.Unlock()

	result, err := e.run(ctx, history, catalog)
	metrics.RecordRun(err)
	if err != nil {
		e.errorCount.Add(1)
		return nil, err
	}

	result.Duration = time.Since(start)
	e.recCount.Add(int64(len(result.Recommendations)))
	e.loggerFor(ctx).Info().
		Int("history", len(history)).
		Int("catalog", len(catalog)).
		Int("training_rows", result.TrainingRows).
		Int("candidate_rows", result.CandidateRows).
		Int("predicted_liked", result.PredictedLiked).
		Int("recommended", len(result.Recommendations)).
		Dur("duration", result.Duration).
		Msg("recommendation run complete")
	return result, nil
}

func (e *Engine) run(ctx context.Context, history, catalog []movies.Movie) (*Result, error) {
	model, err := e.train(ctx, history, e.horizon(history, catalog))
	if err != nil {
		return nil, err
	}

	pred, err := e.predict(ctx, model, catalog)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Recommendations: e.resolve(ctx, catalog, pred.selected),
		Selected:        pred.selected,
		TrainingRows:    model.TrainingRows,
		CandidateRows:   pred.candidates,
		PredictedLiked:  pred.liked,
		TrainDropped:    model.Dropped,
		PredictDropped:  pred.dropped,
		Horizon:         model.Encoder.Horizon(),
	}
	if score, ok := model.Forest.OOBScore(); ok {
		result.OOB = &score
	}
	return result, nil
}

// Train encodes history and fits the classifier. With an automatic year
// horizon the largest year in history is used; Run also considers the
// catalog.
func (e *Engine) Train(ctx context.Context, history []movies.Movie) (*Model, error) {
	return e.train(ctx, history, e.horizon(history))
}

// Recommend scores catalog with model and returns up to MaxResults movies
// predicted as liked, in catalog order.
func (e *Engine) Recommend(ctx context.Context, model *Model, catalog []movies.Movie) ([]movies.Movie, error) {
	pred, err := e.predict(ctx, model, catalog)
	if err != nil {
		return nil, err
	}
	return e.resolve(ctx, catalog, pred.selected), nil
}

// Metrics returns a snapshot of the engine counters.
func (e *Engine) Metrics() Metrics {
	e.lastRunMu.RLock()
	defer e.lastRunMu.RUnlock()

	return Metrics{
		Runs:            e.runCount.Load(),
		Errors:          e.errorCount.Load(),
		Recommendations: e.recCount.Load(),
		LastRunAt:       e.lastRunAt,
	}
}

func (e *Engine) horizon(lists ...[]movies.Movie) int {
	if e.config.YearHorizon > 0 {
		return e.config.YearHorizon
	}
	return features.HorizonFor(lists...)
}

func (e *Engine) train(ctx context.Context, history []movies.Movie, horizon int) (*Model, error) {
	start := time.Now()
	logger := e.loggerFor(ctx)

	enc, err := features.NewEncoder(e.config.Layout, horizon)
	if err != nil {
		return nil, fmt.Errorf("create encoder: %w", err)
	}

	model := &Model{Encoder: enc}
	rows := make([][]float64, 0, len(history))
	labels := make([]int, 0, len(history))

	for i := range history {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		m := &history[i]
		if !m.Liked.Valid {
			model.Dropped.MissingLabel++
			e.logDrop(logger, metrics.PhaseTrain, metrics.ReasonMissingLabel, i, m)
			continue
		}

		v, err := enc.Features(m)
		if err != nil {
			reason := e.countDrop(&model.Dropped, err)
			e.logDrop(logger, metrics.PhaseTrain, reason, i, m)
			continue
		}

		rows = append(rows, v)
		labels = append(labels, m.Liked.Value)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %d history movies, %d dropped",
			ErrEmptyTrainingSet, len(history), model.Dropped.Total())
	}

	f, err := forest.Fit(ctx, rows, labels, e.config.Forest)
	if err != nil {
		return nil, fmt.Errorf("fit forest: %w", err)
	}

	model.Forest = f
	model.TrainingRows = len(rows)
	model.Positives = lo.Sum(labels)
	model.TrainedAt = time.Now()
	model.Duration = time.Since(start)
	metrics.RecordTraining(model.Duration, len(rows), len(f.Trees()))

	event := logger.Debug().
		Int("rows", model.TrainingRows).
		Int("liked", model.Positives).
		Int("dropped", model.Dropped.Total()).
		Int("horizon", horizon).
		Str("layout", enc.Layout().String()).
		Dur("duration", model.Duration).
		Dict("top_features", topFeatures(enc.FeatureNames(), f.FeatureImportances(), loggedFeatures))
	if score, ok := f.OOBScore(); ok {
		metrics.OOBAccuracy.Set(score.Accuracy)
		event = event.Float64("oob_accuracy", score.Accuracy).Float64("oob_auc", score.AUC)
	}
	event.Msg("model trained")

	return model, nil
}

// loggedFeatures caps the importances reported when a model is trained.
const loggedFeatures = 5

// topFeatures returns the n largest nonzero importances keyed by feature
// name, largest first.
func topFeatures(names []string, importances []float64, n int) *zerolog.Event {
	order := make([]int, 0, len(importances))
	for i, v := range importances {
		if v > 0 && i < len(names) {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return importances[order[a]] > importances[order[b]]
	})

	dict := zerolog.Dict()
	for _, i := range lo.Slice(order, 0, n) {
		dict = dict.Float64(names[i], importances[i])
	}
	return dict
}

// prediction is the outcome of scoring a catalog.
type prediction struct {
	selected   []Selection
	candidates int
	liked      int
	dropped    DropStats
}

func (e *Engine) predict(ctx context.Context, model *Model, catalog []movies.Movie) (*prediction, error) {
	if model == nil || model.Forest == nil || model.Encoder == nil {
		return nil, errors.New("model is not trained")
	}

	start := time.Now()
	logger := e.loggerFor(ctx)
	pred := &prediction{}

	rows := make([]Row, 0, len(catalog))
	for i := range catalog {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		m := &catalog[i]
		v, err := model.Encoder.Features(m)
		if err != nil {
			reason := e.countDrop(&pred.dropped, err)
			e.logDrop(logger, metrics.PhasePredict, reason, i, m)
			continue
		}
		rows = append(rows, Row{Index: i, Title: m.Title, Features: v})
	}
	pred.candidates = len(rows)

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		label, vote, err := model.Forest.Classify(row.Features)
		if err != nil {
			return nil, fmt.Errorf("predict catalog row %d: %w", row.Index, err)
		}
		if label != 1 {
			continue
		}

		pred.liked++
		if len(pred.selected) < e.config.MaxResults {
			pred.selected = append(pred.selected, Selection{Index: row.Index, Title: row.Title, Vote: vote})
		}
	}

	metrics.RecordPrediction(time.Since(start), len(rows), len(pred.selected))
	logger.Debug().
		Int("candidates", pred.candidates).
		Int("predicted_liked", pred.liked).
		Int("selected", len(pred.selected)).
		Int("dropped", pred.dropped.Total()).
		Msg("catalog scored")

	return pred, nil
}

// resolve maps selected rows back to catalog movies.
func (e *Engine) resolve(ctx context.Context, catalog []movies.Movie, selected []Selection) []movies.Movie {
	if dups := movies.DuplicateTitles(catalog); len(dups) > 0 {
		e.loggerFor(ctx).Warn().
			Strs("titles", dups).
			Str("title_matching", e.config.TitleMatching.String()).
			Msg("catalog contains duplicate titles")
	}

	if e.config.TitleMatching == MatchByTitle {
		titles := mapset.NewThreadUnsafeSet(lo.Map(selected, func(s Selection, _ int) string {
			return s.Title
		})...)
		return lo.Filter(catalog, func(m movies.Movie, _ int) bool {
			return titles.Contains(m.Title)
		})
	}

	out := make([]movies.Movie, 0, len(selected))
	for _, s := range selected {
		out = append(out, catalog[s.Index])
	}
	return out
}

func (e *Engine) countDrop(stats *DropStats, err error) string {
	switch {
	case errors.Is(err, features.ErrMissingRating):
		stats.MissingRating++
		return metrics.ReasonMissingRating
	default:
		stats.MissingYear++
		return metrics.ReasonMissingYear
	}
}

func (e *Engine) logDrop(logger *zerolog.Logger, phase, reason string, index int, m *movies.Movie) {
	metrics.RecordRowDropped(phase, reason)
	logger.Debug().
		Str("phase", phase).
		Str("reason", reason).
		Int("index", index).
		Str("title", m.Title).
		Msg("movie dropped")
}

// loggerFor returns the engine logger with run and request IDs from ctx.
func (e *Engine) loggerFor(ctx context.Context) *zerolog.Logger {
	logCtx := e.logger.With()
	if id := logging.RunIDFromContext(ctx); id != "" {
		logCtx = logCtx.Str("run_id", id)
	}
	if id := logging.RequestIDFromContext(ctx); id != "" {
		logCtx = logCtx.Str("request_id", id)
	}
	logger := logCtx.Logger()
	return &logger
}
