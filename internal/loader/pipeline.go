// Package loader turns one period into a dashboard: it fetches every
// strategy's dataset, parses, sorts and aggregates each, and compares the
// pair when two strategies are configured.
package loader

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"allocation-dashboard/internal/decision"
	"allocation-dashboard/internal/domain"
	"allocation-dashboard/internal/idhash"
	"allocation-dashboard/internal/metrics"
	"allocation-dashboard/internal/observability"
	"allocation-dashboard/internal/source"
	"allocation-dashboard/internal/table"
)

// DefaultPathPattern resolves one dataset per (strategy, period).
const DefaultPathPattern = "results/{strategy}_hour_{period}.csv"

// Pattern placeholders.
const (
	PlaceholderStrategy = "{strategy}"
	PlaceholderPeriod   = "{period}"
)

var (
	ErrNoSource      = errors.New("loader: source is required")
	ErrStrategyCount = errors.New("loader: one or two strategies required")
	ErrDuplicateTag  = errors.New("loader: strategy tags must differ")
	ErrPathPattern   = errors.New("loader: path pattern must contain " + PlaceholderStrategy + " and " + PlaceholderPeriod)
	ErrInvalidPeriod = errors.New("loader: invalid period")
)

// Loader produces a dashboard for a period.
type Loader interface {
	Load(ctx context.Context, period string) (*domain.Dashboard, error)
}

// Options for creating a Pipeline.
type Options struct {
	// Strategies in comparison order: [A] or [A, B].
	Strategies []domain.Strategy
	Source     source.Source

	// PathPattern defaults to DefaultPathPattern.
	PathPattern string
	// SupplyPolicy defaults to declared with two strategies and used with one.
	SupplyPolicy metrics.SupplyPolicy

	Logger  *zap.Logger
	Metrics *observability.Metrics
	Now     func() time.Time
}

// Pipeline is a stateless Loader. Every Load builds fresh values.
type Pipeline struct {
	strategies []domain.Strategy
	src        source.Source
	pattern    string
	aggregator *metrics.Aggregator
	evaluator  *decision.Evaluator // nil in single-strategy mode

	logger  *zap.Logger
	metrics *observability.Metrics
	now     func() time.Time
}

// New validates opts and creates a Pipeline.
func New(opts Options) (*Pipeline, error) {
	if opts.Source == nil {
		return nil, ErrNoSource
	}
	n := len(opts.Strategies)
	if n < 1 || n > 2 {
		return nil, fmt.Errorf("%w: got %d", ErrStrategyCount, n)
	}
	if n == 2 && opts.Strategies[0].Tag == opts.Strategies[1].Tag {
		return nil, ErrDuplicateTag
	}

	pattern := opts.PathPattern
	if pattern == "" {
		pattern = DefaultPathPattern
	}
	if !strings.Contains(pattern, PlaceholderStrategy) || !strings.Contains(pattern, PlaceholderPeriod) {
		return nil, ErrPathPattern
	}

	policy := opts.SupplyPolicy
	if policy == "" {
		policy = metrics.SupplyDeclared
		if n == 1 {
			policy = metrics.SupplyFromUsed
		}
	}

	p := &Pipeline{
		strategies: append([]domain.Strategy(nil), opts.Strategies...),
		src:        opts.Source,
		pattern:    pattern,
		aggregator: metrics.NewAggregator(policy),
		logger:     opts.Logger,
		metrics:    opts.Metrics,
		now:        opts.Now,
	}
	if n == 2 {
		p.evaluator = decision.NewEvaluator(opts.Strategies[0], opts.Strategies[1])
	}
	if p.logger == nil {
		p.logger = zap.NewNop()
	}
	if p.metrics == nil {
		p.metrics = observability.DefaultMetrics
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p, nil
}

// Mode returns the number of configured strategies.
func (p *Pipeline) Mode() int { return len(p.strategies) }

// Strategies returns a copy of the configured strategies.
func (p *Pipeline) Strategies() []domain.Strategy {
	return append([]domain.Strategy(nil), p.strategies...)
}

// Policy returns the supply policy in effect.
func (p *Pipeline) Policy() metrics.SupplyPolicy { return p.aggregator.Policy() }

// ResolvePath fills the pattern for one strategy tag and period.
func (p *Pipeline) ResolvePath(tag, period string) string {
	return strings.NewReplacer(PlaceholderStrategy, tag, PlaceholderPeriod, period).Replace(p.pattern)
}

// NormalizePeriod trims period and rejects values that are empty or could
// step outside the dataset namespace.
func NormalizePeriod(period string) (string, error) {
	p := strings.TrimSpace(period)
	if p == "" || strings.ContainsAny(p, "/\\") || strings.Contains(p, "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}
	return p, nil
}

// Load fetches every strategy concurrently and assembles the dashboard.
// If any fetch fails the whole load fails with a *source.FetchError naming
// that dataset's path; no partial dashboard is returned.
func (p *Pipeline) Load(ctx context.Context, period string) (*domain.Dashboard, error) {
	period, err := NormalizePeriod(period)
	if err != nil {
		return nil, err
	}

	start := p.now()
	views := make([]domain.StrategyView, len(p.strategies))

	g, gctx := errgroup.WithContext(ctx)
	for i, s := range p.strategies {
		ref := source.DatasetRef{Period: period, Strategy: s, Path: p.ResolvePath(s.Tag, period)}
		g.Go(func() error {
			text, err := p.fetch(gctx, ref)
			if err != nil {
				return &source.FetchError{Path: ref.Path, Err: err}
			}
			views[i] = p.buildView(period, ref, text)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		p.logger.Warn("load failed",
			zap.String("period", period),
			zap.Error(err),
			zap.NamedError("cause", errors.Unwrap(err)),
		)
		return nil, err
	}

	d := &domain.Dashboard{
		Period:     period,
		LoadedAt:   p.now(),
		Strategies: views,
	}
	if p.evaluator != nil {
		a, b := views[0].Metrics, views[1].Metrics
		v := p.evaluator.Decide(a, b)
		d.Verdict = &v
		d.SupplyLimit = metrics.CombinedSupply(a, b)
		p.metrics.RecordVerdict(string(v.Winner), string(v.Reason))
	} else {
		d.SupplyLimit = views[0].Metrics.SupplyLimit
	}

	fields := []zap.Field{
		zap.String("period", period),
		zap.Int("strategies", len(views)),
		zap.Duration("elapsed", p.now().Sub(start)),
	}
	if d.Verdict != nil {
		fields = append(fields, zap.String("winner", d.Verdict.Label), zap.String("reason", string(d.Verdict.Reason)))
	}
	p.logger.Info("dashboard built", fields...)

	return d, nil
}

func (p *Pipeline) fetch(ctx context.Context, ref source.DatasetRef) (string, error) {
	start := time.Now()
	text, err := p.src.Fetch(ctx, ref)
	p.metrics.RecordFetch(p.src.Kind(), time.Since(start), err)
	if err != nil {
		return "", err
	}
	p.logger.Debug("dataset fetched",
		zap.String("path", ref.Path),
		zap.String("source", p.src.Kind()),
		zap.Int("bytes", len(text)),
	)
	return text, nil
}

func (p *Pipeline) buildView(period string, ref source.DatasetRef, text string) domain.StrategyView {
	t := table.Parse(text)
	p.metrics.RecordParsed(ref.Strategy.Tag, t.Len())

	// Metrics read the display order: the declared supply limit comes from
	// the first row shown.
	records := table.SortForDisplay(t.Records)
	return domain.StrategyView{
		Strategy:    ref.Strategy,
		Path:        ref.Path,
		Fingerprint: idhash.ComputeDatasetFingerprint(period, ref.Strategy.Tag, text),
		Fields:      t.Fields,
		Columns:     table.DisplayColumns(t),
		Records:     records,
		Metrics:     p.aggregator.Aggregate(records),
	}
}
