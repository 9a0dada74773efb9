// Package eval runs numeral expressions through the parse, transform and
// render pipeline.
package eval

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/vinodhalaharvi/church/pkg/church"
	"github.com/vinodhalaharvi/church/pkg/generator"
	"github.com/vinodhalaharvi/church/pkg/parser"
	"github.com/vinodhalaharvi/church/pkg/transformer"
)

// Result is the outcome of evaluating one expression.
type Result struct {
	Source string
	Expr   parser.Expr // nil if parsing failed
	Value  uint
	Output string
	Err    error
}

// Entry converts r for generator.Report.
func (r Result) Entry() generator.Entry {
	return generator.Entry{Source: r.Source, Output: r.Output, Err: r.Err}
}

// Evaluator evaluates expressions. It is safe for concurrent use: numerals
// are immutable and each decode owns its counter.
type Evaluator struct {
	parser  *parser.Parser
	trans   *transformer.Transformer
	gen     *generator.Generator
	logger  *zap.Logger
	workers int
}

// New creates an evaluator. A nil logger is replaced with a no-op logger and
// workers below 1 mean 1.
func New(trans *transformer.Transformer, gen *generator.Generator, logger *zap.Logger, workers int) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers < 1 {
		workers = 1
	}
	return &Evaluator{
		parser:  parser.NewParser(),
		trans:   trans,
		gen:     gen,
		logger:  logger,
		workers: workers,
	}
}

// Eval evaluates a single expression. Failures are reported in Result.Err.
func (e *Evaluator) Eval(src string) Result {
	start := time.Now()
	res := Result{Source: src}

	expr, err := e.parser.Parse(src)
	if err != nil {
		res.Err = err
		e.logger.Debug("parse failed", zap.String("source", src), zap.Error(err))
		return res
	}
	res.Expr = expr

	n, err := e.trans.Transform(expr)
	if err != nil {
		res.Err = err
		e.logger.Debug("transform failed", zap.String("expr", expr.String()), zap.Error(err))
		return res
	}

	res.Value = church.ToUint(n)
	res.Output, res.Err = e.gen.Render(n)

	e.logger.Debug("evaluated",
		zap.String("expr", expr.String()),
		zap.Uint("value", res.Value),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(res.Err))
	return res
}

// EvalAll evaluates srcs with at most e.workers in flight. Results keep the
// order of srcs. The returned error is non-nil only if ctx is done; per
// expression failures are in the results.
func (e *Evaluator) EvalAll(ctx context.Context, srcs []string) ([]Result, error) {
	results := make([]Result, len(srcs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, src := range srcs {
		i, src := i, src
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = e.Eval(src)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	e.logger.Info("batch evaluated", zap.Int("expressions", len(srcs)), zap.Int("failed", failed))
	return results, nil
}
