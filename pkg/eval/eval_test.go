package eval

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/vinodhalaharvi/church/pkg/generator"
	"github.com/vinodhalaharvi/church/pkg/parser"
	"github.com/vinodhalaharvi/church/pkg/transformer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newEvaluator(t *testing.T, format generator.Format, workers int) *Evaluator {
	t.Helper()
	gen, err := generator.NewGenerator(format)
	require.NoError(t, err)
	return New(transformer.NewTransformer(transformer.DefaultOptions()), gen, zap.NewNop(), workers)
}

func TestEval(t *testing.T) {
	ev := newEvaluator(t, generator.FormatDecimal, 1)

	r := ev.Eval("exp(3, 5)")
	require.NoError(t, r.Err)
	assert.Equal(t, uint(243), r.Value)
	assert.Equal(t, "243", r.Output)
	assert.Equal(t, "exp(3, 5)", r.Expr.String())
}

func TestEvalLambda(t *testing.T) {
	ev := newEvaluator(t, generator.FormatLambda, 1)
	r := ev.Eval("succ(one)")
	require.NoError(t, r.Err)
	assert.Equal(t, "λf.λx.f (f x)", r.Output)
}

func TestEvalErrors(t *testing.T) {
	ev := newEvaluator(t, generator.FormatDecimal, 1)

	r := ev.Eval("add(1")
	assert.ErrorIs(t, r.Err, parser.ErrSyntax)
	assert.Nil(t, r.Expr)

	r = ev.Eval("exp(10, 10)")
	assert.ErrorIs(t, r.Err, transformer.ErrValueTooLarge)
	assert.NotNil(t, r.Expr)

	ev = newEvaluator(t, generator.FormatTally, 1)
	r = ev.Eval("5000")
	assert.ErrorIs(t, r.Err, generator.ErrTermTooLarge)
	assert.Equal(t, uint(5000), r.Value)
}

func TestNewDefaults(t *testing.T) {
	gen, err := generator.NewGenerator(generator.FormatDecimal)
	require.NoError(t, err)
	ev := New(transformer.NewTransformer(transformer.DefaultOptions()), gen, nil, 0)
	assert.Equal(t, 1, ev.workers)
	assert.Equal(t, "6", ev.Eval("2 * 3").Output)
}

func TestEvalAllKeepsOrder(t *testing.T) {
	ev := newEvaluator(t, generator.FormatDecimal, 4)

	var srcs []string
	for i := 0; i < 40; i++ {
		srcs = append(srcs, fmt.Sprintf("add(%d, mult(%d, 2))", i, i))
	}
	srcs = append(srcs, "bogus")

	results, err := ev.EvalAll(context.Background(), srcs)
	require.NoError(t, err)
	require.Len(t, results, len(srcs))
	for i := 0; i < 40; i++ {
		assert.Equal(t, srcs[i], results[i].Source)
		assert.Equal(t, uint(3*i), results[i].Value)
	}
	assert.ErrorIs(t, results[40].Err, parser.ErrUnknownOperator)
	assert.Equal(t, "bogus", results[40].Entry().Source)
}

func TestEvalAllCanceled(t *testing.T) {
	ev := newEvaluator(t, generator.FormatDecimal, 2)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ev.EvalAll(ctx, []string{"1", "2", "3"})
	assert.ErrorIs(t, err, context.Canceled)
}
