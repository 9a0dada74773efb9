// church evaluates Church numeral expressions.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vinodhalaharvi/church/pkg/config"
	"github.com/vinodhalaharvi/church/pkg/ct"
	"github.com/vinodhalaharvi/church/pkg/eval"
	"github.com/vinodhalaharvi/church/pkg/generator"
	"github.com/vinodhalaharvi/church/pkg/transformer"
)

var version = "0.1.0"

// errFailed signals that at least one expression failed; the report already
// says which.
var errFailed = errors.New("evaluation failed")

type options struct {
	configPath string
	verbose    bool
	format     string
	workers    int
	tree       bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "church",
		Short: "church - evaluate Church numeral expressions",
		Long: `church compiles arithmetic on natural numbers into Church numerals,
functions that apply f to x n times, and decodes the result by counting
how often f gets called.

Expressions use Go syntax:
  3, church(3), zero, one, two, three
  succ(n), add(n, m), mult(n, m), exp(n, m)
  n + m, n * m, n ^ m   (^ is exponentiation and binds like +)`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", config.DefaultPath, "Config file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose output")

	root.AddCommand(newEvalCmd(opts), newVersionCmd())
	return root
}

func newEvalCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval [expr...]",
		Short: "Evaluate expressions (from args, or one per stdin line)",
		Example: `  church eval "exp(3, 5)"
  church eval --format lambda "2 * 2"
  echo "add(one, two)" | church eval`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(cmd, opts, args)
		},
	}
	cmd.Flags().StringVarP(&opts.format, "format", "f", string(generator.FormatDecimal), "Output format: decimal, tally, lambda")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 1, "Expressions evaluated in parallel")
	cmd.Flags().BoolVar(&opts.tree, "tree", false, "Print the parsed expression tree")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "church version %s\n", version)
		},
	}
}

func runEval(cmd *cobra.Command, opts *options, args []string) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg, opts.verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	srcs := args
	if len(srcs) == 0 {
		srcs, err = readLines(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	}
	if len(srcs) == 0 {
		return errors.New("no expressions given")
	}

	gen, err := generator.NewGenerator(generator.Format(cfg.Format))
	if err != nil {
		return err
	}
	ev := eval.New(transformer.NewTransformer(cfg.TransformerOptions()), gen, logger, cfg.Workers)

	logger.Debug("evaluating",
		zap.Int("expressions", len(srcs)),
		zap.String("format", cfg.Format),
		zap.Int("workers", cfg.Workers))

	results, err := ev.EvalAll(cmd.Context(), srcs)
	if err != nil {
		return err
	}

	entries := ct.Map(results, func(r eval.Result) generator.Entry {
		e := r.Entry()
		if opts.tree && r.Expr != nil {
			e.Detail = generator.Tree(r.Expr)
		}
		return e
	})
	fmt.Fprintln(cmd.OutOrStdout(), generator.Report(entries))

	for _, r := range results {
		if r.Err != nil {
			return errFailed
		}
	}
	return nil
}

// loadConfig layers defaults, the config file, environment and flags.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("format") {
		cfg.Format = opts.format
	}
	if cmd.Flags().Changed("workers") {
		cfg.Workers = opts.workers
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, verbose bool) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level: %w", err)
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// readLines returns the non-blank lines of r, skipping # comments.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, sc.Err()
}
