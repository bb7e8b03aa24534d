package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"source-irfitter/internal/config"
	"source-irfitter/internal/engine"
	"source-irfitter/internal/gosource"
	"source-irfitter/internal/observability"
	"source-irfitter/internal/report"
	"source-irfitter/internal/symtree"
	"source-irfitter/internal/treefile"
)

// ErrNoInput is returned when a side has no trees to match.
var ErrNoInput = errors.New("no input trees")

type matchOptions struct {
	root *rootOptions

	sources   []string
	goSources []string
	irs       []string
	output    string
	format    string
	compress  bool
	noColor   bool
	dump      bool
	metrics   string

	jobs         int
	noHeuristic  bool
	noPositional bool
}

func newMatchCmd(root *rootOptions) *cobra.Command {
	opts := &matchOptions{root: root}

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match IR trees against Source trees",
		Long: `Match loads Source and IR symbol tree files, pairs every IR node with a
Source node and writes the records. A summary table goes to stderr.`,
		Example: `  source-irfitter match -s Foo.java.yaml -i Foo.class.yaml -o records.yaml
  source-irfitter match --go ./... -i app.ir.yaml -f msgpack --compress -o records.bin`,
		RunE: opts.run,
	}

	flags := cmd.Flags()
	flags.StringArrayVarP(&opts.sources, "source", "s", nil, "Source tree file (repeatable)")
	flags.StringArrayVar(&opts.goSources, "go", nil, "Go package pattern to build Source trees from (repeatable)")
	flags.StringArrayVarP(&opts.irs, "ir", "i", nil, "IR tree file (repeatable)")
	flags.StringVarP(&opts.output, "output", "o", "", "output file (default: stdout)")
	flags.StringVarP(&opts.format, "format", "f", "", "output format: yaml or msgpack")
	flags.BoolVar(&opts.compress, "compress", false, "LZ4-compress msgpack output")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored summary")
	flags.BoolVar(&opts.dump, "dump", false, "dump the raw records to stderr")
	flags.StringVar(&opts.metrics, "metrics", "", "write Prometheus metrics to this textfile")
	flags.IntVarP(&opts.jobs, "jobs", "j", 0, "concurrent type jobs (default: one per CPU)")
	flags.BoolVar(&opts.noHeuristic, "no-heuristic", false, "disable line-overlap matching")
	flags.BoolVar(&opts.noPositional, "no-positional", false, "disable the positional fallback")

	return cmd
}

func (o *matchOptions) run(cmd *cobra.Command, _ []string) error {
	cfg, err := o.root.load()
	if err != nil {
		return err
	}

	o.apply(cmd, cfg)

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	logger, err := newLogger(cmd.ErrOrStderr(), cfg)
	if err != nil {
		return err
	}

	sources, err := o.loadSources()
	if err != nil {
		return err
	}

	irs, err := loadTrees(o.irs)
	if err != nil {
		return err
	}

	if len(sources) == 0 || len(irs) == 0 {
		return fmt.Errorf("%w: need at least one Source and one IR tree", ErrNoInput)
	}

	metrics := observability.NewMetrics()

	ecfg := cfg.Engine()
	ecfg.Logger = logger
	ecfg.Recorder = metrics

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := engine.Run(ctx, sources, irs, ecfg)
	if err != nil {
		return fmt.Errorf("matching failed: %w", err)
	}

	rep := report.FromResult(res)

	if o.dump {
		spew.Fdump(cmd.ErrOrStderr(), rep.Records)
	}

	if err := o.write(cmd.OutOrStdout(), rep, cfg); err != nil {
		return err
	}

	if cfg.Output.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.Output.MetricsFile); err != nil {
			return err
		}
	}

	colored := cfg.Output.Color && !color.NoColor

	return report.RenderSummary(cmd.ErrOrStderr(), rep.Summary, colored)
}

// apply lets explicitly set flags override the config file.
func (o *matchOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if flags.Changed("format") {
		cfg.Output.Format = o.format
	}

	if flags.Changed("compress") {
		cfg.Output.Compress = o.compress
	}

	if flags.Changed("no-color") {
		cfg.Output.Color = !o.noColor
	}

	if flags.Changed("metrics") {
		cfg.Output.MetricsFile = o.metrics
	}

	if flags.Changed("jobs") {
		cfg.Matching.Jobs = o.jobs
	}

	if flags.Changed("no-heuristic") {
		cfg.Matching.Heuristic = !o.noHeuristic
	}

	if flags.Changed("no-positional") {
		cfg.Matching.Positional = !o.noPositional
	}
}

func (o *matchOptions) loadSources() ([]*symtree.Tree, error) {
	trees, err := loadTrees(o.sources)
	if err != nil {
		return nil, err
	}

	if len(o.goSources) > 0 {
		goTrees, err := gosource.NewLoader("").LoadPackages(o.goSources...)
		if err != nil {
			return nil, err
		}

		trees = append(trees, goTrees...)
	}

	return trees, nil
}

func (o *matchOptions) write(stdout io.Writer, rep *report.Report, cfg *config.Config) error {
	w := stdout

	if o.output != "" {
		f, err := os.Create(o.output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()

		w = f
	}

	if cfg.Output.Format == "msgpack" {
		return report.WriteMsgpack(w, rep, cfg.Output.Compress)
	}

	return report.WriteYAML(w, rep)
}

func loadTrees(paths []string) ([]*symtree.Tree, error) {
	trees := make([]*symtree.Tree, 0, len(paths))

	for _, p := range paths {
		tree, err := treefile.LoadFile(p)
		if err != nil {
			return nil, err
		}

		trees = append(trees, tree)
	}

	return trees, nil
}
