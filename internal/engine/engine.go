package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"source-irfitter/internal/conflict"
	"source-irfitter/internal/diagnostic"
	"source-irfitter/internal/match"
	"source-irfitter/internal/normalize"
	"source-irfitter/internal/position"
	"source-irfitter/internal/symtree"
)

// ErrNilTree is reported for a nil entry in the input tree lists.
var ErrNilTree = errors.New("nil tree")

// Run matches every IR tree against the Source trees. Malformed trees, and
// malformed top-level types within otherwise sound trees, are reported as
// failures and skipped; everything else proceeds. The context
// only stops new jobs from being launched: on cancellation the jobs already
// running finish and Run returns the context error without a result.
func Run(ctx context.Context, sources, irs []*symtree.Tree, cfg Config) (*Result, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	recorder := cfg.Recorder
	if recorder == nil {
		recorder = nopRecorder{}
	}

	res := &Result{}

	validSources, rejectedSources := prepare(sources, SideSource, res, recorder)
	validIRs, rejectedIRs := prepare(irs, SideIR, res, recorder)

	index := match.NewSourceIndex(validSources, rejectedSources)
	jobs := planJobs(validIRs, rejectedIRs)

	logger.Debug("planned jobs",
		"sources", len(validSources),
		"irs", len(validIRs),
		"jobs", len(jobs))

	results, err := runJobs(ctx, jobs, index, cfg, logger, recorder)
	if err != nil {
		return nil, err
	}

	for _, recs := range results {
		res.Records = append(res.Records, recs...)
	}

	res.Records = append(res.Records, matchPackages(validIRs, index, res.Records)...)

	sortRecords(res.Records, validIRs)
	conflict.Resolve(res.Records)
	position.Resolve(res.Records)
	addRecordDiagnostics(&res.Diagnostics, res.Records)

	recorder.RecordResult(res.Records)
	logger.Debug("run finished",
		"records", len(res.Records),
		"failures", len(res.Failures))

	return res, nil
}

// prepare validates and normalizes trees, keeping the valid ones in input
// order. A tree whose package skeleton is broken is rejected whole; a
// malformed top-level type is rejected on its own and returned in the
// rejected set, so the other types of its unit still take part.
func prepare(trees []*symtree.Tree, side Side, res *Result, recorder Recorder) ([]*symtree.Tree, map[symtree.Ref]bool) {
	valid := make([]*symtree.Tree, 0, len(trees))
	rejected := make(map[symtree.Ref]bool)

	for i, t := range trees {
		if t == nil {
			unit := fmt.Sprintf("#%d", i)
			res.fail(unit, "", side, ErrNilTree)
			recorder.RecordFailure(unit, side)

			continue
		}

		if err := t.ValidateSkeleton(); err != nil {
			res.fail(t.Unit(), "", side, err)
			recorder.RecordFailure(t.Unit(), side)

			continue
		}

		for _, ref := range topLevelTypes(t) {
			if err := t.Validate(ref.ID); err != nil {
				rejected[ref] = true
				res.fail(t.Unit(), ref.Node().QualifiedName, side, err)
				recorder.RecordFailure(t.Unit(), side)
			}
		}

		for _, issue := range normalize.Tree(t) {
			if withinRejected(t, issue.Node, rejected) {
				continue
			}

			res.Diagnostics.AddWarning(diagnostic.CodeOpaqueSignature,
				issue.Err.Error(), t.Unit(), t.Node(issue.Node).QualifiedName)
		}

		valid = append(valid, t)
	}

	return valid, rejected
}

func withinRejected(t *symtree.Tree, id symtree.NodeID, rejected map[symtree.Ref]bool) bool {
	if len(rejected) == 0 {
		return false
	}

	for _, cur := range append([]symtree.NodeID{id}, t.Ancestors(id)...) {
		if rejected[symtree.Ref{Tree: t, ID: cur}] {
			return true
		}
	}

	return false
}

func (r *Result) fail(unit, path string, side Side, err error) {
	r.Failures = append(r.Failures, UnitFailure{Unit: unit, Path: path, Side: side, Err: err})

	what := "tree"
	if path != "" {
		what = "type"
	}

	r.Diagnostics.AddError(diagnostic.CodeInvalidTree,
		fmt.Sprintf("%s %s rejected: %v", side, what, err), unit, path)
}

func runJobs(
	ctx context.Context,
	jobs []job,
	index *match.SourceIndex,
	cfg Config,
	logger *slog.Logger,
	recorder Recorder,
) ([][]match.Record, error) {
	// Each job writes only its own slot.
	results := make([][]match.Record, len(jobs))
	if len(jobs) == 0 {
		return results, ctx.Err()
	}

	limit := cfg.Jobs
	if limit <= 0 {
		limit = DefaultConfig().Jobs
	}

	g := new(errgroup.Group)
	g.SetLimit(min(limit, len(jobs)))

	for i := range jobs {
		if ctx.Err() != nil {
			break
		}

		g.Go(func() error {
			start := time.Now()

			m := match.NewMatcher(index, cfg.matchOptions(logger.With("job", jobs[i].name)))
			for _, ir := range jobs[i].types {
				m.MatchType(ir)
			}

			results[i] = m.Records()

			elapsed := time.Since(start)
			recorder.RecordJob(jobs[i].name, elapsed, results[i])
			logger.Debug("job finished",
				"job", jobs[i].name,
				"records", len(results[i]),
				"elapsed", elapsed)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("matching interrupted: %w", err)
	}

	return results, nil
}

// sortRecords orders records by IR tree position, then pre-order.
func sortRecords(records []match.Record, irs []*symtree.Tree) {
	treeIndex := make(map[*symtree.Tree]int, len(irs))
	for i, t := range irs {
		treeIndex[t] = i
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].IR, records[j].IR
		if a.Tree != b.Tree {
			return treeIndex[a.Tree] < treeIndex[b.Tree]
		}

		return a.Tree.PreorderIndex(a.ID) < b.Tree.PreorderIndex(b.ID)
	})
}

func addRecordDiagnostics(d *diagnostic.Diagnostics, records []match.Record) {
	for i := range records {
		r := &records[i]
		unit := r.IR.Tree.Unit()
		path := r.IRNode().QualifiedName

		if !r.Matched() {
			d.Add(diagnostic.Diagnostic{
				Severity:    diagnostic.DiagnosticWarning,
				Code:        diagnostic.CodeUnmatched,
				Message:     fmt.Sprintf("no source counterpart for %s", r.IRNode().Kind),
				Unit:        unit,
				Path:        path,
				Suggestions: r.Suggestions,
			})

			continue
		}

		if r.Ambiguous {
			d.AddInfo(diagnostic.CodeAmbiguous,
				"shares source node "+r.Source.String()+" with an earlier record", unit, path)
		}
	}
}
