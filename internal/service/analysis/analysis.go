// Package analysis orchestrates the full orphan-detection pipeline. The CLI,
// report, and MCP layers all run analyses through this service so every
// surface sees identical results.
package analysis

import (
	"fmt"
	"time"

	"github.com/relictool/relic/internal/report"
	"github.com/relictool/relic/internal/scanner"
	"github.com/relictool/relic/pkg/config"
	"github.com/relictool/relic/pkg/graph"
	"github.com/relictool/relic/pkg/manifest"
	"github.com/relictool/relic/pkg/refine"
)

// Service runs orphan analyses against a project tree.
type Service struct {
	config *config.Config
	onWarn func(path string, err error)
}

// Option configures a Service.
type Option func(*Service)

// WithConfig sets the configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		s.config = cfg
	}
}

// WithWarnFunc receives non-fatal per-file problems (unreadable files,
// failed hashes). The run continues past them.
func WithWarnFunc(fn func(path string, err error)) Option {
	return func(s *Service) {
		s.onWarn = fn
	}
}

// New creates a new analysis service.
func New(opts ...Option) *Service {
	s := &Service{}
	for _, opt := range opts {
		opt(s)
	}
	if s.config == nil {
		s.config, _ = config.LoadOrDefault()
	}
	return s
}

// Options configures a single run. Zero values defer to the loaded config.
type Options struct {
	// BuildLog is a path to a build/bundle log to cross-check candidates
	// against. Empty skips the pass unless the config names one.
	BuildLog string
	// SkipDynamicScan disables the dynamic-reference pass for this run.
	SkipDynamicScan bool
	// SkipDuplicates disables duplicate detection for this run.
	SkipDuplicates bool
	// MetricsTop caps the top-imported table. Zero uses the config value.
	MetricsTop int
	// OnProgress is called once per file during the graph build.
	OnProgress func()
}

// Result is the outcome of one full pipeline run.
type Result struct {
	Root              string
	StartedAt         time.Time
	Files             []string
	Skipped           []string
	Graph             *graph.Graph
	Barrels           []graph.BarrelExport
	RouteEdges        int
	AllowPatterns     []string
	Orphans           []graph.OrphanCandidate
	RemovedByBuildLog []string
	DynamicScan       *refine.DynamicScan
	Duplicates        []graph.DuplicateGroup
	Metrics           *graph.Metrics
}

// Run executes the pipeline against root: collect, build, refine, classify.
// Only an unreadable root is fatal; per-file problems are warned and skipped.
func (s *Service) Run(root string, opts Options) (*Result, error) {
	res := &Result{Root: root, StartedAt: time.Now()}

	files, err := scanner.NewScanner(s.config, scanner.WithWarnFunc(s.onWarn)).Collect(root)
	if err != nil {
		return nil, err
	}
	res.Files = files

	builderOpts := []graph.BuilderOption{
		graph.WithExtensions(s.config.Extensions),
		graph.WithWarnFunc(s.onWarn),
	}
	if opts.OnProgress != nil {
		builderOpts = append(builderOpts, graph.WithProgress(opts.OnProgress))
	}
	builder := graph.NewBuilder(root, builderOpts...)
	build := builder.Build(files)
	res.Graph = build.Graph
	res.Skipped = build.Graph.Skipped

	if s.config.Analysis.Barrels {
		passes := s.config.Analysis.BarrelPasses
		if passes <= 0 {
			passes = graph.DefaultMaxPropagationPasses
		}
		res.Barrels = graph.ResolveBarrels(build.Graph, build.Sources, builder.Resolver(build.Graph), passes)
	}
	if s.config.Analysis.Routes {
		res.RouteEdges = graph.ResolveRoutes(build.Graph, build.Sources)
	}

	allow, err := s.allowList(root)
	if err != nil {
		return nil, err
	}
	res.AllowPatterns = allow.Patterns()
	res.Orphans = graph.ClassifyOrphans(build.Graph, allow)

	buildLog := opts.BuildLog
	if buildLog == "" {
		buildLog = s.config.Analysis.BuildLog
	}
	if buildLog != "" {
		checked, err := refine.CrossCheckBuildLogFile(buildLog, res.Orphans)
		if err != nil {
			return nil, err
		}
		res.Orphans = checked.Kept
		res.RemovedByBuildLog = checked.Removed
	}

	if s.config.Analysis.DynamicScan && !opts.SkipDynamicScan {
		res.DynamicScan = refine.ScanDynamicReferences(build.Sources, res.Orphans)
	}

	if s.config.Analysis.Duplicates && !opts.SkipDuplicates {
		detector := graph.NewDuplicateDetector(root, graph.WithDuplicateWarnFunc(s.onWarn))
		res.Duplicates = detector.Detect(files)
	}

	top := opts.MetricsTop
	if top <= 0 {
		top = s.config.Analysis.MetricsTop
	}
	res.Metrics = graph.ComputeMetrics(build.Graph, top)

	return res, nil
}

// allowList combines the built-in patterns, config additions, and (when
// enabled) the package.json entry points.
func (s *Service) allowList(root string) (*graph.AllowList, error) {
	patterns := append([]string(nil), graph.DefaultAllowPatterns...)
	patterns = append(patterns, s.config.Allow.Patterns...)
	if s.config.Allow.Manifest {
		patterns = append(patterns, manifest.EntryPoints(root)...)
	}
	allow, err := graph.NewAllowList(patterns)
	if err != nil {
		return nil, fmt.Errorf("allow list: %w", err)
	}
	return allow, nil
}

// ReportData converts a result into the shape the report renderers consume.
func (r *Result) ReportData() *report.Data {
	d := &report.Data{
		Root:              r.Root,
		GeneratedAt:       r.StartedAt,
		TotalFiles:        len(r.Files),
		SkippedFiles:      r.Skipped,
		Orphans:           r.Orphans,
		RemovedByBuildLog: r.RemovedByBuildLog,
		Duplicates:        r.Duplicates,
		Barrels:           r.Barrels,
		Metrics:           r.Metrics,
	}
	if r.DynamicScan != nil {
		d.DynamicRefs = r.DynamicScan.References
	}
	return d
}

// D3 builds the force-graph document for this result.
func (r *Result) D3() *report.D3Document {
	return report.BuildD3(r.Graph, r.Duplicates)
}
