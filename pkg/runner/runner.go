package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/goliatone/go-acfjson/internal/loader"
	"github.com/goliatone/go-acfjson/internal/prompt"
	"github.com/goliatone/go-acfjson/pkg/fieldtree"
	"github.com/goliatone/go-acfjson/pkg/normalize"
	"github.com/goliatone/go-acfjson/pkg/scan"
	"github.com/goliatone/go-acfjson/pkg/source"
)

// WriteError reports a document whose rewrite failed.
type WriteError struct {
	Location string
	Err      error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("runner: write %s: %v", e.Location, e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// Option customises the runner.
type Option func(*Runner)

// WithLoader injects the loader used to resolve, read and write documents.
func WithLoader(l *loader.Loader) Option {
	return func(r *Runner) {
		if l != nil {
			r.loader = l
		}
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithOutput sets where the human-readable report is written.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		if w != nil {
			r.out = w
		}
	}
}

// WithPrompt sets the driver asked before writes when Request.Confirm is set.
func WithPrompt(driver prompt.Driver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.prompt = driver
		}
	}
}

// WithTables replaces the default tables used by the exhaustive fill.
func WithTables(tables normalize.Tables) Option {
	return func(r *Runner) {
		r.tables = tables
	}
}

// WithEncodeOptions overrides how rewritten documents are serialised.
func WithEncodeOptions(opts fieldtree.EncodeOptions) Option {
	return func(r *Runner) {
		r.encode = opts
	}
}

// Runner processes the documents named by a request.
type Runner struct {
	loader *loader.Loader
	logger *zap.Logger
	out    io.Writer
	prompt prompt.Driver
	tables normalize.Tables
	encode fieldtree.EncodeOptions
}

// New constructs a Runner. Without options it reads and writes plain files,
// reports to stdout, logs nothing and uses the built-in default tables.
func New(options ...Option) *Runner {
	r := &Runner{
		loader: loader.New(),
		logger: zap.NewNop(),
		out:    os.Stdout,
		tables: normalize.DefaultTables(),
		encode: fieldtree.DefaultEncodeOptions(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Run resolves the request locator and processes every document.
func (r *Runner) Run(ctx context.Context, req Request) (Report, error) {
	if err := r.validate(req); err != nil {
		return Report{}, err
	}

	target, err := r.loader.Resolve(ctx, req.Locator)
	if err != nil {
		return Report{}, err
	}
	return r.RunTarget(ctx, target, req)
}

// RunTarget processes an already resolved target.
func (r *Runner) RunTarget(ctx context.Context, target loader.Target, req Request) (Report, error) {
	if err := r.validate(req); err != nil {
		return Report{}, err
	}
	report := Report{Task: req.Task, Mode: target.Mode}
	if req.Task == TaskInventory {
		report.Inventory = normalize.NewInventory()
	}
	rep := newReporter(r.out, target.Mode)

	preset := scan.DocumentWindow
	if target.Mode == loader.ModeDirectory {
		preset = scan.DirectoryWindow
	}
	window := req.Window.Apply(preset)

	r.logger.Debug("run started",
		zap.String("task", string(req.Task)),
		zap.String("mode", string(target.Mode)),
		zap.Int("documents", len(target.Sources)),
	)
	if req.Task == TaskScan {
		r.logger.Debug("scan window", zap.Int("look_back", window.LookBack), zap.Int("look_ahead", window.LookAhead))
	}

	for _, src := range target.Sources {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		result := r.process(ctx, src, req, window, rep)
		report.Documents = append(report.Documents, result)
		if report.Inventory != nil {
			report.Inventory.Merge(result.Inventory)
		}

		if target.Mode != loader.ModeDirectory && result.Err != nil {
			return report, result.Err
		}
		if errors.Is(result.Err, prompt.ErrAborted) || errors.Is(result.Err, context.Canceled) {
			return report, result.Err
		}
	}

	if report.Inventory != nil {
		rep.inventory(report.Inventory)
	}
	return report, rep.err
}

func (r *Runner) validate(req Request) error {
	if _, err := ParseTask(string(req.Task)); err != nil {
		return err
	}
	if req.Confirm && r.prompt == nil {
		return errors.New("runner: confirm requested without a prompt driver")
	}
	return nil
}

func (r *Runner) process(ctx context.Context, src source.Source, req Request, window scan.Window, rep *reporter) DocumentResult {
	result := DocumentResult{Source: src, Status: StatusClean}
	log := r.logger.With(zap.String("location", src.Location()))

	raw, err := r.loader.Load(ctx, src)
	if err != nil {
		return r.skip(result, err, log, rep)
	}
	log.Debug("document loaded", zap.Int("bytes", len(raw.Raw())))

	if req.Task == TaskScan {
		result.Findings = scan.New(window).Scan(raw.Lines())
		if len(result.Findings) > 0 {
			result.Status = StatusReported
		}
		rep.findings(result)
		return result
	}

	doc, err := fieldtree.ParseDocument(raw)
	if err != nil {
		return r.skip(result, err, log, rep)
	}

	switch req.Task {
	case TaskInventory:
		result.Inventory = normalize.BuildInventory(doc.Fields())
		return result
	case TaskCheck:
		result.Missing = normalize.MissingMultiple(doc.Fields(), req.CheckLayouts)
		if len(result.Missing) > 0 {
			result.Status = StatusReported
		}
		rep.missing(result)
		return result
	case TaskFixSelect:
		result.Fixed = normalize.FillSelect(doc.Fields(), req.Select)
	case TaskFixSelectLayouts:
		result.Fixed = normalize.FillSelectLayouts(doc.Fields())
	case TaskFixExhaustive:
		result.Fixed = normalize.NewExhaustive(r.tables).Fill(doc.Fields())
	}

	if result.Fixed == 0 {
		rep.nothingFixed(req.Task)
		return result
	}
	return r.save(ctx, doc, result, req, log, rep)
}

func (r *Runner) save(ctx context.Context, doc *fieldtree.Document, result DocumentResult, req Request, log *zap.Logger, rep *reporter) DocumentResult {
	unit := req.Task.unit()
	if req.DryRun {
		result.Status = StatusDryRun
		rep.dryRun(result, unit)
		return result
	}

	if req.Confirm {
		ok, err := r.prompt.Confirm(ctx, prompt.ConfirmConfig{
			Message: fmt.Sprintf("Write %d %s to %s?", result.Fixed, unit, result.Name()),
			Default: true,
		})
		if err != nil {
			result.Status = StatusFailed
			result.Err = err
			return result
		}
		if !ok {
			result.Status = StatusDeclined
			log.Info("write declined", zap.Int("fixed", result.Fixed))
			rep.declined(result)
			return result
		}
	}

	payload, err := doc.Encode(r.encode)
	if err == nil {
		err = r.loader.Write(ctx, doc.Source(), payload)
	}
	if err != nil {
		result.Status = StatusFailed
		result.Err = &WriteError{Location: doc.Source().Location(), Err: err}
		log.Error("document write failed", zap.Error(err))
		rep.writeFailed(result)
		return result
	}

	result.Status = StatusWritten
	log.Info("document written", zap.Int("fixed", result.Fixed), zap.String("unit", unit))
	rep.fixed(result, unit)
	return result
}

func (r *Runner) skip(result DocumentResult, err error, log *zap.Logger, rep *reporter) DocumentResult {
	result.Status = StatusSkipped
	result.Err = err
	log.Warn("document skipped", zap.Error(err))
	rep.skipped(result)
	return result
}
