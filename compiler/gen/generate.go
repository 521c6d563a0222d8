package gen

import (
	"context"
	"log/slog"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/valobj/compiler/load"
	"github.com/syssam/valobj/schema"
)

// Generate derives the emission contract of one class. Generation is atomic:
// on error no contract is returned.
func Generate(ctx context.Context, cfg *Config, c *load.Class) (*Contract, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := validateClass(c); err != nil {
		return nil, err
	}
	settings, err := c.Merge(cfg.defaults())
	if err != nil {
		return nil, NewMalformedInputError(c.Name, "", "invalid options", err)
	}
	props, err := ResolveProperties(ctx, cfg, c.Name, c.Properties)
	if err != nil {
		return nil, err
	}
	opts, diags, err := Normalize(c.Name, settings.Options)
	if err != nil {
		return nil, err
	}
	log := cfg.logger().With("class", c.Name)
	for _, d := range diags {
		log.Warn("option has no effect", "rule", d.Rule, "option", d.Option, "reason", d.Message)
	}
	access := c.Access
	if access == "" {
		access = schema.Public
	}
	var pre *string
	if c.PreConstructor != nil {
		text := *c.PreConstructor
		pre = &text
	}
	contract := &Contract{
		Class:                   c.Name,
		Access:                  access,
		Comment:                 c.Comment,
		Properties:              props,
		AllowCustomConstructors: opts.Has(schema.AllowCustomConstructors),
		Diagnostics:             diags,
		Members: buildPlans(&planInput{
			class:          c.Name,
			opts:           opts,
			fields:         planFields(props),
			preConstructor: pre,
			ctorAccess:     settings.ConstructorAccess,
			builderAccess:  settings.BuilderAccess,
		}),
	}
	if log.Enabled(ctx, slog.LevelDebug) {
		log.DebugContext(ctx, "class planned", "options", opts.String(), "members", contract.Kinds())
	}
	return contract, nil
}

// Result is the outcome of generating one class of a batch.
type Result struct {
	// Class is the class name, or its source file if the name is missing.
	Class    string
	Contract *Contract
	Err      error
}

// BatchResult holds the results of a batch, in input order.
type BatchResult struct {
	Results []*Result
}

// Contracts returns the contracts of the classes that succeeded, in input
// order.
func (b *BatchResult) Contracts() []*Contract {
	var cs []*Contract
	for _, r := range b.Results {
		if r.Err == nil {
			cs = append(cs, r.Contract)
		}
	}
	return cs
}

// Failed returns the results of the classes that failed, in input order.
func (b *BatchResult) Failed() []*Result {
	var rs []*Result
	for _, r := range b.Results {
		if r.Err != nil {
			rs = append(rs, r)
		}
	}
	return rs
}

// Err returns all class errors combined, or nil if every class succeeded.
func (b *BatchResult) Err() error {
	var merr *multierror.Error
	for _, r := range b.Failed() {
		merr = multierror.Append(merr, r.Err)
	}
	return merr.ErrorOrNil()
}

// GenerateAll derives the contracts of a batch of classes in parallel. Classes
// are independent: the failure of one never affects another. When ctx is
// cancelled, classes that were not started yet fail with the context error.
func GenerateAll(ctx context.Context, cfg *Config, classes ...*load.Class) *BatchResult {
	res := &BatchResult{Results: make([]*Result, len(classes))}
	eg := &errgroup.Group{}
	eg.SetLimit(cfg.workers())
	for i, c := range classes {
		r := &Result{Class: className(c)}
		res.Results[i] = r
		if err := ctx.Err(); err != nil {
			r.Err = err
			continue
		}
		eg.Go(func() error {
			r.Contract, r.Err = Generate(ctx, cfg, c)
			return nil
		})
	}
	_ = eg.Wait()
	log := cfg.logger()
	if failed := res.Failed(); len(failed) > 0 {
		log.Warn("batch finished with errors", "classes", len(classes), "failed", len(failed))
	} else {
		log.Debug("batch finished", "classes", len(classes))
	}
	return res
}

func className(c *load.Class) string {
	switch {
	case c == nil:
		return ""
	case c.Name != "":
		return c.Name
	default:
		return c.Source
	}
}
