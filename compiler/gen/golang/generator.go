// Package golang renders emission contracts as Go source using jennifer.
//
// Every class becomes one file holding a value struct with unexported fields
// and accessors, plus the members present in its contract. Rendered code
// imports github.com/syssam/valobj for its runtime helpers.
package golang

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/dave/jennifer/jen"
	"github.com/go-openapi/inflect"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"

	"github.com/syssam/valobj/compiler/gen"
)

// fingerprintPrefix starts the header line that records the contract a file
// was rendered from.
const fingerprintPrefix = "valobj:fingerprint "

// Generator renders contracts into a Go package.
type Generator struct {
	pkg     string
	outDir  string
	workers int
	logger  *slog.Logger
}

// NewGenerator creates a generator for the package pkg written to outDir.
func NewGenerator(pkg, outDir string) *Generator {
	return &Generator{
		pkg:     pkg,
		outDir:  outDir,
		workers: runtime.GOMAXPROCS(0),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithWorkers sets the number of parallel workers.
func (g *Generator) WithWorkers(n int) *Generator {
	if n > 0 {
		g.workers = n
	}
	return g
}

// WithLogger sets the logger.
func (g *Generator) WithLogger(l *slog.Logger) *Generator {
	if l != nil {
		g.logger = l
	}
	return g
}

// FileName returns the name of the file rendered for c.
func FileName(c *gen.Contract) string {
	return inflect.Underscore(c.Class) + ".go"
}

// Fingerprint identifies the output of c in the generator package. It changes
// whenever the contract or the package name changes.
func (g *Generator) Fingerprint(c *gen.Contract) (uuid.UUID, error) {
	id, err := c.Fingerprint()
	if err != nil {
		return uuid.Nil, fmt.Errorf("fingerprint %s: %w", c.Class, err)
	}
	return uuid.NewSHA1(id, []byte(g.pkg)), nil
}

// File builds the jennifer file of a contract.
func (g *Generator) File(c *gen.Contract) (*jen.File, error) {
	id, err := g.Fingerprint(c)
	if err != nil {
		return nil, err
	}
	return g.file(c, id), nil
}

func (g *Generator) file(c *gen.Contract, id uuid.UUID) *jen.File {
	f := jen.NewFile(g.pkg)
	f.HeaderComment("Code generated by valobj. DO NOT EDIT.")
	f.HeaderComment(fingerprintPrefix + id.String())
	genClass(f, c)
	return f
}

// Source renders the Go source of a contract, formatted and with its
// imports resolved.
func (g *Generator) Source(c *gen.Contract) ([]byte, error) {
	id, err := g.Fingerprint(c)
	if err != nil {
		return nil, err
	}
	return g.source(c, id)
}

func (g *Generator) source(c *gen.Contract, id uuid.UUID) ([]byte, error) {
	var buf bytes.Buffer
	if err := g.file(c, id).Render(&buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", c.Class, err)
	}
	out, err := imports.Process(filepath.Join(g.outDir, FileName(c)), buf.Bytes(), nil)
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", c.Class, err)
	}
	return out, nil
}

// DuplicateFileError is reported for contracts that render to the same
// file. None of them is written.
type DuplicateFileError struct {
	Path    string
	Classes []string
}

// Error implements the error interface.
func (e *DuplicateFileError) Error() string {
	return fmt.Sprintf("golang: classes %s all render to %s", strings.Join(e.Classes, ", "), e.Path)
}

// Generate writes one file per contract in parallel and returns the paths of
// the files that were written. Files already rendered from an identical
// contract are left untouched. Contracts sharing an output file are skipped
// and reported as a DuplicateFileError; the others are still written.
func (g *Generator) Generate(ctx context.Context, contracts ...*gen.Contract) ([]string, error) {
	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	contracts, dups := g.partition(contracts)
	var errs *multierror.Error
	for _, d := range dups {
		errs = multierror.Append(errs, d)
	}
	written := make([]string, len(contracts))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for i, c := range contracts {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path, err := g.writeFile(c)
			written[i] = path
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		errs = multierror.Append(errs, err)
	}
	return slices.DeleteFunc(written, func(p string) bool { return p == "" }), errs.ErrorOrNil()
}

// partition splits contracts into those owning their output file and the
// groups that collide on one. Input order is kept in both.
func (g *Generator) partition(contracts []*gen.Contract) ([]*gen.Contract, []*DuplicateFileError) {
	byPath := make(map[string][]string, len(contracts))
	var paths []string
	for _, c := range contracts {
		path := filepath.Join(g.outDir, FileName(c))
		if _, ok := byPath[path]; !ok {
			paths = append(paths, path)
		}
		byPath[path] = append(byPath[path], c.Class)
	}
	var dups []*DuplicateFileError
	for _, path := range paths {
		if classes := byPath[path]; len(classes) > 1 {
			dups = append(dups, &DuplicateFileError{Path: path, Classes: classes})
		}
	}
	if len(dups) == 0 {
		return contracts, nil
	}
	return slices.DeleteFunc(slices.Clone(contracts), func(c *gen.Contract) bool {
		return len(byPath[filepath.Join(g.outDir, FileName(c))]) > 1
	}), dups
}

// writeFile renders c into its file. It returns an empty path if the file
// is up to date.
func (g *Generator) writeFile(c *gen.Contract) (string, error) {
	id, err := g.Fingerprint(c)
	if err != nil {
		return "", err
	}
	path := filepath.Join(g.outDir, FileName(c))
	if upToDate(path, id) {
		g.logger.Debug("file up to date", "class", c.Class, "path", path)
		return "", nil
	}
	src, err := g.source(c, id)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, src, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	g.logger.Info("file written", "class", c.Class, "path", path)
	return path, nil
}

// upToDate reports whether the file at path was rendered with the given
// fingerprint.
func upToDate(path string, id uuid.UUID) bool {
	buf, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return bytes.Contains(buf, []byte(fingerprintPrefix+id.String()))
}
