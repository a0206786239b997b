// Package pipeline runs one LAS to CSV export: open and parse the input,
// derive the identifier, standardize column names, filter the requested
// columns and write the output without ever overwriting an existing file.
//
// Missing input, unparsable input and an existing output stop the run.
// A missing well name, an unreadable alias table, unknown requested columns
// and relabelling conflicts only add a Warning to the Result.
package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"brb/internal/dataset"
	"brb/internal/errors"
	"brb/internal/las"
	"brb/internal/naming"
	"brb/internal/normalize"
	"brb/internal/output"
	"brb/internal/parser"
)

// Options configures a run.
type Options struct {
	// Input is the LAS file to convert.
	Input string
	// Headers restricts the output to these columns when not empty.
	Headers []string
	// HeaderNames is an alias table on disk. When empty, DefaultName is
	// read from Defaults.
	HeaderNames string
	Defaults    fs.FS
	DefaultName string
	// NoStandardize skips loading the alias table and relabelling.
	NoStandardize bool
	// Format is output.FormatCSV (default) or output.FormatXLSX.
	Format    string
	OutputDir string
	// Describe computes per-curve summary statistics of the written data.
	Describe bool
	Logger   Logger
}

// Result describes a run. It is returned together with fatal errors so the
// warnings gathered before the failure are not lost.
type Result struct {
	Input      string                 `json:"input"`
	WellName   string                 `json:"well_name,omitempty"`
	Identifier string                 `json:"identifier"`
	OutputPath string                 `json:"output"`
	Rows       int                    `json:"rows"`
	Columns    []string               `json:"columns"`
	Warnings   []Warning              `json:"warnings"`
	Summaries  []dataset.CurveSummary `json:"summaries,omitempty"`
}

type run struct {
	opts   Options
	log    Logger
	result *Result
}

// Run executes the export described by opts.
func Run(ctx context.Context, opts Options) (*Result, error) {
	r := &run{
		opts:   opts,
		log:    opts.Logger,
		result: &Result{Input: opts.Input, Warnings: []Warning{}},
	}
	if r.log == nil {
		r.log = nopLogger{}
	}

	err := r.execute(ctx)
	return r.result, err
}

func (r *run) warn(w Warning) {
	r.result.Warnings = append(r.result.Warnings, w)
	r.log.Warn(w)
}

func (r *run) execute(ctx context.Context) error {
	file, err := r.readInput()
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	ds, err := r.curves(file)
	if err != nil {
		return err
	}

	r.deriveIdentifier(file)

	if err := ctx.Err(); err != nil {
		return err
	}
	if r.opts.NoStandardize {
		r.log.Step("column standardization disabled")
	} else {
		table, err := r.loadAliasTable()
		if err != nil {
			return err
		}
		if table != nil {
			if ds, err = r.standardize(ds, table); err != nil {
				return err
			}
		}
	}

	ds, warnings := selectColumns(ds, r.opts.Headers)
	for _, w := range warnings {
		r.warn(w)
	}
	r.result.Columns = ds.Header()

	if err := ctx.Err(); err != nil {
		return err
	}
	return r.write(ds)
}

// readInput parses the input. Every failure to reach a readable regular file is
// InputNotFound; everything after that is a ParseError.
func (r *run) readInput() (*las.File, error) {
	path := r.opts.Input
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WrapInputError(path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, errors.WrapInputError(path, err)
	}
	if info.IsDir() {
		return nil, errors.NewInputNotFoundError(path, fmt.Errorf("%s is a directory", path))
	}

	r.log.Step("reading %s", path)
	file, err := las.Parse(f)
	if err != nil {
		return nil, parseError(path, err)
	}
	return file, nil
}

func (r *run) curves(file *las.File) (*dataset.Dataset, error) {
	ds, err := file.Dataset()
	if err != nil {
		return nil, parseError(r.opts.Input, err)
	}
	layout := "one line per depth step"
	if file.Wrapped() {
		layout = "wrapped"
	}
	r.log.Step("read %d rows of %d curves (%s), index %s", ds.Len(), len(ds.Columns())+1, layout, ds.IndexName())
	return ds, nil
}

func parseError(path string, err error) error {
	pe := errors.NewParseError(path, 0, "unable to read las file", err)
	var se *las.SyntaxError
	if stderrors.As(err, &se) {
		pe.Line = se.Line
	}
	return pe
}

func (r *run) deriveIdentifier(file *las.File) {
	well, err := file.WellName()
	if err != nil {
		id := naming.FromPath(r.opts.Input)
		mi := errors.NewMissingIdentifierError(err.Error())
		r.warn(newWarning(mi, fmt.Sprintf("unable to fetch wellname (%v), using %s", err, id)))
		r.result.Identifier = id
	} else {
		r.result.WellName = well
		r.result.Identifier = naming.Sluggify(well)
	}
	r.log.Step("identifier %s", r.result.Identifier)
}

// loadAliasTable returns nil without an error when the table could not be
// read; the run then keeps the input's column names.
func (r *run) loadAliasTable() (*parser.AliasTable, error) {
	var (
		table  *parser.AliasTable
		source string
		err    error
	)
	switch {
	case r.opts.HeaderNames != "":
		source = r.opts.HeaderNames
		table, err = parser.LoadAliasTable(source)
	case r.opts.Defaults != nil:
		source = "bundled " + r.opts.DefaultName
		table, err = parser.LoadAliasTableFS(r.opts.Defaults, r.opts.DefaultName)
	default:
		err = errors.NewConfigLoadError("", "no header names configured", nil)
	}

	if err != nil {
		if errors.IsFatal(err) {
			return nil, err
		}
		var ce errors.Categorized
		stderrors.As(err, &ce)
		r.warn(newWarning(ce, fmt.Sprintf("%v; column names are not standardized", err)))
		return nil, nil
	}
	r.log.Step("loaded %d canonical names from %s", table.Size(), source)
	return table, nil
}

func (r *run) standardize(ds *dataset.Dataset, table *parser.AliasTable) (*dataset.Dataset, error) {
	before := ds.ColumnNames()
	out, conflicts, err := normalize.Headers(ds, table)
	if err != nil {
		return nil, err
	}

	for _, c := range conflicts {
		hc := errors.NewHeaderConflictError(c.Column, c.Canonical, c.String())
		r.warn(newWarning(hc, hc.Message))
	}

	after := out.ColumnNames()
	var renamed []string
	for i := range before {
		if before[i] != after[i] {
			renamed = append(renamed, before[i]+"->"+after[i])
		}
	}
	if len(renamed) > 0 {
		r.log.Step("renamed %s", strings.Join(renamed, ", "))
	}

	reverse := table.Reverse()
	var unknown []string
	for _, name := range before {
		if _, ok := reverse[name]; !ok && !table.Canonical(name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		r.log.Step("not in header names: %s", strings.Join(unknown, ", "))
	}
	return out, nil
}

func (r *run) write(ds *dataset.Dataset) error {
	path := output.PathFor(r.opts.OutputDir, r.result.Identifier, r.opts.Format)
	r.result.OutputPath = path

	if err := output.CheckAvailable(path); err != nil {
		return err
	}

	enc, err := output.EncoderFor(r.opts.Format, r.result.Identifier)
	if err != nil {
		return err
	}

	if r.opts.Describe {
		summaries, err := dataset.Describe(ds)
		if err != nil {
			return err
		}
		r.result.Summaries = summaries
	}

	r.log.Step("writing %s", path)
	rows, err := output.WriteFile(path, ds, enc)
	if err != nil {
		return err
	}
	r.result.Rows = rows
	return nil
}
