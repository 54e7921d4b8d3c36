// Package export renders an optimization model snapshot into the LP and MPS
// text formats understood by most linear and mixed-integer solvers.
//
// Exports are one-way: the package writes model text, it never reads it back.
// Output is deterministic for a given model and options; every Result carries
// a digest of the emitted text so callers can verify that cheaply.
package export

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/zeebo/blake3"
	"go.uber.org/zap"

	"github.com/FocuswithJustin/mpexport/core/errors"
	"github.com/FocuswithJustin/mpexport/core/mpmodel"
)

// Format identifies an export text format.
type Format string

// Format constants.
const (
	FormatLP  Format = "lp"
	FormatMPS Format = "mps"
)

// validFormats is the set of valid formats.
var validFormats = map[Format]bool{
	FormatLP:  true,
	FormatMPS: true,
}

// IsValid returns true if the format is valid.
func (f Format) IsValid() bool {
	return validFormats[f]
}

// DefaultMaxLineLength is the LP line-wrap width used when Options leaves
// MaxLineLength unset. The value is low enough for SCIP to read the files.
const DefaultMaxLineLength = 10000

// Options configures an export. The zero value is usable.
type Options struct {
	// MaxLineLength is the hard wrap width for LP output.
	// Zero or negative selects DefaultMaxLineLength.
	MaxLineLength int

	// ShowUnusedVariables lists variables with zero coefficients everywhere
	// in the LP Bounds, Binaries and Generals sections.
	ShowUnusedVariables bool

	// LogInvalidNames emits a diagnostic for every name that fails
	// validation instead of failing silently with the error alone.
	LogInvalidNames bool

	// Logger receives export diagnostics. Nil means no logging.
	Logger *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.MaxLineLength <= 0 {
		o.MaxLineLength = DefaultMaxLineLength
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Result is the outcome of one successful export.
type Result struct {
	// Text is the complete emitted document.
	Text string

	// Format is the format that was written.
	Format Format

	// FixedFormat reports whether MPS output used the fixed-column variant.
	// Always false for LP.
	FixedFormat bool

	// Warnings lists non-fatal conditions hit during the export, such as a
	// fixed-format request downgraded to free format.
	Warnings []string

	// Digest is the BLAKE3 hex digest of Text.
	Digest string
}

// Exporter renders one model snapshot. The variable classification is
// computed once and cached; per-call settings such as obfuscation never
// persist between calls. An Exporter is not safe for concurrent use.
type Exporter struct {
	model     *mpmodel.Model
	opts      Options
	stats     mpmodel.Stats
	statsDone bool
}

// New creates an Exporter over model with the given options.
func New(model *mpmodel.Model, opts Options) *Exporter {
	return &Exporter{model: model, opts: opts.withDefaults()}
}

// Stats returns the cached variable classification, computing it on first use.
func (e *Exporter) Stats() mpmodel.Stats {
	if !e.statsDone {
		e.stats = mpmodel.ComputeStats(e.model)
		e.statsDone = true
	}
	return e.stats
}

// InvalidateStats drops the cached classification. Callers that mutate the
// model between exports must invalidate before the next call.
func (e *Exporter) InvalidateStats() {
	e.statsDone = false
}

// ExportLP renders the model in LP format. With obfuscate set, real entity
// names are replaced by synthetic indexed ones and name validation is
// skipped. No partial text is ever returned: on error the Result is nil.
func (e *Exporter) ExportLP(obfuscate bool) (*Result, error) {
	names := newNameTable(e.model, obfuscate, e.Stats())
	if !obfuscate {
		if err := e.checkAllNames(names); err != nil {
			return nil, err
		}
	}
	w := &lpWriter{
		model: e.model,
		opts:  e.opts,
		names: names,
		stats: e.Stats(),
	}
	text, err := w.write()
	if err != nil {
		return nil, err
	}
	return e.newResult(FormatLP, false, text, nil), nil
}

// ExportMPS renders the model in MPS format. A fixed-format request is
// honored only when every display name fits the fixed 8-character field;
// otherwise the export downgrades to free format and records a warning.
func (e *Exporter) ExportMPS(fixed, obfuscate bool) (*Result, error) {
	names := newNameTable(e.model, obfuscate, e.Stats())
	if !obfuscate {
		if err := e.checkAllNames(names); err != nil {
			return nil, err
		}
	}
	var warnings []string
	if fixed && !canUseFixedFormat(e.model, names) {
		const msg = "cannot use fixed MPS format, falling back to free format"
		e.opts.Logger.Warn(msg,
			zap.String("model", e.model.Name),
		)
		warnings = append(warnings, msg)
		fixed = false
	}
	w := &mpsWriter{
		model: e.model,
		opts:  e.opts,
		names: names,
		stats: e.Stats(),
		fixed: fixed,
	}
	text, err := w.write()
	if err != nil {
		return nil, err
	}
	return e.newResult(FormatMPS, fixed, text, warnings), nil
}

// WriteLP renders model as LP text with a fresh Exporter.
func WriteLP(model *mpmodel.Model, opts Options, obfuscate bool) (*Result, error) {
	return New(model, opts).ExportLP(obfuscate)
}

// WriteMPS renders model as MPS text with a fresh Exporter.
func WriteMPS(model *mpmodel.Model, opts Options, fixed, obfuscate bool) (*Result, error) {
	return New(model, opts).ExportMPS(fixed, obfuscate)
}

func (e *Exporter) newResult(format Format, fixed bool, text string, warnings []string) *Result {
	sum := blake3.Sum256([]byte(text))
	return &Result{
		Text:        text,
		Format:      format,
		FixedFormat: fixed,
		Warnings:    warnings,
		Digest:      hex.EncodeToString(sum[:]),
	}
}

// checkAllNames validates every display name and fails on the first invalid
// one. Derived names always pass; only stored names can fail.
func (e *Exporter) checkAllNames(names *nameTable) error {
	for i := range e.model.Variables {
		if err := ValidateName(names.variable(i)); err != nil {
			return e.nameError(errors.KindVariable, i, names.variable(i), err)
		}
	}
	for i := range e.model.Constraints {
		if err := ValidateName(names.constraint(i)); err != nil {
			return e.nameError(errors.KindConstraint, i, names.constraint(i), err)
		}
	}
	return nil
}

func (e *Exporter) nameError(kind string, index int, name string, cause error) error {
	if e.opts.LogInvalidNames {
		e.opts.Logger.Warn("invalid name, unable to write model",
			zap.String("kind", kind),
			zap.Int("index", index),
			zap.String("name", name),
			zap.String("reason", cause.Error()),
		)
	}
	return errors.NewName(kind, index, name, cause.Error())
}

// appendComments writes the header shared by both formats, each line prefixed
// by the format's comment marker.
func appendComments(out *strings.Builder, sep string, m *mpmodel.Model, stats mpmodel.Stats, fixed, showUnused bool) {
	name := m.Name
	if name == "" {
		name = "NoName"
	}
	format := "Free"
	if fixed {
		format = "Fixed"
	}
	fmt.Fprintf(out, "%s Generated by mpexport\n", sep)
	fmt.Fprintf(out, "%s   %-16s : %s\n", sep, "Name", name)
	fmt.Fprintf(out, "%s   %-16s : %s\n", sep, "Format", format)
	fmt.Fprintf(out, "%s   %-16s : %d\n", sep, "Constraints", len(m.Constraints))
	fmt.Fprintf(out, "%s   %-16s : %d\n", sep, "Variables", len(m.Variables))
	fmt.Fprintf(out, "%s     %-14s : %d\n", sep, "Binary", stats.BinaryCount)
	fmt.Fprintf(out, "%s     %-14s : %d\n", sep, "Integer", stats.IntegerCount)
	fmt.Fprintf(out, "%s     %-14s : %d\n", sep, "Continuous", stats.ContinuousCount)
	if showUnused {
		fmt.Fprintf(out, "%s Unused variables are shown\n", sep)
	}
}
