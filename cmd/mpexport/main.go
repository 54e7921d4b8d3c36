// Command mpexport converts optimization model snapshots to LP or MPS text.
// It also keeps a local SQLite library of models for repeated exports.
package main

import (
	"fmt"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/FocuswithJustin/mpexport/core/errors"
	"github.com/FocuswithJustin/mpexport/core/export"
	"github.com/FocuswithJustin/mpexport/core/modeldb"
	"github.com/FocuswithJustin/mpexport/core/modelfile"
	"github.com/FocuswithJustin/mpexport/core/mpmodel"
	"github.com/FocuswithJustin/mpexport/internal/fileutil"
	"github.com/FocuswithJustin/mpexport/internal/logging"
)

const version = "0.1.0"

// CLI defines the command-line interface for mpexport.
var CLI struct {
	// Global flags
	Verbose bool `short:"v" help:"Enable debug logging"`

	Export    ExportCmd    `cmd:"" help:"Export a model file to LP or MPS text"`
	Inspect   InspectCmd   `cmd:"" help:"Summarize a model file"`
	CheckName CheckNameCmd `cmd:"" name:"check-name" help:"Check names against the LP/MPS naming rules"`
	Lib       LibGroup     `cmd:"" help:"Model library operations (save, list, export, delete)"`
	Version   VersionCmd   `cmd:"" help:"Print version information"`
}

func newLogger() *zap.Logger {
	return logging.New(CLI.Verbose)
}

// exportFlags are the export settings shared by the file and library export
// commands.
type exportFlags struct {
	Format          string `help:"Output format" enum:"lp,mps" default:"lp"`
	Out             string `help:"Output path (stdout when omitted)" type:"path"`
	Obfuscate       bool   `help:"Replace all names with generated V.../C... names"`
	Fixed           bool   `help:"Use the fixed-column MPS layout when names permit"`
	MaxLineLength   int    `name:"max-line-length" help:"Hard wrap width for LP output"`
	ShowUnused      bool   `name:"show-unused" help:"List variables absent from objective and constraints"`
	LogInvalidNames bool   `name:"log-invalid-names" help:"Log every invalid name before failing"`
	Compress        bool   `help:"xz-compress the output file"`
	Digest          bool   `help:"Print the BLAKE3 digest of the emitted text"`
}

func (f *exportFlags) run(m *mpmodel.Model, logger *zap.Logger) error {
	if errs := mpmodel.Validate(m); len(errs) > 0 {
		for _, err := range errs {
			logger.Error(err.Error())
		}
		return fmt.Errorf("model failed validation with %d errors", len(errs))
	}

	opts := export.Options{
		MaxLineLength:       f.MaxLineLength,
		ShowUnusedVariables: f.ShowUnused,
		LogInvalidNames:     f.LogInvalidNames,
		Logger:              logger,
	}
	var result *export.Result
	var err error
	switch export.Format(f.Format) {
	case export.FormatMPS:
		result, err = export.WriteMPS(m, opts, f.Fixed, f.Obfuscate)
	default:
		result, err = export.WriteLP(m, opts, f.Obfuscate)
	}
	if err != nil {
		return err
	}

	if err := f.write(result, logger); err != nil {
		return err
	}
	if f.Digest {
		fmt.Println(result.Digest)
	}
	return nil
}

func (f *exportFlags) write(result *export.Result, logger *zap.Logger) error {
	if f.Out == "" {
		if f.Compress {
			return errors.NewValidation("--compress", "requires --out")
		}
		fmt.Print(result.Text)
		return nil
	}
	data := []byte(result.Text)
	if f.Compress || fileutil.IsXZPath(f.Out) {
		if err := fileutil.WriteFileXZ(f.Out, data); err != nil {
			return err
		}
	} else {
		if err := fileutil.WriteFile(f.Out, data); err != nil {
			return err
		}
	}
	logger.Info("wrote model",
		zap.String("path", f.Out),
		zap.String("format", string(result.Format)),
		zap.Int("bytes", len(data)),
	)
	return nil
}

// ExportCmd exports a model file to LP or MPS text.
type ExportCmd struct {
	Model string `arg:"" help:"Model file (.json, .xml or .mpdef)" type:"existingfile"`
	exportFlags
}

func (c *ExportCmd) Run() error {
	logger := newLogger()
	defer logger.Sync()

	m, err := modelfile.Load(c.Model)
	if err != nil {
		return err
	}
	return c.exportFlags.run(m, logger)
}

// InspectCmd summarizes a model file.
type InspectCmd struct {
	Model string `arg:"" help:"Model file (.json, .xml or .mpdef)" type:"existingfile"`
}

func (c *InspectCmd) Run() error {
	m, err := modelfile.Load(c.Model)
	if err != nil {
		return err
	}
	stats := mpmodel.ComputeStats(m)

	name := m.Name
	if name == "" {
		name = "(unnamed)"
	}
	direction := "minimize"
	if m.Maximize {
		direction = "maximize"
	}
	fmt.Printf("Name:        %s\n", name)
	fmt.Printf("Direction:   %s\n", direction)
	fmt.Printf("Offset:      %g\n", m.Offset)
	fmt.Printf("Variables:   %d (%d binary, %d integer, %d continuous)\n",
		m.NumVariables(), stats.BinaryCount, stats.IntegerCount, stats.ContinuousCount)
	fmt.Printf("Constraints: %d\n", m.NumConstraints())

	if nameErrs := export.CheckModelNames(m); len(nameErrs) > 0 {
		fmt.Printf("\n%d names unusable for export:\n", len(nameErrs))
		for _, err := range nameErrs {
			fmt.Printf("  %v\n", err)
		}
	} else {
		fmt.Println("Names:       ok")
	}
	return nil
}

// CheckNameCmd checks names against the LP/MPS naming rules.
type CheckNameCmd struct {
	Names []string `arg:"" help:"Names to check"`
}

func (c *CheckNameCmd) Run() error {
	invalid := 0
	for _, name := range c.Names {
		if err := export.ValidateName(name); err != nil {
			fmt.Printf("%s: %v\n", name, err)
			invalid++
			continue
		}
		fmt.Printf("%s: ok\n", name)
	}
	if invalid > 0 {
		return fmt.Errorf("%d of %d names invalid", invalid, len(c.Names))
	}
	return nil
}

// LibGroup contains model library operations.
type LibGroup struct {
	Save   LibSaveCmd   `cmd:"" help:"Store a model file in the library"`
	List   LibListCmd   `cmd:"" help:"List stored models"`
	Export LibExportCmd `cmd:"" help:"Export a stored model to LP or MPS text"`
	Delete LibDeleteCmd `cmd:"" help:"Remove a stored model"`
}

// LibSaveCmd stores a model file in the library.
type LibSaveCmd struct {
	Model string `arg:"" help:"Model file (.json, .xml or .mpdef)" type:"existingfile"`
	ID    string `help:"Library id to store under (new uuid when omitted)"`
	DB    string `help:"Library database file" default:"mpexport.db" type:"path"`
}

func (c *LibSaveCmd) Run() error {
	m, err := modelfile.Load(c.Model)
	if err != nil {
		return err
	}
	db, err := modeldb.Open(c.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	id, err := db.Save(m, c.ID)
	if err != nil {
		return err
	}
	fmt.Println(id)
	return nil
}

// LibListCmd lists stored models.
type LibListCmd struct {
	DB string `help:"Library database file" default:"mpexport.db" type:"path"`
}

func (c *LibListCmd) Run() error {
	db, err := modeldb.Open(c.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	entries, err := db.List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Printf("No models stored in %s\n", c.DB)
		return nil
	}
	fmt.Printf("Models in %s:\n\n", c.DB)
	for _, e := range entries {
		name := e.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Printf("  %s  %s (%d variables, %d constraints, saved %s)\n",
			e.ID, name, e.Variables, e.Constraints, e.Created.Format("2006-01-02 15:04:05"))
	}
	return nil
}

// LibExportCmd exports a stored model to LP or MPS text.
type LibExportCmd struct {
	ID string `arg:"" help:"Library id of the model"`
	DB string `help:"Library database file" default:"mpexport.db" type:"path"`
	exportFlags
}

func (c *LibExportCmd) Run() error {
	logger := newLogger()
	defer logger.Sync()

	db, err := modeldb.Open(c.DB)
	if err != nil {
		return err
	}
	defer db.Close()

	m, err := db.Load(c.ID)
	if err != nil {
		return err
	}
	return c.exportFlags.run(m, logger)
}

// LibDeleteCmd removes a stored model.
type LibDeleteCmd struct {
	ID string `arg:"" help:"Library id of the model"`
	DB string `help:"Library database file" default:"mpexport.db" type:"path"`
}

func (c *LibDeleteCmd) Run() error {
	db, err := modeldb.Open(c.DB)
	if err != nil {
		return err
	}
	defer db.Close()
	return db.Delete(c.ID)
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("mpexport version %s\n", version)
	return nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("mpexport"),
		kong.Description("Model exporter - LP and MPS text from model snapshots"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
