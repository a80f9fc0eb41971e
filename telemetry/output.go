package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/canopy/config"
)

// csvFile is an append-only CSV file that writes its header once.
type csvFile struct {
	f             *os.File
	headerWritten bool
}

func (c *csvFile) write(records any) error {
	if !c.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, c.f); err != nil {
			return err
		}
		c.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, c.f)
}

// OutputManager handles CSV output for evaluations, sweeps and calibration runs.
// A nil *OutputManager is valid and discards everything.
type OutputManager struct {
	dir   string
	files map[string]*csvFile
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &OutputManager{dir: dir, files: make(map[string]*csvFile)}, nil
}

// file opens name inside the output directory on first use.
func (om *OutputManager) file(name string) (*csvFile, error) {
	if cf, ok := om.files[name]; ok {
		return cf, nil
	}
	f, err := os.Create(filepath.Join(om.dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	cf := &csvFile{f: f}
	om.files[name] = cf
	return cf, nil
}

// append marshals records into the named CSV file.
func (om *OutputManager) append(name string, records any) error {
	if om == nil {
		return nil
	}
	cf, err := om.file(name)
	if err != nil {
		return err
	}
	if err := cf.write(records); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config, name string) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, name))
}

// WriteEvaluations appends evaluation rows to the named file.
func (om *OutputManager) WriteEvaluations(name string, evals ...Evaluation) error {
	if len(evals) == 0 {
		return nil
	}
	return om.append(name, evals)
}

// WriteSummary appends column summaries to the named file.
func (om *OutputManager) WriteSummary(name string, rows []ColumnSummary) error {
	if len(rows) == 0 {
		return nil
	}
	return om.append(name, rows)
}

// WriteCalibrationStep appends one calibration log record to the named file.
func (om *OutputManager) WriteCalibrationStep(name string, step CalibrationStep) error {
	return om.append(name, []CalibrationStep{step})
}

// Path returns the full path of a file in the output directory.
func (om *OutputManager) Path(name string) string {
	if om == nil {
		return ""
	}
	return filepath.Join(om.dir, name)
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, cf := range om.files {
		if err := cf.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	om.files = make(map[string]*csvFile)
	return firstErr
}
