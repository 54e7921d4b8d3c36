// Package modelfile reads and writes model snapshots in the on-disk formats
// the mpexport tools understand: JSON, XML and the mpdef authoring text.
//
// JSON is the canonical snapshot format and round-trips every field. XML is
// an interchange alternative with the same data model. The mpdef format is a
// hand-authoring DSL and is read-only.
package modelfile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/FocuswithJustin/mpexport/core/errors"
	"github.com/FocuswithJustin/mpexport/core/mpmodel"
)

// Format names used in parse errors.
const (
	formatJSON = "JSON"
	formatXML  = "XML"
	formatDef  = "model definition"
)

// Load reads a model from path, picking the codec by file extension.
func Load(path string) (*mpmodel.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	m, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", path)
	}
	return m, nil
}

// Save writes a model to path, picking the codec by file extension.
func Save(path string, m *mpmodel.Model) error {
	data, err := Encode(m, filepath.Ext(path))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.NewIO("write", path, err)
	}
	return nil
}

// Decode parses data with the codec registered for the file extension.
func Decode(data []byte, ext string) (*mpmodel.Model, error) {
	switch strings.ToLower(ext) {
	case ".json":
		return ReadJSON(data)
	case ".xml":
		return ReadXML(data)
	case ".mpdef":
		return ParseDef(data)
	default:
		return nil, errors.NewUnsupported("model file extension",
			fmt.Sprintf("%q is not a known model format", ext))
	}
}

// Encode renders m with the codec registered for the file extension.
func Encode(m *mpmodel.Model, ext string) ([]byte, error) {
	switch strings.ToLower(ext) {
	case ".json":
		return WriteJSON(m)
	case ".xml":
		return WriteXML(m)
	case ".mpdef":
		return nil, errors.NewUnsupported("model file extension",
			"the definition format is read-only")
	default:
		return nil, errors.NewUnsupported("model file extension",
			fmt.Sprintf("%q is not a known model format", ext))
	}
}
