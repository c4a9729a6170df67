// Package problemfile decodes problems from YAML or JSON documents.
//
// A problem file looks like:
//
//	direction: max
//	objective: [3, 5]
//	constraints:
//	  - {coefficients: [1, 0], relation: "<=", rhs: 4}
//	  - {coefficients: [3, 2], relation: ">=", rhs: 6}
package problemfile

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/askiada/bigm"
)

// Format of a problem document.
type Format int

const (
	YAML Format = iota
	JSON
)

// FormatFor picks the format from a file extension. Everything but .json is YAML.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return JSON
	}
	return YAML
}

// Load reads and validates the problem stored at path.
func Load(path string) (bigm.Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return bigm.Problem{}, errors.Wrap(err, "read problem file")
	}
	p, err := Parse(data, FormatFor(path))
	if err != nil {
		return bigm.Problem{}, errors.WithMessage(err, path)
	}
	return p, nil
}

// Parse decodes and validates a problem. Unknown fields are rejected.
func Parse(data []byte, format Format) (bigm.Problem, error) {
	var p bigm.Problem
	switch format {
	case JSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&p); err != nil {
			return bigm.Problem{}, errors.Wrap(err, "decode json problem")
		}
	default:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&p); err != nil {
			return bigm.Problem{}, errors.Wrap(err, "decode yaml problem")
		}
	}
	if err := p.Validate(); err != nil {
		return bigm.Problem{}, err
	}
	return p, nil
}
