package design

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/mbecker/rowlegal/pkg/errors"
)

// ReadTOML decodes a TOML design manifest from r.
//
// The manifest format:
//
//	name = "alu_block"
//	grid = 20.0
//
//	[boundary]
//	x_min = 0.0
//	y_min = 0.0
//	x_max = 1000.0
//	y_max = 2000.0
//
//	[[cell]]
//	id = "c1"
//	x = 50.0
//	y = 50.0
//	width = 100.0
//	height = 40.0
//
// The decoded design is validated before being returned; malformed TOML and
// invalid designs both produce INVALID_INPUT-family errors.
func ReadTOML(r io.Reader) (*Design, error) {
	var d Design
	if _, err := toml.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode TOML design")
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// ImportTOML reads a TOML design manifest from the file at path.
func ImportTOML(path string) (*Design, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadTOML(f)
}
