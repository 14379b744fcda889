package design

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mbecker/rowlegal/pkg/errors"
)

// ReadJSON decodes a JSON design from r and validates it.
// The JSON field layout mirrors the TOML manifest (see [ReadTOML]) with
// cells under a "cells" array. This format round-trips with [WriteJSON].
func ReadJSON(r io.Reader) (*Design, error) {
	var d Design
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode JSON design")
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// WriteJSON encodes a design as indented JSON and writes it to w.
func WriteJSON(d *Design, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode design")
	}
	return nil
}

// Marshal returns the canonical JSON encoding of a design.
// Cell order is preserved, so identical designs hash identically.
func Marshal(d *Design) ([]byte, error) {
	return json.Marshal(d)
}

// Unmarshal decodes and validates a canonical JSON design produced by
// [Marshal].
func Unmarshal(data []byte) (*Design, error) {
	return ReadJSON(bytes.NewReader(data))
}

// Import decodes a raw manifest held in memory. The codec is picked by the
// extension of name when one is given; otherwise the content is sniffed:
// a leading '{' means JSON, anything else is treated as TOML.
func Import(data []byte, name string) (*Design, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		return ReadTOML(bytes.NewReader(data))
	case ".json":
		return ReadJSON(bytes.NewReader(data))
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return ReadJSON(bytes.NewReader(data))
	}
	return ReadTOML(bytes.NewReader(data))
}

// ImportFile loads a design from path, picking the codec by file extension:
// .toml for TOML manifests, .json for JSON. Unknown extensions are rejected
// rather than guessed.
func ImportFile(path string) (*Design, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return ImportTOML(path)
	case ".json":
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		defer f.Close()
		return ReadJSON(f)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported,
			"unsupported design format %q (use .toml or .json)", filepath.Ext(path))
	}
}
