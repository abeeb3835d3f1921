package config

import (
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Parfait-17/Detection-droneV3/internal/adapters/odid"
)

// signatureEntry is one YAML row of the pattern table. Exactly one of
// `ascii` or `hex` carries the marker bytes.
type signatureEntry struct {
	Name    string `yaml:"name"`
	ASCII   string `yaml:"ascii,omitempty"`
	Hex     string `yaml:"hex,omitempty"`
	Literal bool   `yaml:"literal,omitempty"`
}

type signatureFile struct {
	Signatures []signatureEntry `yaml:"signatures"`
}

// LoadSignatures reads a YAML pattern-signature table. The table fully
// replaces the built-in one, so operators can both extend and trim it.
func LoadSignatures(path string) ([]odid.Signature, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read signatures: %w", err)
	}

	var file signatureFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse signatures: %w", err)
	}

	sigs := make([]odid.Signature, 0, len(file.Signatures))
	for _, entry := range file.Signatures {
		var b []byte
		switch {
		case entry.ASCII != "":
			b = []byte(entry.ASCII)
		case entry.Hex != "":
			b, err = hex.DecodeString(entry.Hex)
			if err != nil {
				return nil, fmt.Errorf("signature %q: %w", entry.Name, err)
			}
		default:
			return nil, fmt.Errorf("signature %q: needs ascii or hex bytes", entry.Name)
		}
		sigs = append(sigs, odid.Signature{Name: entry.Name, Bytes: b, Literal: entry.Literal})
	}
	return sigs, nil
}
