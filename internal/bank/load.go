package bank

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed content/items.json
var seedContent []byte

// contentDoc is the on-disk shape of a bank content file.
type contentDoc struct {
	Objectives []Objective `json:"objectives"`
	Items      []Item      `json:"items"`
}

// Load parses and validates bank content and constructs a Bank.
func Load(data []byte) (*Bank, error) {
	// Schema validation first, so malformed content fails with a precise
	// location instead of a half-decoded struct.
	var parsed any
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse bank content: %w", err)
	}

	compiled, err := compileContentSchema()
	if err != nil {
		return nil, err
	}
	if err := compiled.Validate(parsed); err != nil {
		return nil, fmt.Errorf("bank content schema: %w", err)
	}

	var doc contentDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode bank content: %w", err)
	}

	return New(doc.Objectives, doc.Items)
}

// LoadFile loads bank content from a file path.
func LoadFile(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank file: %w", err)
	}
	b, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return b, nil
}

// LoadSeed loads the embedded seed bank.
func LoadSeed() (*Bank, error) {
	return Load(seedContent)
}

func compileContentSchema() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	const url = "schema://quizcraft-bank.json"
	if err := c.AddResource(url, contentSchema); err != nil {
		return nil, fmt.Errorf("add bank schema resource: %w", err)
	}
	compiled, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile bank schema: %w", err)
	}
	return compiled, nil
}
