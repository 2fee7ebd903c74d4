package main

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// readInput decodes a flow input document. JSON is valid YAML, so one
// decoder covers both. path "-" reads from stdin.
func readInput(stdin io.Reader, path string) (map[string]any, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}

	var input map[string]any
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("decoding input: %w", err)
	}
	if input == nil {
		input = map[string]any{}
	}
	return input, nil
}
