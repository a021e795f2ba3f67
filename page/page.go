// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package page

import (
	_ "embed"
	"fmt"
	"os"
)

//go:embed index.html
var defaultTemplate []byte

// Default returns a copy of the embedded page template.
func Default() []byte {
	return append([]byte(nil), defaultTemplate...)
}

// Load reads the template at path, or returns the embedded one when path is empty.
func Load(path string) ([]byte, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template: %w", err)
	}
	return data, nil
}
