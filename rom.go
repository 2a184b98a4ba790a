package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/massung/CHIP-8/chip8"
)

/// Extensions that are always treated as assembly source.
///
var sourceExtensions = []string{".asm", ".c8s", ".s"}

/// IsSource returns true if the file should be assembled before loading.
///
func IsSource(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))

	for _, s := range sourceExtensions {
		if ext == s {
			return true
		}
	}

	return false
}

/// LoadProgram reads a ROM image from disk, assembling it first when it
/// is source code.
///
func LoadProgram(path string, asm bool) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading program: %w", err)
	}

	if !asm && !IsSource(path) {
		return data, nil
	}

	out, err := chip8.Assemble(data)
	if err != nil {
		return nil, fmt.Errorf("assembling %s: %w", filepath.Base(path), err)
	}

	return out.ROM, nil
}
