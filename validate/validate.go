// Command validate provides a small CLI that validates board configuration
// JSON files in a configs directory (../configs by default, or the directory
// given as the first argument). It checks:
//   - JSON structure and required fields
//   - Board dimensions (non-negative, with a warning for degenerate boards)
//   - Name uniqueness across the directory
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config mirrors the JSON schema for a board configuration.
type Config struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	BoardWidth  float64 `json:"board_width"`
	BoardHeight float64 `json:"board_height"`
	Welcome     string  `json:"welcome"`
}

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Name   string
	Valid  bool
	Errors []string
}

// validateConfig loads and validates a single configuration JSON file.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Failed to read file: %v", err))
		return result
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("Invalid JSON: %v", err))
		return result
	}
	result.Name = config.Name

	if config.Name == "" {
		result.Valid = false
		result.Errors = append(result.Errors, "Missing required field: name")
	}

	if config.BoardWidth < 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("board_width must be non-negative, got %g", config.BoardWidth))
	}
	if config.BoardHeight < 0 {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("board_height must be non-negative, got %g", config.BoardHeight))
	}

	// A zero-size board only accepts the origin. Legal, but almost
	// certainly a mistake.
	if result.Valid && (config.BoardWidth == 0 || config.BoardHeight == 0) {
		result.Errors = append(result.Errors, fmt.Sprintf("⚠ Degenerate board %gx%g: only (0.00, 0.00) is in bounds", config.BoardWidth, config.BoardHeight))
	}

	if result.Valid {
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", config.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Board: %gx%g (closed bounds, origin at bottom-left)", config.BoardWidth, config.BoardHeight))
		if config.Description != "" {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Description: %s", config.Description))
		}
		if config.Welcome != "" {
			result.Errors = append(result.Errors, fmt.Sprintf("✓ Welcome: %s", config.Welcome))
		}
	}

	return result
}

// checkDuplicateNames flags configs that share a display name, since the
// config manager resolves configs by name.
func checkDuplicateNames(results []ValidationResult) []string {
	seen := make(map[string]string)
	var conflicts []string
	for _, r := range results {
		if !r.Valid || r.Name == "" {
			continue
		}
		key := strings.ToLower(r.Name)
		if first, ok := seen[key]; ok {
			conflicts = append(conflicts, fmt.Sprintf("Duplicate config name %q in %s and %s", r.Name, first, r.File))
		} else {
			seen[key] = r.File
		}
	}
	return conflicts
}

// main scans the configs directory for *.json files and validates each one,
// printing a concise report and exiting with non-zero status if any are
// invalid.
func main() {
	configDir := "../configs"
	if len(os.Args) > 1 {
		configDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(configDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding config files: %v\n", err)
		os.Exit(1)
	}
	if len(files) == 0 {
		fmt.Printf("No config files found in %s\n", configDir)
		os.Exit(1)
	}

	allValid := true
	var results []ValidationResult
	for _, file := range files {
		result := validateConfig(file)
		results = append(results, result)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	for _, conflict := range checkDuplicateNames(results) {
		fmt.Println("\n❌ " + conflict)
		allValid = false
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All configurations are valid!")
	} else {
		fmt.Println("❌ Some configurations have errors")
		os.Exit(1)
	}
}
