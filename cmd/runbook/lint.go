package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"
)

// LintError represents a single lint issue
type LintError struct {
	Line    int
	Message string
}

// LintResult holds all lint errors for one file
type LintResult struct {
	Errors []LintError
}

func (r *LintResult) AddError(line int, message string) {
	r.Errors = append(r.Errors, LintError{Line: line, Message: message})
}

func (r *LintResult) IsValid() bool {
	return len(r.Errors) == 0
}

var lintCmd = &cobra.Command{
	Use:   "lint [files...]",
	Short: "Lint runbooks for structural problems",
	Long: `Lint runbook files for structural problems.

Checks include:
- File has a title (# ...)
- Has a Procedure section with numbered steps
- Has a Verification section
- Section names are one of: Overview, Prerequisites, Symptoms, Diagnosis,
  Procedure, Verification, Rollback, Escalation, References
- Sections are not empty

With no arguments, all runbooks under docs/runbooks are linted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		files := args
		if len(files) == 0 {
			var err error
			files, err = filepath.Glob("docs/runbooks/*.md")
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no runbooks found under docs/runbooks")
			}
		}

		failed := 0
		for _, file := range files {
			content, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("reading file: %w", err)
			}

			result := Lint(content)
			if result.IsValid() {
				fmt.Printf("✓ %s\n", file)
				continue
			}

			failed++
			fmt.Printf("✗ %s: %d issue(s)\n", file, len(result.Errors))
			for _, e := range result.Errors {
				if e.Line > 0 {
					fmt.Printf("    Line %d: %s\n", e.Line, e.Message)
				} else {
					fmt.Printf("    %s\n", e.Message)
				}
			}
		}

		if failed > 0 {
			os.Exit(1)
		}
		return nil
	},
}

var (
	stepRegex     = regexp.MustCompile(`^\d+\.\s+\S`)
	validSections = map[string]bool{
		"Overview":      true,
		"Prerequisites": true,
		"Symptoms":      true,
		"Diagnosis":     true,
		"Procedure":     true,
		"Verification":  true,
		"Rollback":      true,
		"Escalation":    true,
		"References":    true,
	}
)

// Lint checks a runbook for structural problems
func Lint(source []byte) *LintResult {
	result := &LintResult{}
	lines := strings.Split(string(source), "\n")

	hasTitle := false

	runbook, _ := Parse(source)

	for i, line := range lines {
		lineNum := i + 1
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "# ") {
			hasTitle = true
		}

		if strings.HasPrefix(trimmed, "## ") {
			name := strings.TrimPrefix(trimmed, "## ")
			if !validSections[name] {
				result.AddError(lineNum, fmt.Sprintf("Unknown section '%s'. Valid sections: Overview, Prerequisites, Symptoms, Diagnosis, Procedure, Verification, Rollback, Escalation, References", name))
			}
		}
	}

	if !hasTitle {
		result.AddError(0, "Missing runbook title (# ...)")
	}

	if runbook != nil {
		procedure := runbook.FindSection("Procedure")
		if procedure == nil {
			result.AddError(0, "Missing Procedure section")
		} else if !hasNumberedStep(procedure.Content) {
			result.AddError(0, "Procedure section has no numbered steps")
		}

		if runbook.FindSection("Verification") == nil {
			result.AddError(0, "Missing Verification section")
		}

		for _, section := range runbook.Sections {
			if section.Content == "" {
				result.AddError(0, fmt.Sprintf("Section '%s' is empty", section.Name))
			}
		}
	}

	return result
}

func hasNumberedStep(content string) bool {
	for _, line := range strings.Split(content, "\n") {
		if stepRegex.MatchString(strings.TrimSpace(line)) {
			return true
		}
	}
	return false
}

func init() {
	rootCmd.AddCommand(lintCmd)
}
