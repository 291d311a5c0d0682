package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validRunbook = `# Rotate the session signing key

Rotate the RSA key that signs session tokens, for example after a
suspected key compromise.

## Prerequisites

- Shell access to a server host with BOARDGURU_DATA_KEY and DATABASE_URL set

## Procedure

1. Run ` + "`boardctl auth-key rotate`" + ` and note the new fingerprint.
2. Restart any additional server replicas so they pick up the new key.

## Verification

1. Run ` + "`boardctl auth-key show`" + ` and compare the fingerprint.
2. Log in through the API and confirm a fresh token is accepted.

## Rollback

Retired keys stay in the keystore, so tokens signed before the rotation
keep verifying until they expire. No rollback is needed.

[keystore]: https://github.com/appboardguru/boardguru
`

func TestParse(t *testing.T) {
	runbook, err := Parse([]byte(validRunbook))
	require.NoError(t, err)

	assert.Equal(t, "Rotate the session signing key", runbook.Title)
	require.Len(t, runbook.Sections, 4)
	assert.Equal(t, "Prerequisites", runbook.Sections[0].Name)
	assert.Equal(t, "Procedure", runbook.Sections[1].Name)
	assert.Contains(t, runbook.Sections[1].Content, "auth-key rotate")

	// Link definitions are collected
	assert.Equal(t, "https://github.com/appboardguru/boardguru", runbook.Links["keystore"])
}

func TestFindSection(t *testing.T) {
	runbook, _ := Parse([]byte(validRunbook))

	tests := []struct {
		name     string
		section  string
		expected string
	}{
		{"exact name", "Procedure", "Procedure"},
		{"case insensitive", "verification", "Verification"},
		{"non-existent", "Postmortem", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			section := runbook.FindSection(tt.section)
			if tt.expected == "" {
				assert.Nil(t, section)
			} else {
				require.NotNil(t, section)
				assert.Equal(t, tt.expected, section.Name)
			}
		})
	}
}

func TestLint_Valid(t *testing.T) {
	result := Lint([]byte(validRunbook))
	assert.True(t, result.IsValid(), "Expected valid runbook, got errors: %v", result.Errors)
}

func TestLint_MissingTitle(t *testing.T) {
	runbook := `## Procedure

1. Do the thing.

## Verification

1. Check the thing.
`
	result := Lint([]byte(runbook))
	assert.False(t, result.IsValid())
	assert.True(t, hasError(result, "Missing runbook title (# ...)"))
}

func TestLint_MissingVerification(t *testing.T) {
	runbook := `# Restore the database

## Procedure

1. Restore from the latest snapshot.
`
	result := Lint([]byte(runbook))
	assert.False(t, result.IsValid())
	assert.True(t, hasError(result, "Missing Verification section"))
}

func TestLint_ProcedureWithoutSteps(t *testing.T) {
	runbook := `# Restore the database

## Procedure

Restore from the latest snapshot.

## Verification

1. Check row counts against the snapshot manifest.
`
	result := Lint([]byte(runbook))
	assert.False(t, result.IsValid())
	assert.True(t, hasError(result, "Procedure section has no numbered steps"))
}

func TestLint_UnknownSection(t *testing.T) {
	runbook := `# Restore the database

## Background

Some context.

## Procedure

1. Restore from the latest snapshot.

## Verification

1. Check row counts.
`
	result := Lint([]byte(runbook))
	assert.False(t, result.IsValid())
	assert.True(t, hasErrorContaining(result, "Unknown section 'Background'"))
}

func TestLint_EmptySection(t *testing.T) {
	runbook := `# Restore the database

## Prerequisites

## Procedure

1. Restore from the latest snapshot.

## Verification

1. Check row counts.
`
	result := Lint([]byte(runbook))
	assert.False(t, result.IsValid())
	assert.True(t, hasErrorContaining(result, "Section 'Prerequisites' is empty"))
}

func hasError(result *LintResult, message string) bool {
	for _, e := range result.Errors {
		if e.Message == message {
			return true
		}
	}
	return false
}

func hasErrorContaining(result *LintResult, substr string) bool {
	for _, e := range result.Errors {
		if strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
