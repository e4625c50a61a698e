// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/lookstack-labs/lookfmt/internal/cli/output"
)

// SetupTestProject creates a temporary LookML project with test files.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	viewsDir := filepath.Join(tmpDir, "views")
	if err := os.MkdirAll(viewsDir, 0755); err != nil {
		t.Fatalf("failed to create directory %s: %v", viewsDir, err)
	}

	orders := `view: orders {
  sql_table_name: analytics.orders ;;

  dimension: pk1 {
    primary_key: yes
    type: number
    sql: ${TABLE}.id ;;
  }

  measure: count {
    type: count
  }
}
`
	if err := os.WriteFile(filepath.Join(viewsDir, "orders.view.lkml"), []byte(orders), 0644); err != nil {
		t.Fatalf("failed to create orders.view.lkml: %v", err)
	}

	messy := `view: users {
  sql_table_name: analytics.users ;;

  dimension: name {
    type:string
    sql:${TABLE}.name;;
  }
}
`
	if err := os.WriteFile(filepath.Join(viewsDir, "users.view.lkml"), []byte(messy), 0644); err != nil {
		t.Fatalf("failed to create users.view.lkml: %v", err)
	}

	model := `connection: "warehouse"
include: "views/*.view.lkml"

explore: orders {
  join: users {
    sql_on: ${orders.user_id} = ${users.pk} ;;
    relationship: many_to_one
  }
}
`
	if err := os.WriteFile(filepath.Join(tmpDir, "ecommerce.model.lkml"), []byte(model), 0644); err != nil {
		t.Fatalf("failed to create ecommerce.model.lkml: %v", err)
	}

	return tmpDir
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode.
// Output is captured in buffers for inspection.
func NewTestRenderer(mode output.Mode) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRenderer(out, errOut, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// NewTestRendererMarkdown creates a new test renderer in markdown mode.
func NewTestRendererMarkdown() *TestRenderer {
	return NewTestRenderer(output.ModeMarkdown)
}

// NewTestRendererJSON creates a new test renderer in JSON mode.
func NewTestRendererJSON() *TestRenderer {
	return NewTestRenderer(output.ModeJSON)
}

// Output returns the captured stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the captured stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// Reset clears both output buffers.
func (tr *TestRenderer) Reset() {
	tr.Out.Reset()
	tr.ErrOut.Reset()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertContains checks that the string contains the expected substring.
func AssertContains(t *testing.T, s, expected string) {
	t.Helper()
	if !strings.Contains(s, expected) {
		t.Errorf("string should contain %q, got: %s", expected, s)
	}
}
