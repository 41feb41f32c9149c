// Package render provides output renderers for audit reports.
// This file implements the JSON renderer, the canonical machine-readable
// form of an AuditReport, matching the HTTP API response byte for byte.
package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/a11ypipe/core"
)

// JSONRenderer produces the structured JSON form of a report.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render marshals the report with indentation.
func (r *JSONRenderer) Render(report *core.AuditReport) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling report: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
