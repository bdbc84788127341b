// ABOUTME: MCP resource implementations for patient measurements.
// ABOUTME: Provides healthmetrics://patients and healthmetrics://summary resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	patientsURI = "healthmetrics://patients"
	summaryURI  = "healthmetrics://summary"
)

func (s *Server) registerResources() {
	// Every patient with derived indices
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         patientsURI,
		Name:        "Patient Assessments",
		Description: "Every patient's measurements with BMI, blood pressure, and waist-to-height categories",
		MIMEType:    "application/json",
	}, s.handlePatientsResource)

	// Category counts per index
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         summaryURI,
		Name:        "Category Summary",
		Description: "Number of patients in each category of each derived index",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

// Resource handlers

func (s *Server) handlePatientsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	data, err := s.store.ExportJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to export patients: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      patientsURI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	sum, err := s.store.Summary()
	if err != nil {
		return nil, fmt.Errorf("failed to summarize store: %w", err)
	}

	result := map[string]interface{}{
		"generated_at": time.Now().Format(time.RFC3339),
		"patients":     sum.Patients,
		"indices":      sum.Indices,
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      summaryURI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
