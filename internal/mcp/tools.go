// ABOUTME: MCP tool implementations for patient measurements.
// ABOUTME: Provides patient lookup, listing, and stateless classification.
package mcp

import (
	"context"
	"fmt"

	"github.com/harperreed/healthmetrics/internal/models"
	"github.com/harperreed/healthmetrics/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_patient",
		Description: "Get a patient's raw measurements with BMI, blood pressure, and waist-to-height assessments",
	}, s.handleGetPatient)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_patients",
		Description: "List patient identifiers in the store, optionally with their assessments",
	}, s.handleListPatients)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "classify",
		Description: "Classify measurements without touching the store",
	}, s.handleClassify)
}

// Tool input/output types

type getPatientInput struct {
	PatientID string `json:"patient_id" jsonschema:"Patient identifier"`
}

type listPatientsInput struct {
	WithAssessments bool `json:"with_assessments,omitempty" jsonschema:"Include derived indices for each patient"`
	Limit           int  `json:"limit,omitempty" jsonschema:"Max results (default 100)"`
}

type listPatientsOutput struct {
	Total       int                   `json:"total"`
	PatientIDs  []string              `json:"patient_ids"`
	Assessments []*storage.Assessment `json:"assessments,omitempty"`
}

type classifyInput struct {
	HeightCM    *float64 `json:"height_cm,omitempty" jsonschema:"Height in centimetres"`
	WeightKG    *float64 `json:"weight_kg,omitempty" jsonschema:"Weight in kilograms"`
	WaistCM     *float64 `json:"waist_cm,omitempty" jsonschema:"Waist circumference in centimetres"`
	SystolicBP  *float64 `json:"systolic_bp,omitempty" jsonschema:"Systolic blood pressure in mmHg"`
	DiastolicBP *float64 `json:"diastolic_bp,omitempty" jsonschema:"Diastolic blood pressure in mmHg"`
}

// Tool handlers

func (s *Server) handleGetPatient(ctx context.Context, req *mcp.CallToolRequest, input getPatientInput) (*mcp.CallToolResult, storage.Assessment, error) {
	m, ok, err := s.store.Get(input.PatientID)
	if err != nil {
		return nil, storage.Assessment{}, fmt.Errorf("failed to get patient: %w", err)
	}
	if !ok {
		return nil, storage.Assessment{}, fmt.Errorf("patient not found: %s", input.PatientID)
	}

	a, err := m.Assess()
	if err != nil {
		return nil, storage.Assessment{}, fmt.Errorf("failed to assess patient: %w", err)
	}
	s.log.Debug("get_patient", "patient", input.PatientID)
	return nil, *a, nil
}

func (s *Server) handleListPatients(ctx context.Context, req *mcp.CallToolRequest, input listPatientsInput) (*mcp.CallToolResult, listPatientsOutput, error) {
	if input.Limit <= 0 {
		input.Limit = 100
	}

	ids, err := s.store.PatientIDs()
	if err != nil {
		return nil, listPatientsOutput{}, fmt.Errorf("failed to list patients: %w", err)
	}

	out := listPatientsOutput{Total: len(ids), PatientIDs: ids}
	if len(ids) > input.Limit {
		out.PatientIDs = ids[:input.Limit]
	}
	if out.PatientIDs == nil {
		out.PatientIDs = []string{}
	}

	if input.WithAssessments {
		for _, id := range out.PatientIDs {
			m, ok, err := s.store.Get(id)
			if err != nil {
				return nil, listPatientsOutput{}, fmt.Errorf("failed to get patient %s: %w", id, err)
			}
			if !ok {
				// Removed by another writer since PatientIDs ran.
				continue
			}
			a, err := m.Assess()
			if err != nil {
				return nil, listPatientsOutput{}, fmt.Errorf("failed to assess patient %s: %w", id, err)
			}
			out.Assessments = append(out.Assessments, a)
		}
	}

	return nil, out, nil
}

func (s *Server) handleClassify(ctx context.Context, req *mcp.CallToolRequest, input classifyInput) (*mcp.CallToolResult, storage.Assessment, error) {
	a := storage.Assess("", models.Measurements{
		HeightCM:    input.HeightCM,
		WeightKG:    input.WeightKG,
		WaistCM:     input.WaistCM,
		SystolicBP:  input.SystolicBP,
		DiastolicBP: input.DiastolicBP,
	})
	return nil, *a, nil
}
