// Snapgraph - Screenshot Organizer and Content Relationship Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/snapgraph

package validation

import (
	"strings"
	"testing"
)

type item struct {
	ID   string   `json:"id" validate:"record_id"`
	Tags []string `json:"tags" validate:"max=3"`
}

type batch struct {
	Items []item `json:"items" validate:"required,min=1,dive"`
	Limit int    `json:"limit" validate:"gte=1,lte=100"`
	Level string `json:"level" validate:"omitempty,log_level"`
	Mode  string `json:"mode" validate:"omitempty,oneof=json text"`
}

func TestGetValidator_Singleton(t *testing.T) {
	t.Parallel()

	if GetValidator() != GetValidator() {
		t.Error("GetValidator() should return the same instance")
	}
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     batch
		wantField string
		wantMsg   string
	}{
		{
			name:  "valid",
			input: batch{Items: []item{{ID: "shot-1"}}, Limit: 10, Level: "debug", Mode: "json"},
		},
		{
			name:      "missing items",
			input:     batch{Limit: 10},
			wantField: "items",
			wantMsg:   "items is required",
		},
		{
			name:      "id with whitespace",
			input:     batch{Items: []item{{ID: "ok"}, {ID: "bad id"}}, Limit: 1},
			wantField: "items[1].id",
			wantMsg:   "items[1].id must be 1-256 printable characters without whitespace",
		},
		{
			name:      "empty id",
			input:     batch{Items: []item{{ID: ""}}, Limit: 1},
			wantField: "items[0].id",
		},
		{
			name:      "too many tags",
			input:     batch{Items: []item{{ID: "a", Tags: []string{"1", "2", "3", "4"}}}, Limit: 1},
			wantField: "items[0].tags",
			wantMsg:   "items[0].tags must be at most 3 items",
		},
		{
			name:      "limit too large",
			input:     batch{Items: []item{{ID: "a"}}, Limit: 101},
			wantField: "limit",
			wantMsg:   "limit must be less than or equal to 100",
		},
		{
			name:      "bad level",
			input:     batch{Items: []item{{ID: "a"}}, Limit: 1, Level: "loud"},
			wantField: "level",
			wantMsg:   "level must be a valid log level",
		},
		{
			name:      "bad mode",
			input:     batch{Items: []item{{ID: "a"}}, Limit: 1, Mode: "xml"},
			wantField: "mode",
			wantMsg:   "mode must be one of: json text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			verr := ValidateStruct(&tt.input)

			if tt.wantField == "" {
				if verr != nil {
					t.Fatalf("Expected no error, got %v", verr)
				}
				return
			}
			if verr == nil {
				t.Fatal("Expected validation error, got nil")
			}

			fields := verr.Fields()
			if len(fields) != 1 {
				t.Fatalf("Expected 1 failed field, got %d: %v", len(fields), verr)
			}
			if fields[0].Field != tt.wantField {
				t.Errorf("Field = %q, want %q", fields[0].Field, tt.wantField)
			}
			if tt.wantMsg != "" && fields[0].Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", fields[0].Message, tt.wantMsg)
			}
		})
	}
}

func TestRequestValidationError_ToAPIError(t *testing.T) {
	t.Parallel()

	single := ValidateStruct(&batch{Items: []item{{ID: "a"}}, Limit: 0})
	if single == nil {
		t.Fatal("Expected error")
	}
	apiErr := single.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("Code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Details["field"] != "limit" {
		t.Errorf("Expected field detail 'limit', got %v", apiErr.Details)
	}

	multi := ValidateStruct(&batch{Limit: 0, Level: "loud"})
	if multi == nil {
		t.Fatal("Expected error")
	}
	apiErr = multi.ToAPIError()
	if !strings.Contains(apiErr.Message, "; ") {
		t.Errorf("Expected joined messages, got %q", apiErr.Message)
	}
	if _, ok := apiErr.Details["fields"]; !ok {
		t.Errorf("Expected fields detail, got %v", apiErr.Details)
	}
}

func TestVar(t *testing.T) {
	t.Parallel()

	if err := Var("shot-42", "record_id"); err != nil {
		t.Errorf("Expected valid id, got %v", err)
	}
	if err := Var(strings.Repeat("x", 257), "record_id"); err == nil {
		t.Error("Expected error for id longer than 256")
	}
}
