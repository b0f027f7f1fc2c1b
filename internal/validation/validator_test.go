// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

package validation

import (
	"strings"
	"testing"
)

type recommendationQuery struct {
	UserID    string  `validate:"required"`
	Latitude  float64 `validate:"latitude"`
	Longitude float64 `validate:"longitude"`
	Limit     int     `validate:"min=0,max=50"`
}

type feedbackBody struct {
	UserID       string `validate:"required"`
	VenueID      string `validate:"required"`
	ActualRating int    `validate:"required,min=1,max=5"`
}

func TestGetValidatorSingleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()

	if v1 == nil {
		t.Fatal("GetValidator() returned nil")
	}
	if v1 != v2 {
		t.Error("GetValidator() should return the same instance")
	}
}

func TestValidateStructPasses(t *testing.T) {
	req := recommendationQuery{
		UserID:    "user-1",
		Latitude:  40.7218,
		Longitude: -74.0027,
		Limit:     10,
	}

	if err := ValidateStruct(&req); err != nil {
		t.Errorf("expected valid struct, got: %v", err)
	}
}

func TestValidateStructFailures(t *testing.T) {
	tests := []struct {
		name      string
		input     interface{}
		wantField string
		wantTag   string
	}{
		{
			name: "missing user id",
			input: &recommendationQuery{
				Latitude:  40.7,
				Longitude: -74.0,
			},
			wantField: "UserID",
			wantTag:   "required",
		},
		{
			name: "latitude out of range",
			input: &recommendationQuery{
				UserID:    "user-1",
				Latitude:  120.0,
				Longitude: -74.0,
			},
			wantField: "Latitude",
			wantTag:   "latitude",
		},
		{
			name: "limit over max",
			input: &recommendationQuery{
				UserID:    "user-1",
				Latitude:  40.7,
				Longitude: -74.0,
				Limit:     500,
			},
			wantField: "Limit",
			wantTag:   "max",
		},
		{
			name: "rating above five stars",
			input: &feedbackBody{
				UserID:       "user-1",
				VenueID:      "fsq_abc",
				ActualRating: 6,
			},
			wantField: "ActualRating",
			wantTag:   "max",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if err == nil {
				t.Fatal("expected validation error")
			}

			errs := err.Errors()
			if len(errs) != 1 {
				t.Fatalf("expected 1 error, got %d: %v", len(errs), err)
			}
			if errs[0].Field() != tt.wantField {
				t.Errorf("field = %q, want %q", errs[0].Field(), tt.wantField)
			}
			if errs[0].Tag() != tt.wantTag {
				t.Errorf("tag = %q, want %q", errs[0].Tag(), tt.wantTag)
			}
		})
	}
}

func TestToAPIErrorSingleFailure(t *testing.T) {
	err := ValidateStruct(&feedbackBody{UserID: "u1", VenueID: "v1"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("code = %q, want VALIDATION_ERROR", apiErr.Code)
	}
	if apiErr.Details["field"] != "ActualRating" {
		t.Errorf("details field = %v, want ActualRating", apiErr.Details["field"])
	}
}

func TestToAPIErrorMultipleFailures(t *testing.T) {
	err := ValidateStruct(&feedbackBody{})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(err.Errors()) != 3 {
		t.Fatalf("expected 3 errors, got %d", len(err.Errors()))
	}

	apiErr := err.ToAPIError()
	if apiErr.Details["fields"] == nil {
		t.Error("expected fields detail for multi-error response")
	}
	if !strings.Contains(apiErr.Message, "UserID") || !strings.Contains(apiErr.Message, "VenueID") {
		t.Errorf("message should name failed fields, got: %s", apiErr.Message)
	}
}

func TestTranslateErrorMessages(t *testing.T) {
	err := ValidateStruct(&recommendationQuery{UserID: "u1", Latitude: 91, Longitude: 0})
	if err == nil {
		t.Fatal("expected validation error")
	}

	want := "Latitude must be a valid latitude (-90 to 90)"
	if err.Errors()[0].Error() != want {
		t.Errorf("message = %q, want %q", err.Errors()[0].Error(), want)
	}
}
