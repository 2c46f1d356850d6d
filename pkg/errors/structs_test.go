package errors

import (
	"strings"
	"testing"
)

type testRequest struct {
	Source string `json:"source" validate:"required,max=8"`
	Level  string `json:"level" validate:"omitempty,oneof=low high"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name    string
		in      testRequest
		wantErr []string
	}{
		{"valid", testRequest{Source: "login"}, nil},
		{"missing", testRequest{}, []string{"source is required"}},
		{"too long", testRequest{Source: "abcdefghij"}, []string{"source must be at most 8 characters"}},
		{"two fields", testRequest{Level: "mid"}, []string{"source is required", "level must be one of: low high"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(ErrCodeInvalidInput, tt.in)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !Is(err, ErrCodeInvalidInput) {
				t.Fatalf("code = %q, want INVALID_INPUT", GetCode(err))
			}
			for _, want := range tt.wantErr {
				if !strings.Contains(UserMessage(err), want) {
					t.Errorf("message %q missing %q", UserMessage(err), want)
				}
			}
		})
	}
}
