package utils

import (
	"errors"
	"strings"
	"testing"
)

func TestMaskSensitiveData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantHide string
	}{
		{
			name:     "api key in query",
			input:    "GET https://vision.googleapis.com/v1/images:annotate?key=AIzaSyExample123",
			wantHide: "AIzaSyExample123",
		},
		{
			name:     "bearer token",
			input:    "Authorization: Bearer ya29.abc-def_ghi",
			wantHide: "ya29.abc-def_ghi",
		},
		{
			name:     "aws sigv4 credential",
			input:    "AWS4-HMAC-SHA256 Credential=AKIAEXAMPLE12345/20250101/eu-west-2/textract/aws4_request",
			wantHide: "AKIAEXAMPLE12345",
		},
		{
			name:     "aws session token",
			input:    "X-Amz-Security-Token: FwoGZXIvYXdzEExample",
			wantHide: "FwoGZXIvYXdzEExample",
		},
		{
			name:     "x-api-key header",
			input:    "x-api-key: sk-secret-key-value",
			wantHide: "sk-secret-key-value",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MaskSensitiveData(tt.input)
			if strings.Contains(got, tt.wantHide) {
				t.Errorf("MaskSensitiveData(%q) = %q, still contains secret", tt.input, got)
			}
			if !strings.Contains(got, "***MASKED***") {
				t.Errorf("MaskSensitiveData(%q) = %q, missing mask marker", tt.input, got)
			}
		})
	}
}

func TestMaskSensitiveData_Plain(t *testing.T) {
	in := "textract request failed: connection refused"
	if got := MaskSensitiveData(in); got != in {
		t.Errorf("MaskSensitiveData(%q) = %q, want unchanged", in, got)
	}
	if got := MaskSensitiveData(""); got != "" {
		t.Errorf("MaskSensitiveData(empty) = %q", got)
	}
}

func TestMaskSensitiveError(t *testing.T) {
	if MaskSensitiveError(nil) != nil {
		t.Error("MaskSensitiveError(nil) should be nil")
	}

	base := errors.New("request to ?key=secret123 failed")
	masked := MaskSensitiveError(base)
	if strings.Contains(masked.Error(), "secret123") {
		t.Errorf("masked error still contains secret: %q", masked.Error())
	}
	if !errors.Is(masked, base) {
		t.Error("masked error should unwrap to the original")
	}
}
