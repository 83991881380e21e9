package match

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Basic cases
		{"company_name", "companyname"},
		{"company-name", "companyname"},
		{"company name", "companyname"},
		{"CompanyName", "companyname"},
		{"COMPANY_NAME", "companyname"},

		// Mixed separators
		{"target_audience-Size", "targetaudiencesize"},
		{" target\taudience\n", "targetaudience"},
		{"a__b--c  d", "abcd"},

		// Characters that are not separators survive
		{"budget.usd", "budget.usd"},
		{"step1", "step1"},
		{"x/y", "x/y"},

		// Edge cases
		{"", ""},
		{"_", ""},
		{"- _ -", ""},
		{"A", "a"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := Normalize(tt.input)
			if result != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, s := range []string{"Target_Audience", "  ", "Über-Name", "x-Y z"} {
		once := Normalize(s)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize(Normalize(%q)) = %q, want %q", s, twice, once)
		}
	}
}
