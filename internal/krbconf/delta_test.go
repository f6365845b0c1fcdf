package krbconf

import (
	"reflect"
	"testing"
)

func TestParseDelta(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Delta
	}{
		{"Empty", "", Delta{}},
		{"WhitespaceOnly", "   ", Delta{}},
		{"BareHost", "kdc1.example.com", Delta{Add: []string{"kdc1.example.com"}}},
		{"PlusPrefix", "+kdc1", Delta{Add: []string{"kdc1"}}},
		{"MinusPrefix", "-kdc1", Delta{Remove: []string{"kdc1"}}},
		{"StarPrefix", "*kdc1", Delta{Add: []string{"kdc1"}, Admin: "kdc1"}},
		{
			"MixedWithSpaces",
			"10.10.10.10,*10.10.10.20, +10.10.10.30, -10.10.10.40",
			Delta{
				Add:    []string{"10.10.10.10", "10.10.10.20", "10.10.10.30"},
				Remove: []string{"10.10.10.40"},
				Admin:  "10.10.10.20",
			},
		},
		{"TrailingComma", "kdc1,", Delta{Add: []string{"kdc1"}}},
		{"PrefixOnly", "+, -", Delta{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseDelta(tc.input)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("ParseDelta(%q) = %+v, expected %+v", tc.input, got, tc.want)
			}
		})
	}
}

func TestDeltaEmpty(t *testing.T) {
	if !ParseDelta("  ,  ").Empty() {
		t.Error("Expected delta of blank tokens to be empty")
	}
	if ParseDelta("kdc1").Empty() {
		t.Error("Expected delta with an addition to be non-empty")
	}
}
