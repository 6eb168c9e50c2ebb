package importer

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestParseHours(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "integer", input: "8", want: "8"},
		{name: "decimal dot", input: "7.5", want: "7.5"},
		{name: "decimal comma", input: "7,5", want: "7.5"},
		{name: "thousands and comma", input: "1.234,5", want: "1234.5"},
		{name: "comma with two decimals", input: "1,25", want: "1.25"},
		{name: "comma with three digits is ambiguous", input: "1,234", wantErr: true},
		{name: "comma with three digits after thousands dot", input: "1.000,250", want: "1000.25"},
		{name: "negative", input: "-2", want: "-2"},
		{name: "zero", input: "0", want: "0"},
		{name: "padded", input: " 4 ", want: "4"},
		{name: "empty", input: "", wantErr: true},
		{name: "text", input: "abc", wantErr: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := parseHours(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tc.input, err)
			}
			if !got.Equal(decimal.RequireFromString(tc.want)) {
				t.Fatalf("unexpected hours for %q: want %s, got %s", tc.input, tc.want, got)
			}
		})
	}
}

func TestParseSignal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input       string
		wantPresent bool
		wantPos     bool
	}{
		{input: "", wantPresent: false, wantPos: false},
		{input: "1", wantPresent: true, wantPos: true},
		{input: "0", wantPresent: true, wantPos: false},
		{input: "-1", wantPresent: true, wantPos: false},
		{input: "0.5", wantPresent: true, wantPos: true},
		{input: "TRUE", wantPresent: true, wantPos: true},
		{input: "false", wantPresent: true, wantPos: false},
		{input: "yes", wantPresent: false, wantPos: false},
	}

	for _, tc := range tests {
		got := parseSignal(tc.input)
		if got.Present != tc.wantPresent {
			t.Fatalf("signal %q: want present=%v, got %v", tc.input, tc.wantPresent, got.Present)
		}
		if got.Positive() != tc.wantPos {
			t.Fatalf("signal %q: want positive=%v, got %v", tc.input, tc.wantPos, got.Positive())
		}
	}
}
