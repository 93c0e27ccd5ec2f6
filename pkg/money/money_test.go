package money

import (
	"encoding/json"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "whole amount", input: "150", want: 15000},
		{name: "two decimals", input: "150.00", want: 15000},
		{name: "one decimal", input: "90.5", want: 9050},
		{name: "cents only", input: "0.99", want: 99},
		{name: "leading dot", input: ".50", want: 50},
		{name: "negative", input: "-12.34", want: -1234},
		{name: "plus sign", input: "+12.34", want: 1234},
		{name: "rounds half up", input: "1.005", want: 101},
		{name: "rounds down below half", input: "1.004", want: 100},
		{name: "extra digits round up", input: "99.999", want: 10000},
		{name: "whitespace trimmed", input: " 42.00 ", want: 4200},
		{name: "empty", input: "", wantErr: true},
		{name: "trailing dot", input: "5.", wantErr: true},
		{name: "just dot", input: ".", wantErr: true},
		{name: "letters", input: "abc", wantErr: true},
		{name: "letters in fraction", input: "1.2x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Parse(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got.MinorUnits() != tt.want {
				t.Errorf("Parse(%q) = %d minor units, want %d", tt.input, got.MinorUnits(), tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		amount Amount
		want   string
	}{
		{FromMinorUnits(15000), "150.00"},
		{FromMinorUnits(99), "0.99"},
		{FromMinorUnits(5), "0.05"},
		{FromMinorUnits(0), "0.00"},
		{FromMinorUnits(-1234), "-12.34"},
	}

	for _, tt := range tests {
		if got := tt.amount.String(); got != tt.want {
			t.Errorf("Amount(%d).String() = %q, want %q", tt.amount.MinorUnits(), got, tt.want)
		}
	}
}

func TestMul(t *testing.T) {
	nightly := MustParse("150.00")
	total := nightly.Mul(4)
	if total.String() != "600.00" {
		t.Errorf("150.00 * 4 = %s, want 600.00", total)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	type payload struct {
		Price Amount `json:"price"`
	}

	data, err := json.Marshal(payload{Price: MustParse("275.50")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"price":"275.50"}` {
		t.Errorf("marshal = %s, want {\"price\":\"275.50\"}", data)
	}

	var decoded payload
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Price != MustParse("275.50") {
		t.Errorf("round trip = %s, want 275.50", decoded.Price)
	}
}

func TestUnmarshalAcceptsNumber(t *testing.T) {
	var a Amount
	if err := json.Unmarshal([]byte(`90.5`), &a); err != nil {
		t.Fatalf("unmarshal number: %v", err)
	}
	if a.MinorUnits() != 9050 {
		t.Errorf("unmarshal 90.5 = %d minor units, want 9050", a.MinorUnits())
	}
}
