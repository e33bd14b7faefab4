package util

import "testing"

func TestSanitizeKeySegment(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "rec-1", want: "rec-1"},
		{in: " rec/2 ", want: "rec_2"},
		{in: `a\b`, want: "a_b"},
		{in: "../etc", wantErr: true},
		{in: "   ", wantErr: true},
	}
	for _, tt := range tests {
		got, err := SanitizeKeySegment(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("SanitizeKeySegment(%q) expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("SanitizeKeySegment(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
		}
	}
}
