package util

import "testing"

func TestSlugFileName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{in: "Acme Co.", want: "acme-co-"},
		{in: "../../etc", want: "------etc"},
		{in: "Café 42", want: "caf--42"},
		{in: "   ", want: "your-business"},
		{in: "", want: "your-business"},
	}
	for _, tt := range tests {
		if got := SlugFileName(tt.in, "your-business"); got != tt.want {
			t.Fatalf("SlugFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
