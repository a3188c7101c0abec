package utils

import "testing"

func TestJSONPointerToPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"#", ""},
		{"/0/status", "[0].status"},
		{"#/items/2/id", "items[2].id"},
		{"/a~1b/c~0d", "a/b.c~d"},
		{"/3", "[3]"},
	}
	for _, tt := range tests {
		if got := JSONPointerToPath(tt.in); got != tt.want {
			t.Errorf("JSONPointerToPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBoolFromString(t *testing.T) {
	for _, s := range []string{"1", "true", "TRUE", " yes ", "on", "y"} {
		if !BoolFromString(s) {
			t.Errorf("BoolFromString(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"", "0", "false", "no", "off", "maybe"} {
		if BoolFromString(s) {
			t.Errorf("BoolFromString(%q) = true, want false", s)
		}
	}
}
