package services

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Maple Goods", "maple-goods"},
		{"  Café  Crème  ", "cafe-creme"},
		{"100% Natural!", "100-natural"},
		{"--Already--Hyphenated--", "already-hyphenated"},
		{"Ünïcödé Störe", "unicode-store"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Slugify(tc.name); got != tc.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}
