package receipt

import (
	"testing"
	"unicode/utf8"
)

func TestFormatRupiah(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "Rp0"},
		{500, "Rp500"},
		{1000, "Rp1.000"},
		{25500, "Rp25.500"},
		{1000000, "Rp1.000.000"},
		{1234567890, "Rp1.234.567.890"},
	}
	for _, tc := range cases {
		if got := FormatRupiah(tc.in); got != tc.want {
			t.Errorf("FormatRupiah(%d)=%q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestJustifyExactWidth(t *testing.T) {
	got := Justify("Subtotal: ", "Rp10.000", 32)
	if len(got) != 32 {
		t.Fatalf("len=%d, want 32 (%q)", len(got), got)
	}
	// left budget = 32-8 = 24: label padded to 24 chars, value verbatim.
	want := "Subtotal:               Rp10.000"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestJustifyTruncatesLeft(t *testing.T) {
	got := Justify("Nasi Goreng Spesial Extra Pedas", "Rp99.000", 20)
	if len(got) != 20 {
		t.Fatalf("len=%d, want 20", len(got))
	}
	// left budget = 20-8 = 12, truncated with no ellipsis.
	if got != "Nasi Goreng Rp99.000" {
		t.Fatalf("got %q", got)
	}
}

func TestJustifyCountsRunes(t *testing.T) {
	got := Justify("Es Téh Spésial x2", "Rp10.000", 20)
	if n := utf8.RuneCountInString(got); n != 20 {
		t.Fatalf("rune count=%d, want 20 (%q)", n, got)
	}
	// left budget = 20-8 = 12 runes, cut on a rune boundary.
	if got != "Es Téh SpésiRp10.000" {
		t.Fatalf("got %q", got)
	}
}

func TestJustifyPadsByRuneWidth(t *testing.T) {
	got := Justify("Es Téh", "Rp5.000", 20)
	if got != "Es Téh       Rp5.000" {
		t.Fatalf("got %q", got)
	}
}

func TestJustifyAlwaysExactWidth(t *testing.T) {
	lefts := []string{"", "a", "Subtotal: ", "Soto Ayam Spésial Komplét", "a very very long left label"}
	rights := []string{"", "Rp0", "Rp1.000.000", "longer than the whole row itself"}
	for _, l := range lefts {
		for _, r := range rights {
			for _, w := range []int{0, 1, 8, 32, 48} {
				got := Justify(l, r, w)
				if n := utf8.RuneCountInString(got); n != w {
					t.Errorf("Justify(%q,%q,%d) rune count=%d", l, r, w, n)
				}
				if !utf8.ValidString(got) {
					t.Errorf("Justify(%q,%q,%d)=%q is not valid UTF-8", l, r, w, got)
				}
			}
		}
	}
}

func TestJustifyClampsOverlongRight(t *testing.T) {
	got := Justify("Total: ", "Rp123.456.789", 8)
	if got != "Rp123.45" {
		t.Fatalf("got %q, want the right side clamped to 8 chars", got)
	}
}
