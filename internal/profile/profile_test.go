package profile

import (
	"errors"
	"testing"
)

func TestResolveKnownModel(t *testing.T) {
	p, err := Resolve("epson-tm-t82")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if p.MaxCharsPerRow != 48 || p.BitmapWidthPx != 576 {
		t.Fatalf("profile %+v, want 48 chars / 576 px", p)
	}
}

func TestResolveUnknownModel(t *testing.T) {
	_, err := Resolve("dot-matrix-3000")
	if !errors.Is(err, ErrUnknownModel) {
		t.Fatalf("err=%v, want ErrUnknownModel", err)
	}
}

func TestResolveIsReferentiallyStable(t *testing.T) {
	a, err := Resolve("generic-58mm")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	b, err := Resolve("generic-58mm")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if a != b {
		t.Fatalf("profiles differ across lookups: %+v vs %+v", a, b)
	}
}
