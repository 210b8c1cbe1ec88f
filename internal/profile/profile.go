// Package profile maps printer model names to their physical constraints.
package profile

import (
	"errors"
	"fmt"
)

var ErrUnknownModel = errors.New("unknown printer model")

// Profile describes the character grid and printable bitmap width of a
// thermal printer model. Values are descriptive only.
type Profile struct {
	MaxCharsPerRow int
	BitmapWidthPx  int
}

// Supported models. New models are added here, never at runtime.
var profiles = map[string]Profile{
	"epson-tm-t82":  {MaxCharsPerRow: 48, BitmapWidthPx: 576},
	"epson-tm-m30":  {MaxCharsPerRow: 48, BitmapWidthPx: 576},
	"xprinter-xp58": {MaxCharsPerRow: 32, BitmapWidthPx: 384},
	"generic-80mm":  {MaxCharsPerRow: 48, BitmapWidthPx: 576},
	"generic-58mm":  {MaxCharsPerRow: 32, BitmapWidthPx: 384},
}

// Resolve returns the profile for model. A miss is a configuration error:
// callers resolve every configured printer at startup and must treat the
// error as fatal.
func Resolve(model string) (Profile, error) {
	p, ok := profiles[model]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnknownModel, model)
	}
	return p, nil
}
