// Package device abstracts the byte-level printer protocol behind a
// capability-oriented command API.
package device

import "image"

// Style is the accumulated session style. Applying a Style replaces the
// previous one wholesale.
type Style struct {
	Align Align
	Bold  bool
	// Scale is the character magnification, 1 or 2. Zero means 1.
	Scale int
}

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Device is one physical printer session. Open must be called before any
// other command and Close exactly once when the job ends, on success or
// failure.
type Device interface {
	Open() error
	SetStyle(s Style) error
	// Write emits text without a line feed.
	Write(text string) error
	// WriteLine emits text followed by a line feed.
	WriteLine(text string) error
	// Image renders a bitmap at the current alignment.
	Image(img image.Image) error
	// Cut feeds the paper clear of the blade and cuts.
	Cut() error
	Close() error
}

// Factory opens device handles for a printer address. Injected into the
// dispatcher so tests can substitute fakes.
type Factory func(addr string) Device
