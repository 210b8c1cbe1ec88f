package receipt

// Align selects the horizontal justification of subsequent output.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Directive is one atomic printer instruction. Directives are consumed
// strictly in emission order; the only state they share is the accumulated
// style on the device.
type Directive interface {
	directive()
}

// SetStyle replaces the device style wholesale (align, emphasis, scale).
type SetStyle struct {
	Align Align
	Bold  bool
	// Scale is the character magnification, 1 or 2. Zero means 1.
	Scale int
}

// Write emits text without a trailing line feed, so emphasis can change
// mid-line (plain label, bold value).
type Write struct {
	Text string
}

// WriteLine emits one full text row.
type WriteLine struct {
	Text string
}

// Blank emits an empty row.
type Blank struct{}

// DrawImage renders a named asset scaled to WidthPx.
type DrawImage struct {
	Asset   string
	WidthPx int
}

// DrawQR renders a QR code for Content scaled to WidthPx.
type DrawQR struct {
	Content string
	WidthPx int
}

// Cut feeds and cuts the paper.
type Cut struct{}

func (SetStyle) directive()  {}
func (Write) directive()     {}
func (WriteLine) directive() {}
func (Blank) directive()     {}
func (DrawImage) directive() {}
func (DrawQR) directive()    {}
func (Cut) directive()       {}
