package device

import (
	"fmt"
	"image"
	"net"
	"time"
)

// ESC/POS command bytes.
const (
	esc byte = 0x1B
	gs  byte = 0x1D
)

// ESCPOS drives a network thermal printer over its raw TCP port
// (conventionally 9100) using the ESC/POS command set.
type ESCPOS struct {
	addr        string
	dialTimeout time.Duration
	dial        func(network, addr string, timeout time.Duration) (net.Conn, error)
	conn        net.Conn
}

var _ Device = (*ESCPOS)(nil)

// NewESCPOS returns an unopened device for addr ("host:port").
func NewESCPOS(addr string) *ESCPOS {
	return &ESCPOS{addr: addr, dialTimeout: 5 * time.Second, dial: net.DialTimeout}
}

// Open dials the printer and initializes it (ESC @), resetting any style
// state a previous job may have left behind. A connection that fails the
// init write is closed here, since the caller never got a session to close.
func (d *ESCPOS) Open() error {
	conn, err := d.dial("tcp", d.addr, d.dialTimeout)
	if err != nil {
		return fmt.Errorf("printer %s: %w", d.addr, err)
	}
	d.conn = conn
	if err := d.raw(esc, '@'); err != nil {
		conn.Close()
		d.conn = nil
		return err
	}
	return nil
}

func (d *ESCPOS) SetStyle(s Style) error {
	var align byte
	switch s.Align {
	case AlignCenter:
		align = 1
	case AlignRight:
		align = 2
	}
	var bold byte
	if s.Bold {
		bold = 1
	}
	scale := s.Scale
	if scale < 1 {
		scale = 1
	}
	// GS ! n packs width magnification in the high nibble, height in the low.
	size := byte(scale-1)<<4 | byte(scale-1)
	return d.raw(
		esc, 'a', align,
		esc, 'E', bold,
		gs, '!', size,
	)
}

// Write sends text as raw bytes with no codepage translation. Only ASCII is
// guaranteed to render one column per character; multibyte UTF-8 prints one
// cell per byte on single-codepage firmware.
func (d *ESCPOS) Write(text string) error {
	return d.raw([]byte(text)...)
}

func (d *ESCPOS) WriteLine(text string) error {
	return d.raw(append([]byte(text), '\n')...)
}

func (d *ESCPOS) Image(img image.Image) error {
	return d.raw(EncodeRaster(img)...)
}

// Cut feeds three lines so the printed tail clears the blade, then issues a
// partial cut.
func (d *ESCPOS) Cut() error {
	return d.raw(
		esc, 'd', 3,
		gs, 'V', 'A', 0,
	)
}

func (d *ESCPOS) Close() error {
	if d.conn == nil {
		return nil
	}
	err := d.conn.Close()
	d.conn = nil
	return err
}

func (d *ESCPOS) raw(b ...byte) error {
	if d.conn == nil {
		return fmt.Errorf("printer %s: session not open", d.addr)
	}
	if _, err := d.conn.Write(b); err != nil {
		return fmt.Errorf("printer %s: %w", d.addr, err)
	}
	return nil
}

// EncodeRaster converts an image to a GS v 0 raster command. The width is
// rounded down to a byte boundary and pixels darker than 50% gray become
// black dots.
func EncodeRaster(img image.Image) []byte {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	width -= width % 8

	rowBytes := width / 8
	raster := make([]byte, rowBytes*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			gray := (r + g + b) / 3
			if gray < 0x8000 {
				raster[y*rowBytes+x/8] |= 1 << (7 - x%8)
			}
		}
	}

	header := []byte{
		gs, 'v', '0', 0x00,
		byte(rowBytes), byte(rowBytes >> 8),
		byte(height), byte(height >> 8),
	}
	return append(header, raster...)
}
