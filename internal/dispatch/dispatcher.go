// Package dispatch executes directive sequences against configured printers.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/picto-id/print-service/internal/assets"
	"github.com/picto-id/print-service/internal/device"
	"github.com/picto-id/print-service/internal/profile"
	"github.com/picto-id/print-service/internal/receipt"
)

// ErrInvalidPrinter reports a printer selector outside [1, N]. It is a
// caller validation error: no device session is opened for it.
var ErrInvalidPrinter = errors.New("printer id isn't valid")

// Printer is one configured printer with its profile resolved.
type Printer struct {
	Name    string
	Addr    string
	Profile profile.Profile
}

// Dispatcher resolves 1-based printer selectors and streams directives to
// the device, one exclusive session per job.
type Dispatcher struct {
	printers []Printer
	assets   *assets.Store
	open     device.Factory
	// One lock per printer: the raw TCP port does not serialize jobs, so
	// concurrent requests to the same selector must queue here.
	locks []sync.Mutex
}

func New(printers []Printer, store *assets.Store, open device.Factory) *Dispatcher {
	if open == nil {
		open = func(addr string) device.Device { return device.NewESCPOS(addr) }
	}
	return &Dispatcher{
		printers: printers,
		assets:   store,
		open:     open,
		locks:    make([]sync.Mutex, len(printers)),
	}
}

// Printer resolves a 1-based selector, for callers that need the profile
// before building a layout.
func (d *Dispatcher) Printer(id int) (Printer, error) {
	if id < 1 || id > len(d.printers) {
		return Printer{}, ErrInvalidPrinter
	}
	return d.printers[id-1], nil
}

// Dispatch opens a session on printer id, executes the directives in order
// and closes the session exactly once, on success and on failure. The first
// device fault aborts the remaining stream and is returned; a failed job is
// never retried here.
func (d *Dispatcher) Dispatch(ctx context.Context, id int, directives []receipt.Directive) error {
	p, err := d.Printer(id)
	if err != nil {
		return err
	}

	d.locks[id-1].Lock()
	defer d.locks[id-1].Unlock()

	dev := d.open(p.Addr)
	if err := dev.Open(); err != nil {
		return fmt.Errorf("open session: %w", err)
	}
	defer func() {
		if cerr := dev.Close(); cerr != nil {
			log.Printf("[dispatch] close %s: %v", p.Name, cerr)
		}
	}()

	for i, dir := range directives {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := d.execute(dev, dir); err != nil {
			return fmt.Errorf("directive %d/%d on %s: %w", i+1, len(directives), p.Name, err)
		}
	}
	return nil
}

func (d *Dispatcher) execute(dev device.Device, dir receipt.Directive) error {
	switch v := dir.(type) {
	case receipt.SetStyle:
		return dev.SetStyle(device.Style{Align: device.Align(v.Align), Bold: v.Bold, Scale: v.Scale})
	case receipt.Write:
		return dev.Write(v.Text)
	case receipt.WriteLine:
		return dev.WriteLine(v.Text)
	case receipt.Blank:
		return dev.WriteLine("")
	case receipt.DrawImage:
		img, err := d.assets.Image(v.Asset, v.WidthPx)
		if err != nil {
			return err
		}
		return dev.Image(img)
	case receipt.DrawQR:
		img, err := d.assets.QR(v.Content, v.WidthPx)
		if err != nil {
			return err
		}
		return dev.Image(img)
	case receipt.Cut:
		return dev.Cut()
	default:
		return fmt.Errorf("unknown directive %T", dir)
	}
}
