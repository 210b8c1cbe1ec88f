package receipt

import (
	"strconv"
	"strings"

	"github.com/picto-id/print-service/internal/order"
	"github.com/picto-id/print-service/internal/profile"
)

// Asset names resolved by the dispatcher's asset store.
const (
	LogoAsset = "logo.png"
	ARQRAsset = "ar-qr.png"
)

// Options controls receipt emission.
type Options struct {
	// Copies is how many cut copies of the receipt to emit. Zero or
	// negative means one.
	Copies int
	// ARLink, when set, prints the supplementary block's QR from this
	// content instead of the static secondary asset.
	ARLink string
}

// BuildReceipt renders an order into the full directive sequence for the
// given printer profile. It touches no device and is deterministic in its
// inputs.
func BuildReceipt(p profile.Profile, o order.Order, opt Options) []Directive {
	copies := opt.Copies
	if copies < 1 {
		copies = 1
	}
	divider := strings.Repeat("-", p.MaxCharsPerRow)

	var ds []Directive
	for c := 0; c < copies; c++ {
		ds = append(ds,
			SetStyle{Align: AlignCenter},
			DrawImage{Asset: LogoAsset, WidthPx: p.BitmapWidthPx},
			SetStyle{Align: AlignLeft},
			WriteLine{divider},
		)

		// Order id with emphasis on the value only.
		ds = append(ds,
			Write{"No. Pesanan: "},
			SetStyle{Align: AlignLeft, Bold: true},
			WriteLine{strconv.FormatInt(o.OrderID, 10)},
			SetStyle{Align: AlignLeft},
			WriteLine{"Waktu: " + o.Transaction.PaidAt},
			WriteLine{"Kasir: " + o.Transaction.Cashier},
			WriteLine{divider},
			Blank{},
		)

		for _, it := range o.Items {
			left := it.Name + " x" + strconv.Itoa(it.Quantity)
			ds = append(ds, WriteLine{Justify(left, FormatRupiah(it.LineTotal()), p.MaxCharsPerRow)})
		}

		ds = append(ds,
			Blank{},
			WriteLine{divider},
			WriteLine{Justify("Subtotal: ", FormatRupiah(o.Subtotal), p.MaxCharsPerRow)},
			WriteLine{Justify("Biaya Penanganan: ", FormatRupiah(o.HandlingFee()), p.MaxCharsPerRow)},
			WriteLine{divider},
			SetStyle{Align: AlignLeft, Bold: true},
			WriteLine{Justify("Total: ", FormatRupiah(o.Total), p.MaxCharsPerRow)},
			SetStyle{Align: AlignLeft},
			WriteLine{divider},
			WriteLine{Justify("Metode Bayar: ", o.Transaction.PaymentMethod.Label(), p.MaxCharsPerRow)},
			WriteLine{Justify("Bayar: ", FormatRupiah(o.Transaction.PaidAmount), p.MaxCharsPerRow)},
		)

		if o.Transaction.PaymentMethod == order.PaymentCash {
			ds = append(ds, WriteLine{Justify("Kembalian: ", FormatRupiah(o.Transaction.Change), p.MaxCharsPerRow)})
		}

		ds = append(ds,
			WriteLine{divider},
			SetStyle{Align: AlignCenter},
			WriteLine{"Terima kasih!"},
		)

		// The supplementary AR block goes on the first copy only,
		// regardless of the order's contents.
		if c == 0 {
			ds = append(ds,
				Blank{},
				WriteLine{"Scan QR di bawah untuk melihat AR"},
				Blank{},
			)
			if opt.ARLink != "" {
				ds = append(ds, DrawQR{Content: opt.ARLink, WidthPx: p.BitmapWidthPx / 2})
			} else {
				ds = append(ds, DrawImage{Asset: ARQRAsset, WidthPx: p.BitmapWidthPx})
			}
		}

		ds = append(ds, Cut{})
	}
	return ds
}

// BuildNumberTicket renders the minimal order-number slip: logo, the id in
// double-size emphasis, and the hand-to-cashier instruction. One copy.
func BuildNumberTicket(p profile.Profile, n order.Number) []Directive {
	return []Directive{
		SetStyle{Align: AlignCenter},
		DrawImage{Asset: LogoAsset, WidthPx: p.BitmapWidthPx},
		Blank{},
		SetStyle{Align: AlignCenter, Bold: true, Scale: 2},
		WriteLine{strconv.FormatInt(n.OrderID, 10)},
		Blank{},
		SetStyle{Align: AlignCenter},
		WriteLine{"Harap bawa ke kasir!"},
		Cut{},
	}
}
