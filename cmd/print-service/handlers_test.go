package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/picto-id/print-service/internal/assets"
	"github.com/picto-id/print-service/internal/config"
	"github.com/picto-id/print-service/internal/device"
	"github.com/picto-id/print-service/internal/dispatch"
	"github.com/picto-id/print-service/internal/profile"
	"github.com/picto-id/print-service/internal/receipt"
	"github.com/picto-id/print-service/internal/ws"
)

//
// ---------- STUBS & FAKES ----------
//

// fakeDevice satisfies device.Device in memory; failOpen/failWrite force
// the two device fault paths.
type fakeDevice struct {
	opens     int
	closes    int
	linesSeen int
	failOpen  bool
	failWrite bool
}

func (f *fakeDevice) Open() error {
	f.opens++
	if f.failOpen {
		return fmt.Errorf("dial tcp: connection refused")
	}
	return nil
}
func (f *fakeDevice) Close() error                { f.closes++; return nil }
func (f *fakeDevice) SetStyle(device.Style) error { return nil }
func (f *fakeDevice) Write(string) error {
	if f.failWrite {
		return fmt.Errorf("device busy")
	}
	return nil
}
func (f *fakeDevice) WriteLine(string) error {
	if f.failWrite {
		return fmt.Errorf("device busy")
	}
	f.linesSeen++
	return nil
}
func (f *fakeDevice) Image(image.Image) error { return nil }
func (f *fakeDevice) Cut() error              { return nil }

func testConfig() config.Config {
	return config.Config{
		Host:          "127.0.0.1",
		Port:          8090,
		ReceiptCopies: 3,
		Printers: []config.PrinterDef{
			{Name: "Kasir", Model: "epson-tm-t82", Addr: "192.168.1.50:9100"},
		},
	}
}

func testRouter(t *testing.T, dev *fakeDevice, cfg config.Config) *gin.Engine {
	t.Helper()

	dir := t.TempDir()
	for _, name := range []string{receipt.LogoAsset, receipt.ARQRAsset} {
		f, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		if err := png.Encode(f, image.NewGray(image.Rect(0, 0, 16, 16))); err != nil {
			t.Fatal(err)
		}
		f.Close()
	}

	d := dispatch.New(buildPrinters(cfg.Printers), assets.NewStore(dir),
		func(addr string) device.Device { return dev })
	hub := ws.NewHub(func(*http.Request) bool { return true })

	r := gin.New()
	r.POST("/print_receipt", printReceiptHandler(d, hub, cfg))
	r.POST("/print_number", printNumberHandler(d, hub))
	return r
}

func orderBody() string {
	return `{
		"order_id": 412,
		"subtotal": 43000,
		"total": 45000,
		"transaction": {
			"cashier": "Dina",
			"payment_method": "cash",
			"paid_amount": 50000,
			"change": 5000,
			"paid_at": "2024-06-01 12:30"
		},
		"items": [
			{"name": "Es Teh", "price": 5000, "quantity": 2},
			{"name": "Nasi Goreng", "price": 16500, "quantity": 2}
		]
	}`
}

func post(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

//
// ---------- TESTS ----------
//

func TestPrintReceipt_HappyPath(t *testing.T) {
	dev := &fakeDevice{}
	r := testRouter(t, dev, testConfig())

	w := post(r, "/print_receipt?printer_id=1", orderBody())
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["message"] != "Struk berhasil dibuat" {
		t.Fatalf("message=%q", resp["message"])
	}
	if dev.opens != 1 || dev.closes != 1 {
		t.Fatalf("opens=%d closes=%d, want 1/1", dev.opens, dev.closes)
	}
	if dev.linesSeen == 0 {
		t.Fatal("no lines reached the device")
	}
}

func TestPrintReceipt_InvalidPrinterID(t *testing.T) {
	dev := &fakeDevice{}
	r := testRouter(t, dev, testConfig())

	for _, q := range []string{"printer_id=0", "printer_id=2", "printer_id=-3", "printer_id=abc", ""} {
		w := post(r, "/print_receipt?"+q, orderBody())
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("q=%q status=%d body=%s (want 422)", q, w.Code, w.Body.String())
		}
	}
	if dev.opens != 0 {
		t.Fatalf("device opened %d times for invalid selectors", dev.opens)
	}
}

func TestPrintReceipt_InvalidPayload(t *testing.T) {
	dev := &fakeDevice{}
	r := testRouter(t, dev, testConfig())

	bad := []string{
		`{not json`,
		`{"order_id": 1, "subtotal": 0, "total": 0, "transaction": {"cashier": "Dina", "payment_method": "crypto", "paid_amount": 0, "change": 0, "paid_at": "x"}, "items": []}`,
		`{"order_id": 1, "subtotal": 10, "total": 5, "transaction": {"cashier": "Dina", "payment_method": "cash", "paid_amount": 5, "change": 0, "paid_at": "x"}, "items": []}`,
		`{"order_id": 1, "subtotal": 0, "total": 0, "transaction": {"cashier": "Dina", "payment_method": "cash", "paid_amount": 0, "change": 0, "paid_at": "x"}, "items": [{"name": "Es Teh", "price": 100, "quantity": 0}]}`,
	}
	for _, body := range bad {
		w := post(r, "/print_receipt?printer_id=1", body)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("body=%s status=%d (want 422)", body, w.Code)
		}
	}
	if dev.opens != 0 {
		t.Fatalf("device opened %d times for invalid payloads", dev.opens)
	}
}

func TestPrintReceipt_DeviceFault(t *testing.T) {
	dev := &fakeDevice{failWrite: true}
	r := testRouter(t, dev, testConfig())

	w := post(r, "/print_receipt?printer_id=1", orderBody())
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d body=%s (want 500)", w.Code, w.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["error"] == "" {
		t.Fatal("error message missing from response")
	}
	if dev.closes != 1 {
		t.Fatalf("closes=%d, want the session closed despite the fault", dev.closes)
	}
}

func TestPrintReceipt_OpenFault(t *testing.T) {
	dev := &fakeDevice{failOpen: true}
	r := testRouter(t, dev, testConfig())

	w := post(r, "/print_receipt?printer_id=1", orderBody())
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d body=%s (want 500)", w.Code, w.Body.String())
	}
}

func TestPrintNumber_HappyPath(t *testing.T) {
	dev := &fakeDevice{}
	r := testRouter(t, dev, testConfig())

	w := post(r, "/print_number?printer_id=1", `{"order_id": 88}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if dev.opens != 1 || dev.closes != 1 {
		t.Fatalf("opens=%d closes=%d, want 1/1", dev.opens, dev.closes)
	}
}

func TestPrintNumber_InvalidPrinterID(t *testing.T) {
	dev := &fakeDevice{}
	r := testRouter(t, dev, testConfig())

	w := post(r, "/print_number?printer_id=99", `{"order_id": 88}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d body=%s (want 422)", w.Code, w.Body.String())
	}
	if dev.opens != 0 {
		t.Fatal("device opened for an invalid selector")
	}
}

func TestBuildPrinters(t *testing.T) {
	printers := buildPrinters(testConfig().Printers)
	if len(printers) != 1 {
		t.Fatalf("printers=%d", len(printers))
	}
	want, _ := profile.Resolve("epson-tm-t82")
	if printers[0].Profile != want {
		t.Fatalf("profile %+v, want %+v", printers[0].Profile, want)
	}
}

func TestARLink(t *testing.T) {
	if got := arLink("https://ar.picto.id/o/%d", 412); got != "https://ar.picto.id/o/412" {
		t.Fatalf("arLink=%q", got)
	}
}

func init() {
	gin.SetMode(gin.TestMode)
	gin.DefaultWriter = io.Discard
	log.SetOutput(io.Discard)
}
