package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/picto-id/print-service/internal/config"
	"github.com/picto-id/print-service/internal/dispatch"
	"github.com/picto-id/print-service/internal/order"
	"github.com/picto-id/print-service/internal/receipt"
	"github.com/picto-id/print-service/internal/ws"
)

const printedMessage = "Struk berhasil dibuat"

// printerSelector parses the 1-based printer_id query parameter. The
// selector is validated against the dispatcher before anything else so a
// bad id never generates directives or touches a device.
func printerSelector(c *gin.Context, d *dispatch.Dispatcher) (int, dispatch.Printer, bool) {
	id, err := strconv.Atoi(c.Query("printer_id"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": dispatch.ErrInvalidPrinter.Error()})
		return 0, dispatch.Printer{}, false
	}
	p, err := d.Printer(id)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return 0, dispatch.Printer{}, false
	}
	return id, p, true
}

func printReceiptHandler(d *dispatch.Dispatcher, hub *ws.Hub, cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, p, ok := printerSelector(c, d)
		if !ok {
			return
		}

		var o order.Order
		if err := c.ShouldBindJSON(&o); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid order payload: " + err.Error()})
			return
		}
		if err := o.Validate(); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}

		opts := receipt.Options{Copies: cfg.ReceiptCopies}
		if cfg.ARLinkTemplate != "" {
			opts.ARLink = arLink(cfg.ARLinkTemplate, o.OrderID)
		}
		directives := receipt.BuildReceipt(p.Profile, o, opts)

		jobID := uuid.NewString()
		if err := d.Dispatch(c.Request.Context(), id, directives); err != nil {
			hub.Broadcast(ws.Event{
				Type: ws.EventPrintFailed, JobID: jobID,
				Printer: p.Name, OrderID: o.OrderID, Error: err.Error(),
			})
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		hub.Broadcast(ws.Event{
			Type: ws.EventPrinted, JobID: jobID,
			Printer: p.Name, OrderID: o.OrderID,
		})
		c.JSON(http.StatusCreated, gin.H{"message": printedMessage})
	}
}

func printNumberHandler(d *dispatch.Dispatcher, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, p, ok := printerSelector(c, d)
		if !ok {
			return
		}

		var n order.Number
		if err := c.ShouldBindJSON(&n); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid order payload: " + err.Error()})
			return
		}

		directives := receipt.BuildNumberTicket(p.Profile, n)

		jobID := uuid.NewString()
		if err := d.Dispatch(c.Request.Context(), id, directives); err != nil {
			hub.Broadcast(ws.Event{
				Type: ws.EventPrintFailed, JobID: jobID,
				Printer: p.Name, OrderID: n.OrderID, Error: err.Error(),
			})
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		hub.Broadcast(ws.Event{
			Type: ws.EventPrinted, JobID: jobID,
			Printer: p.Name, OrderID: n.OrderID,
		})
		c.JSON(http.StatusCreated, gin.H{"message": printedMessage})
	}
}
