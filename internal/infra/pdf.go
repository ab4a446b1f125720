package infra

// pdf.go renders an order summary on A4 with go-pdf/fpdf:
//   - portal header with order number and date
//   - customer, store and status block
//   - item table (SKU, name, qty, unit price, subtotal)
//   - shipping address and tracking, when present
//   - bold total

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"unboxx/internal/model"

	"github.com/go-pdf/fpdf"
)

// RenderOrderPDF writes the order summary PDF to w.
func RenderOrderPDF(order *model.Order, w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, "Unboxx", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	title := "Order " + order.OrderNumber
	if order.OrderType == model.OrderTypeBulk {
		title = "Bulk order " + order.OrderNumber
		if order.Title != nil && *order.Title != "" {
			title += " - " + *order.Title
		}
	}
	pdf.CellFormat(contentW, 6, title, "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 6, order.Date.Format("02 Jan 2006"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Summary ──────────────────────────────────────────────────────────────
	label := func(k, v string) {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(35, 5, k, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW-35, 5, v, "", 1, "L", false, 0, "")
	}
	label("Customer", order.Customer)
	label("Store", order.Store)
	label("Status", order.Status)
	label("Fulfillment", order.FulfillmentStatus)
	label("Quantity", fmt.Sprintf("%d", order.Qty))
	pdf.Ln(4)

	// ── Items ────────────────────────────────────────────────────────────────
	if len(order.Items) > 0 {
		widths := []float64{contentW * 0.2, contentW * 0.4, contentW * 0.1, contentW * 0.15, contentW * 0.15}
		pdf.SetFont("Helvetica", "B", 9)
		for i, h := range []string{"SKU", "Product", "Qty", "Unit", "Subtotal"} {
			align := "L"
			if i >= 2 {
				align = "R"
			}
			pdf.CellFormat(widths[i], 6, h, "B", 0, align, false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Helvetica", "", 9)
		for _, item := range order.Items {
			name := item.Name
			if len(name) > 40 {
				name = name[:39] + "."
			}
			pdf.CellFormat(widths[0], 6, item.SKU, "", 0, "L", false, 0, "")
			pdf.CellFormat(widths[1], 6, name, "", 0, "L", false, 0, "")
			pdf.CellFormat(widths[2], 6, fmt.Sprintf("%d", item.Quantity), "", 0, "R", false, 0, "")
			pdf.CellFormat(widths[3], 6, "$"+item.UnitPrice.StringFixed(2), "", 0, "R", false, 0, "")
			pdf.CellFormat(widths[4], 6, "$"+item.Subtotal().StringFixed(2), "", 1, "R", false, 0, "")
		}
		pdf.Ln(2)
	}

	// ── Shipping / tracking ──────────────────────────────────────────────────
	if a := order.ShippingAddress; a != nil {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(contentW, 6, "Ship to", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentW, 5, a.Name, "", 1, "L", false, 0, "")
		pdf.CellFormat(contentW, 5, a.Line1, "", 1, "L", false, 0, "")
		if a.Line2 != nil && *a.Line2 != "" {
			pdf.CellFormat(contentW, 5, *a.Line2, "", 1, "L", false, 0, "")
		}
		pdf.CellFormat(contentW, 5, fmt.Sprintf("%s %s, %s", a.City, a.PostalCode, a.Country), "", 1, "L", false, 0, "")
		pdf.Ln(2)
	}
	if t := order.Tracking; t != nil {
		label("Carrier", t.Carrier)
		label("Tracking", t.TrackingNumber)
		pdf.Ln(2)
	}

	// ── Total ────────────────────────────────────────────────────────────────
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW*0.7, 7, "TOTAL", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.3, 7, "$"+order.Amount.StringFixed(2), "", 1, "R", false, 0, "")

	return pdf.Output(w)
}

// SaveOrderPDF renders the order into storagePath/order_<number>.pdf and
// returns the file path.
func SaveOrderPDF(order *model.Order, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	path := filepath.Join(storagePath, "order_"+filepath.Base(order.OrderNumber)+".pdf")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("pdf: create file: %w", err)
	}
	if err := RenderOrderPDF(order, f); err != nil {
		f.Close()
		return "", fmt.Errorf("pdf: render: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return path, nil
}
