package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"unboxx/internal/infra"
	"unboxx/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type OrderPDFJobPayload struct {
	OrderID     string `json:"order_id"`
	NotifyEmail string `json:"notify_email,omitempty"`
}

// OrderPDFWorker renders an order confirmation PDF to disk and, when the
// job names a recipient, enqueues the confirmation mail with it attached.
type OrderPDFWorker struct {
	orders      repository.OrderRepository
	dispatcher  *Dispatcher
	storagePath string
}

func NewOrderPDFWorker(orders repository.OrderRepository, dispatcher *Dispatcher, storagePath string) *OrderPDFWorker {
	return &OrderPDFWorker{orders: orders, dispatcher: dispatcher, storagePath: storagePath}
}

func (w *OrderPDFWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload OrderPDFJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("order_pdf_worker: invalid payload")
		return nil
	}
	id, err := uuid.Parse(payload.OrderID)
	if err != nil {
		log.Error().Str("order_id", payload.OrderID).Msg("order_pdf_worker: invalid order_id")
		return nil
	}

	order, err := w.orders.FindByID(ctx, id, "")
	if err != nil {
		if repository.IsNotFound(err) {
			log.Warn().Str("order_id", payload.OrderID).Msg("order_pdf_worker: order gone, skipping")
			return nil
		}
		return fmt.Errorf("order_pdf_worker: load order: %w", err)
	}

	path, err := infra.SaveOrderPDF(order, w.storagePath)
	if err != nil {
		return fmt.Errorf("order_pdf_worker: %w", err)
	}
	log.Info().Str("order", order.OrderNumber).Str("path", path).Msg("order_pdf_worker: pdf written")

	if payload.NotifyEmail == "" {
		return nil
	}
	return w.dispatcher.EnqueueEmail(ctx, EmailJobPayload{
		ToEmail: payload.NotifyEmail,
		Subject: "Order " + order.OrderNumber + " received",
		Body: fmt.Sprintf("Hi,\n\nWe received order %s for %s (%s), total $%s.\nThe order summary is attached.\n",
			order.OrderNumber, order.Customer, order.Store, order.Amount.StringFixed(2)),
		PDFPath: path,
	})
}
