package service

import (
	"context"
	"encoding/csv"
	"io"

	"unboxx/internal/dto"
	"unboxx/internal/model"
	"unboxx/internal/repository"
)

type InvoiceService interface {
	List(ctx context.Context, caller Caller, filter dto.InvoiceFilter) (*dto.InvoiceListResponse, error)
	// ExportCSV writes every invoice matching filter (no paging) as CSV.
	ExportCSV(ctx context.Context, caller Caller, filter dto.InvoiceFilter, w io.Writer) error
}

type invoiceService struct {
	invoices repository.InvoiceRepository
	profiles repository.ProfileRepository
}

func NewInvoiceService(invoices repository.InvoiceRepository, profiles repository.ProfileRepository) InvoiceService {
	return &invoiceService{invoices: invoices, profiles: profiles}
}

func (s *invoiceService) List(ctx context.Context, caller Caller, filter dto.InvoiceFilter) (*dto.InvoiceListResponse, error) {
	normalizePage(&filter.Page)
	resp := &dto.InvoiceListResponse{Data: []dto.InvoiceResponse{}, Page: filter.Page.Page, Limit: filter.Limit}

	company, ok, err := companyScope(ctx, s.profiles, caller)
	if err != nil {
		return nil, classify(err)
	}
	if !ok {
		return resp, nil
	}
	filter.Company = company

	invoices, total, err := s.invoices.List(ctx, filter)
	if err != nil {
		return nil, classify(err)
	}
	for i := range invoices {
		resp.Data = append(resp.Data, toInvoiceResponse(&invoices[i]))
	}
	resp.Total = total
	resp.TotalPages = dto.TotalPages(total, filter.Limit)
	return resp, nil
}

var invoiceCSVHeader = []string{"Invoice Number", "Company", "Description", "Invoice Date", "Due Date", "Amount", "Status"}

func (s *invoiceService) ExportCSV(ctx context.Context, caller Caller, filter dto.InvoiceFilter, w io.Writer) error {
	var invoices []model.Invoice
	company, ok, err := companyScope(ctx, s.profiles, caller)
	if err != nil {
		return classify(err)
	}
	if ok {
		filter.Company = company
		if invoices, err = s.invoices.ListAll(ctx, filter); err != nil {
			return classify(err)
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(invoiceCSVHeader); err != nil {
		return err
	}
	for _, inv := range invoices {
		row := []string{
			inv.Number,
			inv.Company,
			inv.Description,
			inv.InvoiceDate.Format(dateLayout),
			inv.DueDate.Format(dateLayout),
			inv.Amount.StringFixed(2),
			inv.Status,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func toInvoiceResponse(inv *model.Invoice) dto.InvoiceResponse {
	return dto.InvoiceResponse{
		ID:          inv.ID.String(),
		Number:      inv.Number,
		Company:     inv.Company,
		Description: inv.Description,
		InvoiceDate: inv.InvoiceDate.Format(dateLayout),
		DueDate:     inv.DueDate.Format(dateLayout),
		Amount:      inv.Amount,
		Status:      inv.Status,
	}
}
