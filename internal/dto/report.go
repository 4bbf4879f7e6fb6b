package dto

import (
	"time"

	"github.com/TaniCatat/tani_catat_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportLineResponse is one cash movement in a report response.
type ReportLineResponse struct {
	Memo   string          `json:"memo"`
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
}

// ReportResponse is the aggregate report returned by the reports endpoint.
type ReportResponse struct {
	Direction string               `json:"direction"`
	Total     decimal.Decimal      `json:"total"`
	LineItems []ReportLineResponse `json:"lineItems"`
}

// ToReportResponse converts a domain report result for the given direction.
func ToReportResponse(direction domain.Direction, result *domain.ReportResult) ReportResponse {
	lines := make([]ReportLineResponse, len(result.Lines))
	for i, line := range result.Lines {
		lines[i] = ReportLineResponse{
			Memo:   line.Memo,
			Amount: line.Amount,
			Date:   line.Date,
		}
	}
	return ReportResponse{
		Direction: string(direction),
		Total:     result.Total,
		LineItems: lines,
	}
}

// ItemEntryResponse is one item ledger entry in a listing response.
type ItemEntryResponse struct {
	EntryID     string          `json:"entryID"`
	Name        string          `json:"name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	RecordedAt  time.Time       `json:"recordedAt"`
}

// ToItemEntryResponses converts domain item entries for listing.
func ToItemEntryResponses(entries []domain.ItemLedgerEntry) []ItemEntryResponse {
	out := make([]ItemEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = ItemEntryResponse{
			EntryID:     e.EntryID,
			Name:        e.Name,
			Quantity:    e.Quantity,
			Unit:        e.Unit,
			TotalAmount: e.TotalAmount,
			UnitPrice:   e.UnitPrice,
			RecordedAt:  e.RecordedAt,
		}
	}
	return out
}
