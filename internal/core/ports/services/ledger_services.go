package services

import (
	"context"

	"github.com/TaniCatat/tani_catat_app/internal/core/domain"
)

// RecorderSvcFacade turns a validated transaction intent into the linked
// item/cash ledger pair.
type RecorderSvcFacade interface {
	Record(ctx context.Context, intent domain.TransactionIntent) (*domain.Confirmation, error)
}

// ReporterSvcFacade answers aggregate questions over the cash ledgers.
type ReporterSvcFacade interface {
	// Report sums the cash collection selected by the request direction.
	Report(ctx context.Context, req domain.ReportRequest) (*domain.ReportResult, error)

	// SummarizeReport hands the complete line-item set for the direction,
	// together with the current date and the user's question, to the
	// summarization collaborator and returns its free-text answer. The call
	// is strictly read-only.
	SummarizeReport(ctx context.Context, req domain.ReportRequest, question string) (string, error)
}

// ItemLedgerSvcFacade lists recorded item entries for inspection.
type ItemLedgerSvcFacade interface {
	ListItemEntries(ctx context.Context, direction domain.Direction) ([]domain.ItemLedgerEntry, error)
}
