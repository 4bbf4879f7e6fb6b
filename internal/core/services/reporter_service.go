package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/TaniCatat/tani_catat_app/internal/core/domain"
	portsrepo "github.com/TaniCatat/tani_catat_app/internal/core/ports/repositories"
	portssvc "github.com/TaniCatat/tani_catat_app/internal/core/ports/services"
	"github.com/TaniCatat/tani_catat_app/internal/middleware"
)

// reporterService aggregates over the cash ledgers and delegates free-form
// questions to the summarization collaborator.
type reporterService struct {
	ledgerRepo portsrepo.LedgerRepository
	summarizer portssvc.ReportSummarizer
}

// NewReporterService creates a new ReporterService. The summarizer may be
// nil when only plain totals are needed.
func NewReporterService(ledgerRepo portsrepo.LedgerRepository, summarizer portssvc.ReportSummarizer) portssvc.ReporterSvcFacade {
	return &reporterService{
		ledgerRepo: ledgerRepo,
		summarizer: summarizer,
	}
}

var _ portssvc.ReporterSvcFacade = (*reporterService)(nil)

// Report reads the cash collection for the requested direction and sums the
// amounts. Entries without an amount are skipped, not failed on, so
// partially-malformed historical data cannot break reporting. An empty
// collection yields a zero total.
func (s *reporterService) Report(ctx context.Context, req domain.ReportRequest) (*domain.ReportResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	collection := domain.CashCollection(req.Direction)
	entries, err := s.ledgerRepo.ReadAllCashEntries(ctx, collection)
	if err != nil {
		logger.Error("Failed to read cash collection", slog.String("collection", string(collection)), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to read cash collection %s: %w", collection, err)
	}

	total := decimal.Zero
	lines := make([]domain.ReportLine, 0, len(entries))
	skipped := 0
	for _, entry := range entries {
		if entry.Amount == nil {
			skipped++
			continue
		}
		total = total.Add(*entry.Amount)
		lines = append(lines, domain.ReportLine{
			Memo:   entry.Memo,
			Amount: *entry.Amount,
			Date:   entry.RecordedAt,
		})
	}
	if skipped > 0 {
		logger.Warn("Skipped cash entries without an amount", slog.String("collection", string(collection)), slog.Int("skipped", skipped))
	}

	logger.Debug("Report aggregated", slog.String("collection", string(collection)), slog.Int("line_count", len(lines)), slog.String("total", total.String()))
	return &domain.ReportResult{Total: total, Lines: lines}, nil
}

// SummarizeReport hands the complete line-item set, the current date and the
// original question to the summarizer and returns its answer. The call has
// no ledger side effects; a malformed summarizer response can at worst
// produce a bad sentence, never a bad write.
func (s *reporterService) SummarizeReport(ctx context.Context, req domain.ReportRequest, question string) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.summarizer == nil {
		return "", fmt.Errorf("no summarizer configured")
	}

	result, err := s.Report(ctx, req)
	if err != nil {
		return "", err
	}

	answer, err := s.summarizer.Summarize(ctx, question, result.Lines, time.Now().UTC())
	if err != nil {
		logger.Error("Summarizer call failed", slog.String("direction", string(req.Direction)), slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to summarize report: %w", err)
	}

	logger.Info("Report summarized", slog.String("direction", string(req.Direction)), slog.Int("line_count", len(result.Lines)))
	return answer, nil
}
