package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/TaniCatat/tani_catat_app/internal/apperrors"
	"github.com/TaniCatat/tani_catat_app/internal/core/domain"
	portssvc "github.com/TaniCatat/tani_catat_app/internal/core/ports/services"
	"github.com/TaniCatat/tani_catat_app/internal/dto"
	"github.com/TaniCatat/tani_catat_app/internal/middleware"
	"github.com/TaniCatat/tani_catat_app/internal/utils"
)

// defaultReply is returned when neither the classifier nor a structured
// action produced any text.
const defaultReply = "Tidak ada jawaban dari model."

// dispatcherService routes classified intents to the recorder or the
// reporter. It performs no I/O itself; all side effects live behind the two
// facades.
type dispatcherService struct {
	recorder portssvc.RecorderSvcFacade
	reporter portssvc.ReporterSvcFacade
	validate *validator.Validate
}

// NewDispatcherService creates a new DispatcherService.
func NewDispatcherService(recorder portssvc.RecorderSvcFacade, reporter portssvc.ReporterSvcFacade) portssvc.DispatcherSvcFacade {
	return &dispatcherService{
		recorder: recorder,
		reporter: reporter,
		validate: validator.New(),
	}
}

var _ portssvc.DispatcherSvcFacade = (*dispatcherService)(nil)

// Dispatch executes the structured calls of a classifier result in order and
// joins their replies. A result without calls passes the model text through
// unchanged. A malformed or unrecognised call falls back to the freeform
// text instead of aborting the request; it never reaches the ledger.
func (s *dispatcherService) Dispatch(ctx context.Context, result dto.ClassifierResult) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(result.Calls) == 0 {
		return s.fallbackText(result), nil
	}
	if len(result.Calls) > 1 {
		logger.Info("Classifier returned multiple calls, executing sequentially", slog.Int("call_count", len(result.Calls)))
	}

	replies := make([]string, 0, len(result.Calls))
	for _, call := range result.Calls {
		reply, err := s.dispatchCall(ctx, call)
		if err != nil {
			if errors.Is(err, apperrors.ErrMalformedIntent) || errors.Is(err, apperrors.ErrUnknownIntent) {
				logger.Warn("Structured call rejected, falling back to freeform reply",
					slog.String("function", call.Name),
					slog.String("error", err.Error()))
				return s.fallbackText(result), nil
			}
			return "", err
		}
		replies = append(replies, reply)
	}
	return strings.Join(replies, "\n"), nil
}

func (s *dispatcherService) dispatchCall(ctx context.Context, call dto.FunctionCall) (string, error) {
	switch call.Name {
	case dto.FnRecordItemIn:
		return s.dispatchRecord(ctx, call, domain.InflowItem)
	case dto.FnRecordItemOut:
		return s.dispatchRecord(ctx, call, domain.OutflowItem)
	case dto.FnCheckReport:
		return s.dispatchReport(ctx, call)
	default:
		return "", fmt.Errorf("%w: %s", apperrors.ErrUnknownIntent, call.Name)
	}
}

func (s *dispatcherService) dispatchRecord(ctx context.Context, call dto.FunctionCall, kind domain.IntentKind) (string, error) {
	var args dto.RecordItemArgs
	if err := json.Unmarshal(call.Args, &args); err != nil {
		return "", fmt.Errorf("%w: %w", apperrors.ErrMalformedIntent, err)
	}
	if err := s.validate.Struct(args); err != nil {
		return "", fmt.Errorf("%w: %w", apperrors.ErrMalformedIntent, err)
	}
	if args.Jumlah.IsZero() || args.TotalHarga.IsZero() {
		// A zero decimal is indistinguishable from an absent field; treat
		// both as partial structured data.
		return "", fmt.Errorf("%w: missing jumlah or total_harga", apperrors.ErrMalformedIntent)
	}

	intent := domain.TransactionIntent{
		Kind:        kind,
		Name:        args.Nama,
		Quantity:    args.Jumlah,
		Unit:        args.Satuan,
		TotalAmount: args.TotalHarga,
	}

	confirmation, err := s.recorder.Record(ctx, intent)
	if err != nil {
		if errors.Is(err, ErrInvalidQuantity) || errors.Is(err, ErrInvalidAmount) {
			return fmt.Sprintf("Cannot record %s: %s.", intent.Name, rejectReason(err)), nil
		}
		return "", err
	}
	return confirmation.Reply, nil
}

func (s *dispatcherService) dispatchReport(ctx context.Context, call dto.FunctionCall) (string, error) {
	var args dto.ReportArgs
	if err := json.Unmarshal(call.Args, &args); err != nil {
		return "", fmt.Errorf("%w: %w", apperrors.ErrMalformedIntent, err)
	}
	if err := s.validate.Struct(args); err != nil {
		return "", fmt.Errorf("%w: %w", apperrors.ErrMalformedIntent, err)
	}

	direction := domain.Inflow
	label := "cash in"
	if args.Jenis == "keluar" {
		direction = domain.Outflow
		label = "cash out"
	}
	req := domain.ReportRequest{Direction: direction}

	if strings.TrimSpace(args.Pertanyaan) != "" {
		return s.reporter.SummarizeReport(ctx, req, args.Pertanyaan)
	}

	result, err := s.reporter.Report(ctx, req)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Total %s: %s (%d entries).", label, utils.FormatIDR(result.Total), len(result.Lines)), nil
}

func (s *dispatcherService) fallbackText(result dto.ClassifierResult) string {
	if strings.TrimSpace(result.Text) != "" {
		return result.Text
	}
	return defaultReply
}

func rejectReason(err error) string {
	if errors.Is(err, ErrInvalidQuantity) {
		return "quantity must be greater than zero"
	}
	return "total amount must be greater than zero"
}
