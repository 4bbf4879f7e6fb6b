package services

import (
	"context"
	"time"

	"github.com/TaniCatat/tani_catat_app/internal/core/domain"
	"github.com/TaniCatat/tani_catat_app/internal/dto"
)

// ChatSvcFacade handles one inbound chat message end to end:
// classify, dispatch, reply.
type ChatSvcFacade interface {
	HandleMessage(ctx context.Context, prompt string) (string, error)
}

// DispatcherSvcFacade routes a classified result to the recorder, the
// reporter, or a freeform pass-through. It performs no I/O of its own.
type DispatcherSvcFacade interface {
	Dispatch(ctx context.Context, result dto.ClassifierResult) (string, error)
}

// IntentClassifier converts free text into either a freeform reply or
// structured function calls. Implemented by the Gemini adapter; the output
// is untrusted until the dispatcher validates it.
type IntentClassifier interface {
	Classify(ctx context.Context, prompt string) (dto.ClassifierResult, error)
}

// ReportSummarizer answers a free-form reporting question strictly from the
// supplied line items. It must receive the complete filtered set so it can
// answer without fabrication.
type ReportSummarizer interface {
	Summarize(ctx context.Context, question string, lines []domain.ReportLine, asOf time.Time) (string, error)
}
