package services

import (
	"context"
	"fmt"
	"log/slog"

	portssvc "github.com/TaniCatat/tani_catat_app/internal/core/ports/services"
	"github.com/TaniCatat/tani_catat_app/internal/middleware"
)

// chatService orchestrates one inbound message: classify, then dispatch.
// The two steps run sequentially; there is no fan-out within a request.
type chatService struct {
	classifier portssvc.IntentClassifier
	dispatcher portssvc.DispatcherSvcFacade
}

// NewChatService creates a new ChatService.
func NewChatService(classifier portssvc.IntentClassifier, dispatcher portssvc.DispatcherSvcFacade) portssvc.ChatSvcFacade {
	return &chatService{
		classifier: classifier,
		dispatcher: dispatcher,
	}
}

var _ portssvc.ChatSvcFacade = (*chatService)(nil)

// HandleMessage classifies the prompt and dispatches the result.
func (s *chatService) HandleMessage(ctx context.Context, prompt string) (string, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	result, err := s.classifier.Classify(ctx, prompt)
	if err != nil {
		logger.Error("Classifier call failed", slog.String("error", err.Error()))
		return "", fmt.Errorf("failed to classify prompt: %w", err)
	}

	reply, err := s.dispatcher.Dispatch(ctx, result)
	if err != nil {
		return "", err
	}
	return reply, nil
}
