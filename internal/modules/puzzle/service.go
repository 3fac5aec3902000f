// Package puzzle generates treasure-hunt puzzles, their illustrations, and
// judges submitted answers through the configured AI providers.
package puzzle

import (
	"context"
	"errors"

	"github.com/cryptohunter/core/internal/modules/ai"
	"go.uber.org/zap"
)

const (
	puzzleTemperature = 0.8
	puzzleMaxTokens   = 1000

	imageSize    = "1024x1024"
	imageQuality = "standard"
)

var (
	errTextProviderMissing  = errors.New("AI text provider is not configured")
	errImageProviderMissing = errors.New("image generation is not configured, set OPENAI_API_KEY")
)

// Service wraps the text and image providers. Either may be nil when its
// credentials are absent; calls needing it then fail.
type Service struct {
	completer ai.Completer
	images    ai.ImageGenerator
	logger    *zap.Logger
}

func NewService(completer ai.Completer, images ai.ImageGenerator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{completer: completer, images: images, logger: logger}
}

// GeneratePuzzle asks the text provider for a puzzle built around req.Keywords.
func (s *Service) GeneratePuzzle(ctx context.Context, req GenerationRequest) (*Record, error) {
	if s.completer == nil {
		return nil, errTextProviderMissing
	}
	req = req.WithDefaults()

	raw, err := s.completer.Complete(ctx, ai.Completion{
		System:      puzzleSystemPrompt,
		Prompt:      BuildPuzzlePrompt(req.Keywords, req.Difficulty, req.Language),
		Temperature: puzzleTemperature,
		MaxTokens:   puzzleMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	record, err := ParsePuzzleReply(raw)
	if err != nil {
		s.logger.Warn("puzzle reply is not JSON", zap.Int("reply_len", len(raw)), zap.Error(err))
		return nil, err
	}
	if !record.Complete() {
		s.logger.Warn("puzzle record is incomplete",
			zap.Bool("has_answer", record.Answer != ""),
			zap.Int("hints", len(record.Hints)),
		)
	}
	return record, nil
}

// GenerateImage returns the URL of an illustration for description.
func (s *Service) GenerateImage(ctx context.Context, description, style string) (string, error) {
	if s.images == nil {
		return "", errImageProviderMissing
	}
	return s.images.GenerateImage(ctx, ai.ImageRequest{
		Prompt:  BuildImagePrompt(description, style),
		Size:    imageSize,
		Quality: imageQuality,
		Count:   1,
	})
}
