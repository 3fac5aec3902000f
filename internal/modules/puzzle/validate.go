package puzzle

import (
	"context"
	"strings"

	"github.com/cryptohunter/core/internal/modules/ai"
	"go.uber.org/zap"
)

const (
	validationMaxTokens   = 200
	fallbackExplanation   = "直接字符串比较"
	validationTemperature = 0
)

// ValidateAnswer asks the model whether userAnswer means the same as
// correctAnswer. It never fails: when the model is unavailable or its reply
// is unreadable, the answers are compared case- and space-insensitively.
func (s *Service) ValidateAnswer(ctx context.Context, question, userAnswer, correctAnswer string) Verdict {
	if s.completer == nil {
		s.logger.Warn("answer validation without AI provider, comparing strings")
		return fallbackVerdict(userAnswer, correctAnswer)
	}

	raw, err := s.completer.Complete(ctx, ai.Completion{
		Prompt:      buildValidationPrompt(question, userAnswer, correctAnswer),
		Temperature: validationTemperature,
		MaxTokens:   validationMaxTokens,
	})
	if err != nil {
		s.logger.Warn("answer validation call failed, comparing strings", zap.Error(err))
		return fallbackVerdict(userAnswer, correctAnswer)
	}

	var reply struct {
		IsCorrect   *bool  `json:"is_correct"`
		Explanation string `json:"explanation"`
	}
	if err := unmarshalReply(raw, &reply); err != nil || reply.IsCorrect == nil {
		s.logger.Warn("answer validation reply unreadable, comparing strings", zap.Int("reply_len", len(raw)))
		return fallbackVerdict(userAnswer, correctAnswer)
	}
	return Verdict{IsCorrect: *reply.IsCorrect, Explanation: reply.Explanation}
}

func fallbackVerdict(userAnswer, correctAnswer string) Verdict {
	return Verdict{
		IsCorrect:   normalizeAnswer(userAnswer) == normalizeAnswer(correctAnswer),
		Explanation: fallbackExplanation,
		Fallback:    true,
	}
}

func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
