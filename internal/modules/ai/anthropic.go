package ai

import (
	"context"
	"net/http"
	"strings"

	anthropicclient "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	appcfg "github.com/cryptohunter/core/internal/config"
	jetai "go.jetify.com/ai"
	jetapi "go.jetify.com/ai/api"
	jetanthropic "go.jetify.com/ai/provider/anthropic"
)

const providerAnthropic = "anthropic"

type anthropicClient struct {
	model jetapi.LanguageModel
}

func newAnthropicClient(key appcfg.ProviderKeyPair, model string, httpClient *http.Client) *anthropicClient {
	opts := []anthropicoption.RequestOption{
		anthropicoption.WithAPIKey(strings.TrimSpace(key.APIKey)),
		anthropicoption.WithMaxRetries(0),
		anthropicoption.WithHTTPClient(httpClient),
	}
	if endpoint := strings.TrimSpace(key.Endpoint); endpoint != "" {
		opts = append(opts, anthropicoption.WithBaseURL(strings.TrimRight(endpoint, "/")))
	}

	client := anthropicclient.NewClient(opts...)
	return &anthropicClient{
		model: jetanthropic.NewLanguageModel(model, jetanthropic.WithClient(client)),
	}
}

func (a *anthropicClient) Complete(ctx context.Context, req Completion) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	resp, err := jetai.GenerateText(
		ctx,
		buildPromptMessages(req.System, req.Prompt),
		jetai.WithModel(a.model),
		jetai.WithMaxOutputTokens(maxTokens),
		jetai.WithTemperature(req.Temperature),
	)
	if err != nil {
		return "", &ProviderError{Provider: providerAnthropic, Err: err}
	}
	text, err := extractText(resp)
	if err != nil {
		return "", &ProviderError{Provider: providerAnthropic, Err: err}
	}
	return text, nil
}

func buildPromptMessages(systemPrompt, prompt string) []jetapi.Message {
	messages := make([]jetapi.Message, 0, 2)
	if strings.TrimSpace(systemPrompt) != "" {
		messages = append(messages, &jetapi.SystemMessage{Content: systemPrompt})
	}
	messages = append(messages, &jetapi.UserMessage{Content: jetapi.ContentFromText(prompt)})
	return messages
}

func extractText(resp *jetapi.Response) (string, error) {
	if resp == nil {
		return "", errEmptyResponse
	}

	var full strings.Builder
	for _, block := range resp.Content {
		textBlock, ok := block.(*jetapi.TextBlock)
		if !ok || textBlock.Text == "" {
			continue
		}
		full.WriteString(textBlock.Text)
	}

	text := full.String()
	if strings.TrimSpace(text) == "" {
		return "", errEmptyResponse
	}
	return text, nil
}
