package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	appcfg "github.com/cryptohunter/core/internal/config"
)

const providerCompatible = "openai-compatible"

// compatibleClient talks to any server exposing /v1/chat/completions.
type compatibleClient struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
	Message string `json:"message"`
}

func newCompatibleClient(key appcfg.ProviderKeyPair, model string, httpClient *http.Client) *compatibleClient {
	return &compatibleClient{
		endpoint:   normalizeCompatibleEndpoint(key.Endpoint),
		apiKey:     strings.TrimSpace(key.APIKey),
		model:      model,
		httpClient: httpClient,
	}
}

func (c *compatibleClient) Complete(ctx context.Context, req Completion) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if strings.TrimSpace(req.System) != "" {
		messages = append(messages, chatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, chatMessage{Role: "user", Content: req.Prompt})

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &ProviderError{Provider: providerCompatible, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &ProviderError{Provider: providerCompatible, StatusCode: resp.StatusCode, Err: err}
	}

	var result chatResponse
	decodeErr := json.Unmarshal(respBody, &result)

	if resp.StatusCode >= http.StatusBadRequest {
		msg := strings.TrimSpace(string(respBody))
		if decodeErr == nil && result.Error != nil && strings.TrimSpace(result.Error.Message) != "" {
			msg = result.Error.Message
		}
		return "", &ProviderError{Provider: providerCompatible, StatusCode: resp.StatusCode, Err: errors.New(msg)}
	}
	if decodeErr != nil {
		return "", &ProviderError{Provider: providerCompatible, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", decodeErr)}
	}
	if result.Error != nil && strings.TrimSpace(result.Error.Message) != "" {
		return "", &ProviderError{Provider: providerCompatible, StatusCode: resp.StatusCode, Err: errors.New(result.Error.Message)}
	}
	if strings.TrimSpace(result.Message) != "" && len(result.Choices) == 0 {
		return "", &ProviderError{Provider: providerCompatible, StatusCode: resp.StatusCode, Err: errors.New(result.Message)}
	}
	if len(result.Choices) == 0 {
		return "", &ProviderError{Provider: providerCompatible, StatusCode: resp.StatusCode, Err: errEmptyResponse}
	}
	return result.Choices[0].Message.Content, nil
}
