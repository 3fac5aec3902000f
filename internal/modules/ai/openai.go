package ai

import (
	"context"
	"errors"
	"net/http"
	"strings"

	appcfg "github.com/cryptohunter/core/internal/config"
	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
)

const providerOpenAI = "openai"

type openAIClient struct {
	client     openaiclient.Client
	model      string
	imageModel string
}

func newOpenAIClient(key appcfg.ProviderKeyPair, model, imageModel string, httpClient *http.Client) *openAIClient {
	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(strings.TrimSpace(key.APIKey)),
		openaioption.WithMaxRetries(0),
		openaioption.WithHTTPClient(httpClient),
	}
	if normalized := normalizeOpenAIBaseURL(key.Endpoint); normalized != "" {
		opts = append(opts, openaioption.WithBaseURL(normalized))
	}
	return &openAIClient{
		client:     openaiclient.NewClient(opts...),
		model:      model,
		imageModel: imageModel,
	}
}

func (o *openAIClient) Complete(ctx context.Context, req Completion) (string, error) {
	messages := make([]openaiclient.ChatCompletionMessageParamUnion, 0, 2)
	if strings.TrimSpace(req.System) != "" {
		messages = append(messages, openaiclient.SystemMessage(req.System))
	}
	messages = append(messages, openaiclient.UserMessage(req.Prompt))

	params := openaiclient.ChatCompletionNewParams{
		Model:       openaiclient.ChatModel(o.model),
		Messages:    messages,
		Temperature: openaiclient.Float(req.Temperature),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openaiclient.Int(int64(req.MaxTokens))
	}

	resp, err := o.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", wrapOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", &ProviderError{Provider: providerOpenAI, Err: errEmptyResponse}
	}
	return resp.Choices[0].Message.Content, nil
}

func (o *openAIClient) GenerateImage(ctx context.Context, req ImageRequest) (string, error) {
	count := req.Count
	if count <= 0 {
		count = 1
	}
	size := modelOr(req.Size, "1024x1024")
	quality := modelOr(req.Quality, "standard")
	resp, err := o.client.Images.Generate(ctx, openaiclient.ImageGenerateParams{
		Prompt:         req.Prompt,
		Model:          openaiclient.ImageModel(o.imageModel),
		N:              openaiclient.Int(int64(count)),
		Size:           openaiclient.ImageGenerateParamsSize(size),
		Quality:        openaiclient.ImageGenerateParamsQuality(quality),
		ResponseFormat: openaiclient.ImageGenerateParamsResponseFormatURL,
	})
	if err != nil {
		return "", wrapOpenAIError(err)
	}
	if resp == nil || len(resp.Data) == 0 || strings.TrimSpace(resp.Data[0].URL) == "" {
		return "", &ProviderError{Provider: providerOpenAI, Err: errors.New("image generation returned no image")}
	}
	return resp.Data[0].URL, nil
}

func wrapOpenAIError(err error) error {
	perr := &ProviderError{Provider: providerOpenAI, Err: err}
	var apiErr *openaiclient.Error
	if errors.As(err, &apiErr) {
		perr.StatusCode = apiErr.StatusCode
	}
	return perr
}
