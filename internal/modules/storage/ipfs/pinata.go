package ipfs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	appcfg "github.com/cryptohunter/core/internal/config"
)

const defaultPinataEndpoint = "https://api.pinata.cloud"

type pinata struct {
	apiKey   string
	secret   string
	endpoint string
	client   *http.Client
}

type pinataMetadata struct {
	Name string `json:"name"`
}

type pinJSONRequest struct {
	PinataContent  json.RawMessage `json:"pinataContent"`
	PinataMetadata pinataMetadata  `json:"pinataMetadata"`
}

func newPinata(cfg appcfg.PinataConfig, client *http.Client) *pinata {
	endpoint := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	if endpoint == "" {
		endpoint = defaultPinataEndpoint
	}
	return &pinata{
		apiKey:   strings.TrimSpace(cfg.APIKey),
		secret:   strings.TrimSpace(cfg.Secret),
		endpoint: endpoint,
		client:   client,
	}
}

func (p *pinata) Name() string { return ProviderPinata }

func (p *pinata) Configured() bool { return p.apiKey != "" && p.secret != "" }

func (p *pinata) PinJSON(ctx context.Context, content []byte, filename string) (Reference, error) {
	body, err := encodeJSON(pinJSONRequest{
		PinataContent:  json.RawMessage(content),
		PinataMetadata: pinataMetadata{Name: filename},
	})
	if err != nil {
		return Reference{}, &StorageError{Provider: ProviderPinata, Err: err}
	}
	return p.post(ctx, "/pinning/pinJSONToIPFS", "application/json", body)
}

func (p *pinata) PinFile(ctx context.Context, data []byte, filename, contentType string) (Reference, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		return Reference{}, &StorageError{Provider: ProviderPinata, Err: err}
	}
	if _, err := part.Write(data); err != nil {
		return Reference{}, &StorageError{Provider: ProviderPinata, Err: err}
	}
	if err := writer.Close(); err != nil {
		return Reference{}, &StorageError{Provider: ProviderPinata, Err: err}
	}
	return p.post(ctx, "/pinning/pinFileToIPFS", writer.FormDataContentType(), buf.Bytes())
}

func (p *pinata) post(ctx context.Context, path, contentType string, body []byte) (Reference, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return Reference{}, &StorageError{Provider: ProviderPinata, Err: err}
	}
	req.Header.Set("pinata_api_key", p.apiKey)
	req.Header.Set("pinata_secret_api_key", p.secret)
	req.Header.Set("Content-Type", contentType)

	resp, err := p.client.Do(req)
	if err != nil {
		return Reference{}, &StorageError{Provider: ProviderPinata, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Reference{}, &StorageError{Provider: ProviderPinata, StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return Reference{}, &StorageError{
			Provider:   ProviderPinata,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	var result struct {
		IpfsHash string `json:"IpfsHash"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return Reference{}, &StorageError{Provider: ProviderPinata, StatusCode: resp.StatusCode, Err: err}
	}
	if strings.TrimSpace(result.IpfsHash) == "" {
		return Reference{}, &StorageError{Provider: ProviderPinata, StatusCode: resp.StatusCode, Err: errors.New("response has no IpfsHash")}
	}
	return referenceFor(ProviderPinata, result.IpfsHash), nil
}
