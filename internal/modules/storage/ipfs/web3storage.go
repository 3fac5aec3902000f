package ipfs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	appcfg "github.com/cryptohunter/core/internal/config"
)

const defaultWeb3StorageEndpoint = "https://api.web3.storage"

type web3Storage struct {
	token    string
	endpoint string
	client   *http.Client
}

func newWeb3Storage(cfg appcfg.Web3StorageConfig, client *http.Client) *web3Storage {
	endpoint := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	if endpoint == "" {
		endpoint = defaultWeb3StorageEndpoint
	}
	return &web3Storage{token: strings.TrimSpace(cfg.Token), endpoint: endpoint, client: client}
}

func (w *web3Storage) Name() string { return ProviderWeb3Storage }

func (w *web3Storage) Configured() bool { return w.token != "" }

func (w *web3Storage) PinJSON(ctx context.Context, content []byte, filename string) (Reference, error) {
	return w.upload(ctx, content, filename, "application/json")
}

func (w *web3Storage) PinFile(ctx context.Context, data []byte, filename, contentType string) (Reference, error) {
	return w.upload(ctx, data, filename, contentType)
}

func (w *web3Storage) upload(ctx context.Context, body []byte, filename, contentType string) (Reference, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpoint+"/upload", bytes.NewReader(body))
	if err != nil {
		return Reference{}, &StorageError{Provider: ProviderWeb3Storage, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+w.token)
	req.Header.Set("X-NAME", filename)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return Reference{}, &StorageError{Provider: ProviderWeb3Storage, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Reference{}, &StorageError{Provider: ProviderWeb3Storage, StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return Reference{}, &StorageError{
			Provider:   ProviderWeb3Storage,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	var result struct {
		CID string `json:"cid"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return Reference{}, &StorageError{Provider: ProviderWeb3Storage, StatusCode: resp.StatusCode, Err: err}
	}
	if strings.TrimSpace(result.CID) == "" {
		return Reference{}, &StorageError{Provider: ProviderWeb3Storage, StatusCode: resp.StatusCode, Err: errors.New("response has no cid")}
	}
	return referenceFor(ProviderWeb3Storage, result.CID), nil
}
