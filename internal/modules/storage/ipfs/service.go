package ipfs

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	appcfg "github.com/cryptohunter/core/internal/config"
	"go.uber.org/zap"
)

// Service uploads through the first configured backend. Selection happens on
// every call; a configured backend that fails is reported, not skipped.
type Service struct {
	backends []Backend
	gateway  string
	logger   *zap.Logger
}

func NewService(cfg appcfg.StorageConfig, logger *zap.Logger) *Service {
	client := &http.Client{}
	if cfg.TimeoutSeconds > 0 {
		client.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return newService(cfg.Gateway, logger,
		newWeb3Storage(cfg.Web3Storage, client),
		newPinata(cfg.Pinata, client),
		newFilebase(cfg.Filebase, client),
	)
}

// newService appends the mock backend after the given ones.
func newService(gateway string, logger *zap.Logger, backends ...Backend) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		backends: append(backends, mockBackend{}),
		gateway:  gateway,
		logger:   logger,
	}
}

func (s *Service) selectBackend() Backend {
	for _, b := range s.backends {
		if b.Configured() {
			return b
		}
	}
	return mockBackend{}
}

// ActiveProvider names the backend the next upload would use.
func (s *Service) ActiveProvider() string {
	return s.selectBackend().Name()
}

// UploadJSON serializes content and pins it. An empty filename becomes metadata.json.
func (s *Service) UploadJSON(ctx context.Context, content interface{}, filename string) (Reference, error) {
	if strings.TrimSpace(filename) == "" {
		filename = DefaultJSONFilename
	}
	body, err := encodeJSON(content)
	if err != nil {
		return Reference{}, err
	}

	backend := s.selectBackend()
	ref, err := backend.PinJSON(ctx, body, filename)
	if err != nil {
		s.logger.Error("ipfs json upload failed", zap.String("provider", backend.Name()), zap.Error(err))
		return Reference{}, err
	}
	s.logUploaded(ref, filename, len(body))
	return ref, nil
}

// UploadFile pins raw bytes. An empty contentType becomes application/octet-stream.
func (s *Service) UploadFile(ctx context.Context, data []byte, filename, contentType string) (Reference, error) {
	if strings.TrimSpace(contentType) == "" {
		contentType = DefaultContentType
	}

	backend := s.selectBackend()
	ref, err := backend.PinFile(ctx, data, filename, contentType)
	if err != nil {
		s.logger.Error("ipfs file upload failed", zap.String("provider", backend.Name()), zap.Error(err))
		return Reference{}, err
	}
	s.logUploaded(ref, filename, len(data))
	return ref, nil
}

// GatewayURL resolves uri against the configured gateway.
func (s *Service) GatewayURL(uri string) string {
	return ResolveGatewayURL(s.gateway, uri)
}

func (s *Service) logUploaded(ref Reference, filename string, size int) {
	if ref.IsMock() {
		s.logger.Warn("no ipfs provider configured, returning mock reference",
			zap.String("uri", ref.URI), zap.String("filename", filename))
		return
	}
	s.logger.Info("pinned to ipfs",
		zap.String("provider", ref.Provider),
		zap.String("uri", ref.URI),
		zap.String("filename", filename),
		zap.Int("bytes", size),
	)
}

// encodeJSON marshals v without HTML escaping and without a trailing newline.
func encodeJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
