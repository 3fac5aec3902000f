// Package ipfs pins JSON documents and files to IPFS through the first
// configured pinning service, and synthesizes a mock reference when none is.
package ipfs

import (
	"context"
	"strings"
)

const (
	uriScheme = "ipfs://"

	ProviderWeb3Storage = "web3storage"
	ProviderPinata      = "pinata"
	ProviderFilebase    = "filebase"
	ProviderMock        = "mock"

	DefaultJSONFilename = "metadata.json"
	DefaultContentType  = "application/octet-stream"
)

// Reference points at pinned content.
type Reference struct {
	URI      string `json:"ipfs_uri"`
	Provider string `json:"provider"`
}

// IsMock reports whether the reference was synthesized locally and cannot be fetched.
func (r Reference) IsMock() bool { return r.Provider == ProviderMock }

// CID returns the URI without its ipfs:// scheme.
func (r Reference) CID() string { return strings.TrimPrefix(r.URI, uriScheme) }

func referenceFor(provider, cid string) Reference {
	return Reference{URI: uriScheme + cid, Provider: provider}
}

// Backend is one pinning service. Configured reports whether credentials are
// present; an unconfigured backend is skipped during selection.
type Backend interface {
	Name() string
	Configured() bool
	PinJSON(ctx context.Context, content []byte, filename string) (Reference, error)
	PinFile(ctx context.Context, data []byte, filename, contentType string) (Reference, error)
}

// StorageError is returned when the selected pinning service fails.
type StorageError struct {
	Provider   string
	StatusCode int
	Body       string
	Err        error
}

func (e *StorageError) Error() string {
	switch {
	case e.Body != "":
		return e.Provider + " upload failed: " + e.Body
	case e.Err != nil:
		return e.Provider + " upload failed: " + e.Err.Error()
	default:
		return e.Provider + " upload failed"
	}
}

func (e *StorageError) Unwrap() error { return e.Err }
