package ipfs

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appcfg "github.com/cryptohunter/core/internal/config"
)

// Filebase pins every object written to an IPFS bucket and reports the CID
// in the object's "cid" metadata.
const filebaseCIDMetadataKey = "cid"

type objectStore interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

type filebase struct {
	bucket string
	store  objectStore
}

func newFilebase(cfg appcfg.FilebaseConfig, httpClient *http.Client) *filebase {
	fb := &filebase{bucket: strings.TrimSpace(cfg.Bucket)}
	accessKey := strings.TrimSpace(cfg.AccessKeyID)
	secretKey := strings.TrimSpace(cfg.SecretAccessKey)
	if fb.bucket == "" || accessKey == "" || secretKey == "" {
		return fb
	}

	fb.store = s3.New(s3.Options{
		Region:                     cfg.Region,
		Credentials:                credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		BaseEndpoint:               aws.String(cfg.Endpoint),
		UsePathStyle:               true,
		HTTPClient:                 httpClient,
		RequestChecksumCalculation: aws.RequestChecksumCalculationWhenRequired,
	})
	return fb
}

func (f *filebase) Name() string { return ProviderFilebase }

func (f *filebase) Configured() bool { return f.store != nil && f.bucket != "" }

func (f *filebase) PinJSON(ctx context.Context, content []byte, filename string) (Reference, error) {
	return f.put(ctx, content, filename, "application/json")
}

func (f *filebase) PinFile(ctx context.Context, data []byte, filename, contentType string) (Reference, error) {
	return f.put(ctx, data, filename, contentType)
}

// objectKey prefixes the file name with the content hash. Writing a new
// object under an existing key replaces its CID, so distinct content must
// never share a key.
func objectKey(data []byte, filename string) string {
	name := strings.TrimLeft(strings.TrimSpace(filename), "/")
	if name == "" {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]) + "/" + path.Base(name)
}

func (f *filebase) put(ctx context.Context, data []byte, filename, contentType string) (Reference, error) {
	key := objectKey(data, filename)
	if key == "" {
		return Reference{}, &StorageError{Provider: ProviderFilebase, Err: errors.New("empty object key")}
	}

	_, err := f.store.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(f.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return Reference{}, &StorageError{Provider: ProviderFilebase, Err: err}
	}

	head, err := f.store.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return Reference{}, &StorageError{Provider: ProviderFilebase, Err: err}
	}
	cid := strings.TrimSpace(head.Metadata[filebaseCIDMetadataKey])
	if cid == "" {
		return Reference{}, &StorageError{Provider: ProviderFilebase, Err: errors.New("object metadata has no cid")}
	}
	return referenceFor(ProviderFilebase, cid), nil
}
