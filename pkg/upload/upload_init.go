package upload

import (
	"context"
	"errors"
	"fmt"
	"time"
)

type Provider string

const (
	Local Provider = "local"
	S3    Provider = "s3"
)

var ErrInvalidKey = errors.New("invalid object key")

type Client interface {
	// Upload stores files under subPath. Either every file is stored or an error is returned.
	Upload(ctx context.Context, files []*File, subPath string) ([]*UploadedFileInfo, error)
	Remove(ctx context.Context, fileInfos []*UploadedFileInfo) error
	// URL returns a link to a stored object. S3 links are presigned for ttl.
	URL(ctx context.Context, objectKey string, ttl time.Duration) (string, error)
	Provider() Provider
}

type Config struct {
	LocalDir   string
	PublicPath string

	S3AccessKey   string
	S3SecretKey   string
	S3EndpointURL string
	S3BucketName  string
	S3PathPrefix  string
	S3Region      string
}

func New(provider Provider, options *Config) (Client, error) {
	switch provider {
	case Local:
		return NewLocalUploader(options)
	case S3:
		return NewS3Provider(options)
	default:
		return nil, fmt.Errorf("unsupported upload provider: %s", provider)
	}
}
