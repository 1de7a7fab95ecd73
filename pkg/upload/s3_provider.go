package upload

import (
	"bytes"
	"context"
	"path"
	"runtime"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	smithyEndpoints "github.com/aws/smithy-go/endpoints"
	"golang.org/x/sync/errgroup"
)

type S3Uploader struct {
	s3Client        *s3.Client
	s3PresignClient *s3.PresignClient
	uploader        *manager.Uploader
	bucketName      string
	pathPrefix      string
}

type ResolverV2 struct{}

func (*ResolverV2) ResolveEndpoint(ctx context.Context, params s3.EndpointParameters) (
	smithyEndpoints.Endpoint, error,
) {
	return s3.NewDefaultEndpointResolverV2().ResolveEndpoint(ctx, params)
}

func NewS3Provider(opts *Config) (*S3Uploader, error) {
	creds := credentials.NewStaticCredentialsProvider(opts.S3AccessKey, opts.S3SecretKey, "")

	cfg, err := config.LoadDefaultConfig(
		context.Background(),
		config.WithCredentialsProvider(creds))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.S3EndpointURL != "" {
			o.BaseEndpoint = aws.String(opts.S3EndpointURL)
			o.UsePathStyle = true
		}
		o.Region = opts.S3Region
		o.EndpointResolverV2 = &ResolverV2{}
	})

	return &S3Uploader{
		uploader:        manager.NewUploader(client),
		s3Client:        client,
		s3PresignClient: s3.NewPresignClient(client),
		bucketName:      opts.S3BucketName,
		pathPrefix:      opts.S3PathPrefix,
	}, nil
}

func (u *S3Uploader) Provider() Provider {
	return S3
}

func (u *S3Uploader) Upload(ctx context.Context, files []*File, subPath string) ([]*UploadedFileInfo, error) {
	fileInfos := make([]*UploadedFileInfo, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		g.Go(func() error {
			key := path.Join(u.pathPrefix, subPath, generateFileName(file.Name, generateHash()))
			out, err := u.uploader.Upload(gctx, &s3.PutObjectInput{
				Bucket:      aws.String(u.bucketName),
				Key:         aws.String(key),
				ContentType: aws.String(file.Mime),
				Body:        bytes.NewReader(file.Content),
				ACL:         types.ObjectCannedACLPrivate,
			})
			if err != nil {
				return err
			}
			fileInfos[i] = &UploadedFileInfo{
				Name:        file.Name,
				Mime:        file.Mime,
				Ext:         getExt(file.Name),
				URL:         out.Location,
				Size:        int64(len(file.Content)),
				StoragePath: key,
				Provider:    S3,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		uploaded := make([]*UploadedFileInfo, 0, len(fileInfos))
		for _, fi := range fileInfos {
			if fi != nil {
				uploaded = append(uploaded, fi)
			}
		}
		_ = u.Remove(context.WithoutCancel(ctx), uploaded)
		return nil, err
	}
	return fileInfos, nil
}

func (u *S3Uploader) Remove(ctx context.Context, fileInfos []*UploadedFileInfo) error {
	if len(fileInfos) == 0 {
		return nil
	}

	objectIds := make([]types.ObjectIdentifier, 0, len(fileInfos))
	for _, fileInfo := range fileInfos {
		objectIds = append(objectIds, types.ObjectIdentifier{Key: aws.String(fileInfo.StoragePath)})
	}

	_, err := u.s3Client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(u.bucketName),
		Delete: &types.Delete{Objects: objectIds},
	})
	return err
}

func (u *S3Uploader) URL(ctx context.Context, objectKey string, ttl time.Duration) (string, error) {
	key, ok := cleanKey(objectKey)
	if !ok {
		return "", ErrInvalidKey
	}

	presignReq, err := u.s3PresignClient.PresignGetObject(ctx, &s3.GetObjectInput{
		Key:    aws.String(key),
		Bucket: aws.String(u.bucketName),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = ttl
	})
	if err != nil {
		return "", err
	}
	return presignReq.URL, nil
}
