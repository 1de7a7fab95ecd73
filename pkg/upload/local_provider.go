package upload

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultPublicPath = "/uploads"
)

// LocalUploader writes files below a directory that the HTTP server exposes at PublicPath.
type LocalUploader struct {
	uploadDirPath string
	publicPath    string
}

func NewLocalUploader(opts *Config) (*LocalUploader, error) {
	if opts.LocalDir == "" {
		return nil, errors.New("local upload directory is required")
	}
	if err := os.MkdirAll(opts.LocalDir, 0o755); err != nil {
		return nil, err
	}
	publicPath := opts.PublicPath
	if publicPath == "" {
		publicPath = DefaultPublicPath
	}
	return &LocalUploader{
		uploadDirPath: opts.LocalDir,
		publicPath:    publicPath,
	}, nil
}

func (u *LocalUploader) Provider() Provider {
	return Local
}

func (u *LocalUploader) saveFile(content []byte, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	return os.WriteFile(dst, content, 0o644)
}

func (u *LocalUploader) Upload(ctx context.Context, files []*File, subPath string) ([]*UploadedFileInfo, error) {
	fileInfos := make([]*UploadedFileInfo, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			key := path.Join(subPath, generateFileName(file.Name, generateHash()))
			if err := u.saveFile(file.Content, filepath.Join(u.uploadDirPath, filepath.FromSlash(key))); err != nil {
				return err
			}
			fileInfos[i] = &UploadedFileInfo{
				Name:        file.Name,
				Mime:        file.Mime,
				Ext:         getExt(file.Name),
				URL:         path.Join(u.publicPath, key),
				Size:        int64(len(file.Content)),
				StoragePath: key,
				Provider:    Local,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, fi := range fileInfos {
			if fi != nil {
				_ = os.Remove(filepath.Join(u.uploadDirPath, filepath.FromSlash(fi.StoragePath)))
			}
		}
		return nil, err
	}
	return fileInfos, nil
}

func (u *LocalUploader) Remove(_ context.Context, fileInfos []*UploadedFileInfo) error {
	var errs []error
	for _, fileInfo := range fileInfos {
		key, ok := cleanKey(fileInfo.StoragePath)
		if !ok {
			errs = append(errs, ErrInvalidKey)
			continue
		}
		err := os.Remove(filepath.Join(u.uploadDirPath, filepath.FromSlash(key)))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// URL returns the public path of a stored file. Local files are not signed so ttl is ignored.
func (u *LocalUploader) URL(_ context.Context, objectKey string, _ time.Duration) (string, error) {
	key, ok := cleanKey(objectKey)
	if !ok {
		return "", ErrInvalidKey
	}
	return path.Join(u.publicPath, key), nil
}
