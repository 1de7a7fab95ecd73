package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/realboxofme/sintas/domain"
	"github.com/realboxofme/sintas/pkg/log"
	"github.com/realboxofme/sintas/pkg/upload"
)

type Config struct {
	MaxSize    int64
	PresignTTL time.Duration
}

type attachmentUsecase struct {
	client upload.Client
	cfg    Config
	logger log.Logger
	now    func() time.Time
}

func NewAttachmentUsecase(client upload.Client, cfg Config, logger log.Logger) domain.AttachmentUsecase {
	return &attachmentUsecase{client: client, cfg: cfg, logger: logger, now: time.Now}
}

// detectMime sniffs the content. The type declared by the client is ignored.
func detectMime(content []byte) (string, bool) {
	detected := mimetype.Detect(content)
	for _, allowed := range domain.AllowedAttachmentTypes {
		if detected.Is(allowed) {
			return allowed, true
		}
	}
	return detected.String(), false
}

func (u *attachmentUsecase) Upload(ctx context.Context, req *domain.AttachmentUploadRequest) (*domain.Attachment, error) {
	if req == nil || len(req.Content) == 0 || strings.TrimSpace(req.Name) == "" {
		return nil, domain.ErrUploadFileRequired
	}
	if u.cfg.MaxSize > 0 && int64(len(req.Content)) > u.cfg.MaxSize {
		return nil, domain.ErrUploadFileTooLarge.WithDetail("maxSize", u.cfg.MaxSize)
	}
	mime, ok := detectMime(req.Content)
	if !ok {
		return nil, domain.ErrUploadInvalidContentType.WithDetail("mime", mime)
	}

	subPath := "surat/" + u.now().Format("2006/01")
	infos, err := u.client.Upload(ctx, []*upload.File{{Name: req.Name, Mime: mime, Content: req.Content}}, subPath)
	if err != nil {
		return nil, domain.ErrUploadFailed.WithWrap(err)
	}
	info := infos[0]

	url, err := u.client.URL(ctx, info.StoragePath, u.cfg.PresignTTL)
	if err != nil {
		u.logger.WarnContext(ctx, "Failed to build attachment url", log.String("key", info.StoragePath), log.Error(err))
		url = info.URL
	}

	u.logger.InfoContext(ctx, "Attachment stored",
		log.String("key", info.StoragePath),
		log.String("mime", mime),
		log.Int64("size", info.Size),
	)
	return &domain.Attachment{
		FileSurat: info.StoragePath,
		FileNama:  req.Name,
		URL:       url,
		Mime:      mime,
		Size:      info.Size,
		Provider:  string(info.Provider),
	}, nil
}

func (u *attachmentUsecase) AccessURL(ctx context.Context, key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", domain.ErrFileKeyRequired
	}
	url, err := u.client.URL(ctx, key, u.cfg.PresignTTL)
	if err != nil {
		if errors.Is(err, upload.ErrInvalidKey) {
			return "", domain.ErrInvalidFileKey.WithWrap(err)
		}
		return "", fmt.Errorf("presign %q: %w", key, err)
	}
	return url, nil
}
