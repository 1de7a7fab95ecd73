package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/realboxofme/sintas/domain"
	"github.com/realboxofme/sintas/pkg/log"
	"github.com/realboxofme/sintas/pkg/upload"
)

var (
	pdf = []byte("%PDF-1.4\n1 0 obj\n<<>>\nendobj\n")
	png = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")
)

func newTestUsecase(t *testing.T) (*attachmentUsecase, string) {
	t.Helper()
	dir := t.TempDir()
	client, err := upload.New(upload.Local, &upload.Config{LocalDir: dir, PublicPath: "/uploads"})
	if err != nil {
		t.Fatalf("upload.New() error = %v", err)
	}
	uc := NewAttachmentUsecase(client, Config{MaxSize: 64}, log.NewNopLogger()).(*attachmentUsecase)
	uc.now = func() time.Time { return time.Date(2024, 10, 3, 0, 0, 0, 0, time.UTC) }
	return uc, dir
}

func TestUpload(t *testing.T) {
	tests := []struct {
		name     string
		req      *domain.AttachmentUploadRequest
		wantMime string
		wantErr  error
	}{
		{"pdf", &domain.AttachmentUploadRequest{Name: "undangan rapat.pdf", Content: pdf}, "application/pdf", nil},
		{"png labelled as pdf", &domain.AttachmentUploadRequest{Name: "scan.pdf", Mime: "application/pdf", Content: png}, "image/png", nil},
		{"text", &domain.AttachmentUploadRequest{Name: "catatan.txt", Content: []byte("hanya teks")}, "", domain.ErrUploadInvalidContentType},
		{"empty", &domain.AttachmentUploadRequest{Name: "kosong.pdf"}, "", domain.ErrUploadFileRequired},
		{"too large", &domain.AttachmentUploadRequest{Name: "besar.pdf", Content: append(pdf, make([]byte, 64)...)}, "", domain.ErrUploadFileTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, dir := newTestUsecase(t)
			got, err := uc.Upload(context.Background(), tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Upload() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Upload() error = %v", err)
			}
			if got.Mime != tt.wantMime || got.FileNama != tt.req.Name || got.Provider != string(upload.Local) {
				t.Errorf("attachment = %+v", got)
			}
			if !strings.HasPrefix(got.FileSurat, "surat/2024/10/") || got.URL != "/uploads/"+got.FileSurat {
				t.Errorf("key = %q url = %q", got.FileSurat, got.URL)
			}
			stored, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(got.FileSurat)))
			if err != nil || string(stored) != string(tt.req.Content) {
				t.Errorf("stored file = %q, %v", stored, err)
			}
		})
	}
}

func TestAccessURL(t *testing.T) {
	uc, _ := newTestUsecase(t)

	tests := []struct {
		key     string
		want    string
		wantErr error
	}{
		{"surat/2024/10/abc_scan.pdf", "/uploads/surat/2024/10/abc_scan.pdf", nil},
		{"  ", "", domain.ErrFileKeyRequired},
		{"/", "", domain.ErrInvalidFileKey},
	}
	for _, tt := range tests {
		got, err := uc.AccessURL(context.Background(), tt.key)
		if !errors.Is(err, tt.wantErr) || got != tt.want {
			t.Errorf("AccessURL(%q) = %q, %v; want %q, %v", tt.key, got, err, tt.want, tt.wantErr)
		}
	}
}
