package upload

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLocalUploaderRoundTrip(t *testing.T) {
	dir := t.TempDir()
	u, err := NewLocalUploader(&Config{LocalDir: dir})
	if err != nil {
		t.Fatalf("NewLocalUploader() error = %v", err)
	}

	files := []*File{
		{Name: "surat undangan.pdf", Mime: "application/pdf", Content: []byte("%PDF-1.4")},
		{Name: "scan.png", Mime: "image/png", Content: []byte("png")},
	}
	infos, err := u.Upload(context.Background(), files, "surat/2024/10")
	if err != nil {
		t.Fatalf("Upload() error = %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("Upload() returned %d infos", len(infos))
	}

	first := infos[0]
	if !strings.HasPrefix(first.StoragePath, "surat/2024/10/") || strings.Contains(first.StoragePath, " ") {
		t.Errorf("StoragePath = %q", first.StoragePath)
	}
	if first.URL != "/uploads/"+first.StoragePath {
		t.Errorf("URL = %q", first.URL)
	}
	if first.Ext != ".pdf" || first.Size != 8 || first.Provider != Local {
		t.Errorf("unexpected info %+v", first)
	}

	onDisk := filepath.Join(dir, filepath.FromSlash(first.StoragePath))
	if b, err := os.ReadFile(onDisk); err != nil || string(b) != "%PDF-1.4" {
		t.Fatalf("file on disk = %q, %v", b, err)
	}

	if err := u.Remove(context.Background(), infos); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if _, err := os.Stat(onDisk); !os.IsNotExist(err) {
		t.Errorf("file still exists after Remove: %v", err)
	}
}

func TestLocalUploaderURL(t *testing.T) {
	u, err := NewLocalUploader(&Config{LocalDir: t.TempDir(), PublicPath: "/files"})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		key     string
		want    string
		wantErr bool
	}{
		{key: "surat/a.pdf", want: "/files/surat/a.pdf"},
		{key: "/surat/./a.pdf", want: "/files/surat/a.pdf"},
		{key: "../etc/passwd", want: "/files/etc/passwd"},
		{key: "", wantErr: true},
		{key: "   ", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := u.URL(context.Background(), tt.key, time.Minute)
			if (err != nil) != tt.wantErr {
				t.Fatalf("URL() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("URL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGenerateFileName(t *testing.T) {
	got := generateFileName(`C:\scan\surat masuk #1.pdf`, "abc")
	if got != "abc_surat-masuk--1.pdf" {
		t.Errorf("generateFileName() = %q", got)
	}
}
