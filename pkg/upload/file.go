package upload

import (
	"io"
	"mime/multipart"
	"path"
	"strings"

	"github.com/samber/lo"
)

const (
	HashLength = 16
)

type File struct {
	Name    string `json:"name"`
	Mime    string `json:"mime"`
	Content []byte `json:"content"`
}

type UploadedFileInfo struct {
	Name        string   `json:"name"`
	Mime        string   `json:"mime"`
	Ext         string   `json:"ext"`
	URL         string   `json:"url"`
	Size        int64    `json:"size"`
	StoragePath string   `json:"storage_path"`
	Provider    Provider `json:"provider"`
}

func getExt(fileName string) string {
	return strings.ToLower(path.Ext(fileName))
}

func generateHash() string {
	return lo.RandomString(HashLength, lo.AlphanumericCharset)
}

// generateFileName prefixes a random hash and replaces characters that are awkward in URLs.
func generateFileName(filename, hash string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '#', '?', '%', '&':
			return '-'
		}
		return r
	}, name)
	return hash + "_" + name
}

// cleanKey normalises an object key and rejects keys that escape the storage root.
func cleanKey(key string) (string, bool) {
	key = strings.TrimPrefix(path.Clean("/"+strings.TrimSpace(key)), "/")
	if key == "" || key == "." || strings.HasPrefix(key, "..") {
		return "", false
	}
	return key, true
}

// ReadFileHeader loads an uploaded multipart file into memory.
func ReadFileHeader(fileHeader *multipart.FileHeader) (*File, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return &File{
		Name:    fileHeader.Filename,
		Mime:    fileHeader.Header.Get("Content-Type"),
		Content: content,
	}, nil
}
