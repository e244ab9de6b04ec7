package ingestion

import (
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// PDFMediaType is the only media type accepted for resumes.
const PDFMediaType = "application/pdf"

// Upload is a file handed to an Ingester. Content may be nil; the stub
// ingesters never read it.
type Upload struct {
	Filename  string
	MediaType string
	Size      int64
	Content   io.Reader
}

// CheckMediaType verifies that upload is present and declared as a PDF.
// Parameters on the media type (e.g. "; name=x") are ignored.
func CheckMediaType(upload *Upload) error {
	if upload == nil {
		return ErrNoFileProvided
	}

	mediaType, _, err := mime.ParseMediaType(upload.MediaType)
	if err != nil {
		mediaType = strings.TrimSpace(upload.MediaType)
	}
	if !strings.EqualFold(mediaType, PDFMediaType) {
		return &InvalidFileTypeError{MediaType: upload.MediaType}
	}
	return nil
}

// UploadFromFile builds an Upload for a file on disk. The media type is
// derived from the file extension, so a .pdf file is declared as a PDF.
// The caller is responsible for closing the returned file.
func UploadFromFile(path string) (*Upload, *os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}

	mediaType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	return &Upload{
		Filename:  filepath.Base(path),
		MediaType: mediaType,
		Size:      info.Size(),
		Content:   f,
	}, f, nil
}
