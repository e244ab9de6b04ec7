package ingestion

import (
	"encoding/json"
	"fmt"
	"time"
)

// Metadata describes a received upload. It never includes file content.
type Metadata struct {
	Filename   string `json:"filename"`
	MediaType  string `json:"media_type"`
	Size       int64  `json:"size"`
	ReceivedAt string `json:"received_at"` // RFC3339 format
}

// NewMetadata creates Metadata for an upload stamped with the given time
func NewMetadata(upload *Upload, now time.Time) *Metadata {
	if upload == nil {
		return &Metadata{ReceivedAt: now.UTC().Format(time.RFC3339)}
	}
	return &Metadata{
		Filename:   upload.Filename,
		MediaType:  upload.MediaType,
		Size:       upload.Size,
		ReceivedAt: now.UTC().Format(time.RFC3339),
	}
}

// String formats the metadata for log lines
func (m *Metadata) String() string {
	return fmt.Sprintf("name=%q type=%q size=%d", m.Filename, m.MediaType, m.Size)
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
