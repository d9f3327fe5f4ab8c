package validation

import (
	"testing"

	"archreview/internal/models"
)

func TestValidExtension(t *testing.T) {
	tests := []struct {
		filename string
		want     bool
	}{
		{"design.pdf", true},
		{"Report.PDF", true},
		{"diagram.png", true},
		{"photo.JPG", true},
		{"photo.jpeg", true},
		{"archive.with.dots.pdf", true},
		{"notes.txt", false},
		{"archive", false},
		{"file.", false},
		{"", false},
		{".pdf", true}, // bare extension is still a suffix match
		{"slides.pdfx", false},
	}
	for _, tt := range tests {
		if got := ValidExtension(tt.filename); got != tt.want {
			t.Errorf("ValidExtension(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestValidSize(t *testing.T) {
	tests := []struct {
		size int64
		want bool
	}{
		{0, true},
		{1, true},
		{models.MaxFileSizeBytes, true},
		{models.MaxFileSizeBytes + 1, false},
		{-1, false},
	}
	for _, tt := range tests {
		if got := ValidSize(tt.size); got != tt.want {
			t.Errorf("ValidSize(%d) = %v, want %v", tt.size, got, tt.want)
		}
	}
}

func TestValidateFileShortCircuitsOnExtension(t *testing.T) {
	// Bad extension and bad size: the extension message must win.
	res := ValidateFile("huge.txt", models.MaxFileSizeBytes+1)
	if res.Valid {
		t.Fatal("expected invalid result")
	}
	if res.Message != MsgUnsupportedType {
		t.Fatalf("expected extension message, got %q", res.Message)
	}
}

func TestValidateFileMessages(t *testing.T) {
	if res := ValidateFile("a.pdf", models.MaxFileSizeBytes+1); res.Valid || res.Message != MsgFileTooLarge {
		t.Fatalf("oversized file: got %+v", res)
	}
	if res := ValidateFile("a.pdf", 1024); !res.Valid || res.Message != "" {
		t.Fatalf("valid file: got %+v", res)
	}
}

func TestContentTypeFor(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"a.pdf", "application/pdf"},
		{"a.PNG", "image/png"},
		{"a.jpg", "image/jpeg"},
		{"a.jpeg", "image/jpeg"},
		{"a.bin", "application/octet-stream"},
		{"noext", "application/octet-stream"},
	}
	for _, tt := range tests {
		if got := ContentTypeFor(tt.filename); got != tt.want {
			t.Errorf("ContentTypeFor(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}
