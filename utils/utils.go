package utils

import (
	"mime/multipart"
	"net/http"
	"os"
	"strings"
)

// --- Image Validation ---

var SupportedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

func ValidateImageFileType(w http.ResponseWriter, header *multipart.FileHeader) bool {
	mimeType := header.Header.Get("Content-Type")
	if !SupportedImageTypes[mimeType] {
		http.Error(w, "Invalid file type. Supported formats: JPEG, PNG, GIF, WEBP.", http.StatusBadRequest)
		return false
	}
	return true
}

// --- Directory Helper ---

func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// SplitCategories takes a comma-separated string and returns a cleaned []string
func SplitCategories(input string) []string {
	if input == "" {
		return []string{}
	}
	parts := strings.Split(input, ",")
	categories := []string{}
	for _, p := range parts {
		if c := strings.TrimSpace(p); c != "" {
			categories = append(categories, c)
		}
	}
	return categories
}
