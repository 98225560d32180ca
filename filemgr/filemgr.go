// Package filemgr stages multipart uploads to temporary files and hosts
// processed images under static/uploads, handing back a URL and an opaque
// public id that later releases the image and its thumbnail.
package filemgr

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"onedoc/utils"
)

const (
	uploadRoot  = "static/uploads"
	stagingDir  = "static/tmp"
	thumbFolder = "thumb"
	thumbWidth  = 300
	thumbHeight = 200
)

var (
	ErrUpload      = errors.New("image upload failed")
	ErrInvalidType = errors.New("invalid file type")

	allowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
	allowedImageMIMEs      = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
)

func extensionAllowed(ext string) bool {
	for _, a := range allowedImageExtensions {
		if ext == a {
			return true
		}
	}
	return false
}

func mimeAllowed(mime string) bool {
	for _, a := range allowedImageMIMEs {
		if strings.HasPrefix(mime, a) {
			return true
		}
	}
	return false
}

// StageFile copies an uploaded image to a temporary file and returns its
// path. The caller must remove the staged file on every exit path.
func StageFile(file multipart.File, header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !extensionAllowed(ext) {
		return "", ErrInvalidType
	}

	// Sniff the real content type, then rewind
	buff := make([]byte, 512)
	n, err := file.Read(buff)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	if !mimeAllowed(http.DetectContentType(buff[:n])) {
		return "", ErrInvalidType
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}

	if err := utils.EnsureDir(stagingDir); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}

	staged := filepath.Join(stagingDir, uuid.New().String()+ext)
	out, err := os.Create(staged)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		os.Remove(staged)
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	return staged, nil
}

// Upload hosts a staged image under the given folder and renders a
// thumbnail next to it. On success the returned public id identifies the
// hosted image for Delete. The staged file is left for the caller to remove.
func Upload(stagedPath, folder string) (url string, publicID string, err error) {
	ext := filepath.Ext(stagedPath)
	name := uuid.New().String() + ext

	destDir := filepath.Join(uploadRoot, folder)
	if err := utils.EnsureDir(destDir); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrUpload, err)
	}

	dest := filepath.Join(destDir, name)
	if err := copyFile(stagedPath, dest); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrUpload, err)
	}

	if err := writeThumbnail(dest, folder, name); err != nil {
		// thumbnail loss is not worth failing the whole upload
		log.Printf("thumbnail generation failed for %s: %v", dest, err)
	}

	publicID = folder + "/" + name
	return "/" + uploadRoot + "/" + publicID, publicID, nil
}

// UploadMultipart stages an uploaded image, hosts it, and removes the
// staged temporary file regardless of outcome.
func UploadMultipart(file multipart.File, header *multipart.FileHeader, folder string) (url string, publicID string, err error) {
	staged, err := StageFile(file, header)
	if err != nil {
		return "", "", err
	}
	defer func() {
		if rmErr := os.Remove(staged); rmErr != nil {
			log.Printf("failed to remove staged file %s: %v", staged, rmErr)
		}
	}()

	return Upload(staged, folder)
}

// Delete releases a hosted image and its thumbnail. Unknown ids are not
// an error: the image may already be gone.
func Delete(publicID string) error {
	clean := filepath.Clean(publicID)
	if clean == "" || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return fmt.Errorf("invalid public id: %q", publicID)
	}

	path := filepath.Join(uploadRoot, clean)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}

	folder, name := filepath.Split(clean)
	thumb := filepath.Join(uploadRoot, folder, thumbFolder, thumbName(name))
	if err := os.Remove(thumb); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to remove thumbnail %s: %v", thumb, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}

func thumbName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ".jpg"
}

func writeThumbnail(imagePath, folder, name string) error {
	img, err := imaging.Open(imagePath)
	if err != nil {
		return err
	}

	thumbDir := filepath.Join(uploadRoot, folder, thumbFolder)
	if err := utils.EnsureDir(thumbDir); err != nil {
		return err
	}

	thumb := imaging.Thumbnail(img, thumbWidth, thumbHeight, imaging.Lanczos)
	return imaging.Save(thumb, filepath.Join(thumbDir, thumbName(name)))
}
