package storage

import (
	"io"             // For streaming uploads to disk
	"mime/multipart" // Uploaded file headers from Gin
	"os"             // Filesystem operations
	"path/filepath"  // Path joining
	"strings"        // Filename sanitization
)

// Asset namespaces, each a subfolder under the upload root
const (
	NamespaceArtworks = "artworks" // Artwork images
	NamespaceSlips    = "slips"    // Payment slips
)

// AssetStore persists uploaded files under a configured root directory
type AssetStore struct {
	root string // Upload root, e.g. static/uploads
}

// NewAssetStore creates an asset store rooted at dir
func NewAssetStore(dir string) *AssetStore {
	return &AssetStore{root: dir}
}

// Setup creates both namespace directories; safe to call repeatedly
func (s *AssetStore) Setup() error {
	for _, ns := range []string{NamespaceArtworks, NamespaceSlips} {
		if err := os.MkdirAll(filepath.Join(s.root, ns), 0o755); err != nil {
			return err
		}
	}
	return nil
}

// Store writes an uploaded file to <root>/<namespace>/<name>
func (s *AssetStore) Store(namespace, name string, file *multipart.FileHeader) error {
	src, err := file.Open() // Open the uploaded file
	if err != nil {
		return err
	}
	defer src.Close()
	dst, err := os.Create(filepath.Join(s.root, namespace, name)) // Create the destination file
	if err != nil {
		return err
	}
	defer dst.Close()
	_, err = io.Copy(dst, src) // Stream the bytes to disk
	return err
}

// Remove deletes a stored file; a missing file is not an error
func (s *AssetStore) Remove(namespace, name string) error {
	err := os.Remove(filepath.Join(s.root, namespace, name))
	if os.IsNotExist(err) {
		return nil // Already gone
	}
	return err
}

// URLFor maps a stored filename to its public static path; pure, no I/O
func (s *AssetStore) URLFor(namespace, name string) string {
	return "/static/uploads/" + namespace + "/" + name
}

// SanitizeFilename strips path separators and replaces any character
// outside [A-Za-z0-9._-] with an underscore, so user-supplied names can
// never escape the namespace directory
func SanitizeFilename(name string) string {
	// Keep only the last path element, for either separator style
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_') // Anything else collapses to underscore
		}
	}
	cleaned := strings.Trim(b.String(), ".") // No dot-only names
	if cleaned == "" {
		cleaned = "file"
	}
	return cleaned
}
