package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// Le Media Store écrit les images produits sous le répertoire public du
// serveur web : public/uploads/products/<productId>/<couleur>/<fichier>.
// Les chemins retournés sont relatifs et directement servis en statique.

var ErrInvalidRequest = errors.New("identifiant produit et nom de couleur requis")

// Types MIME acceptés pour les images produits
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

var (
	colorCleaner    = regexp.MustCompile(`[^a-z0-9]`)
	filenameCleaner = regexp.MustCompile(`[^a-zA-Z0-9.-]`)
)

// FileResult décrit le sort de chaque fichier d'un batch : accepté avec son
// chemin, ou rejeté avec la raison. On ne jette plus silencieusement.
type FileResult struct {
	Filename string `json:"filename"`
	Accepted bool   `json:"accepted"`
	Path     string `json:"path,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

type MediaStore struct {
	BaseDir string // répertoire public servi par le serveur (ex: "public")
}

func NewMediaStore(baseDir string) *MediaStore {
	return &MediaStore{BaseDir: baseDir}
}

// SanitizeColorName normalise un libellé couleur en segment de chemin :
// minuscules, tout caractère non alphanumérique remplacé par '-'.
func SanitizeColorName(name string) string {
	return colorCleaner.ReplaceAllString(strings.ToLower(name), "-")
}

func sanitizeFilename(name string) string {
	return filenameCleaner.ReplaceAllString(name, "_")
}

// StoreBatch écrit un batch d'images pour un couple produit/couleur.
// Retourne les chemins web des fichiers acceptés (dans l'ordre d'entrée) et
// le détail par fichier. Une erreur d'E/S interrompt le batch sans rollback
// des fichiers déjà écrits.
func (ms *MediaStore) StoreBatch(productID, colorName string, files []*multipart.FileHeader) ([]string, []FileResult, error) {
	if strings.TrimSpace(productID) == "" || strings.TrimSpace(colorName) == "" {
		return nil, nil, ErrInvalidRequest
	}

	cleanColor := SanitizeColorName(colorName)
	uploadDir := filepath.Join(ms.BaseDir, "uploads", "products", productID, cleanColor)

	// MkdirAll est idempotent : pas d'erreur si le répertoire existe déjà
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("création répertoire upload: %v", err)
	}

	timestamp := time.Now().UnixMilli()
	paths := []string{}
	results := make([]FileResult, 0, len(files))

	for i, fileHeader := range files {
		contentType := fileHeader.Header.Get("Content-Type")
		if !allowedImageTypes[contentType] {
			results = append(results, FileResult{
				Filename: fileHeader.Filename,
				Accepted: false,
				Reason:   fmt.Sprintf("type non autorisé: %s", contentType),
			})
			continue
		}

		filename := fmt.Sprintf("%d-%d-%s", timestamp, i, sanitizeFilename(fileHeader.Filename))

		if err := ms.writeFile(fileHeader, filepath.Join(uploadDir, filename)); err != nil {
			return paths, results, fmt.Errorf("écriture de %s: %v", fileHeader.Filename, err)
		}

		relativePath := fmt.Sprintf("/uploads/products/%s/%s/%s", productID, cleanColor, filename)
		paths = append(paths, relativePath)
		results = append(results, FileResult{
			Filename: fileHeader.Filename,
			Accepted: true,
			Path:     relativePath,
		})
	}

	return paths, results, nil
}

func (ms *MediaStore) writeFile(fileHeader *multipart.FileHeader, destination string) error {
	src, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(destination)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// RemoveColorDir supprime le répertoire d'une couleur (compensation du
// composer quand un upload échoue en cours de route).
func (ms *MediaStore) RemoveColorDir(productID, colorName string) error {
	return os.RemoveAll(filepath.Join(ms.BaseDir, "uploads", "products", productID, SanitizeColorName(colorName)))
}

// RemoveProductDir supprime toutes les images d'un produit.
func (ms *MediaStore) RemoveProductDir(productID string) error {
	return os.RemoveAll(filepath.Join(ms.BaseDir, "uploads", "products", productID))
}
