package services

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFile struct {
	name        string
	contentType string
	content     []byte
}

// makeFileHeaders fabrique de vrais multipart.FileHeader en passant par un
// encodage/décodage multipart complet.
func makeFileHeaders(t *testing.T, files []fakeFile) []*multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, f := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename="%s"`, f.name))
		header.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	return form.File["files"]
}

func TestStoreBatchAcceptedFiles(t *testing.T) {
	ms := NewMediaStore(t.TempDir())

	files := makeFileHeaders(t, []fakeFile{
		{"avant.jpg", "image/jpeg", []byte("jpeg-bytes")},
		{"arriere.png", "image/png", []byte("png-bytes")},
		{"detail.webp", "image/webp", []byte("webp-bytes")},
	})

	paths, results, err := ms.StoreBatch("prod-123", "Rouge", files)
	require.NoError(t, err)

	// N fichiers acceptés => N chemins, sous products/<id>/<couleur>/
	require.Len(t, paths, 3)
	require.Len(t, results, 3)
	for _, p := range paths {
		assert.True(t, strings.HasPrefix(p, "/uploads/products/prod-123/rouge/"), "chemin inattendu: %s", p)
	}

	// Chaque fichier est relisible à son chemin retourné
	for i, p := range paths {
		onDisk := filepath.Join(ms.BaseDir, strings.TrimPrefix(p, "/"))
		content, err := os.ReadFile(onDisk)
		require.NoError(t, err)
		assert.NotEmpty(t, content)
		assert.True(t, results[i].Accepted)
		assert.Equal(t, p, results[i].Path)
	}
}

func TestStoreBatchRejectsDisallowedType(t *testing.T) {
	ms := NewMediaStore(t.TempDir())

	files := makeFileHeaders(t, []fakeFile{
		{"ok.jpg", "image/jpeg", []byte("jpeg")},
		{"virus.pdf", "application/pdf", []byte("pdf")},
		{"ok2.png", "image/png", []byte("png")},
	})

	paths, results, err := ms.StoreBatch("prod-1", "Bleu", files)
	require.NoError(t, err, "un type refusé n'interrompt pas le batch")

	assert.Len(t, paths, 2)
	require.Len(t, results, 3)
	assert.True(t, results[0].Accepted)
	assert.False(t, results[1].Accepted)
	assert.Contains(t, results[1].Reason, "application/pdf")
	assert.True(t, results[2].Accepted)
}

func TestStoreBatchInvalidRequest(t *testing.T) {
	ms := NewMediaStore(t.TempDir())
	files := makeFileHeaders(t, []fakeFile{{"a.jpg", "image/jpeg", []byte("x")}})

	_, _, err := ms.StoreBatch("", "Rouge", files)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	_, _, err = ms.StoreBatch("prod-1", "  ", files)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestStoreBatchIdempotentDirectory(t *testing.T) {
	ms := NewMediaStore(t.TempDir())

	first := makeFileHeaders(t, []fakeFile{{"a.jpg", "image/jpeg", []byte("un")}})
	_, _, err := ms.StoreBatch("prod-9", "Vert", first)
	require.NoError(t, err)

	// Deuxième batch sur le même répertoire : pas d'erreur, pas d'écrasement
	second := makeFileHeaders(t, []fakeFile{{"a.jpg", "image/jpeg", []byte("deux")}})
	paths, _, err := ms.StoreBatch("prod-9", "Vert", second)
	require.NoError(t, err)
	require.Len(t, paths, 1)

	entries, err := os.ReadDir(filepath.Join(ms.BaseDir, "uploads", "products", "prod-9", "vert"))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSanitizeColorName(t *testing.T) {
	assert.Equal(t, "rouge", SanitizeColorName("Rouge"))
	assert.Equal(t, "navy-blue", SanitizeColorName("Navy Blue"))
	assert.Equal(t, "bleu-nuit-", SanitizeColorName("Bleu Nuit!"))
	assert.Equal(t, "off-white--2-", SanitizeColorName("Off White (2)"))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "photo.jpg", sanitizeFilename("photo.jpg"))
	assert.Equal(t, "ma_photo_1_.jpg", sanitizeFilename("ma photo(1).jpg"))
}

func TestRemoveDirs(t *testing.T) {
	ms := NewMediaStore(t.TempDir())

	files := makeFileHeaders(t, []fakeFile{{"a.jpg", "image/jpeg", []byte("x")}})
	_, _, err := ms.StoreBatch("prod-7", "Rouge", files)
	require.NoError(t, err)

	require.NoError(t, ms.RemoveColorDir("prod-7", "Rouge"))
	_, err = os.Stat(filepath.Join(ms.BaseDir, "uploads", "products", "prod-7", "rouge"))
	assert.True(t, os.IsNotExist(err))

	// RemoveProductDir sur un produit déjà vide ne casse rien
	require.NoError(t, ms.RemoveProductDir("prod-7"))
}
