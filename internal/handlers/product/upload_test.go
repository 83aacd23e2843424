package product

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veloura_back_end/internal/services"
)

func newUploadRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	Media = services.NewMediaStore(t.TempDir())

	r := gin.New()
	r.POST("/api/admin/upload", UploadProductImages)
	return r
}

type uploadFile struct {
	field       string
	name        string
	contentType string
	content     []byte
}

func multipartRequest(t *testing.T, fields map[string]string, files []uploadFile) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	for key, value := range fields {
		require.NoError(t, w.WriteField(key, value))
	}
	for _, f := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, f.field, f.name))
		header.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/upload", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestUploadProductImages(t *testing.T) {
	r := newUploadRouter(t)

	req := multipartRequest(t,
		map[string]string{"productId": "prod-42", "colorName": "Bleu Nuit"},
		[]uploadFile{
			{"files", "face.jpg", "image/jpeg", []byte("jpeg")},
			{"files", "dos.png", "image/png", []byte("png")},
		})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool     `json:"success"`
		Paths   []string `json:"paths"`
		Message string   `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	require.Len(t, resp.Paths, 2)
	assert.Contains(t, resp.Message, "2 fichier(s)")
	for _, p := range resp.Paths {
		assert.True(t, strings.HasPrefix(p, "/uploads/products/prod-42/bleu-nuit/"), "chemin inattendu: %s", p)

		// Le fichier est bien présent sous le répertoire public
		_, err := os.Stat(filepath.Join(Media.BaseDir, strings.TrimPrefix(p, "/")))
		assert.NoError(t, err)
	}
}

func TestUploadSkipsDisallowedType(t *testing.T) {
	r := newUploadRouter(t)

	req := multipartRequest(t,
		map[string]string{"productId": "prod-42", "colorName": "Rouge"},
		[]uploadFile{
			{"files", "ok.jpg", "image/jpeg", []byte("jpeg")},
			{"files", "notes.txt", "text/plain", []byte("txt")},
		})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool                  `json:"success"`
		Paths   []string              `json:"paths"`
		Results []services.FileResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	// Le fichier refusé est absent des chemins mais listé dans le détail
	assert.Len(t, resp.Paths, 1)
	require.Len(t, resp.Results, 2)
	assert.True(t, resp.Results[0].Accepted)
	assert.False(t, resp.Results[1].Accepted)
	assert.Contains(t, resp.Results[1].Reason, "text/plain")
}

func TestUploadValidation(t *testing.T) {
	r := newUploadRouter(t)

	// Pas de fichiers
	req := multipartRequest(t, map[string]string{"productId": "p", "colorName": "Rouge"}, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// productId manquant
	req = multipartRequest(t,
		map[string]string{"colorName": "Rouge"},
		[]uploadFile{{"files", "a.jpg", "image/jpeg", []byte("x")}})
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// colorName manquant
	req = multipartRequest(t,
		map[string]string{"productId": "p"},
		[]uploadFile{{"files", "a.jpg", "image/jpeg", []byte("x")}})
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
