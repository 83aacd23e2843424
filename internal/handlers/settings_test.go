package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"veloura_back_end/internal/database"
)

// unreachableRedis pointe le client global vers une adresse fermée avec des
// timeouts courts : chaque lecture cache échoue vite, comme un Redis en panne.
func unreachableRedis(t *testing.T) {
	t.Helper()
	database.Redis = redis.NewClient(&redis.Options{
		Addr:         "127.0.0.1:1",
		DialTimeout:  50 * time.Millisecond,
		ReadTimeout:  50 * time.Millisecond,
		WriteTimeout: 50 * time.Millisecond,
	})
}

// Sans cache ni Catalog Store joignables, la photo de couverture retombe sur
// la sentinelle "default" avec un 200 : ce réglage ne casse jamais la page
// d'accueil.
func TestGetCoverPhotoSentinel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	unreachableRedis(t)
	database.Scylla = nil

	r := gin.New()
	r.GET("/api/settings/cover-photo", GetCoverPhoto)

	req := httptest.NewRequest(http.MethodGet, "/api/settings/cover-photo", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"url":"default"}`, rec.Body.String())
}

// La validation du PUT bloque avant tout accès base.
func TestUpdateCoverPhotoValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	database.Scylla = nil

	r := gin.New()
	r.PUT("/api/admin/settings/cover-photo", UpdateCoverPhoto)

	cases := []struct {
		name string
		body string
	}{
		{"JSON invalide", `{`},
		{"url absente", `{}`},
		{"url vide", `{"url":"   "}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPut, "/api/admin/settings/cover-photo", strings.NewReader(tc.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
