package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"artspace/internal/api"
	appdb "artspace/internal/db"
	"artspace/internal/middleware"
	"artspace/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "test-secret"

// newTestRouter wires the full route table against a throwaway SQLite file
// and upload directory. Redis is nil, so every request hits the database.
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB, string) {
	t.Helper()
	return newCachedTestRouter(t, nil)
}

// newCachedTestRouter is newTestRouter with an injectable Redis client,
// used by the cache tests.
func newCachedTestRouter(t *testing.T, rdb *redis.Client) (*gin.Engine, *gorm.DB, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, appdb.Setup(db))

	uploadDir := t.TempDir()
	store := storage.NewAssetStore(uploadDir)
	require.NoError(t, store.Setup())

	r := gin.New()
	r.GET("/api/artworks", api.ListArtworksHandler(db, rdb, store))
	r.POST("/api/register", api.RegisterHandler(db, rdb))
	r.POST("/api/login", api.LoginHandler(db, testJWTSecret))
	r.POST("/api/upload", api.UploadArtworkHandler(db, rdb, store))
	r.POST("/api/buy", api.BuyArtworkHandler(db, rdb, store))
	r.POST("/api/edit", api.EditArtworkHandler(db, rdb))
	r.POST("/api/delete_art", api.DeleteArtworkHandler(db, rdb, store))
	r.POST("/api/delete_account", api.DeleteAccountHandler(db, rdb))

	adminGroup := r.Group("/api")
	adminGroup.Use(middleware.JWTAuthMiddleware(testJWTSecret), middleware.AdminOnlyMiddleware())
	adminGroup.GET("/users", api.ListUsersHandler(db, rdb))
	adminGroup.POST("/delete_user", api.DeleteUserHandler(db, rdb))
	adminGroup.POST("/reset", api.ResetHandler(db, rdb))

	return r, db, uploadDir
}

// postJSON performs a JSON POST and decodes the envelope into out.
func postJSON(t *testing.T, r *gin.Engine, path string, body any, out any, headers ...map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	for _, h := range headers {
		for k, v := range h {
			req.Header.Set(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if out != nil && w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w
}

// postMultipart performs a multipart POST with the given form fields and an
// optional file part (skipped when fileField is empty).
func postMultipart(t *testing.T, r *gin.Engine, path string, fields map[string]string, fileField, fileName, fileBody string) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if fileField != "" {
		fw, err := mw.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = io.WriteString(fw, fileBody)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// getJSON performs a GET and decodes the body into out.
func getJSON(t *testing.T, r *gin.Engine, path string, out any, headers ...map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, h := range headers {
		for k, v := range h {
			req.Header.Set(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if out != nil && w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w
}
