package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gabbyferm/savory/backend/config"
	"github.com/gabbyferm/savory/backend/internal/server"
	"github.com/gabbyferm/savory/backend/internal/service"
	"github.com/gabbyferm/savory/backend/internal/storage"
	"github.com/gabbyferm/savory/backend/internal/types"
)

// client drives the fully wired API in memory
type client struct {
	t       *testing.T
	handler http.Handler
}

func newClient(t *testing.T, db *gorm.DB) *client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	images, err := storage.NewLocalStore(t.TempDir(), "/images/recipes")
	require.NoError(t, err)

	cfg := config.Default()
	handler := server.NewHandler(cfg, server.Dependencies{DB: db, Images: images},
		service.WithBcryptCost(bcrypt.MinCost))
	return &client{t: t, handler: handler}
}

func (c *client) send(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	return w
}

func (c *client) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, token)
}

func (c *client) upload(path, filename string, content []byte, token string) *httptest.ResponseRecorder {
	c.t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(c.t, err)
	_, err = part.Write(content)
	require.NoError(c.t, err)
	require.NoError(c.t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.send(req, token)
}

// expect asserts the status code and decodes the body into T
func expect[T any](t *testing.T, w *httptest.ResponseRecorder, status int) T {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (c *client) register(name string) types.AuthResponse {
	c.t.Helper()
	w := c.do(http.MethodPost, "/api/v1/auth/register", types.RegisterRequest{
		UserName: name,
		Email:    name + "@example.com",
		Password: "Password1",
	}, "")
	return expect[types.AuthResponse](c.t, w, http.StatusOK)
}
