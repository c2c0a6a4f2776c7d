package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gabbyferm/savory/backend/internal/apperr"
	"github.com/gabbyferm/savory/backend/internal/middleware"
	"github.com/gabbyferm/savory/backend/internal/mocks"
	"github.com/gabbyferm/savory/backend/internal/types"
)

const validToken = "valid-token"

var testUserID = uuid.MustParse("6f1c2b7e-3d4a-4e5f-8a9b-0c1d2e3f4a5b")

type testServer struct {
	engine    *gin.Engine
	public    *gin.RouterGroup
	protected *gin.RouterGroup
	auth      *mocks.MockAuthService
}

// newTestServer builds an engine with the real auth middleware in front of
// the protected group. Only validToken is accepted.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	auth := new(mocks.MockAuthService)
	auth.On("ValidateToken", validToken).
		Return(&types.TokenClaims{UserID: testUserID, Username: "tester"}, nil).Maybe()
	auth.On("ValidateToken", mock.Anything).
		Return(nil, errors.New("invalid token")).Maybe()

	engine := gin.New()
	engine.Use(middleware.ErrorHandler())
	public := engine.Group("/api/v1")
	protected := public.Group("", middleware.AuthMiddleware(auth))
	return &testServer{engine: engine, public: public, protected: protected, auth: auth}
}

func (s *testServer) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func errorBody(t *testing.T, w *httptest.ResponseRecorder) apperr.Response {
	t.Helper()
	return decode[apperr.Response](t, w)
}
