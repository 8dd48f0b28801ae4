package handler

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/interfaces/http/dto"
	"github.com/opsuite/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/require"
)

var (
	testTenantID   = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	testOperatorID = uuid.MustParse("00000000-0000-0000-0000-000000000002")
)

// setupTestRouter creates a gin engine with the tenant and operator already
// resolved, as the tenant middleware would have done
func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.TenantIDKey, testTenantID)
		c.Set(middleware.OperatorIDKey, testOperatorID)
		c.Next()
	})
	return router
}

// setupAnonymousRouter creates a gin engine without any identity context
func setupAnonymousRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

// decodeEnvelope parses the standard response envelope from the recorder
func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// decodeData re-marshals the envelope's data into the given target
func decodeData(t *testing.T, resp dto.Response, target any) {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, target))
}
