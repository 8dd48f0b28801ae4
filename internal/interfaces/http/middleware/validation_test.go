package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	assert.NotNil(t, v)
}

func TestHandleValidationError_ReportsFieldDetails(t *testing.T) {
	type receiveStockInput struct {
		LotCode  string `json:"lot_code" binding:"required"`
		Quantity int    `json:"quantity" binding:"required,gt=0"`
	}

	SetupValidator()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/receipts", func(c *gin.Context) {
		var req receiveStockInput
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	w := postJSON(router, "/receipts", `{"quantity": -3}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Code    string `json:"code"`
			Message string `json:"message"`
			Details []struct {
				Field   string `json:"field"`
				Message string `json:"message"`
			} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.False(t, resp.Success)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
	assert.Equal(t, "Request validation failed", resp.Error.Message)
	require.Len(t, resp.Error.Details, 2)

	fields := []string{resp.Error.Details[0].Field, resp.Error.Details[1].Field}
	assert.Contains(t, fields, "lot_code")
	assert.Contains(t, fields, "quantity")

	w = postJSON(router, "/receipts", `{"lot_code": "L-2506", "quantity": 10}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetValidationMessage(t *testing.T) {
	type input struct {
		Required string `validate:"required"`
		Email    string `validate:"email"`
		Min      string `validate:"min=5"`
		Max      string `validate:"max=10"`
		Len      string `validate:"len=5"`
		UUID     string `validate:"uuid"`
		OneOf    string `validate:"oneof=BLOCK JUSTIFY FREE"`
		URL      string `validate:"url"`
	}

	v := validator.New()
	err := v.Struct(input{
		Email: "invalid",
		Min:   "ab",
		Max:   "this is way too long",
		Len:   "ab",
		UUID:  "invalid",
		OneOf: "ALLOW",
		URL:   "invalid",
	})
	require.Error(t, err)

	expected := map[string]string{
		"Required": "This field is required",
		"Email":    "Invalid email format",
		"Min":      "Must be at least 5 characters",
		"Max":      "Must be at most 10 characters",
		"Len":      "Must be exactly 5 characters",
		"UUID":     "Invalid UUID format",
		"OneOf":    "Must be one of: BLOCK JUSTIFY FREE",
		"URL":      "Invalid URL format",
	}

	validationErrs := err.(validator.ValidationErrors)
	require.Len(t, validationErrs, len(expected))
	for _, e := range validationErrs {
		assert.Equal(t, expected[e.Field()], getValidationMessage(e), e.Field())
	}
}

func TestGetValidationMessage_NumericBounds(t *testing.T) {
	type input struct {
		GTE int `validate:"gte=10"`
		LTE int `validate:"lte=100"`
	}

	v := validator.New()
	err := v.Struct(input{GTE: 5, LTE: 200})
	require.Error(t, err)

	for _, e := range err.(validator.ValidationErrors) {
		switch e.Field() {
		case "GTE":
			assert.Equal(t, "Must be greater than or equal to 10", getValidationMessage(e))
		case "LTE":
			assert.Equal(t, "Must be less than or equal to 100", getValidationMessage(e))
		}
	}
}
