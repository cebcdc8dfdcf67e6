package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alvimrfg/sistema-socio-40graus/internal/apperror"
)

type sampleRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Days  int    `json:"days" binding:"gte=0"`
	Kind  string `json:"kind" binding:"omitempty,oneof=simple premium"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name     string
		input    sampleRequest
		wantTags []string
	}{
		{"valid", sampleRequest{Name: "Ana", Email: "ana@example.com"}, nil},
		{"missing name", sampleRequest{Email: "ana@example.com"}, []string{"required"}},
		{"bad email and negative days", sampleRequest{Name: "Ana", Email: "nope", Days: -1}, []string{"email", "gte"}},
		{"unknown kind", sampleRequest{Name: "Ana", Email: "ana@example.com", Kind: "gold"}, []string{"oneof"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateStruct(tt.input)
			var tags []string
			for _, e := range errs {
				tags = append(tags, e.Tag)
				assert.NotEmpty(t, e.Message)
			}
			assert.Equal(t, tt.wantTags, tags)
		})
	}
}

func TestBindJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/", func(c *gin.Context) {
		var req sampleRequest
		if !BindJSON(c, &req) {
			return
		}
		c.JSON(http.StatusOK, req)
	})

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{"valid", `{"name":"Ana","email":"ana@example.com"}`, http.StatusOK, ""},
		{"malformed", `{"name":`, http.StatusBadRequest, ""},
		{"invalid", `{"name":"Ana","email":"x"}`, http.StatusBadRequest, "validation failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantError != "" {
				var body map[string]interface{}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.wantError, body["error"])
				assert.NotEmpty(t, body["details"])
			}
		})
	}
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"no capacity", apperror.ErrNoCapacity, http.StatusConflict, apperror.ErrNoCapacity.Message},
		{"not found", apperror.NotFound("booking %d", 4), http.StatusNotFound, "not found: booking 4"},
		{"storage hides cause", apperror.Storage(errors.New("pq: password authentication failed")), http.StatusInternalServerError, "storage failure"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "storage failure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			RespondError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMsg, body.Error)
		})
	}
}

func TestIntParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/members/:id", func(c *gin.Context) {
		id, ok := IntParam(c, "id")
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	for path, want := range map[string]int{"/members/12": http.StatusOK, "/members/abc": http.StatusBadRequest, "/members/0": http.StatusBadRequest} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, w.Code, path)
	}
}
