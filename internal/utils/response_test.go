// internal/utils/response_test.go
package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sheikh-Nabeel/Mystic-NFT-backend/internal/repository"
)

func TestStatusFor(t *testing.T) {
	type sample struct {
		ID string `json:"id" validate:"required,uuid"`
	}

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", NewValidationError("bad", nil), http.StatusBadRequest},
		{"unauthorized", NewUnauthorizedError("no"), http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("no"), http.StatusForbidden},
		{"not found", NewNotFoundError("gone"), http.StatusNotFound},
		{"conflict", NewConflictError("again"), http.StatusConflict},
		{"upstream", NewUpstreamError("remote", errors.New("timeout")), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("service: %w", NewNotFoundError("gone")), http.StatusNotFound},
		{"validator", ValidateStruct(&sample{}), http.StatusBadRequest},
		{"repository", repository.ErrNotFound, http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, StatusFor(tc.err))
		})
	}
}

func TestHandleWritesFailureEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/fail", Handle(func(c *gin.Context) error {
		return NewUpstreamError("Error uploading PDF", errors.New("cloud credentials rejected"))
	}))
	r.GET("/ok", Handle(func(c *gin.Context) error {
		SuccessResponse(c, gin.H{"n": 1}, "done")
		return nil
	}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fail", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "credentials")

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 500, body["statusCode"])
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Error uploading PDF", body["message"])
	assert.Contains(t, body, "data")
	assert.Nil(t, body["data"])

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "done", body["message"])
}

func TestGetValidationErrors(t *testing.T) {
	type upline struct {
		UserID   string `json:"userId" validate:"required,uuid"`
		TeamType string `json:"teamType" validate:"required,team_type"`
	}
	type request struct {
		Uplines []upline `json:"uplines" validate:"required,min=1,dive"`
	}

	errs := GetValidationErrors(ValidateStruct(&request{Uplines: []upline{{UserID: "x", TeamType: "Z"}}}))
	require.Len(t, errs, 2)
	assert.Equal(t, "uplines[0].userId", errs[0].Field)
	assert.Equal(t, "uuid", errs[0].Tag)
	assert.Equal(t, "uplines[0].teamType", errs[1].Field)
	assert.Equal(t, "Team type must be one of A, B or C", errs[1].Message)
}

func TestPaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?page=3&limit=500&order=sideways", nil)

	params := GetPaginationParams(c)
	assert.Equal(t, 3, params.Page)
	assert.Equal(t, 20, params.Limit)
	assert.Equal(t, 40, params.Offset())
	assert.Equal(t, "created_at desc", params.OrderBy("amount", []string{"date"}))
	assert.Equal(t, "date desc", params.OrderBy("date", []string{"date"}))

	result := CreatePaginationResult([]int{1}, 41, params)
	assert.Equal(t, 3, result.TotalPages)
}
