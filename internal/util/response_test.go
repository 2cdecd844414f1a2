package util

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
	"gorm.io/gorm"
)

func TestHandleErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
	}{
		{NotFound("Resource"), http.StatusNotFound},
		{fmt.Errorf("load: %w", NotFound("Comment")), http.StatusNotFound},
		{BadRequestf("category has %d resources", 2), http.StatusBadRequest},
		{gorm.ErrRecordNotFound, http.StatusNotFound},
		{ErrEmailRegistered, http.StatusBadRequest},
		{ErrInvalidCredential, http.StatusUnauthorized},
		{ErrPermissionDenied, http.StatusForbidden},
		{errors.New("disk full"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		HandleError(c, tc.err)

		assert.Equal(t, tc.status, w.Code, tc.err.Error())
		var body Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, tc.status, body.Code)
	}
}

func TestPageEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Page(c, []string{"a"}, 11, Pagination{Page: 2, Limit: 10})

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data PageResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.EqualValues(t, 11, body.Data.Total)
	assert.Equal(t, 2, body.Data.Page)
}
