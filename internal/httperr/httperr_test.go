package httperr_test

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

	"github.com/glowbook/artist-scheduler/internal/httperr"
)

func testContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func TestWriteBusinessStatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{httperr.ErrNotFound("artist_not_found"), http.StatusNotFound},
		{httperr.ErrInvalidRequest("invalid_date"), http.StatusBadRequest},
		{httperr.ErrConflict("time_conflict"), http.StatusConflict},
		{httperr.ErrInvalidTransition("invalid_status_transition"), http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		c, w := testContext()
		handled := httperr.WriteBusiness(c, tt.err, "message")
		assert.True(t, handled)
		assert.Equal(t, tt.status, w.Code)

		var body httperr.HTTPError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, tt.err.Error(), body.Code)
	}
}

func TestWriteBusinessIgnoresPlainErrors(t *testing.T) {
	c, w := testContext()
	handled := httperr.WriteBusiness(c, errors.New("boom"), "message")
	assert.False(t, handled)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWriteBusinessUnwraps(t *testing.T) {
	c, w := testContext()
	wrapped := fmt.Errorf("creating booking: %w", httperr.ErrConflict("time_conflict"))
	assert.True(t, httperr.WriteBusiness(c, wrapped, "message"))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestIsBusiness(t *testing.T) {
	err := httperr.ErrConflict("time_conflict")
	assert.True(t, httperr.IsBusiness(err, "time_conflict"))
	assert.False(t, httperr.IsBusiness(err, "other_code"))
	assert.False(t, httperr.IsBusiness(errors.New("boom"), "time_conflict"))

	assert.True(t, httperr.IsKind(err, httperr.KindConflict))
	assert.False(t, httperr.IsKind(err, httperr.KindNotFound))
}
