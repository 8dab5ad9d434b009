package user

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func performJSON(handler gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handler(c)
	return w
}

func TestRefreshToken_MissingFields(t *testing.T) {
	w := performJSON(RefreshToken, `{"userId": "user-1"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSON(RefreshToken, `{"refreshToken": "abc"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSON(RefreshToken, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSignup_InvalidPayload(t *testing.T) {
	// Mot de passe trop court : rejeté à la validation, avant la base
	w := performJSON(Signup, `{"name":"Ana","email":"ana@example.com","password":"court"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSON(Signup, `{"name":"Ana","email":"pas-un-email","password":"motdepasse"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
