package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/foliocraft/foliocraft-backend/internal/auth"
)

type stubVerifier struct {
	token *fbauth.Token
	err   error
}

func (s stubVerifier) VerifyIDToken(context.Context, string) (*fbauth.Token, error) {
	return s.token, s.err
}

func serve(v TokenVerifier, header string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(FirebaseAuthMiddleware(v))
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": auth.UserFirebaseUID(c), "email": c.GetString(auth.CtxEmail)})
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestFirebaseAuthMiddleware(t *testing.T) {
	ok := stubVerifier{token: &fbauth.Token{UID: "fb-1", Claims: map[string]interface{}{"email": "a@b.c"}}}

	w := serve(ok, "Bearer good")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"uid":"fb-1","email":"a@b.c"}`, w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, serve(ok, "").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(ok, "Basic abc").Code)
	assert.Equal(t, http.StatusUnauthorized, serve(stubVerifier{err: errors.New("expired")}, "Bearer bad").Code)
}
