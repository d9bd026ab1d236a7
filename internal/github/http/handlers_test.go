package http

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/foliocraft/foliocraft-backend/internal/github"
)

func TestStats(t *testing.T) {
	gin.SetMode(gin.TestMode)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/octo":
			fmt.Fprint(w, `{"login":"octo","followers":1}`)
		case "/users/octo/repos":
			fmt.Fprint(w, `[{"name":"x","language":"Go","stargazers_count":9}]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer upstream.Close()

	svc := github.NewStatsService(github.NewClient("", upstream.URL, 100, 10), nil, nil)
	r := gin.New()
	New(svc).Register(r.Group("/github"))

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	w := get("/github/octo/stats")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"stars":9`)
	assert.Contains(t, w.Body.String(), `"top_languages":[{"language":"Go","repos":1}]`)

	assert.Equal(t, http.StatusNotFound, get("/github/ghost/stats").Code)
	assert.Equal(t, http.StatusBadRequest, get("/github/-bad-/stats").Code)
}
