package http

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foliocraft/foliocraft-backend/internal/render"
	"github.com/foliocraft/foliocraft-backend/internal/render/document"
	"github.com/foliocraft/foliocraft-backend/internal/render/preview"
	"github.com/foliocraft/foliocraft-backend/internal/render/validator"
	"github.com/foliocraft/foliocraft-backend/internal/templates/repository"
	"github.com/foliocraft/foliocraft-backend/internal/templates/service"
)

const templateID = "11111111-1111-4111-8111-111111111111"

func setup(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	gin.SetMode(gin.TestMode)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	v := validator.New()
	gen := document.New()
	engine := render.NewEngine(v, gen, preview.NewPublisher(preview.NewMemoryStore(0), gen, "http://test"), nil)
	h := New(service.NewTemplateService(repository.NewTemplateRepository(db), v), engine)

	r := gin.New()
	h.RegisterAdmin(r.Group("/admin/templates"))
	h.RegisterPublic(r.Group("/templates"))
	return r, mock
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreate_RejectsForbiddenCode(t *testing.T) {
	r, mock := setup(t)

	w := do(r, http.MethodPost, "/admin/templates", `{"name":"X","component_code":"function A(){ fetch('/x'); return null; }"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.JSONEq(t, `{"ok":false,"error":"invalid template","errors":["Network requests (fetch) are not allowed"]}`, w.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetActive_NotFound(t *testing.T) {
	r, mock := setup(t)
	mock.ExpectQuery(`SELECT id::text`).WithArgs(templateID).WillReturnError(sql.ErrNoRows)

	w := do(r, http.MethodGet, "/templates/"+templateID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMalformedIDReturnsNotFound(t *testing.T) {
	r, mock := setup(t)

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/templates/nope", ""},
		{http.MethodGet, "/admin/templates/nope", ""},
		{http.MethodPut, "/admin/templates/nope", `{"description":"x"}`},
		{http.MethodDelete, "/admin/templates/nope", ""},
		{http.MethodPost, "/admin/templates/nope/preview", `{}`},
	} {
		w := do(r, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusNotFound, w.Code, "%s %s", tc.method, tc.path)
	}
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPreview_PublishesStoredTemplate(t *testing.T) {
	r, mock := setup(t)
	rows := sqlmock.NewRows([]string{"id", "name", "description", "category", "thumbnail_url", "component_code", "is_active", "created_at", "updated_at"}).
		AddRow(templateID, "Card", "", "general", "", "export default function Card(){return <div>Hi</div>;}", true, time.Time{}, time.Time{})
	mock.ExpectQuery(`SELECT id::text`).WithArgs(templateID).WillReturnRows(rows)

	w := do(r, http.MethodPost, "/admin/templates/"+templateID+"/preview", `{"customizations":{"title":"Hi"}}`)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"url":"http://test/previews/`)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPreview_ChunkedBodyIsDecoded(t *testing.T) {
	r, mock := setup(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/templates/"+templateID+"/preview", strings.NewReader(`{"customizations":`))
	req.ContentLength = -1
	req.TransferEncoding = []string{"chunked"}
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
