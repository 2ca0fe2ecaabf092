package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/ssuzuki/toukidocs/internal/errors"
	"github.com/ssuzuki/toukidocs/internal/logger"
	"github.com/ssuzuki/toukidocs/internal/models"
	"github.com/ssuzuki/toukidocs/internal/repository"
	"github.com/ssuzuki/toukidocs/internal/services"
)

func newExportRouter(t *testing.T) (*gin.Engine, repository.StateRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo := newHandlerRepo(t)
	handler := NewExportHandler(services.NewExportService(repo, logger.New("test"), handlerIDs(), handlerNow))

	router := gin.New()
	router.GET("/api/v1/export", handler.Export)
	router.POST("/api/v1/import", handler.Import)
	return router, repo
}

func TestExportHandler_Export(t *testing.T) {
	router, repo := newExportRouter(t)

	require.NoError(t, repo.PutSite(context.Background(), models.Site{ID: "s1", Name: "現場"}))
	require.NoError(t, repo.SetActiveSiteID(context.Background(), "s1"))

	w := doJSON(t, router, http.MethodGet, "/api/v1/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "toukidocs-export.json")

	var env models.Export
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, models.ExportSchemaVersion, env.SchemaVersion)
	assert.Equal(t, "s1", env.ActiveSiteID)
	assert.Len(t, env.Sites, 1)
}

func TestExportHandler_Import(t *testing.T) {
	router, repo := newExportRouter(t)

	require.NoError(t, repo.PutSite(context.Background(), models.Site{ID: "old", Name: "旧現場"}))

	w := doJSON(t, router, http.MethodPost, "/api/v1/import", models.Export{
		SchemaVersion: models.ExportSchemaVersion,
		ActiveSiteID:  "new",
		Sites:         []models.Site{{ID: "new", Name: "取込現場"}},
	})
	require.Equal(t, http.StatusNoContent, w.Code)

	sites, err := repo.ListSites(context.Background())
	require.NoError(t, err)
	require.Len(t, sites, 1)
	assert.Equal(t, "new", sites[0].ID)
}

func TestExportHandler_Import_BadEnvelope(t *testing.T) {
	router, _ := newExportRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/import", models.Export{
		SchemaVersion: 99,
		Sites:         []models.Site{},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeErrorResponse(t, w)
	assert.Equal(t, apierrors.ErrBadRequest, resp.Error.Code)
}

func TestExportHandler_Import_InvalidBody(t *testing.T) {
	router, _ := newExportRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
