package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "github.com/ssuzuki/toukidocs/internal/errors"
	"github.com/ssuzuki/toukidocs/internal/logger"
	"github.com/ssuzuki/toukidocs/internal/models"
	"github.com/ssuzuki/toukidocs/internal/services"
)

func newMasterRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	repo := newHandlerRepo(t)
	handler := NewMasterHandler(services.NewMasterService(repo, logger.New("test"), handlerIDs()))

	router := gin.New()
	router.GET("/api/v1/contractors", handler.ListContractors)
	router.POST("/api/v1/contractors", handler.SaveContractor)
	router.DELETE("/api/v1/contractors/:id", handler.DeleteContractor)
	router.GET("/api/v1/scriveners", handler.ListScriveners)
	router.POST("/api/v1/scriveners", handler.SaveScrivener)
	router.DELETE("/api/v1/scriveners/:id", handler.DeleteScrivener)
	return router
}

func TestMasterHandler_Contractors(t *testing.T) {
	router := newMasterRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/contractors", ContractorRequest{
		Address:        "富山市桜町1番1号",
		TradeName:      "一番工務店",
		Representative: "代表　太郎",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Contractor
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stored))
	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, "一番工務店", stored.TradeName)

	w = doJSON(t, router, http.MethodGet, "/api/v1/contractors", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Contractors []models.Contractor `json:"contractors"`
		Count       int                 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 1, list.Count)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/contractors/"+stored.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/v1/contractors", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 0, list.Count)
}

func TestMasterHandler_SaveContractor_MissingTradeName(t *testing.T) {
	router := newMasterRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/contractors", ContractorRequest{
		Address: "富山市桜町1番1号",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	resp := decodeErrorResponse(t, w)
	assert.Equal(t, apierrors.ErrValidation, resp.Error.Code)
}

func TestMasterHandler_Scriveners(t *testing.T) {
	router := newMasterRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/v1/scriveners", ScrivenerRequest{
		Address: "射水市善光寺27番1号",
		Name:    "塩谷　和昭",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.Scrivener
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stored))
	assert.NotEmpty(t, stored.ID)

	w = doJSON(t, router, http.MethodGet, "/api/v1/scriveners", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Scriveners []models.Scrivener `json:"scriveners"`
		Count      int                `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, 1, list.Count)
	assert.Equal(t, "塩谷　和昭", list.Scriveners[0].Name)

	w = doJSON(t, router, http.MethodDelete, "/api/v1/scriveners/"+stored.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
