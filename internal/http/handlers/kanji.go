package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cocacoran-1/kanji/internal/http/response"
	pkgerrors "github.com/cocacoran-1/kanji/internal/pkg/errors"
	"github.com/cocacoran-1/kanji/internal/platform/apierr"
	"github.com/cocacoran-1/kanji/internal/platform/ctxutil"
	"github.com/cocacoran-1/kanji/internal/platform/logger"
	"github.com/cocacoran-1/kanji/internal/services"
)

type KanjiHandler struct {
	log     *logger.Logger
	service services.KanjiService
}

func NewKanjiHandler(log *logger.Logger, service services.KanjiService) *KanjiHandler {
	return &KanjiHandler{
		log:     log.With("handler", "KanjiHandler"),
		service: service,
	}
}

// GET /api/kanji
func (h *KanjiHandler) ListKanji(c *gin.Context) {
	ctx := c.Request.Context()
	rows, err := h.service.List(ctx)
	if err != nil {
		h.log.Error("List kanji failed", append(ctxutil.LogFields(ctx), "error", err)...)
		response.RespondAPIError(c, apierr.New(http.StatusInternalServerError, "list_kanji_failed", errors.New("Failed to fetch kanji list")))
		return
	}
	response.RespondOK(c, rows)
}

// GET /api/kanji/:character
func (h *KanjiHandler) GetKanji(c *gin.Context) {
	ctx := c.Request.Context()
	character := c.Param("character")
	row, err := h.service.Get(ctx, character)
	switch {
	case errors.Is(err, pkgerrors.ErrNotFound):
		response.RespondAPIError(c, apierr.New(http.StatusNotFound, "kanji_not_found", errors.New("Kanji not found")))
		return
	case err != nil:
		h.log.Error("Get kanji failed", append(ctxutil.LogFields(ctx), "kanji", character, "error", err)...)
		response.RespondAPIError(c, apierr.New(http.StatusInternalServerError, "get_kanji_failed", fmt.Errorf("Failed to fetch kanji %s", character)))
		return
	}
	response.RespondOK(c, row)
}
