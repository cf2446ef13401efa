package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cjex-salaj/site-api/internal/collection"
	appErrors "github.com/cjex-salaj/site-api/pkg/errors"
	"github.com/cjex-salaj/site-api/pkg/response"
)

// MoveRequest reorders one collection member by a single position.
type MoveRequest struct {
	Index     int    `json:"index" binding:"min=0"`
	Direction string `json:"direction" binding:"required,oneof=up down"`
}

// CollectionHandler serves the shared CRUD + reorder surface for one
// ordered roster collection. Each entity kind registers its own instance
// instead of reimplementing list/add/delete/move.
type CollectionHandler[T any, PT collection.EntityPtr[T]] struct {
	manager *collection.Manager[T, PT]
	name    string
}

// NewCollectionHandler wraps a manager under a response field name.
func NewCollectionHandler[T any, PT collection.EntityPtr[T]](manager *collection.Manager[T, PT], name string) *CollectionHandler[T, PT] {
	return &CollectionHandler[T, PT]{manager: manager, name: name}
}

// List godoc
// @Summary List an ordered collection
// @Tags Collections
// @Produce json
// @Success 200 {object} response.Envelope
func (h *CollectionHandler[T, PT]) List(c *gin.Context) {
	items, err := h.manager.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{h.name: itemViews(items)})
}

// Add godoc
// @Summary Append a record to an ordered collection
// @Tags Collections
// @Accept json
// @Produce json
// @Success 201 {object} response.Envelope
func (h *CollectionHandler[T, PT]) Add(c *gin.Context) {
	entity := new(T)
	if err := c.ShouldBindJSON(entity); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid payload"))
		return
	}

	items, err := h.manager.Add(c.Request.Context(), entity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, gin.H{h.name: itemViews(items)})
}

// Delete godoc
// @Summary Delete a record by stored pathname
// @Tags Collections
// @Produce json
// @Param pathname query string true "Storage path"
// @Success 200 {object} response.Envelope
func (h *CollectionHandler[T, PT]) Delete(c *gin.Context) {
	pathname := strings.TrimSpace(c.Query("pathname"))
	if pathname == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "pathname is required"))
		return
	}
	if !strings.HasPrefix(pathname, h.manager.Prefix()+"/") {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "pathname outside this collection"))
		return
	}
	if err := h.manager.Delete(c.Request.Context(), pathname); err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, gin.H{"success": true})
}

// Move godoc
// @Summary Move a record one position up or down
// @Description Renumbers the whole collection; a partial failure is reported together with the re-fetched state.
// @Tags Collections
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope
func (h *CollectionHandler[T, PT]) Move(c *gin.Context) {
	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid move payload"))
		return
	}

	var items []collection.Item[T]
	var result *collection.RenumberResult
	var err error
	if req.Direction == "up" {
		items, result, err = h.manager.MoveUp(c.Request.Context(), req.Index)
	} else {
		items, result, err = h.manager.MoveDown(c.Request.Context(), req.Index)
	}
	if err != nil && items == nil {
		response.Error(c, err)
		return
	}

	payload := gin.H{h.name: itemViews(items)}
	if result != nil {
		payload["renumber"] = result
	}
	if err != nil {
		// Partial failure: storage state is authoritative, surface both.
		appErr := appErrors.FromError(err)
		c.JSON(appErr.Status, response.Envelope{Data: payload, Error: appErr})
		return
	}
	response.JSON(c, http.StatusOK, payload)
}

// itemViews flattens each entity next to its storage identity, matching
// the record-plus-file shape the dashboard consumes.
func itemViews[T any](items []collection.Item[T]) []map[string]interface{} {
	views := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		view := map[string]interface{}{}
		if raw, err := json.Marshal(item.Entity); err == nil {
			_ = json.Unmarshal(raw, &view)
		}
		view["filename"] = item.Filename
		view["pathname"] = item.Path
		view["url"] = item.URL
		views = append(views, view)
	}
	return views
}
