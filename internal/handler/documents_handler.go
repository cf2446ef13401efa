package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/cjex-salaj/site-api/internal/blob"
	appErrors "github.com/cjex-salaj/site-api/pkg/errors"
	"github.com/cjex-salaj/site-api/pkg/response"
)

// DocumentsHandler lists uploaded document names for the public document
// pages.
type DocumentsHandler struct {
	store blob.Store
}

// NewDocumentsHandler constructs the handler.
func NewDocumentsHandler(store blob.Store) *DocumentsHandler {
	return &DocumentsHandler{store: store}
}

// List godoc
// @Summary File names under a document folder
// @Tags Documents
// @Produce json
// @Param folder query string true "Document folder"
// @Success 200 {object} response.Envelope
// @Router /documents [get]
func (h *DocumentsHandler) List(c *gin.Context) {
	folder := strings.TrimSpace(c.Query("folder"))
	if folder == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "folder is required"))
		return
	}
	if strings.Contains(folder, "..") {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid folder path"))
		return
	}

	objects, err := h.store.List(c.Request.Context(), strings.TrimSuffix(folder, "/")+"/")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read documents"))
		return
	}

	files := make([]string, 0, len(objects))
	for _, obj := range objects {
		files = append(files, obj.Filename)
	}

	response.JSON(c, http.StatusOK, gin.H{"files": files})
}
