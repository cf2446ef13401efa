package handler

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/cjex-salaj/site-api/internal/blob"
	appErrors "github.com/cjex-salaj/site-api/pkg/errors"
	"github.com/cjex-salaj/site-api/pkg/response"
)

const archivePrefix = "archive"

// ArchiveRequest names the object to move into the archive.
type ArchiveRequest struct {
	Pathname string `json:"pathname" binding:"required"`
}

// ArchiveHandler moves a stored object under the archive prefix. The
// adapter has no rename, so this is a get, a put, then a delete of the
// original; a crash between the last two leaves both copies, never
// neither.
type ArchiveHandler struct {
	store blob.Store
}

// NewArchiveHandler constructs the handler.
func NewArchiveHandler(store blob.Store) *ArchiveHandler {
	return &ArchiveHandler{store: store}
}

// Archive godoc
// @Summary Move an object into the archive folder
// @Tags Archive
// @Accept json
// @Produce json
// @Param payload body ArchiveRequest true "Object to archive"
// @Success 200 {object} response.Envelope
// @Router /archive [post]
func (h *ArchiveHandler) Archive(c *gin.Context) {
	var req ArchiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "pathname is required"))
		return
	}

	ctx := c.Request.Context()
	body, err := h.store.Get(ctx, req.Pathname)
	if err != nil {
		if os.IsNotExist(err) {
			response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "file not found"))
			return
		}
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read file"))
		return
	}

	dest := archivePrefix + "/" + blob.FilenameOf(req.Pathname)
	ref, err := h.store.Put(ctx, dest, body, "")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to archive file"))
		return
	}
	if err := h.store.Delete(ctx, req.Pathname); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove original file"))
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"success": true, "archived": ref})
}
