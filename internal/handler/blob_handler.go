package handler

import (
	"context"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cjex-salaj/site-api/internal/blob"
	"github.com/cjex-salaj/site-api/internal/service"
	appErrors "github.com/cjex-salaj/site-api/pkg/errors"
	"github.com/cjex-salaj/site-api/pkg/response"
)

type usageReporter interface {
	Report(ctx context.Context) (*service.UsageReport, error)
}

// BlobHandler exposes the primitive storage operations consumed by the
// dashboard: list-by-folder, raw upload, delete by path or URL, and the
// informational usage report.
type BlobHandler struct {
	store         blob.Store
	usage         usageReporter
	metrics       *service.MetricsService
	publicBaseURL string
	maxUploadSize int64
}

// NewBlobHandler constructs the handler. metrics may be nil.
func NewBlobHandler(store blob.Store, usage usageReporter, metrics *service.MetricsService, publicBaseURL string, maxUploadSize int64) *BlobHandler {
	if maxUploadSize <= 0 {
		maxUploadSize = 25 * 1024 * 1024
	}
	return &BlobHandler{
		store:         store,
		usage:         usage,
		metrics:       metrics,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		maxUploadSize: maxUploadSize,
	}
}

func (h *BlobHandler) observe(operation string, err error) {
	if h.metrics != nil {
		h.metrics.ObserveBlobOperation(operation, err)
	}
}

// List godoc
// @Summary List stored objects under a folder
// @Tags Blob
// @Produce json
// @Param folder query string true "Storage prefix"
// @Success 200 {object} response.Envelope
// @Router /blob/list [get]
func (h *BlobHandler) List(c *gin.Context) {
	folder := strings.TrimSpace(c.Query("folder"))
	if folder == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "folder is required"))
		return
	}

	objects, err := h.store.List(c.Request.Context(), strings.TrimSuffix(folder, "/")+"/")
	h.observe("list", err)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list files"))
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"files": objects})
}

// Upload godoc
// @Summary Upload raw bytes to a storage path
// @Description Default collision policy is reject-if-exists; pass overwrite=true to replace, or unique=true to append a random suffix.
// @Tags Blob
// @Accept octet-stream
// @Produce json
// @Param filename query string true "Target file name"
// @Param folder query string false "Storage prefix (default documents)"
// @Param overwrite query bool false "Overwrite an existing object"
// @Param unique query bool false "Append a random suffix to the file name"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /blob/upload [post]
func (h *BlobHandler) Upload(c *gin.Context) {
	filename := strings.TrimSpace(c.Query("filename"))
	if filename == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "filename is required"))
		return
	}
	folder := strings.TrimSpace(c.Query("folder"))
	if folder == "" {
		folder = "documents"
	}
	overwrite := c.Query("overwrite") == "true"
	unique := c.Query("unique") == "true"
	if overwrite && unique {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "overwrite and unique are mutually exclusive"))
		return
	}

	body, err := io.ReadAll(io.LimitReader(c.Request.Body, h.maxUploadSize+1))
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload body"))
		return
	}
	if len(body) == 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "upload body is empty"))
		return
	}
	if int64(len(body)) > h.maxUploadSize {
		response.Error(c, appErrors.ErrPayloadTooLarge)
		return
	}

	if unique {
		filename = randomizeFilename(filename)
	}
	blobPath := strings.TrimSuffix(folder, "/") + "/" + filename

	if !overwrite && !unique {
		exists, err := h.store.Exists(c.Request.Context(), blobPath)
		h.observe("exists", err)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check for existing file"))
			return
		}
		if exists {
			response.Error(c, appErrors.Clone(appErrors.ErrConflict, "a file with this name already exists"))
			return
		}
	}

	contentType := c.GetHeader("Content-Type")
	ref, err := h.store.Put(c.Request.Context(), blobPath, body, contentType)
	h.observe("put", err)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to upload file"))
		return
	}

	response.JSON(c, http.StatusOK, ref)
}

// Delete godoc
// @Summary Delete an object by storage path or public URL
// @Tags Blob
// @Produce json
// @Param pathname query string false "Storage path"
// @Param url query string false "Public URL"
// @Success 200 {object} response.Envelope
// @Router /blob/delete [delete]
func (h *BlobHandler) Delete(c *gin.Context) {
	pathname := strings.TrimSpace(c.Query("pathname"))
	if pathname == "" {
		if rawURL := strings.TrimSpace(c.Query("url")); rawURL != "" {
			pathname = blob.PathFromURL(rawURL, h.publicBaseURL)
		}
	}
	if pathname == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "pathname or url is required"))
		return
	}

	err := h.store.Delete(c.Request.Context(), pathname)
	h.observe("delete", err)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete file"))
		return
	}

	response.JSON(c, http.StatusOK, gin.H{"success": true})
}

// Usage godoc
// @Summary Aggregate storage usage report
// @Tags Blob
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /blob/usage [get]
func (h *BlobHandler) Usage(c *gin.Context) {
	report, err := h.usage.Report(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	if h.metrics != nil {
		h.metrics.SetStorageUsage(report.UsedSize, report.FilesCount)
	}
	response.JSON(c, http.StatusOK, report)
}

// randomizeFilename appends a short random token before the extension so
// repeated uploads of the same name never collide.
func randomizeFilename(filename string) string {
	ext := path.Ext(filename)
	base := strings.TrimSuffix(filename, ext)
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return base + "_" + suffix + ext
}
