package handler

import (
	"net/http"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/cjex-salaj/site-api/internal/blob"
	"github.com/cjex-salaj/site-api/internal/collection"
	"github.com/cjex-salaj/site-api/internal/models"
	appErrors "github.com/cjex-salaj/site-api/pkg/errors"
	"github.com/cjex-salaj/site-api/pkg/response"
)

const (
	navLinksPrefix   = "navbar-links"
	navLinksBaseName = "navbar-config"
)

// NavLinksHandler manages the singleton navbar configuration. Config
// files are written with a randomized suffix, so reads pick the most
// recently uploaded matching object; a missing config is served as empty
// links rather than an error.
type NavLinksHandler struct {
	store blob.Store
	codec collection.Codec[models.NavLinks]
}

// NewNavLinksHandler constructs the handler.
func NewNavLinksHandler(store blob.Store, codec collection.Codec[models.NavLinks]) *NavLinksHandler {
	return &NavLinksHandler{store: store, codec: codec}
}

// Get godoc
// @Summary Current navbar link configuration
// @Tags NavLinks
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /navbar-links [get]
func (h *NavLinksHandler) Get(c *gin.Context) {
	links, err := h.current(c)
	if err != nil {
		// Absent or unreadable config degrades to empty links.
		links = &models.NavLinks{}
	}
	response.JSON(c, http.StatusOK, links)
}

// Update godoc
// @Summary Replace the navbar link configuration
// @Tags NavLinks
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /navbar-links [put]
func (h *NavLinksHandler) Update(c *gin.Context) {
	var links models.NavLinks
	if err := c.ShouldBindJSON(&links); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid navbar config payload"))
		return
	}

	body, err := h.codec.Encode(&links)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode navbar config"))
		return
	}

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	path := navLinksPrefix + "/" + navLinksBaseName + "_" + suffix + ".json"
	if _, err := h.store.Put(c.Request.Context(), path, body, "application/json"); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store navbar config"))
		return
	}

	response.JSON(c, http.StatusOK, links)
}

func (h *NavLinksHandler) current(c *gin.Context) (*models.NavLinks, error) {
	objects, err := h.store.List(c.Request.Context(), navLinksPrefix+"/")
	if err != nil {
		return nil, err
	}

	configs := objects[:0:0]
	for _, obj := range objects {
		if strings.Contains(obj.Path, navLinksBaseName) {
			configs = append(configs, obj)
		}
	}
	if len(configs) == 0 {
		return nil, appErrors.ErrNotFound
	}
	sort.Slice(configs, func(i, j int) bool { return configs[i].UploadedAt.After(configs[j].UploadedAt) })

	body, err := h.store.Get(c.Request.Context(), configs[0].Path)
	if err != nil {
		return nil, err
	}
	return h.codec.Decode(body)
}
