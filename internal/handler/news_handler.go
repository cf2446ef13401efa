package handler

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/cjex-salaj/site-api/internal/blob"
	"github.com/cjex-salaj/site-api/internal/collection"
	"github.com/cjex-salaj/site-api/internal/models"
	appErrors "github.com/cjex-salaj/site-api/pkg/errors"
	"github.com/cjex-salaj/site-api/pkg/response"
)

// NewsHandler serves the public news surface: a lightweight listing
// projection and full article retrieval by derived file key.
type NewsHandler struct {
	manager *collection.Manager[models.NewsArticle, *models.NewsArticle]
	codec   collection.Codec[models.NewsArticle]
	store   blob.Store
}

// NewNewsHandler constructs the handler.
func NewNewsHandler(manager *collection.Manager[models.NewsArticle, *models.NewsArticle], codec collection.Codec[models.NewsArticle], store blob.Store) *NewsHandler {
	return &NewsHandler{manager: manager, codec: codec, store: store}
}

// List godoc
// @Summary List published news
// @Tags News
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /news [get]
func (h *NewsHandler) List(c *gin.Context) {
	items, err := h.manager.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	newsItems := make([]models.NewsListItem, 0, len(items))
	for _, item := range items {
		id := collection.SanitizeKey(item.Entity.Title)
		newsItems = append(newsItems, models.NewsListItem{
			Title: item.Entity.Title,
			Date:  item.Entity.PostDate,
			Image: item.Entity.Thumbnail,
			Link:  "/anunt?id=" + id,
		})
	}

	response.JSON(c, http.StatusOK, gin.H{"newsItems": newsItems})
}

// Get godoc
// @Summary Fetch one full article by id
// @Tags News
// @Produce json
// @Param id path string true "Article file key"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /news/{id} [get]
func (h *NewsHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" || collection.SanitizeKey(id) != id {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid article id"))
		return
	}

	path := h.manager.Prefix() + "/" + id + ".json"
	body, err := h.store.Get(c.Request.Context(), path)
	if err != nil {
		if os.IsNotExist(err) {
			response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "news article not found"))
			return
		}
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch news article"))
		return
	}

	article, err := h.codec.Decode(body)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode news article"))
		return
	}

	response.JSON(c, http.StatusOK, gin.H{h.codec.Wrapper(): article})
}
