package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cjex-salaj/site-api/internal/blob"
	appErrors "github.com/cjex-salaj/site-api/pkg/errors"
	"github.com/cjex-salaj/site-api/pkg/response"
)

const departmentsPrefix = "catedre-photos"

// departmentOrder maps fixed photo filenames to their display labels.
// The display order is this table's order, not a stored field.
var departmentOrder = []struct {
	Filename string
	Label    string
}{
	{"informatica.jpg", "INFORMATICĂ"},
	{"matematica.jpg", "MATEMATICĂ"},
	{"limba-romana.jpg", "LIMBA ROMANĂ"},
	{"stiinte.jpg", "ȘTIINȚE"},
	{"limbi-moderne.jpg", "LIMBI MODERNE"},
	{"istorie-socio-arte-sport.jpg", "ISTORIE SOCIO ARTE SPORT"},
	{"personal-auxiliar.jpg", "PERSONAL AUXILIAR"},
}

// DepartmentPhoto is one department card on the public site.
type DepartmentPhoto struct {
	blob.ObjectInfo
	Label string `json:"label"`
}

// DepartmentsHandler serves the fixed-order department photo wall.
type DepartmentsHandler struct {
	store blob.Store
}

// NewDepartmentsHandler constructs the handler.
func NewDepartmentsHandler(store blob.Store) *DepartmentsHandler {
	return &DepartmentsHandler{store: store}
}

// List godoc
// @Summary Department photos in display order
// @Tags Departments
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /departments [get]
func (h *DepartmentsHandler) List(c *gin.Context) {
	objects, err := h.store.List(c.Request.Context(), departmentsPrefix+"/")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list department photos"))
		return
	}

	byName := make(map[string]blob.ObjectInfo, len(objects))
	for _, obj := range objects {
		byName[obj.Filename] = obj
	}

	photos := make([]DepartmentPhoto, 0, len(departmentOrder))
	for _, dept := range departmentOrder {
		if obj, ok := byName[dept.Filename]; ok {
			photos = append(photos, DepartmentPhoto{ObjectInfo: obj, Label: dept.Label})
		}
	}

	response.JSON(c, http.StatusOK, gin.H{"photos": photos})
}
