package admin

import (
	"github.com/pawhaven/internal/http/handlers/shared"
	"github.com/pawhaven/internal/http/response"
	"github.com/pawhaven/internal/service"

	"github.com/gin-gonic/gin"
)

// CollectionRequest 专题创建/更新，成员字段缺省时保持原值
type CollectionRequest struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	BackgroundImage string `json:"backgroundImage"`
	ProductIDs      []uint `json:"productIds"`
	PuppyIDs        []uint `json:"puppyIds"`
	ServiceIDs      []uint `json:"serviceIds"`
}

func (r CollectionRequest) toInput() service.CollectionInput {
	return service.CollectionInput{
		Name:            r.Name,
		Description:     r.Description,
		BackgroundImage: r.BackgroundImage,
		ProductIDs:      r.ProductIDs,
		PuppyIDs:        r.PuppyIDs,
		ServiceIDs:      r.ServiceIDs,
	}
}

// ListCollections 专题列表
func (h *Handler) ListCollections(c *gin.Context) {
	collections, err := h.CollectionService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, collections)
}

// CreateCollection 新建专题
func (h *Handler) CreateCollection(c *gin.Context) {
	var req CollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	collection, err := h.CollectionService.Create(req.toInput())
	if err != nil {
		respondMapped(c, err, catalogErrorRules, "error.internal")
		return
	}
	response.Created(c, "", collection)
}

// UpdateCollection 更新专题
func (h *Handler) UpdateCollection(c *gin.Context) {
	id, ok := shared.ParamID(c, "id")
	if !ok {
		return
	}
	var req CollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	collection, err := h.CollectionService.Update(id, req.toInput())
	if err != nil {
		respondMapped(c, err, catalogErrorRules, "error.internal")
		return
	}
	response.Success(c, collection)
}

// DeleteCollection 删除专题
func (h *Handler) DeleteCollection(c *gin.Context) {
	id, ok := shared.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.CollectionService.Delete(id); err != nil {
		respondMapped(c, err, catalogErrorRules, "error.internal")
		return
	}
	respondDeleted(c)
}
