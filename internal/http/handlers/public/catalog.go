package public

import (
	"strings"

	"github.com/pawhaven/internal/http/handlers/shared"
	"github.com/pawhaven/internal/http/response"
	"github.com/pawhaven/internal/repository"

	"github.com/gin-gonic/gin"
)

// GetProducts 上架商品列表
func (h *Handler) GetProducts(c *gin.Context) {
	page, pageSize := shared.PageQuery(c)
	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:       page,
		PageSize:   pageSize,
		Category:   strings.TrimSpace(c.Query("category")),
		Search:     strings.TrimSpace(c.Query("search")),
		OnlyActive: true,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, products, response.BuildPagination(page, pageSize, total))
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := shared.ParamID(c, "id")
	if !ok {
		return
	}
	product, err := h.ProductService.Get(id, true)
	if err != nil {
		respondMapped(c, err, catalogErrorRules, "error.internal")
		return
	}
	response.Success(c, product)
}

// GetServices 服务列表，active=true 时只返回可预约的
func (h *Handler) GetServices(c *gin.Context) {
	page, pageSize := shared.PageQuery(c)
	services, total, err := h.OfferingService.List(repository.ServiceListFilter{
		Page:       page,
		PageSize:   pageSize,
		Category:   strings.TrimSpace(c.Query("category")),
		OnlyActive: shared.QueryBool(c, "active"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, services, response.BuildPagination(page, pageSize, total))
}

// GetService 服务详情
func (h *Handler) GetService(c *gin.Context) {
	id, ok := shared.ParamID(c, "id")
	if !ok {
		return
	}
	svc, err := h.OfferingService.Get(id, false)
	if err != nil {
		respondMapped(c, err, catalogErrorRules, "error.internal")
		return
	}
	response.Success(c, svc)
}

// GetPuppies 幼犬列表，available=true 时只返回未售出的
func (h *Handler) GetPuppies(c *gin.Context) {
	page, pageSize := shared.PageQuery(c)
	puppies, total, err := h.PuppyService.List(repository.PuppyListFilter{
		Page:           page,
		PageSize:       pageSize,
		Breed:          strings.TrimSpace(c.Query("breed")),
		Search:         strings.TrimSpace(c.Query("search")),
		OnlyAvailable:  shared.QueryBool(c, "available"),
		OnlyBestSeller: shared.QueryBool(c, "best_seller"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, puppies, response.BuildPagination(page, pageSize, total))
}

// GetBestSellers 热销幼犬
func (h *Handler) GetBestSellers(c *gin.Context) {
	puppies, err := h.PuppyService.BestSellers(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, puppies)
}

// GetPuppy 幼犬详情
func (h *Handler) GetPuppy(c *gin.Context) {
	id, ok := shared.ParamID(c, "id")
	if !ok {
		return
	}
	puppy, err := h.PuppyService.Get(id)
	if err != nil {
		respondMapped(c, err, catalogErrorRules, "error.internal")
		return
	}
	response.Success(c, puppy)
}

// GetCollections 专题列表
func (h *Handler) GetCollections(c *gin.Context) {
	collections, err := h.CollectionService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, collections)
}

// GetCollection 按 key 获取专题
func (h *Handler) GetCollection(c *gin.Context) {
	collection, err := h.CollectionService.GetByKey(c.Param("key"))
	if err != nil {
		respondMapped(c, err, catalogErrorRules, "error.internal")
		return
	}
	response.Success(c, collection)
}
