package admin

import (
	"strings"

	"github.com/pawhaven/internal/http/handlers/shared"
	"github.com/pawhaven/internal/http/response"
	"github.com/pawhaven/internal/i18n"
	"github.com/pawhaven/internal/models"
	"github.com/pawhaven/internal/repository"
	"github.com/pawhaven/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductRequest 商品创建/更新
type ProductRequest struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Category    string       `json:"category"`
	Brand       string       `json:"brand"`
	Price       models.Money `json:"price"`
	Stock       int          `json:"stock"`
	Images      []string     `json:"images"`
	IsActive    *bool        `json:"isActive"`
}

func (r ProductRequest) toInput() service.ProductInput {
	return service.ProductInput{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Brand:       r.Brand,
		Price:       r.Price,
		Stock:       r.Stock,
		Images:      r.Images,
		IsActive:    r.IsActive,
	}
}

// ServiceRequest 服务创建/更新
type ServiceRequest struct {
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	Category        string       `json:"category"`
	Price           models.Money `json:"price"`
	DurationMinutes int          `json:"durationMinutes"`
	Images          []string     `json:"images"`
	IsActive        *bool        `json:"isActive"`
}

func (r ServiceRequest) toInput() service.OfferingInput {
	return service.OfferingInput{
		Name:            r.Name,
		Description:     r.Description,
		Category:        r.Category,
		Price:           r.Price,
		DurationMinutes: r.DurationMinutes,
		Images:          r.Images,
		IsActive:        r.IsActive,
	}
}

// PuppyRequest 幼犬创建/更新
type PuppyRequest struct {
	Name        string       `json:"name"`
	Breed       string       `json:"breed"`
	AgeInWeeks  int          `json:"ageInWeeks"`
	Gender      string       `json:"gender"`
	Price       models.Money `json:"price"`
	Description string       `json:"description"`
	Images      []string     `json:"images"`
	Vaccinated  bool         `json:"vaccinated"`
	Dewormed    bool         `json:"dewormed"`
	Trained     bool         `json:"trained"`
	BestSeller  *bool        `json:"bestSeller"`
	IsAvailable *bool        `json:"isAvailable"`
}

func (r PuppyRequest) toInput() service.PuppyInput {
	return service.PuppyInput{
		Name:        r.Name,
		Breed:       r.Breed,
		AgeInWeeks:  r.AgeInWeeks,
		Gender:      r.Gender,
		Price:       r.Price,
		Description: r.Description,
		Images:      r.Images,
		Vaccinated:  r.Vaccinated,
		Dewormed:    r.Dewormed,
		Trained:     r.Trained,
		BestSeller:  r.BestSeller,
		IsAvailable: r.IsAvailable,
	}
}

// BestSellerRequest 热销标记
type BestSellerRequest struct {
	BestSeller *bool `json:"bestSeller" binding:"required"`
}

func respondDeleted(c *gin.Context) {
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "success.deleted"), nil)
}

// ListProducts 商品列表（含下架）
func (h *Handler) ListProducts(c *gin.Context) {
	page, pageSize := shared.PageQuery(c)
	products, total, err := h.ProductService.List(repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Category: strings.TrimSpace(c.Query("category")),
		Search:   strings.TrimSpace(c.Query("search")),
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
	product, err := h.ProductService.Get(id, false)
	if err != nil {
		respondMapped(c, err, catalogErrorRules, "error.internal")
		return
	}
	response.Success(c, product)
}

// CreateProduct 新建商品
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	product, err := h.ProductService.Create(req.toInput())
	if err != nil {
		respondMapped(c, err, catalogErrorRules, "error.internal")
		return
	}
	response.Created(c, "", product)
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := shared.ParamID(c, "id")
	if !ok {
		return
	}
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	product, err := h.ProductService.Update(id, req.toInput())
	if err != nil {
		respondMapped(c, err, catalogErrorRules, "error.internal")
		return
	}
	response.Success(c, product)
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := shared.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.ProductService.Delete(id); err != nil {
		respondMapped(c, err, catalogErrorRules, "error.internal")
		return
	}
	respondDeleted(c)
}

// ListServices 服务列表（含停用）
func (h *Handler) ListServices(c *gin.Context) {
	page, pageSize := shared.PageQuery(c)
	services, total, err := h.OfferingService.List(repository.ServiceListFilter{
		Page:     page,
		PageSize: pageSize,
		Category: strings.TrimSpace(c.Query("category")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, services, response.BuildPagination(page, pageSize, total))
}

// CreateService 新建服务
func (h *Handler) CreateService(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	svc, err := h.OfferingService.Create(req.toInput())
	if err != nil {
		respondMapped(c, err, catalogErrorRules, "error.internal")
		return
	}
	response.Created(c, "", svc)
}

// UpdateService 更新服务
func (h *Handler) UpdateService(c *gin.Context) {
	id, ok := shared.ParamID(c, "id")
	if !ok {
		return
	}
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	svc, err := h.OfferingService.Update(id, req.toInput())
	if err != nil {
		respondMapped(c, err, catalogErrorRules, "error.internal")
		return
	}
	response.Success(c, svc)
}

// DeleteService 删除服务
func (h *Handler) DeleteService(c *gin.Context) {
	id, ok := shared.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.OfferingService.Delete(id); err != nil {
		respondMapped(c, err, catalogErrorRules, "error.internal")
		return
	}
	respondDeleted(c)
}

// ListPuppies 幼犬列表（含已售）
func (h *Handler) ListPuppies(c *gin.Context) {
	page, pageSize := shared.PageQuery(c)
	puppies, total, err := h.PuppyService.List(repository.PuppyListFilter{
		Page:          page,
		PageSize:      pageSize,
		Breed:         strings.TrimSpace(c.Query("breed")),
		Search:        strings.TrimSpace(c.Query("search")),
		OnlyAvailable: shared.QueryBool(c, "available"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, puppies, response.BuildPagination(page, pageSize, total))
}

// CreatePuppy 新建幼犬
func (h *Handler) CreatePuppy(c *gin.Context) {
	var req PuppyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	puppy, err := h.PuppyService.Create(c.Request.Context(), req.toInput())
	if err != nil {
		respondMapped(c, err, catalogErrorRules, "error.internal")
		return
	}
	response.Created(c, "", puppy)
}

// UpdatePuppy 更新幼犬，唯一可以恢复 is_available 的入口
func (h *Handler) UpdatePuppy(c *gin.Context) {
	id, ok := shared.ParamID(c, "id")
	if !ok {
		return
	}
	var req PuppyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	puppy, err := h.PuppyService.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		respondMapped(c, err, catalogErrorRules, "error.internal")
		return
	}
	response.Success(c, puppy)
}

// SetPuppyBestSeller 切换热销标记
func (h *Handler) SetPuppyBestSeller(c *gin.Context) {
	id, ok := shared.ParamID(c, "id")
	if !ok {
		return
	}
	var req BestSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	puppy, err := h.PuppyService.SetBestSeller(c.Request.Context(), id, *req.BestSeller)
	if err != nil {
		respondMapped(c, err, catalogErrorRules, "error.internal")
		return
	}
	response.Success(c, puppy)
}

// DeletePuppy 删除幼犬
func (h *Handler) DeletePuppy(c *gin.Context) {
	id, ok := shared.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.PuppyService.Delete(c.Request.Context(), id); err != nil {
		respondMapped(c, err, catalogErrorRules, "error.internal")
		return
	}
	respondDeleted(c)
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
