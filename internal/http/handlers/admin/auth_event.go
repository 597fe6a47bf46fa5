package admin

import (
	"strings"

	"github.com/pawhaven/internal/http/handlers/shared"
	"github.com/pawhaven/internal/http/response"
	"github.com/pawhaven/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListAuthEvents 认证审计记录
func (h *Handler) ListAuthEvents(c *gin.Context) {
	page, pageSize := shared.PageQuery(c)
	createdFrom, err := parseTimeValue(c.Query("created_from"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	createdTo, err := parseTimeValue(c.Query("created_to"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	events, total, err := h.AuthEventService.List(repository.AuthEventListFilter{
		Page:        page,
		PageSize:    pageSize,
		ActorType:   strings.TrimSpace(c.Query("actor_type")),
		ActorID:     uint(shared.QueryInt(c, "actor_id", 0)),
		Identifier:  strings.TrimSpace(c.Query("identifier")),
		Event:       strings.TrimSpace(c.Query("event")),
		Result:      strings.TrimSpace(c.Query("result")),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.SuccessWithPage(c, events, response.BuildPagination(page, pageSize, total))
}
