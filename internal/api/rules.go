package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/chopsmo/chopsmo-go/backend/internal/middleware"
	"github.com/chopsmo/chopsmo-go/backend/internal/service"
)

type RuleHandler struct {
	ruleService service.IDietaryRuleService
	authService service.IAuthService
}

func NewRuleHandler(ruleService service.IDietaryRuleService, authService service.IAuthService) *RuleHandler {
	return &RuleHandler{
		ruleService: ruleService,
		authService: authService,
	}
}

func (h *RuleHandler) RegisterRoutes(router *gin.RouterGroup) {
	rules := router.Group("/rules")
	rules.Use(middleware.OptionalAuthMiddleware(h.authService))
	{
		rules.GET("", h.ListRules)
		rules.GET("/:id", h.GetRule)
	}
}

func (h *RuleHandler) ListRules(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	rules, err := h.ruleService.ListRules(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rules"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"rules": rules})
}

func (h *RuleHandler) GetRule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rule id"})
		return
	}

	rule, err := h.ruleService.GetRule(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrRuleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Dietary rule not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rule"})
		return
	}
	c.JSON(http.StatusOK, rule)
}
