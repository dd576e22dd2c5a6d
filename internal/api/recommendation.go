package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chopsmo/chopsmo-go/backend/internal/middleware"
	"github.com/chopsmo/chopsmo-go/backend/internal/models"
	"github.com/chopsmo/chopsmo-go/backend/internal/service"
)

type RecommendationHandler struct {
	db              *gorm.DB
	recommendations service.IRecommendationService
	authService     service.IAuthService
	rateLimiter     *middleware.RateLimiter
}

func NewRecommendationHandler(db *gorm.DB, recommendations service.IRecommendationService, authService service.IAuthService) *RecommendationHandler {
	return NewRecommendationHandlerWithRateLimit(db, recommendations, authService, nil)
}

// NewRecommendationHandlerWithRateLimit creates a recommendation handler
// that throttles requests. A nil limiter disables throttling.
func NewRecommendationHandlerWithRateLimit(db *gorm.DB, recommendations service.IRecommendationService, authService service.IAuthService, rateLimiter *middleware.RateLimiter) *RecommendationHandler {
	return &RecommendationHandler{
		db:              db,
		recommendations: recommendations,
		authService:     authService,
		rateLimiter:     rateLimiter,
	}
}

func (h *RecommendationHandler) RegisterRoutes(router *gin.RouterGroup) {
	// Optional auth runs first so the limiter keys on user_id rather
	// than falling back to the client IP for signed-in callers.
	chain := []gin.HandlerFunc{middleware.OptionalAuthMiddleware(h.authService)}
	if h.rateLimiter != nil {
		chain = append(chain, h.rateLimiter.RateLimitMiddleware())
	}
	chain = append(chain, h.Recommend)
	router.POST("/recommendations", chain...)
}

// Recommend runs the recommendation engine for the caller. Preferences
// default to the user's stored tokens when the request carries none;
// the region defaults to the user's profile region.
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	var req RecommendationAPIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	engineReq := service.RecommendationRequest{
		Preferences:  req.Preferences,
		Region:       req.Region,
		MealType:     req.MealType,
		AssumeBasics: true,
	}
	if req.AssumeBasics != nil {
		engineReq.AssumeBasics = *req.AssumeBasics
	}

	if req.RuleID != "" {
		ruleID, err := uuid.Parse(req.RuleID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rule id"})
			return
		}
		engineReq.RuleID = &ruleID
	}

	userID := middleware.UserIDFromContext(c)
	engineReq.UserID = userID
	if userID != nil {
		if engineReq.Region == "" {
			if user, err := h.authService.GetUser(c.Request.Context(), *userID); err == nil {
				engineReq.Region = user.Region
			}
		}
		if len(engineReq.Preferences) == 0 {
			var pref models.DietaryPreference
			if err := h.db.WithContext(c.Request.Context()).Where("user_id = ?", *userID).First(&pref).Error; err == nil {
				engineReq.Preferences = service.SplitPreferenceText(pref.Preferences)
			}
		}
	}

	result, err := h.recommendations.Recommend(c.Request.Context(), engineReq)
	if err != nil {
		if errors.Is(err, service.ErrRuleNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Dietary rule not found."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute recommendations"})
		return
	}

	c.JSON(http.StatusOK, result)
}
