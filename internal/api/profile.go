package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chopsmo/chopsmo-go/backend/internal/middleware"
	"github.com/chopsmo/chopsmo-go/backend/internal/models"
	"github.com/chopsmo/chopsmo-go/backend/internal/service"
)

// ProfileHandler manages the authenticated user's dietary preferences
// and pantry.
type ProfileHandler struct {
	db            *gorm.DB
	pantryService service.IPantryService
	authService   service.IAuthService
}

func NewProfileHandler(db *gorm.DB, pantryService service.IPantryService, authService service.IAuthService) *ProfileHandler {
	return &ProfileHandler{
		db:            db,
		pantryService: pantryService,
		authService:   authService,
	}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	profile.Use(middleware.AuthMiddleware(h.authService))
	{
		profile.GET("/preferences", h.GetPreferences)
		profile.PUT("/preferences", h.UpdatePreferences)
		profile.DELETE("/preferences", h.DeletePreferences)
		profile.GET("/pantry", h.GetPantry)
		profile.PUT("/pantry", h.UpdatePantry)
	}
}

func (h *ProfileHandler) GetPreferences(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var pref models.DietaryPreference
	err := h.db.WithContext(c.Request.Context()).Where("user_id = ?", *userID).First(&pref).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch preferences"})
		return
	}

	tokens := service.SplitPreferenceText(pref.Preferences)
	sets := service.ClassifyPreferences(tokens)

	c.JSON(http.StatusOK, gin.H{
		"preferences": tokens,
		"classified": gin.H{
			"positive":  sets.Positive,
			"excluded":  sets.Excluded,
			"allergies": sets.Allergies,
		},
	})
}

func (h *ProfileHandler) UpdatePreferences(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req PreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	text := strings.Join(req.Preferences, ",")

	var pref models.DietaryPreference
	err := h.db.WithContext(c.Request.Context()).Where("user_id = ?", *userID).First(&pref).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		pref = models.DietaryPreference{UserID: *userID, Preferences: text}
		err = h.db.WithContext(c.Request.Context()).Create(&pref).Error
	case err == nil:
		pref.Preferences = text
		err = h.db.WithContext(c.Request.Context()).Save(&pref).Error
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update preferences"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"preferences": req.Preferences})
}

func (h *ProfileHandler) DeletePreferences(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	result := h.db.WithContext(c.Request.Context()).Where("user_id = ?", *userID).Delete(&models.DietaryPreference{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete preferences"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Dietary preferences not found."})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

func (h *ProfileHandler) GetPantry(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	ingredients, err := h.pantryService.GetPantry(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pantry"})
		return
	}
	if ingredients == nil {
		ingredients = []string{}
	}

	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}

func (h *ProfileHandler) UpdatePantry(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req PantryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pantry, err := h.pantryService.SetPantry(c.Request.Context(), *userID, req.Ingredients)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update pantry"})
		return
	}

	c.JSON(http.StatusOK, pantry)
}
