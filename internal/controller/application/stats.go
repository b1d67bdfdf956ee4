package application

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jobdesk-backend/internal/model"
	"jobdesk-backend/internal/utilities"
)

// StatsHandler computes dashboard statistics fresh from current rows: total
// applications, submissions this calendar month, success rate and a per-status
// breakdown. A user with zero applications gets a success rate of 0, not an
// error.
// @Summary Application statistics for a user
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param userId path string true "User ID"
// @Success 200 {object} model.ApplicationStats
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the owning user"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/user/{userId}/stats [get]
func (ac *ApplicationController) StatsHandler(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	userID := c.Param("userId")
	if user.Role != model.RoleAdmin && user.ID.String() != userID {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "Cannot read another user's statistics",
		})
		return
	}

	stats := model.ApplicationStats{
		ByStatus: map[string]int64{},
	}

	base := func() *gorm.DB {
		return ac.DB.Model(&model.Application{}).Where("user_id = ?", userID)
	}

	if err := base().Count(&stats.Total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to compute statistics",
		})
		return
	}

	// Callers may backfill submitted_at, so the window needs both bounds or a
	// future-dated application would count as this month.
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextMonthStart := monthStart.AddDate(0, 1, 0)
	if err := base().Where("submitted_at >= ? AND submitted_at < ?", monthStart, nextMonthStart).Count(&stats.ThisMonth).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to compute statistics",
		})
		return
	}

	var rows []struct {
		Status string
		Count  int64
	}
	if err := base().Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: "Failed to compute statistics",
		})
		return
	}
	for _, row := range rows {
		stats.ByStatus[row.Status] = row.Count
	}

	if stats.Total > 0 {
		stats.SuccessRate = float64(stats.ByStatus[model.StatusAccepted]) / float64(stats.Total)
	}

	c.JSON(http.StatusOK, stats)
}
