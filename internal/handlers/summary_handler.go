package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "dompet/internal/errors"
	"dompet/internal/services"
)

// SummaryHandler serves the dashboard aggregates and the full data snapshot.
type SummaryHandler struct {
	summaryService  services.SummaryServicer
	snapshotService services.SnapshotServicer
}

// NewSummaryHandler creates a new SummaryHandler
func NewSummaryHandler(summaryService services.SummaryServicer, snapshotService services.SnapshotServicer) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService, snapshotService: snapshotService}
}

// GetSummary returns the ledger summary
// @Summary     Get summary
// @Description Total balance, all-time income and expense, savings rate, monthly totals for the last N months and expense per category
// @Tags        summary
// @Produce     json
// @Security    BearerAuth
// @Param       months query int false "Number of calendar months in the monthly series (1-24, default 6)"
// @Success     200 {object} services.Summary "Summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /summary [get]
func (h *SummaryHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	months := services.DefaultSummaryMonths
	if v := c.Query("months"); v != "" {
		months, err = strconv.Atoi(v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "months must be a number"))
			return
		}
	}

	summary, err := h.summaryService.GetSummary(userID, months)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// GetData returns every pocket, transaction and plan of the caller
// @Summary     Get data snapshot
// @Description Full dataset of the authenticated user, for clients that refetch after a failed mutation
// @Tags        summary
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.Snapshot "Snapshot"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /data [get]
func (h *SummaryHandler) GetData(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	snapshot, err := h.snapshotService.GetSnapshot(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, snapshot)
}
