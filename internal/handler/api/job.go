package api

import (
	"net/http"

	reqdto "shortlet-booking/internal/handler/dto/request"
	"shortlet-booking/internal/pkg/config"
	"shortlet-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// JobHandler exposes the scheduler-driven sweeps. Each run is bounded by
// limit, defaulting to the configured batch size.
type JobHandler struct {
	expiry        commands.ExpiryCommands
	reconcile     commands.ReconcileCommands
	payouts       commands.PayoutCommands
	notifications commands.NotificationCommands
	cfg           config.JobsConfig
}

func NewJobHandler(
	expiry commands.ExpiryCommands,
	reconcile commands.ReconcileCommands,
	payouts commands.PayoutCommands,
	notifications commands.NotificationCommands,
	cfg config.JobsConfig,
) *JobHandler {
	return &JobHandler{
		expiry:        expiry,
		reconcile:     reconcile,
		payouts:       payouts,
		notifications: notifications,
		cfg:           cfg,
	}
}

// @Summary Expire lapsed holds
// @Tags jobs
// @Produce json
// @Param X-Cron-Secret header string true "Scheduler secret"
// @Param limit query int false "Batch size"
// @Success 200 {object} commands.ExpiryReport
// @Failure 401 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /jobs/expire-due [post]
func (h *JobHandler) ExpireDue(c *gin.Context) {
	limit, ok := h.limit(c, h.cfg.ExpireBatchSize)
	if !ok {
		return
	}
	report, err := h.expiry.ExpireDue(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err, "Expiry sweep failed")
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary Reconcile stale payments
// @Tags jobs
// @Produce json
// @Param X-Cron-Secret header string true "Scheduler secret"
// @Param limit query int false "Batch size"
// @Success 200 {object} commands.ReconcileReport
// @Failure 401 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /jobs/payments/reconcile [post]
func (h *JobHandler) ReconcilePayments(c *gin.Context) {
	limit, ok := h.limit(c, h.cfg.ReconcileBatch)
	if !ok {
		return
	}
	report, err := h.reconcile.ReconcileBatch(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err, "Payment reconciliation failed")
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary Resolve eligible payouts
// @Tags jobs
// @Produce json
// @Param X-Cron-Secret header string true "Scheduler secret"
// @Param limit query int false "Batch size"
// @Success 200 {object} commands.PayoutReport
// @Failure 401 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /jobs/payouts/resolve [post]
func (h *JobHandler) ResolvePayouts(c *gin.Context) {
	limit, ok := h.limit(c, h.cfg.PayoutBatchSize)
	if !ok {
		return
	}
	report, err := h.payouts.ResolveEligible(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err, "Payout resolution failed")
		return
	}
	c.JSON(http.StatusOK, report)
}

// @Summary Dispatch queued notifications
// @Tags jobs
// @Produce json
// @Param X-Cron-Secret header string true "Scheduler secret"
// @Param limit query int false "Batch size"
// @Success 200 {object} commands.DispatchReport
// @Failure 401 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /jobs/notifications/dispatch [post]
func (h *JobHandler) DispatchNotifications(c *gin.Context) {
	limit, ok := h.limit(c, h.cfg.NotifyBatchSize)
	if !ok {
		return
	}
	report, err := h.notifications.DispatchQueued(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err, "Notification dispatch failed")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *JobHandler) limit(c *gin.Context, fallback int) (int, bool) {
	var req reqdto.JobRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		abortBadRequest(c, err, "Invalid limit")
		return 0, false
	}
	if req.Limit > 0 {
		return req.Limit, true
	}
	return fallback, true
}
