package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cuentaclara/cuentaclara-backend/internal/apperrors"
	portssvc "github.com/cuentaclara/cuentaclara-backend/internal/core/ports/services"
	"github.com/cuentaclara/cuentaclara-backend/internal/dto"
	"github.com/cuentaclara/cuentaclara-backend/internal/middleware"
)

// journalHandler handles HTTP requests for the journal entry lifecycle.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: journalService,
	}
}

// requestScope resolves the tenant and user for the current request, writing
// the error response itself when either is missing.
func requestScope(c *gin.Context) (tenantID, userID string, ok bool) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, err := middleware.RequireTenantID(c.Request.Context())
	if err != nil {
		logger.Warn("Tenant ID not found in context")
		c.JSON(http.StatusForbidden, gin.H{"error": "No tenant context"})
		return "", "", false
	}
	userID, found := middleware.GetUserIDFromCtx(c.Request.Context())
	if !found {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", "", false
	}
	return tenantID, userID, true
}

// createEntry godoc
// @Summary Create a manual journal entry
// @Description Validates and persists a balanced journal entry in DRAFT status
// @Tags journal
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateJournalEntryRequest true "Journal entry"
// @Success 201 {object} dto.JournalEntryResponse "Created entry"
// @Failure 400 {object} map[string]string "Invalid or unbalanced entry"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create entry"
// @Router /journal-entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	req := dto.CreateJournalEntryRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), tenantID, req, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating journal entry", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create journal entry in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create journal entry"})
		}
		return
	}

	logger.Info("Journal entry created", slog.String("entry_id", entry.EntryID), slog.Int64("entry_number", entry.EntryNumber))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// postEntry godoc
// @Summary Post a draft journal entry
// @Description Transitions a DRAFT entry to POSTED, making it visible to reports
// @Tags journal
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse "Posted entry"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not in DRAFT status"
// @Failure 500 {object} map[string]string "Failed to post entry"
// @Router /journal-entries/{entryID}/post [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	tenantID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	entry, err := h.journalService.PostEntry(c.Request.Context(), tenantID, entryID, userID)
	if err != nil {
		h.writeTransitionError(c, logger, err, entryID, "post")
		return
	}

	logger.Info("Journal entry posted", slog.String("entry_id", entryID))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// voidEntry godoc
// @Summary Void a posted journal entry
// @Description Transitions a POSTED entry to VOIDED, recording the reason. Lines are kept for audit.
// @Tags journal
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   void body dto.VoidJournalEntryRequest true "Void reason"
// @Success 200 {object} dto.JournalEntryResponse "Voided entry"
// @Failure 400 {object} map[string]string "Reason missing"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not in POSTED status"
// @Failure 500 {object} map[string]string "Failed to void entry"
// @Router /journal-entries/{entryID}/void [post]
func (h *journalHandler) voidEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	tenantID, userID, ok := requestScope(c)
	if !ok {
		return
	}

	req := dto.VoidJournalEntryRequest{}
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for voidEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	entry, err := h.journalService.VoidEntry(c.Request.Context(), tenantID, entryID, req.Reason, userID)
	if err != nil {
		h.writeTransitionError(c, logger, err, entryID, "void")
		return
	}

	logger.Info("Journal entry voided", slog.String("entry_id", entryID))
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Retrieves a journal entry with its lines
// @Tags journal
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse "Journal entry"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve entry"
// @Router /journal-entries/{entryID} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}

	entry, err := h.journalService.GetEntry(c.Request.Context(), tenantID, entryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Journal entry not found", slog.String("entry_id", entryID))
			c.JSON(http.StatusNotFound, gin.H{"error": "Journal entry not found"})
			return
		}
		logger.Error("Failed to get journal entry from service", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve journal entry"})
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List posted journal entries
// @Description Lists POSTED entries dated within [from, to]
// @Tags journal
// @Produce  json
// @Param   from query string true "Window start (YYYY-MM-DD)"
// @Param   to query string true "Window end (YYYY-MM-DD)"
// @Success 200 {array} dto.JournalEntryResponse "Posted entries"
// @Failure 400 {object} map[string]string "Invalid window"
// @Failure 500 {object} map[string]string "Failed to list entries"
// @Router /journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}

	query := dto.DateRangeQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Error("Failed to bind query for listEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	entries, err := h.journalService.ListEntries(c.Request.Context(), tenantID, query.From, query.To)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error listing journal entries", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("Failed to list journal entries from service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list journal entries"})
		return
	}

	responses := make([]dto.JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = dto.ToJournalEntryResponse(&entries[i])
	}
	c.JSON(http.StatusOK, responses)
}

// writeTransitionError maps lifecycle errors onto HTTP statuses.
func (h *journalHandler) writeTransitionError(c *gin.Context, logger *slog.Logger, err error, entryID, action string) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Journal entry not found", slog.String("entry_id", entryID))
		c.JSON(http.StatusNotFound, gin.H{"error": "Journal entry not found"})
	case errors.Is(err, apperrors.ErrInvalidState):
		logger.Warn("Invalid status transition", slog.String("entry_id", entryID), slog.String("action", action))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error on transition", slog.String("entry_id", entryID), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logger.Error("Failed to "+action+" journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action + " journal entry"})
	}
}

// registerJournalRoutes registers the journal entry lifecycle routes.
func registerJournalRoutes(group *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := group.Group("/journal-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entryID", h.getEntry)
		entries.POST("/:entryID/post", h.postEntry)
		entries.POST("/:entryID/void", h.voidEntry)
	}
}
