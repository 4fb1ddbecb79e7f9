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

// reportingHandler handles HTTP requests for the financial reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
	agingService     portssvc.AgingSvcFacade
}

// newReportingHandler creates a new reportingHandler.
func newReportingHandler(reportingService portssvc.ReportingSvcFacade, agingService portssvc.AgingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: reportingService,
		agingService:     agingService,
	}
}

// writeReportError maps report generation errors onto HTTP statuses.
func writeReportError(c *gin.Context, err error, report string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if errors.Is(err, apperrors.ErrValidation) {
		logger.Warn("Validation error generating report", slog.String("report", report), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	logger.Error("Failed to generate report", slog.String("report", report), slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate " + report})
}

// getTrialBalance godoc
// @Summary Trial balance
// @Description Per-account debit/credit totals and signed balances as of a date
// @Tags reports
// @Produce  json
// @Param   asOf query string true "Cutoff date (YYYY-MM-DD)"
// @Success 200 {object} domain.TrialBalanceReport
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /reports/trial-balance [get]
func (h *reportingHandler) getTrialBalance(c *gin.Context) {
	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}
	query := dto.AsOfQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), tenantID, query.AsOf)
	if err != nil {
		writeReportError(c, err, "trial balance")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getGeneralJournal godoc
// @Summary General journal
// @Description Chronological list of posted entries with resolved account names
// @Tags reports
// @Produce  json
// @Param   from query string true "Window start (YYYY-MM-DD)"
// @Param   to query string true "Window end (YYYY-MM-DD)"
// @Success 200 {object} domain.GeneralJournalReport
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /reports/general-journal [get]
func (h *reportingHandler) getGeneralJournal(c *gin.Context) {
	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}
	query := dto.DateRangeQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	report, err := h.reportingService.GeneralJournal(c.Request.Context(), tenantID, query.From, query.To)
	if err != nil {
		writeReportError(c, err, "general journal")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getGeneralLedger godoc
// @Summary General ledger
// @Description Per-account movements with opening, running and closing balances
// @Tags reports
// @Produce  json
// @Param   from query string true "Window start (YYYY-MM-DD)"
// @Param   to query string true "Window end (YYYY-MM-DD)"
// @Param   accountID query string false "Restrict to one account"
// @Success 200 {object} domain.GeneralLedgerReport
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /reports/general-ledger [get]
func (h *reportingHandler) getGeneralLedger(c *gin.Context) {
	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}
	query := dto.LedgerQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	report, err := h.reportingService.GeneralLedger(c.Request.Context(), tenantID, query.From, query.To, query.AccountID)
	if err != nil {
		writeReportError(c, err, "general ledger")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getBalanceSheet godoc
// @Summary Balance sheet
// @Description Assets, liabilities and equity as of a date, with period net income folded into equity
// @Tags reports
// @Produce  json
// @Param   asOf query string true "Cutoff date (YYYY-MM-DD)"
// @Success 200 {object} domain.BalanceSheetReport
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) getBalanceSheet(c *gin.Context) {
	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}
	query := dto.AsOfQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), tenantID, query.AsOf)
	if err != nil {
		writeReportError(c, err, "balance sheet")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getIncomeStatement godoc
// @Summary Income statement
// @Description Revenue, cost of sales and expenses over a window
// @Tags reports
// @Produce  json
// @Param   from query string true "Window start (YYYY-MM-DD)"
// @Param   to query string true "Window end (YYYY-MM-DD)"
// @Success 200 {object} domain.IncomeStatementReport
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /reports/income-statement [get]
func (h *reportingHandler) getIncomeStatement(c *gin.Context) {
	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}
	query := dto.DateRangeQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	report, err := h.reportingService.IncomeStatement(c.Request.Context(), tenantID, query.From, query.To)
	if err != nil {
		writeReportError(c, err, "income statement")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getCashFlow godoc
// @Summary Cash flow
// @Description Movements of cash and bank accounts over a window
// @Tags reports
// @Produce  json
// @Param   from query string true "Window start (YYYY-MM-DD)"
// @Param   to query string true "Window end (YYYY-MM-DD)"
// @Success 200 {object} domain.CashFlowReport
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /reports/cash-flow [get]
func (h *reportingHandler) getCashFlow(c *gin.Context) {
	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}
	query := dto.DateRangeQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	report, err := h.reportingService.CashFlow(c.Request.Context(), tenantID, query.From, query.To)
	if err != nil {
		writeReportError(c, err, "cash flow")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getReceivablesAging godoc
// @Summary Receivables aging
// @Description Outstanding customer invoice balances bucketed by days overdue
// @Tags reports
// @Produce  json
// @Param   asOf query string true "Reference date (YYYY-MM-DD)"
// @Success 200 {object} domain.AgingReport
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /reports/receivables-aging [get]
func (h *reportingHandler) getReceivablesAging(c *gin.Context) {
	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}
	query := dto.AsOfQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	report, err := h.agingService.ReceivablesAging(c.Request.Context(), tenantID, query.AsOf)
	if err != nil {
		writeReportError(c, err, "receivables aging")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getPayablesAging godoc
// @Summary Payables aging
// @Description Outstanding supplier balances bucketed by days overdue
// @Tags reports
// @Produce  json
// @Param   asOf query string true "Reference date (YYYY-MM-DD)"
// @Success 200 {object} domain.AgingReport
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /reports/payables-aging [get]
func (h *reportingHandler) getPayablesAging(c *gin.Context) {
	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}
	query := dto.AsOfQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	report, err := h.agingService.PayablesAging(c.Request.Context(), tenantID, query.AsOf)
	if err != nil {
		writeReportError(c, err, "payables aging")
		return
	}
	c.JSON(http.StatusOK, report)
}

// registerReportingRoutes registers the financial report routes.
func registerReportingRoutes(group *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade, agingService portssvc.AgingSvcFacade) {
	h := newReportingHandler(reportingService, agingService)

	reports := group.Group("/reports")
	{
		reports.GET("/trial-balance", h.getTrialBalance)
		reports.GET("/general-journal", h.getGeneralJournal)
		reports.GET("/general-ledger", h.getGeneralLedger)
		reports.GET("/balance-sheet", h.getBalanceSheet)
		reports.GET("/income-statement", h.getIncomeStatement)
		reports.GET("/cash-flow", h.getCashFlow)
		reports.GET("/receivables-aging", h.getReceivablesAging)
		reports.GET("/payables-aging", h.getPayablesAging)
	}
}
