package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/cuentaclara/cuentaclara-backend/internal/core/ports/services"
	"github.com/cuentaclara/cuentaclara-backend/internal/dto"
)

// taxHandler handles HTTP requests for the Colombian tax reports.
type taxHandler struct {
	taxService portssvc.TaxSvcFacade
}

// newTaxHandler creates a new taxHandler.
func newTaxHandler(taxService portssvc.TaxSvcFacade) *taxHandler {
	return &taxHandler{
		taxService: taxService,
	}
}

// getIVADeclaration godoc
// @Summary IVA declaration
// @Description Per-rate IVA generated/deductible buckets for one bimonthly period
// @Tags taxes
// @Produce  json
// @Param   year query int true "Calendar year"
// @Param   period query int true "Bimonthly period (1-6)"
// @Success 200 {object} domain.IVADeclaration
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /taxes/iva-declaration [get]
func (h *taxHandler) getIVADeclaration(c *gin.Context) {
	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}
	query := dto.IVAQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	report, err := h.taxService.IVADeclaration(c.Request.Context(), tenantID, query.Year, query.Period)
	if err != nil {
		writeReportError(c, err, "IVA declaration")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getWithholdingSummary godoc
// @Summary ReteFuente summary
// @Description Per-supplier withholding for one calendar month with certificate cross-references
// @Tags taxes
// @Produce  json
// @Param   year query int true "Calendar year"
// @Param   month query int true "Month (1-12)"
// @Success 200 {object} domain.WithholdingSummary
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /taxes/withholding-summary [get]
func (h *taxHandler) getWithholdingSummary(c *gin.Context) {
	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}
	query := dto.WithholdingQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	report, err := h.taxService.WithholdingSummary(c.Request.Context(), tenantID, query.Year, time.Month(query.Month))
	if err != nil {
		writeReportError(c, err, "withholding summary")
		return
	}
	c.JSON(http.StatusOK, report)
}

// getYTDTaxSummary godoc
// @Summary Year-to-date tax summary
// @Description Accumulated IVA and withholding positions for one calendar year
// @Tags taxes
// @Produce  json
// @Param   year query int true "Calendar year"
// @Success 200 {object} domain.YTDTaxSummary
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to generate report"
// @Router /taxes/ytd-summary [get]
func (h *taxHandler) getYTDTaxSummary(c *gin.Context) {
	tenantID, _, ok := requestScope(c)
	if !ok {
		return
	}
	query := dto.YearQuery{}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	report, err := h.taxService.YTDTaxSummary(c.Request.Context(), tenantID, query.Year)
	if err != nil {
		writeReportError(c, err, "YTD tax summary")
		return
	}
	c.JSON(http.StatusOK, report)
}

// registerTaxRoutes registers the tax report routes.
func registerTaxRoutes(group *gin.RouterGroup, taxService portssvc.TaxSvcFacade) {
	h := newTaxHandler(taxService)

	taxes := group.Group("/taxes")
	{
		taxes.GET("/iva-declaration", h.getIVADeclaration)
		taxes.GET("/withholding-summary", h.getWithholdingSummary)
		taxes.GET("/ytd-summary", h.getYTDTaxSummary)
	}
}
