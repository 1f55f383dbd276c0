package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"freightline/internal/models/request_models"
	"freightline/internal/models/response_models"
	"freightline/internal/quote"
	"freightline/internal/services"
	"freightline/pkg/middleware"
	"freightline/pkg/utils"
)

type QuoteController struct {
	quoteService services.QuoteServiceInterface
	signer       *utils.SessionSigner
}

func NewQuoteController(quoteService services.QuoteServiceInterface, signer *utils.SessionSigner) *QuoteController {
	return &QuoteController{
		quoteService: quoteService,
		signer:       signer,
	}
}

// sessionID returns the caller's session id, answering 404 when there is none.
func sessionID(c *gin.Context) (string, bool) {
	id := c.GetString(utils.SessionIDKey)
	if id == "" {
		utils.HandleServiceError(c, utils.ErrSessionNotFound)
		return "", false
	}
	return id, true
}

// respondView writes a wizard view or the service error.
func respondView(c *gin.Context, view response_models.WizardView, err error, message string) {
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, view, message)
}

// StartSession godoc
// @Summary Start a quote request
// @Description Discards the caller's current wizard, if any, and opens a new one on step 1. Sets the session cookie.
// @Tags Quote
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /quote/session [post]
func (qc *QuoteController) StartSession(c *gin.Context) {
	id, view := qc.quoteService.Start(c.GetString(utils.SessionIDKey), utils.Language(c))
	if err := middleware.SetSessionCookie(c, qc.signer, id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, view, "Quote session started")
}

// GetWizard godoc
// @Summary Get the current quote wizard
// @Tags Quote
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /quote [get]
func (qc *QuoteController) GetWizard(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := qc.quoteService.Get(id, utils.Language(c))
	respondView(c, view, err, "Fetched quote successfully")
}

// DiscardSession godoc
// @Summary Discard the current quote wizard
// @Tags Quote
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /quote [delete]
func (qc *QuoteController) DiscardSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := qc.quoteService.Discard(id); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	middleware.ClearSessionCookie(c)
	utils.RespondSuccess(c, nil, "Quote session discarded")
}

// SetAnswers godoc
// @Summary Record input changes
// @Description Blank values remove a field. serviceType, equipmentNeeded and cargoGaugeType run their selection rules. Fields outside the selected shipment are refused with 409, and a refused batch changes nothing.
// @Tags Quote
// @Accept json
// @Produce json
// @Param request body request_models.SetAnswersRequest true "Changed answers"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /quote/answers [patch]
func (qc *QuoteController) SetAnswers(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req request_models.SetAnswersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	view, err := qc.quoteService.SetAnswers(id, utils.Language(c), req.Answers)
	respondView(c, view, err, "Answers updated")
}

// Blur godoc
// @Summary Validate one field
// @Tags Quote
// @Accept json
// @Produce json
// @Param request body request_models.BlurRequest true "Field that lost focus"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /quote/blur [post]
func (qc *QuoteController) Blur(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req request_models.BlurRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	res, err := qc.quoteService.Blur(id, utils.Language(c), req.Field)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, res, "Field validated")
}

// SelectServiceType godoc
// @Summary Choose air, sea or land freight
// @Description Every branch specific answer is cleared, also when the same mode is chosen again.
// @Tags Quote
// @Accept json
// @Produce json
// @Param request body request_models.ServiceTypeRequest true "Service type"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /quote/service-type [post]
func (qc *QuoteController) SelectServiceType(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req request_models.ServiceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	view, err := qc.quoteService.SelectServiceType(id, utils.Language(c), req.ServiceType)
	respondView(c, view, err, "Service type selected")
}

// SelectEquipment godoc
// @Summary Choose the sea freight container
// @Tags Quote
// @Accept json
// @Produce json
// @Param request body request_models.EquipmentRequest true "Equipment code"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /quote/equipment [post]
func (qc *QuoteController) SelectEquipment(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req request_models.EquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	view, err := qc.quoteService.SelectEquipment(id, utils.Language(c), req.EquipmentNeeded)
	respondView(c, view, err, "Equipment selected")
}

// SelectGauge godoc
// @Summary Choose in or out of gauge for open top containers
// @Tags Quote
// @Accept json
// @Produce json
// @Param request body request_models.GaugeRequest true "Cargo gauge"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /quote/gauge [post]
func (qc *QuoteController) SelectGauge(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	var req request_models.GaugeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	view, err := qc.quoteService.SelectGauge(id, utils.Language(c), req.CargoGaugeType)
	respondView(c, view, err, "Cargo gauge selected")
}

// Next godoc
// @Summary Validate the current step and move forward
// @Description outcome is advanced, blocked (inline errors) or needs_confirmation (error override dialog).
// @Tags Quote
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /quote/next [post]
func (qc *QuoteController) Next(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := qc.quoteService.Next(id, utils.Language(c))
	respondView(c, view, err, "Step processed")
}

// Previous godoc
// @Summary Go back one step
// @Tags Quote
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /quote/previous [post]
func (qc *QuoteController) Previous(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := qc.quoteService.Previous(id, utils.Language(c))
	respondView(c, view, err, "Moved back")
}

// RequestReset godoc
// @Summary Ask to clear the shipping details
// @Description Opens the reset confirmation. Nothing changes until it is confirmed.
// @Tags Quote
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /quote/reset [post]
func (qc *QuoteController) RequestReset(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := qc.quoteService.RequestReset(id, utils.Language(c))
	respondView(c, view, err, "Reset requested")
}

// Confirm godoc
// @Summary Confirm the open dialog
// @Description Continues past validation errors, or performs the requested reset.
// @Tags Quote
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /quote/confirm [post]
func (qc *QuoteController) Confirm(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := qc.quoteService.Confirm(id, utils.Language(c))
	respondView(c, view, err, "Confirmed")
}

// Cancel godoc
// @Summary Dismiss the open dialog
// @Tags Quote
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /quote/cancel [post]
func (qc *QuoteController) Cancel(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := qc.quoteService.Cancel(id, utils.Language(c))
	respondView(c, view, err, "Cancelled")
}

// Submit godoc
// @Summary Send the quote request
// @Description Only allowed on the review step. On success the wizard starts over; on failure the answers are kept for a retry.
// @Tags Quote
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Router /quote/submit [post]
func (qc *QuoteController) Submit(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	view, err := qc.quoteService.Submit(c.Request.Context(), id, utils.Language(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if view.Status == string(quote.StatusFailed) && view.FormError != nil {
		utils.RespondFailure(c, http.StatusUnprocessableEntity, view.FormError.Message, view)
		return
	}
	utils.RespondSuccess(c, view, view.SuccessMessage)
}
