package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"freightline/internal/models/request_models"
	"freightline/internal/services"
	"freightline/internal/validation"
	"freightline/pkg/utils"
)

type ContactController struct {
	contactService services.ContactServiceInterface
}

func NewContactController(contactService services.ContactServiceInterface) *ContactController {
	return &ContactController{
		contactService: contactService,
	}
}

// Submit godoc
// @Summary Send the contact form
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body request_models.ContactRequest true "Contact form"
// @Success 200 {object} utils.APIResponse
// @Failure 422 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /contact [post]
func (cc *ContactController) Submit(c *gin.Context) {
	var req request_models.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	res := cc.contactService.Submit(c.Request.Context(), req, utils.Language(c))
	switch {
	case res.Sent:
		utils.RespondSuccess(c, res, res.Message)
	case len(res.Errors) == 1 && res.Errors[0].Field == validation.FormField:
		utils.RespondFailure(c, http.StatusBadGateway, res.Errors[0].Message, res)
	default:
		utils.RespondFailure(c, http.StatusUnprocessableEntity, "Please correct the highlighted fields", res)
	}
}

// ValidateField godoc
// @Summary Validate one contact form field
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body request_models.ContactFieldRequest true "Field and value"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /contact/validate [post]
func (cc *ContactController) ValidateField(c *gin.Context) {
	var req request_models.ContactFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	fe := cc.contactService.ValidateField(req.Field, req.Value, utils.Language(c))
	utils.RespondSuccess(c, gin.H{"error": fe}, "Field validated")
}
