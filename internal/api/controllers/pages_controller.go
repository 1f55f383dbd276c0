package controllers

import (
	"github.com/gin-gonic/gin"

	"freightline/internal/services"
	"freightline/pkg/utils"
)

type PagesController struct {
	pageService services.PageServiceInterface
}

func NewPagesController(pageService services.PageServiceInterface) *PagesController {
	return &PagesController{
		pageService: pageService,
	}
}

// ListPages godoc
// @Summary List the informational pages
// @Tags Pages
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /pages [get]
func (pc *PagesController) ListPages(c *gin.Context) {
	utils.RespondSuccess(c, pc.pageService.ListPages(utils.Language(c)), "Fetched pages successfully")
}

// GetPage godoc
// @Summary Get page content
// @Tags Pages
// @Produce json
// @Param slug path string true "home, about or services"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /pages/{slug} [get]
func (pc *PagesController) GetPage(c *gin.Context) {
	page, err := pc.pageService.GetPage(c.Param("slug"), utils.Language(c))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, page, "Fetched page successfully")
}

// Health godoc
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /healthz [get]
func (pc *PagesController) Health(c *gin.Context) {
	utils.RespondSuccess(c, gin.H{"status": "ok"}, "")
}
