package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"freightline/internal/api/controllers"
	"freightline/internal/i18n"
	"freightline/pkg/middleware"
	"freightline/pkg/utils"
)

type RouterParams struct {
	Logger      *zap.Logger
	Catalog     *i18n.Catalog
	Signer      *utils.SessionSigner
	CORSOrigins []string

	Quote   *controllers.QuoteController
	Contact *controllers.ContactController
	Pages   *controllers.PagesController
}

func NewRouter(p RouterParams) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware(p.Logger))
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORSMiddleware(p.CORSOrigins))
	r.Use(middleware.LanguageMiddleware(p.Catalog))
	r.Use(middleware.SessionMiddleware(p.Signer))

	RegisterRoutes(r, p.Quote, p.Contact, p.Pages)
	return r
}

func RegisterRoutes(r *gin.Engine,
	quoteController *controllers.QuoteController,
	contactController *controllers.ContactController,
	pagesController *controllers.PagesController) {

	r.GET("/healthz", pagesController.Health)

	pagesGroup := r.Group("/pages")
	pagesGroup.GET("", pagesController.ListPages)
	pagesGroup.GET("/:slug", pagesController.GetPage)

	contactGroup := r.Group("/contact")
	contactGroup.POST("", contactController.Submit)
	contactGroup.POST("/validate", contactController.ValidateField)

	quoteGroup := r.Group("/quote")
	quoteGroup.POST("/session", quoteController.StartSession)
	quoteGroup.GET("", quoteController.GetWizard)
	quoteGroup.DELETE("", quoteController.DiscardSession)
	quoteGroup.PATCH("/answers", quoteController.SetAnswers)
	quoteGroup.POST("/blur", quoteController.Blur)
	quoteGroup.POST("/service-type", quoteController.SelectServiceType)
	quoteGroup.POST("/equipment", quoteController.SelectEquipment)
	quoteGroup.POST("/gauge", quoteController.SelectGauge)
	quoteGroup.POST("/next", quoteController.Next)
	quoteGroup.POST("/previous", quoteController.Previous)
	quoteGroup.POST("/reset", quoteController.RequestReset)
	quoteGroup.POST("/confirm", quoteController.Confirm)
	quoteGroup.POST("/cancel", quoteController.Cancel)
	quoteGroup.POST("/submit", quoteController.Submit)
}
