package services

import (
	"freightline/internal/i18n"
	"freightline/internal/models/response_models"
	"freightline/pkg/utils"
)

// Pages is the set of informational pages, in navigation order.
var Pages = []string{"home", "about", "services"}

type PageServiceInterface interface {
	GetPage(slug, lang string) (response_models.PageResponse, error)
	ListPages(lang string) []response_models.PageResponse
}

type PageService struct {
	translator i18n.Translator
}

func NewPageService(translator i18n.Translator) PageServiceInterface {
	return &PageService{translator: translator}
}

func (p *PageService) GetPage(slug, lang string) (response_models.PageResponse, error) {
	for _, s := range Pages {
		if s == slug {
			return p.page(s, lang), nil
		}
	}
	return response_models.PageResponse{}, utils.ErrPageNotFound
}

func (p *PageService) ListPages(lang string) []response_models.PageResponse {
	out := make([]response_models.PageResponse, 0, len(Pages))
	for _, s := range Pages {
		out = append(out, p.page(s, lang))
	}
	return out
}

func (p *PageService) page(slug, lang string) response_models.PageResponse {
	return response_models.PageResponse{
		Slug:        slug,
		Title:       p.translator.T(lang, slug+"Title"),
		Description: p.translator.T(lang, slug+"Description"),
	}
}
