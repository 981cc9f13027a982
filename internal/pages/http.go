// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pages

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/playbill/internal/platform/apperr"
	"github.com/taibuivan/playbill/internal/platform/constants"
	requestutil "github.com/taibuivan/playbill/internal/platform/request"
	"github.com/taibuivan/playbill/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the page router, mounted at /pages.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/home", handler.home)
	router.Get("/explore", handler.explore)
	router.Get("/plays/{id}", handler.detail)
	router.Get("/profile", handler.profile)
	router.Get("/admin", handler.admin)

	return router
}

func (handler *Handler) home(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.service.Home(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, page)
}

func (handler *Handler) explore(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.service.Explore(request.Context(), requestutil.Query(request, "q"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, page)
}

func (handler *Handler) detail(writer http.ResponseWriter, request *http.Request) {
	playID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	page, err := handler.service.Detail(request.Context(), playID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, page)
}

func (handler *Handler) profile(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.service.Profile(request.Context(), requestutil.Query(request, "tab"))
	if err != nil {
		gated(writer, request, err)
		return
	}
	respond.OK(writer, page)
}

func (handler *Handler) admin(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.service.Admin(request.Context())
	if err != nil {
		gated(writer, request, err)
		return
	}
	respond.OK(writer, page)
}

// gated sends callers who may not see the page back home instead of failing.
func gated(writer http.ResponseWriter, request *http.Request, err error) {
	if apperr.HasCode(err, apperr.CodeUnauthorized) || apperr.HasCode(err, apperr.CodeForbidden) {
		respond.Redirect(writer, request, constants.RouteHome)
		return
	}
	respond.Error(writer, request, err)
}
