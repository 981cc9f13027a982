// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/playbill/internal/platform/middleware"
	requestutil "github.com/taibuivan/playbill/internal/platform/request"
	"github.com/taibuivan/playbill/internal/platform/respond"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the signed-in caller's profile router, mounted at /me.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Get("/", handler.getMe)
	router.Patch("/", handler.updateMe)

	return router
}

func (handler *Handler) getMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.Get(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, profile)
}

func (handler *Handler) updateMe(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	profile, err := handler.service.Update(request.Context(), userID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, profile, MsgProfileUpdated)
}
