// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package social

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

// RegisterRoutes mounts review and list endpoints on a /plays router.
//
// # Endpoints
//   - GET    /{id}/reviews          : Reviews for a play
//   - POST   /{id}/{list}/toggle    : Flip favorites or watchlist membership
//   - PUT    /{id}/review           : Create or update the caller's review
//   - DELETE /{id}/review           : Remove the caller's review
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/{id}/reviews", handler.listReviews)

	router.Group(func(signedIn chi.Router) {
		signedIn.Use(middleware.RequireAuth)

		signedIn.Post("/{id}/{list}/toggle", handler.toggle)
		signedIn.Put("/{id}/review", handler.submitReview)
		signedIn.Delete("/{id}/review", handler.deleteReview)
	})
}

func (handler *Handler) listReviews(writer http.ResponseWriter, request *http.Request) {
	playID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	reviews, err := handler.service.ReviewsForPlay(request.Context(), playID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, reviews)
}

func (handler *Handler) toggle(writer http.ResponseWriter, request *http.Request) {
	list, err := ParseList(chi.URLParam(request, "list"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	userID, playID, err := callerAndPlay(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Toggle(request.Context(), list, userID, playID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, result)
}

func (handler *Handler) submitReview(writer http.ResponseWriter, request *http.Request) {
	userID, playID, err := callerAndPlay(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ReviewInput
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	reviews, err := handler.service.SubmitReview(request.Context(), userID, playID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, reviews, MsgReviewSaved)
}

func (handler *Handler) deleteReview(writer http.ResponseWriter, request *http.Request) {
	userID, playID, err := callerAndPlay(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	reviews, err := handler.service.DeleteReview(request.Context(), userID, playID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, reviews, MsgReviewDeleted)
}

func callerAndPlay(request *http.Request) (userID, playID string, err error) {
	if userID, err = requestutil.RequiredUserID(request); err != nil {
		return "", "", err
	}
	if playID, err = requestutil.ID(request, "id"); err != nil {
		return "", "", err
	}
	return userID, playID, nil
}
