// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/playbill/internal/media"
	"github.com/taibuivan/playbill/internal/platform/middleware"
	requestutil "github.com/taibuivan/playbill/internal/platform/request"
	"github.com/taibuivan/playbill/internal/platform/respond"
	"github.com/taibuivan/playbill/internal/platform/sec"
	"github.com/taibuivan/playbill/internal/platform/validate"
)

// # Messages

const (
	MsgPlayAdded   = "Play added!"
	MsgPlayDeleted = "Play deleted"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public catalog reads on a /plays router.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get("/", handler.searchPlays)
	router.Get("/{id}", handler.getPlay)
}

// AdminRoutes returns the admin-only catalog router, mounted at /admin/plays.
func (handler *Handler) AdminRoutes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireRole(sec.RoleAdmin))

	router.Get("/", handler.listAll)
	router.Post("/", handler.createPlay)
	router.Delete("/{id}", handler.deletePlay)

	return router
}

func (handler *Handler) searchPlays(writer http.ResponseWriter, request *http.Request) {
	plays, err := handler.service.Search(request.Context(), requestutil.Query(request, "q"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, plays)
}

func (handler *Handler) getPlay(writer http.ResponseWriter, request *http.Request) {
	playID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	play, err := handler.service.Get(request.Context(), playID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, play)
}

func (handler *Handler) listAll(writer http.ResponseWriter, request *http.Request) {
	plays, err := handler.service.ListAll(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, plays)
}

// createPlay accepts the admin form as multipart (with an optional poster
// file) or as JSON (poster by URL only). It answers with the refreshed listing.
func (handler *Handler) createPlay(writer http.ResponseWriter, request *http.Request) {
	input, poster, err := readCreateRequest(writer, request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if _, err := handler.service.Create(request.Context(), input, poster); err != nil {
		respond.Error(writer, request, err)
		return
	}

	plays, err := handler.service.ListAll(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, plays, MsgPlayAdded)
}

func (handler *Handler) deletePlay(writer http.ResponseWriter, request *http.Request) {
	playID, err := requestutil.ID(request, "id")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), playID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	plays, err := handler.service.ListAll(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Message(writer, plays, MsgPlayDeleted)
}

// createRequest is the JSON form of the admin create call.
type createRequest struct {
	CreateInput
	PosterURL string `json:"poster_url"`
}

func readCreateRequest(writer http.ResponseWriter, request *http.Request) (CreateInput, *media.PosterInput, error) {
	mediaType, _, _ := mime.ParseMediaType(request.Header.Get("Content-Type"))

	if mediaType != "multipart/form-data" {
		var body createRequest
		if err := requestutil.DecodeJSON(writer, request, &body); err != nil {
			return CreateInput{}, nil, err
		}
		poster := &media.PosterInput{}
		poster.TypeURL(body.PosterURL)
		return body.CreateInput, poster, nil
	}

	if err := media.ParseForm(writer, request); err != nil {
		return CreateInput{}, nil, err
	}

	input := CreateInput{
		Title:       request.FormValue(FieldTitle),
		Playwright:  request.FormValue(FieldPlaywright),
		Genre:       request.FormValue(FieldGenre),
		Description: request.FormValue(FieldDescription),
	}

	if raw := strings.TrimSpace(request.FormValue(FieldYear)); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return CreateInput{}, nil, validate.FieldError(FieldYear, "Year must be a number")
		}
		input.Year = &year
	}

	poster, err := media.ReadPosterInput(request)
	if err != nil {
		return CreateInput{}, nil, err
	}
	return input, poster, nil
}
