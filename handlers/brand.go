// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/easy-posting/cliparse"
	"github.com/danielhkuo/easy-posting/datastore"
	"github.com/danielhkuo/easy-posting/middleware"
	"github.com/danielhkuo/easy-posting/models"
)

type BrandHandler struct {
	store *datastore.Client
	cfg   cliparse.Config
}

func NewBrandHandler(db *sql.DB, cfg cliparse.Config) *BrandHandler {
	return &BrandHandler{store: datastore.NewClient(db), cfg: cfg}
}

// Get handles GET /brand-settings
func (h *BrandHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	settings, err := h.store.GetBrandSettings(r.Context(), id.CustomerID)
	if errors.Is(err, datastore.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Brand settings not found")
		return
	}
	if err != nil {
		slog.Error("failed to query brand settings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, settings)
}

// SaveCompanyInfo handles PUT /brand-settings
// Upserts the company info form; brand_voice is left as it was
func (h *BrandHandler) SaveCompanyInfo(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req models.CompanyInfoRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := validateCompanyInfo(&req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.SaveCompanyInfo(r.Context(), id.CustomerID, req); err != nil {
		slog.Error("failed to save company info", "error", err, "customer_id", id.CustomerID)
		middleware.ErrorResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	slog.Info("company info saved", "customer_id", id.CustomerID, "post_style", req.PostStyle)
	h.respond(w, r, id.CustomerID)
}

// SaveSettings handles PUT /settings
// Upserts business name, industry and brand voice only
func (h *BrandHandler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req models.SettingsRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := validateSettings(&req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.SaveSettings(r.Context(), id.CustomerID, req); err != nil {
		slog.Error("failed to save settings", "error", err, "customer_id", id.CustomerID)
		middleware.ErrorResponse(w, http.StatusBadGateway, err.Error())
		return
	}

	slog.Info("settings saved", "customer_id", id.CustomerID)
	h.respond(w, r, id.CustomerID)
}

// respond writes the stored row back so the form shows what was persisted
func (h *BrandHandler) respond(w http.ResponseWriter, r *http.Request, customerID string) {
	settings, err := h.store.GetBrandSettings(r.Context(), customerID)
	if err != nil {
		slog.Error("failed to reload brand settings", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, settings)
}
