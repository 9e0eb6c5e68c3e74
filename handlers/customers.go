// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/easy-posting/auth"
	"github.com/danielhkuo/easy-posting/cliparse"
	"github.com/danielhkuo/easy-posting/datastore"
	"github.com/danielhkuo/easy-posting/middleware"
	"github.com/danielhkuo/easy-posting/models"
)

type CustomerHandler struct {
	store *datastore.Client
	cfg   cliparse.Config
}

func NewCustomerHandler(db *sql.DB, cfg cliparse.Config) *CustomerHandler {
	return &CustomerHandler{store: datastore.NewClient(db), cfg: cfg}
}

// Create handles POST /customers
// Registers a customer and returns a bearer token for it
func (h *CustomerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCustomerRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := validateCreateCustomer(&req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	info := models.CustomerInfo{
		CustomerID: uuid.NewString(),
		Fullname:   req.Fullname,
		Email:      strings.ToLower(req.Email),
		CreatedAt:  time.Now().UTC(),
	}

	if err := h.store.CreateCustomer(r.Context(), info); err != nil {
		if datastore.IsUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "Email already registered")
			return
		}
		slog.Error("failed to create customer", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create customer")
		return
	}

	slog.Info("customer created", "customer_id", info.CustomerID)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateCustomerResponse{
		CustomerID: info.CustomerID,
		Token:      auth.SignToken(info.CustomerID, h.cfg.TokenSalt),
	})
}

// Me handles GET /me
// Returns the signed-in customer's display name
func (h *CustomerHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	info, err := h.store.GetCustomerInfo(r.Context(), id.CustomerID)
	if errors.Is(err, datastore.ErrNotFound) {
		// Valid token for a customer without a profile row
		middleware.JSONResponse(w, http.StatusOK, models.MeResponse{CustomerID: id.CustomerID})
		return
	}
	if err != nil {
		slog.Error("failed to query customer", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MeResponse{
		CustomerID:  id.CustomerID,
		DisplayName: auth.DisplayName(info.Fullname, info.Email),
	})
}
