// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/easy-posting/cliparse"
	"github.com/danielhkuo/easy-posting/draft"
	"github.com/danielhkuo/easy-posting/handlers"
	"github.com/danielhkuo/easy-posting/middleware"
	"github.com/danielhkuo/easy-posting/storage"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, objects *storage.Store, sessions *draft.Sessions) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	customerHandler := handlers.NewCustomerHandler(db, cfg)
	brandHandler := handlers.NewBrandHandler(db, cfg)
	postHandler := handlers.NewPostHandler(db, cfg, objects)
	draftHandler := handlers.NewDraftHandler(db, cfg, objects, sessions)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Customers
	mux.HandleFunc("POST /customers", middleware.WithLogging(customerHandler.Create))
	mux.HandleFunc("GET /me", middleware.WithLogging(customerHandler.Me))

	// Brand settings
	mux.HandleFunc("GET /brand-settings", middleware.WithLogging(brandHandler.Get))
	mux.HandleFunc("PUT /brand-settings", middleware.WithLogging(brandHandler.SaveCompanyInfo))
	mux.HandleFunc("PUT /settings", middleware.WithLogging(brandHandler.SaveSettings))

	// Posts
	mux.HandleFunc("POST /posts", middleware.WithLogging(postHandler.Submit))
	mux.HandleFunc("GET /posts/{id}", middleware.WithLogging(postHandler.Get))

	// Drafts
	mux.HandleFunc("POST /drafts", middleware.WithLogging(draftHandler.Create))
	mux.HandleFunc("GET /drafts/{id}", middleware.WithLogging(draftHandler.Get))
	mux.HandleFunc("DELETE /drafts/{id}", middleware.WithLogging(draftHandler.Delete))
	mux.HandleFunc("PUT /drafts/{id}/image", middleware.WithLogging(draftHandler.SetImage))
	mux.HandleFunc("DELETE /drafts/{id}/image", middleware.WithLogging(draftHandler.ClearImage))
	mux.HandleFunc("GET /drafts/{id}/image/preview", middleware.WithLogging(draftHandler.Preview))
	mux.HandleFunc("PUT /drafts/{id}/caption", middleware.WithLogging(draftHandler.SetCaption))
	mux.HandleFunc("POST /drafts/{id}/recording", middleware.WithLogging(draftHandler.ToggleRecording))
	mux.HandleFunc("POST /drafts/{id}/recording/chunks", middleware.WithLogging(draftHandler.WriteChunk))
	mux.HandleFunc("DELETE /drafts/{id}/audio", middleware.WithLogging(draftHandler.ClearAudio))
	mux.HandleFunc("POST /drafts/{id}/submit", middleware.WithLogging(draftHandler.Submit))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("easy-posting API v1"))
	})

	return middleware.CORS(middleware.WithIdentity(cfg.TokenSalt, mux))
}
