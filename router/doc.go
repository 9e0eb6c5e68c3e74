// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Easy Posting API.

# Route Registration

NewRouter registers every endpoint on an http.ServeMux and wraps it in the
CORS and identity middleware:

	handler := router.NewRouter(db, cfg, objects, sessions)

# Endpoints

Health:

	GET /health

Customers:

	POST /customers - Sign up, returns a bearer token
	GET  /me        - Display name

Brand settings (bearer token):

	GET /brand-settings - Current settings
	PUT /brand-settings - Company info form
	PUT /settings       - Business name, industry, brand voice

Posts (bearer token):

	POST /posts      - Submit image + caption and/or voice note
	GET  /posts/{id} - Stored post

Drafts (bearer token):

	POST   /drafts                        - Open a draft
	GET    /drafts/{id}                   - Draft state
	DELETE /drafts/{id}                   - Discard
	PUT    /drafts/{id}/image             - Pick image
	DELETE /drafts/{id}/image             - Remove image
	GET    /drafts/{id}/image/preview     - JPEG preview
	PUT    /drafts/{id}/caption           - Set caption
	POST   /drafts/{id}/recording         - Start/stop recording
	POST   /drafts/{id}/recording/chunks  - Append audio
	DELETE /drafts/{id}/audio             - Remove voice note
	POST   /drafts/{id}/submit            - Submit the draft

# Handler Initialization

The router creates handler instances with dependency injection:

	customerHandler := handlers.NewCustomerHandler(db, cfg)
	brandHandler := handlers.NewBrandHandler(db, cfg)
	postHandler := handlers.NewPostHandler(db, cfg, objects)
	draftHandler := handlers.NewDraftHandler(db, cfg, objects, sessions)

Drafts live in memory in the shared draft.Sessions; posts and settings in
the database; images and voice notes in the storage buckets.
*/
package router
