// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Easy Posting API.

# Handler Types

Each handler is a struct built from the database, config and whatever
stores it needs:

  - CustomerHandler: Sign-up stand-in and display name
  - BrandHandler: Company info and settings forms
  - PostHandler: One-shot post submission and post lookup
  - DraftHandler: Step-by-step draft editing, recording and submission

	postHandler := handlers.NewPostHandler(db, cfg, objects)

# Identity

Every route except POST /customers needs a bearer token. The router wraps
the mux in middleware.WithIdentity; handlers read the result with
auth.FromContext and answer 401 when it is missing.

# Posting

A post is an image plus a caption, a voice note, or both:

	POST /posts              → Submit (multipart: image, caption, voice)
	POST /drafts/{id}/submit → Submit the draft built so far

Both run submission.Workflow. The image goes to the post-media bucket, the
voice note to voice-notes, then one posts row is inserted with status
"processing" for the publishing automation to pick up.

# Errors

writeError maps failures onto status codes:

  - *submission.ValidationError → 400
  - *submission.AuthError       → 401
  - *submission.RemoteOperationError → 502, with the storage or database message
  - draft.ErrNotFound           → 404
  - draft.ErrSubmitting, capture.ErrNotRecording → 409

A refused microphone is not an error response; the draft carries the message.
*/
package handlers
