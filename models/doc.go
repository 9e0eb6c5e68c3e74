// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateCustomerRequest: fullname, email
  - CompanyInfoRequest: fullname, business_name, website, service_area, industry, post_style
  - SettingsRequest: business_name, industry, brand_voice
  - UpdateCaptionRequest: caption
  - ToggleRecordingRequest: granted

# Response Types

Types for JSON responses:

  - CreateCustomerResponse: customer_id, token
  - MeResponse: customer_id, display_name
  - SubmitPostResponse: post_id, image_path, voice_path, status, message
  - DraftView: snapshot of a draft session
  - ErrorResponse: error, message

# Domain Types

  - Blob: in-memory binary object (image or voice note)
  - StatusMessage: the single user-visible status line
  - CustomerInfo: customer_info row
  - BrandSettings: brand_settings row (one per customer)
  - Post: posts row

# Constants

Post status:

	StatusProcessing = "processing"

Buckets:

	BucketPostMedia  = "post-media"
	BucketVoiceNotes = "voice-notes"

Post styles:

	humor, professional, friendly, short, promotional
*/
package models
