// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Post status constants
const (
	StatusProcessing = "processing"
)

// Storage buckets
const (
	BucketPostMedia  = "post-media"
	BucketVoiceNotes = "voice-notes"
)

// Collections
const (
	TableBrandSettings = "brand_settings"
	TablePosts         = "posts"
	TableCustomerInfo  = "customer_info"
)

// Post style options offered by the company info form
const (
	PostStyleHumor        = "humor"
	PostStyleProfessional = "professional"
	PostStyleFriendly     = "friendly"
	PostStyleShort        = "short"
	PostStylePromotional  = "promotional"
)

// Status message types
const (
	MessageSuccess = "success"
	MessageError   = "error"
)

// Blob is an uploaded binary object held in memory (image or voice note).
type Blob struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
}

// Size returns the blob length in bytes
func (b *Blob) Size() int {
	if b == nil {
		return 0
	}
	return len(b.Data)
}

// StatusMessage is the single user-visible status line
type StatusMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Request types

type CreateCustomerRequest struct {
	Fullname string `json:"fullname"`
	Email    string `json:"email"`
}

// Company info form
type CompanyInfoRequest struct {
	Fullname     string   `json:"fullname"`
	BusinessName string   `json:"business_name"`
	Website      string   `json:"website"`
	ServiceArea  string   `json:"service_area"`
	Industry     string   `json:"industry"`
	PostStyle    []string `json:"post_style"`
}

// Settings form
type SettingsRequest struct {
	BusinessName string `json:"business_name"`
	Industry     string `json:"industry"`
	BrandVoice   string `json:"brand_voice"`
}

type UpdateCaptionRequest struct {
	Caption string `json:"caption"`
}

// Granted reports whether the browser obtained microphone access
type ToggleRecordingRequest struct {
	Granted bool `json:"granted"`
}

// Response types

type CreateCustomerResponse struct {
	CustomerID string `json:"customer_id"`
	Token      string `json:"token"`
}

type MeResponse struct {
	CustomerID  string `json:"customer_id"`
	DisplayName string `json:"display_name"`
}

type SubmitPostResponse struct {
	PostID    string         `json:"post_id"`
	ImagePath string         `json:"image_path"`
	VoicePath *string        `json:"voice_path"`
	Status    string         `json:"status"`
	Message   *StatusMessage `json:"message,omitempty"`
}

// DraftView is the client-facing snapshot of a draft session
type DraftView struct {
	ID           string         `json:"id"`
	Image        *Blob          `json:"image,omitempty"`
	ImageSize    string         `json:"image_size,omitempty"`
	HasPreview   bool           `json:"has_preview"`
	Caption      string         `json:"caption"`
	Audio        *Blob          `json:"audio,omitempty"`
	AudioSize    string         `json:"audio_size,omitempty"`
	IsRecording  bool           `json:"is_recording"`
	IsSubmitting bool           `json:"is_submitting"`
	Message      *StatusMessage `json:"message,omitempty"`
}

// Domain types

type CustomerInfo struct {
	CustomerID string    `json:"customer_id"`
	Fullname   string    `json:"fullname"`
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"created_at"`
}

type BrandSettings struct {
	CustomerID   string    `json:"customer_id"`
	Fullname     string    `json:"fullname"`
	BusinessName string    `json:"business_name"`
	Website      string    `json:"website"`
	ServiceArea  string    `json:"service_area"`
	Industry     string    `json:"industry"`
	PostStyle    []string  `json:"post_style"`
	BrandVoice   string    `json:"brand_voice"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Post struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	ImagePath  string    `json:"image_path"`
	VoicePath  *string   `json:"voice_path"`
	UserPrompt *string   `json:"user_prompt"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
