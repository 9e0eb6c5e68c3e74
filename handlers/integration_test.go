// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/easy-posting/draft"
	"github.com/danielhkuo/easy-posting/models"
	"github.com/danielhkuo/easy-posting/testutil"
)

// TestFullPostingWorkflow tests the complete end-to-end workflow:
// 1. Sign up
// 2. Fill in the company info form
// 3. Fill in the settings form
// 4. Open a draft and pick an image
// 5. Record a voice note
// 6. Submit
// 7. Verify the stored post and objects
func TestFullPostingWorkflow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)
	store := setupTestStore(t, cfg)
	sessions := draft.NewSessions(cfg.DraftTTL, cfg.MaxDrafts)
	defer sessions.Close()

	customerHandler := NewCustomerHandler(db, cfg)
	brandHandler := NewBrandHandler(db, cfg)
	draftHandler := NewDraftHandler(db, cfg, store, sessions)
	postHandler := NewPostHandler(db, cfg, store)

	// Step 1: Sign up
	req := testutil.MakeRequest("POST", "/customers", models.CreateCustomerRequest{
		Fullname: "Priya Patel",
		Email:    "priya@patelbakery.com",
	}, nil)
	w := serve(cfg, customerHandler.Create, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 1 - Sign up failed: %d - %s", w.Code, w.Body.String())
	}

	var customer models.CreateCustomerResponse
	testutil.AssertJSON(t, w, &customer)
	auth := testutil.BearerHeader(customer.Token)
	t.Logf("Step 1 - Created customer: %s", customer.CustomerID)

	req = testutil.MakeRequest("GET", "/me", nil, auth)
	w = serve(cfg, customerHandler.Me, req)
	var me models.MeResponse
	testutil.AssertJSON(t, w, &me)
	if me.DisplayName != "Priya" {
		t.Errorf("Step 1 - Expected display name 'Priya', got '%s'", me.DisplayName)
	}

	// Step 2: Company info
	req = testutil.MakeRequest("PUT", "/brand-settings", models.CompanyInfoRequest{
		Fullname:     "Priya Patel",
		BusinessName: "Patel Bakery",
		Website:      "https://patelbakery.com",
		ServiceArea:  "Leicester",
		Industry:     "Food",
		PostStyle:    []string{models.PostStyleFriendly, models.PostStylePromotional},
	}, auth)
	w = serve(cfg, brandHandler.SaveCompanyInfo, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 2 - Company info failed: %d - %s", w.Code, w.Body.String())
	}

	// Step 3: Settings
	req = testutil.MakeRequest("PUT", "/settings", models.SettingsRequest{
		BusinessName: "Patel Family Bakery",
		Industry:     "Food",
		BrandVoice:   "Cheerful, local, a little cheeky",
	}, auth)
	w = serve(cfg, brandHandler.SaveSettings, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 3 - Settings failed: %d - %s", w.Code, w.Body.String())
	}

	var settings models.BrandSettings
	testutil.AssertJSON(t, w, &settings)
	if settings.BusinessName != "Patel Family Bakery" || settings.Website != "https://patelbakery.com" {
		t.Errorf("Step 3 - Unexpected settings %+v", settings)
	}

	// Step 4: Draft with image
	req = testutil.MakeRequest("POST", "/drafts", nil, auth)
	w = serve(cfg, draftHandler.Create, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 4 - Create draft failed: %d - %s", w.Code, w.Body.String())
	}
	view := decodeView(t, w)

	req = testutil.MakeMultipartRequest(t, "PUT", "/drafts/"+view.ID+"/image", nil,
		[]testutil.MultipartFile{{Field: "image", Filename: "croissants.png", Data: testutil.TestPNG(t, 32, 32)}}, auth)
	req.SetPathValue("id", view.ID)
	w = serve(cfg, draftHandler.SetImage, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 4 - Set image failed: %d - %s", w.Code, w.Body.String())
	}

	// Step 5: Voice note
	for _, step := range []struct {
		handler http.HandlerFunc
		req     *http.Request
	}{
		{draftHandler.ToggleRecording, testutil.MakeRequest("POST", "/drafts/"+view.ID+"/recording", models.ToggleRecordingRequest{Granted: true}, auth)},
		{draftHandler.WriteChunk, httptest.NewRequest("POST", "/drafts/"+view.ID+"/recording/chunks", bytes.NewReader([]byte("fresh croissants every morning")))},
		{draftHandler.ToggleRecording, testutil.MakeRequest("POST", "/drafts/"+view.ID+"/recording", models.ToggleRecordingRequest{Granted: true}, auth)},
	} {
		step.req.SetPathValue("id", view.ID)
		step.req.Header.Set("Authorization", auth["Authorization"])
		w = serve(cfg, step.handler, step.req)
		if w.Code != http.StatusOK {
			t.Fatalf("Step 5 - Recording failed at %s: %d - %s", step.req.URL.Path, w.Code, w.Body.String())
		}
	}
	if view = decodeView(t, w); view.Audio == nil {
		t.Fatal("Step 5 - Expected a voice note on the draft")
	}

	// Step 6: Submit (no caption, the voice note is enough)
	req = testutil.MakeRequest("POST", "/drafts/"+view.ID+"/submit", nil, auth)
	req.SetPathValue("id", view.ID)
	w = serve(cfg, draftHandler.Submit, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("Step 6 - Submit failed: %d - %s", w.Code, w.Body.String())
	}

	var submitted models.SubmitPostResponse
	testutil.AssertJSON(t, w, &submitted)
	t.Logf("Step 6 - Submitted post: %s", submitted.PostID)

	// Step 7: Verify
	req = testutil.MakeRequest("GET", "/posts/"+submitted.PostID, nil, auth)
	req.SetPathValue("id", submitted.PostID)
	w = serve(cfg, postHandler.Get, req)
	if w.Code != http.StatusOK {
		t.Fatalf("Step 7 - Get post failed: %d - %s", w.Code, w.Body.String())
	}

	var post models.Post
	testutil.AssertJSON(t, w, &post)
	if post.CustomerID != customer.CustomerID {
		t.Errorf("Step 7 - Expected customer %s, got %s", customer.CustomerID, post.CustomerID)
	}
	if post.UserPrompt != nil {
		t.Errorf("Step 7 - Expected NULL user_prompt, got %q", *post.UserPrompt)
	}
	if post.VoicePath == nil || *post.VoicePath != *submitted.VoicePath {
		t.Errorf("Step 7 - Voice path mismatch: %v vs %v", post.VoicePath, submitted.VoicePath)
	}

	audio, err := store.Download(context.Background(), models.BucketVoiceNotes, *post.VoicePath)
	if err != nil {
		t.Fatalf("Step 7 - Voice note not stored: %v", err)
	}
	if string(audio) != "fresh croissants every morning" {
		t.Errorf("Step 7 - Unexpected voice note content %q", audio)
	}
	if _, err := store.Download(context.Background(), models.BucketPostMedia, post.ImagePath); err != nil {
		t.Errorf("Step 7 - Image not stored: %v", err)
	}
}
