// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"reflect"
	"testing"

	"github.com/danielhkuo/easy-posting/models"
	"github.com/danielhkuo/easy-posting/testutil"
)

func TestSaveCompanyInfo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)
	handler := NewBrandHandler(db, cfg)

	_, token := testutil.CreateTestCustomer(t, db, cfg, "Tom Baker")

	testCases := []struct {
		name           string
		request        models.CompanyInfoRequest
		expectedStatus int
	}{
		{
			name: "valid form",
			request: models.CompanyInfoRequest{
				Fullname:     "Tom Baker",
				BusinessName: "Baker Roofing",
				Website:      "bakerroofing.com",
				ServiceArea:  "Austin, TX",
				Industry:     "Construction",
				PostStyle:    []string{models.PostStyleFriendly, models.PostStyleShort},
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "empty form",
			request:        models.CompanyInfoRequest{},
			expectedStatus: http.StatusOK,
		},
		{
			name: "unknown post style",
			request: models.CompanyInfoRequest{
				PostStyle: []string{"sarcastic"},
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "bad website",
			request: models.CompanyInfoRequest{
				Website: "not a website",
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest("PUT", "/brand-settings", tc.request, testutil.BearerHeader(token))
			w := serve(cfg, handler.SaveCompanyInfo, req)

			testutil.AssertStatus(t, w, tc.expectedStatus)
		})
	}
}

func TestSaveCompanyInfo_DedupesPostStyle(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)
	handler := NewBrandHandler(db, cfg)

	_, token := testutil.CreateTestCustomer(t, db, cfg, "Tom Baker")

	body := models.CompanyInfoRequest{
		PostStyle: []string{"humor", "Humor", "short", "humor"},
	}
	req := testutil.MakeRequest("PUT", "/brand-settings", body, testutil.BearerHeader(token))
	w := serve(cfg, handler.SaveCompanyInfo, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var settings models.BrandSettings
	testutil.AssertJSON(t, w, &settings)

	expected := []string{"humor", "short"}
	if !reflect.DeepEqual(settings.PostStyle, expected) {
		t.Errorf("Expected post_style %v, got %v", expected, settings.PostStyle)
	}
}

func TestBrandSettings_UpsertKeepsOneRow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)
	handler := NewBrandHandler(db, cfg)

	customerID, token := testutil.CreateTestCustomer(t, db, cfg, "Ana Ruiz")

	// Nothing saved yet
	req := testutil.MakeRequest("GET", "/brand-settings", nil, testutil.BearerHeader(token))
	w := serve(cfg, handler.Get, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)

	for _, name := range []string{"Ruiz Plumbing", "Ruiz & Sons Plumbing"} {
		body := models.CompanyInfoRequest{BusinessName: name, Industry: "Plumbing"}
		req := testutil.MakeRequest("PUT", "/brand-settings", body, testutil.BearerHeader(token))
		w := serve(cfg, handler.SaveCompanyInfo, req)
		testutil.AssertStatus(t, w, http.StatusOK)
	}

	var rows int
	err := db.QueryRow(`SELECT COUNT(*) FROM brand_settings WHERE customer_id = $1`, customerID).Scan(&rows)
	if err != nil {
		t.Fatalf("Failed to count rows: %v", err)
	}
	if rows != 1 {
		t.Errorf("Expected 1 brand_settings row, got %d", rows)
	}

	req = testutil.MakeRequest("GET", "/brand-settings", nil, testutil.BearerHeader(token))
	w = serve(cfg, handler.Get, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var settings models.BrandSettings
	testutil.AssertJSON(t, w, &settings)
	if settings.BusinessName != "Ruiz & Sons Plumbing" {
		t.Errorf("Expected latest business name, got '%s'", settings.BusinessName)
	}
}

func TestSaveSettings_LeavesCompanyInfo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)
	handler := NewBrandHandler(db, cfg)

	_, token := testutil.CreateTestCustomer(t, db, cfg, "Lee Chan")

	company := models.CompanyInfoRequest{
		Fullname:    "Lee Chan",
		ServiceArea: "Portland",
		PostStyle:   []string{models.PostStyleProfessional},
	}
	req := testutil.MakeRequest("PUT", "/brand-settings", company, testutil.BearerHeader(token))
	testutil.AssertStatus(t, serve(cfg, handler.SaveCompanyInfo, req), http.StatusOK)

	settingsReq := models.SettingsRequest{
		BusinessName: "Chan Dental",
		Industry:     "Healthcare",
		BrandVoice:   "Warm and reassuring",
	}
	req = testutil.MakeRequest("PUT", "/settings", settingsReq, testutil.BearerHeader(token))
	w := serve(cfg, handler.SaveSettings, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var settings models.BrandSettings
	testutil.AssertJSON(t, w, &settings)

	if settings.BrandVoice != "Warm and reassuring" {
		t.Errorf("Expected brand voice to be saved, got '%s'", settings.BrandVoice)
	}
	if settings.ServiceArea != "Portland" || settings.Fullname != "Lee Chan" {
		t.Errorf("Company info was overwritten: %+v", settings)
	}
	if !reflect.DeepEqual(settings.PostStyle, []string{models.PostStyleProfessional}) {
		t.Errorf("Expected post_style to survive, got %v", settings.PostStyle)
	}
}

func TestBrandSettings_RequiresToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig(t)
	handler := NewBrandHandler(db, cfg)

	testCases := []struct {
		name    string
		method  string
		handler http.HandlerFunc
		body    interface{}
	}{
		{"get", "GET", handler.Get, nil},
		{"company info", "PUT", handler.SaveCompanyInfo, models.CompanyInfoRequest{}},
		{"settings", "PUT", handler.SaveSettings, models.SettingsRequest{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := testutil.MakeRequest(tc.method, "/brand-settings", tc.body, nil)
			w := serve(cfg, tc.handler, req)

			testutil.AssertStatus(t, w, http.StatusUnauthorized)
		})
	}
}
