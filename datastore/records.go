// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package datastore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/danielhkuo/easy-posting/models"
)

// GetCustomerInfo reads a customer_info row by customer id
func (c *Client) GetCustomerInfo(ctx context.Context, customerID string) (*models.CustomerInfo, error) {
	info := models.CustomerInfo{CustomerID: customerID}
	err := c.Table(models.TableCustomerInfo).
		Select("fullname", "email", "created_at").
		Eq("customer_id", customerID).
		Single(ctx, &info.Fullname, &info.Email, &info.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// CreateCustomer inserts a customer_info row
func (c *Client) CreateCustomer(ctx context.Context, info models.CustomerInfo) error {
	return c.Insert(ctx, models.TableCustomerInfo, Row{
		"customer_id": info.CustomerID,
		"fullname":    info.Fullname,
		"email":       info.Email,
		"created_at":  info.CreatedAt,
	})
}

// GetBrandSettings reads the brand_settings row of a customer
func (c *Client) GetBrandSettings(ctx context.Context, customerID string) (*models.BrandSettings, error) {
	s := models.BrandSettings{CustomerID: customerID}
	var postStyle string
	err := c.Table(models.TableBrandSettings).
		Select("fullname", "business_name", "website", "service_area", "industry", "post_style", "brand_voice", "updated_at").
		Eq("customer_id", customerID).
		Single(ctx, &s.Fullname, &s.BusinessName, &s.Website, &s.ServiceArea, &s.Industry, &postStyle, &s.BrandVoice, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}

	s.PostStyle = []string{}
	if postStyle != "" {
		if err := json.Unmarshal([]byte(postStyle), &s.PostStyle); err != nil {
			return nil, fmt.Errorf("decode post_style: %w", err)
		}
	}
	return &s, nil
}

// SaveCompanyInfo upserts the company info form fields of a customer
func (c *Client) SaveCompanyInfo(ctx context.Context, customerID string, req models.CompanyInfoRequest) error {
	styles := req.PostStyle
	if styles == nil {
		styles = []string{}
	}
	postStyle, err := json.Marshal(styles)
	if err != nil {
		return fmt.Errorf("encode post_style: %w", err)
	}

	return c.Upsert(ctx, models.TableBrandSettings, Row{
		"customer_id":   customerID,
		"fullname":      req.Fullname,
		"business_name": req.BusinessName,
		"website":       req.Website,
		"service_area":  req.ServiceArea,
		"industry":      req.Industry,
		"post_style":    string(postStyle),
		"updated_at":    time.Now().UTC(),
	}, "customer_id")
}

// SaveSettings upserts the settings form fields of a customer
func (c *Client) SaveSettings(ctx context.Context, customerID string, req models.SettingsRequest) error {
	return c.Upsert(ctx, models.TableBrandSettings, Row{
		"customer_id":   customerID,
		"business_name": req.BusinessName,
		"industry":      req.Industry,
		"brand_voice":   req.BrandVoice,
		"updated_at":    time.Now().UTC(),
	}, "customer_id")
}

// GetPost reads a posts row by id
func (c *Client) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	p := models.Post{ID: postID}
	err := c.Table(models.TablePosts).
		Select("customer_id", "image_path", "voice_path", "user_prompt", "status", "created_at").
		Eq("id", postID).
		Single(ctx, &p.CustomerID, &p.ImagePath, &p.VoicePath, &p.UserPrompt, &p.Status, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
