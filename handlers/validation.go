// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/danielhkuo/easy-posting/models"
)

var postStyles = []interface{}{
	models.PostStyleHumor,
	models.PostStyleProfessional,
	models.PostStyleFriendly,
	models.PostStyleShort,
	models.PostStylePromotional,
}

func validateCreateCustomer(req *models.CreateCustomerRequest) error {
	req.Fullname = strings.TrimSpace(req.Fullname)
	req.Email = strings.TrimSpace(req.Email)

	return validation.ValidateStruct(req,
		validation.Field(&req.Fullname, validation.Length(0, 100)),
		validation.Field(&req.Email, validation.Required, is.EmailFormat, validation.Length(0, 254)),
	)
}

func validateCompanyInfo(req *models.CompanyInfoRequest) error {
	req.Fullname = strings.TrimSpace(req.Fullname)
	req.BusinessName = strings.TrimSpace(req.BusinessName)
	req.Website = strings.TrimSpace(req.Website)
	req.ServiceArea = strings.TrimSpace(req.ServiceArea)
	req.Industry = strings.TrimSpace(req.Industry)
	req.PostStyle = dedupe(req.PostStyle)

	return validation.ValidateStruct(req,
		validation.Field(&req.Fullname, validation.Length(0, 100)),
		validation.Field(&req.BusinessName, validation.Length(0, 200)),
		// "example.com" is as valid as "https://example.com"
		validation.Field(&req.Website, validation.Length(0, 255), is.URL),
		validation.Field(&req.ServiceArea, validation.Length(0, 200)),
		validation.Field(&req.Industry, validation.Length(0, 100)),
		validation.Field(&req.PostStyle, validation.Each(validation.In(postStyles...))),
	)
}

func validateSettings(req *models.SettingsRequest) error {
	req.BusinessName = strings.TrimSpace(req.BusinessName)
	req.Industry = strings.TrimSpace(req.Industry)
	req.BrandVoice = strings.TrimSpace(req.BrandVoice)

	return validation.ValidateStruct(req,
		validation.Field(&req.BusinessName, validation.Length(0, 200)),
		validation.Field(&req.Industry, validation.Length(0, 100)),
		validation.Field(&req.BrandVoice, validation.Length(0, 2000)),
	)
}

// dedupe keeps the first occurrence of each value, in order
func dedupe(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
