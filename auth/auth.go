// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token format")
	ErrBadSignature = errors.New("invalid token signature")
)

// Identity is the authenticated customer
type Identity struct {
	CustomerID string
}

type ctxKey struct{}

// SignToken creates a bearer token for a customer id.
// Format: <customer_id>.<hmac>, deterministic for the same id and salt.
func SignToken(customerID, salt string) string {
	return customerID + "." + sign(customerID, salt)
}

// VerifyToken checks a bearer token and returns the customer id it carries
func VerifyToken(token, salt string) (string, error) {
	i := strings.LastIndexByte(token, '.')
	if i <= 0 || i == len(token)-1 {
		return "", ErrInvalidToken
	}
	customerID, sig := token[:i], token[i+1:]

	if _, err := uuid.Parse(customerID); err != nil {
		return "", ErrInvalidToken
	}

	expected := sign(customerID, salt)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", ErrBadSignature
	}
	return customerID, nil
}

func sign(customerID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(customerID))
	sum := h.Sum(nil)
	// Use URL-safe base64 and trim padding for cleaner tokens
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// BearerToken extracts the token from an Authorization header value
func BearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// WithIdentity returns a context carrying id
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity stored in ctx, if any
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	if !ok || id.CustomerID == "" {
		return Identity{}, false
	}
	return id, true
}

// ContextResolver reads the current user from the request context
type ContextResolver struct{}

func (ContextResolver) CurrentUser(ctx context.Context) (Identity, bool) {
	return FromContext(ctx)
}

// DisplayName picks the greeting name: first word of fullname, else email
func DisplayName(fullname, email string) string {
	if fields := strings.Fields(fullname); len(fields) > 0 {
		return fields[0]
	}
	return email
}
