// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides bearer tokens and the request identity.

# Bearer Tokens

Tokens use HMAC-SHA256 over the customer id:

	token := auth.SignToken(customerID, salt)
	customerID, err := auth.VerifyToken(token, salt)

The token is the customer id followed by a URL-safe base64 signature without
padding. It is deterministic, so validation needs no database lookup.
Customer ids are UUIDs; anything else is rejected as ErrInvalidToken.

# Identity

middleware.WithIdentity verifies the Authorization header and stores the
result in the request context:

	ctx = auth.WithIdentity(ctx, auth.Identity{CustomerID: id})
	id, ok := auth.FromContext(ctx)

ContextResolver adapts FromContext to the identity lookup the submission
workflow expects. A missing identity is not an error here; callers decide.

# Display Names

	auth.DisplayName("John Smith", "john@example.com") // "John"
	auth.DisplayName("", "john@example.com")           // "john@example.com"
*/
package auth
