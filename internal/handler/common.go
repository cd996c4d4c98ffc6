package handler

import (
	"encoding/json"
	"strconv"

	"github.com/labstack/echo/v4"

	"taskhub/internal/auth"
	"taskhub/internal/authz"
	errs "taskhub/internal/errors"
)

// Context keys populated by the router's auth middleware.
const (
	ContextKeyActor  = "actor"
	ContextKeyClaims = "claims"
)

// respondError maps a domain error to its HTTP status and JSON body.
func respondError(c echo.Context, err error) error {
	status, body := errs.MapToHTTP(err)
	return c.JSON(status, body)
}

// actorFrom returns the authenticated actor resolved by the auth middleware.
func actorFrom(c echo.Context) (authz.Actor, error) {
	actor, ok := c.Get(ContextKeyActor).(authz.Actor)
	if !ok {
		return authz.Actor{}, errs.Authentication("authentication required")
	}
	return actor, nil
}

// claimsFrom returns the validated token claims.
func claimsFrom(c echo.Context) (*auth.Claims, error) {
	claims, ok := c.Get(ContextKeyClaims).(*auth.Claims)
	if !ok {
		return nil, errs.Authentication("authentication required")
	}
	return claims, nil
}

// paramUint parses a numeric path parameter.
func paramUint(c echo.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, errs.Validation("invalid " + name)
	}
	return uint(v), nil
}

// OptionalUint distinguishes "absent", "explicitly null" and "set" in a JSON
// patch body. Absent leaves Set false; null sets Set with a nil Value.
type OptionalUint struct {
	Set   bool
	Value *uint
}

// UnmarshalJSON implements json.Unmarshaler.
func (o *OptionalUint) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v uint
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}
