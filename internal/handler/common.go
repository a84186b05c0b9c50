package handler // handler defines http handlers

import (
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/kindlot/charity-auction/internal/middleware"
	"github.com/kindlot/charity-auction/internal/model"
	"github.com/kindlot/charity-auction/internal/policy"
)

// currentViewer reads the authenticated identity that JWTAuth stored in the
// context.  A zero viewer means the request is unauthenticated.
func currentViewer(c echo.Context) policy.Viewer {
	return middleware.ViewerFrom(c)
}

// viewerFromBearer parses the Authorization header directly, for endpoints
// that sit outside the JWT middleware (logout).  Returns the zero viewer
// when no valid bearer token is present.
func viewerFromBearer(c echo.Context, secret string) policy.Viewer {
	var v policy.Viewer
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return v
	}
	raw := strings.TrimPrefix(auth, "Bearer ")
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.ErrUnauthorized
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return v
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return v
	}
	switch sub := claims["sub"].(type) {
	case float64:
		v.ID = uint64(sub)
	case string:
		if n, err := strconv.ParseUint(sub, 10, 64); err == nil {
			v.ID = n
		}
	}
	if s, ok := claims["role"].(string); ok {
		v.Role = model.Role(s)
	}
	return v
}

// pathID parses a numeric :id path parameter.
func pathID(c echo.Context) (uint64, bool) {
	n, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return n, true
}
