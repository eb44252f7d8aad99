package middleware

import (
	"context"
	"strings"

	"github.com/stayloft-lab/backend/internal/model"
	"github.com/stayloft-lab/backend/pkg/errorx"
	"github.com/stayloft-lab/backend/pkg/jwt"
	"github.com/stayloft-lab/backend/pkg/router"
	"github.com/stayloft-lab/backend/pkg/xcontext"
)

type AuthVerifier struct {
	optional bool
}

func NewAuthVerifier() *AuthVerifier {
	return &AuthVerifier{}
}

// WithOptional accepts anonymous requests; an invalid token is still
// rejected, a missing one is not.
func (a *AuthVerifier) WithOptional() *AuthVerifier {
	a.optional = true
	return a
}

func (a *AuthVerifier) Middleware() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		token := getAccessToken(ctx)
		if token == "" {
			if a.optional {
				return nil, nil
			}

			return nil, errorx.New(errorx.Unauthenticated, "You need to sign in first")
		}

		engine := jwt.NewEngine[model.AccessToken](
			xcontext.Configs(ctx).Auth.TokenSecret,
			xcontext.Configs(ctx).Auth.AccessToken.Expiration,
		)

		info, err := engine.Verify(token)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Cannot verify access token: %v", err)
			return nil, errorx.New(errorx.Unauthenticated, "Invalid or expired access token")
		}

		return xcontext.WithRequestUserID(ctx, info.ID), nil
	}
}

func getAccessToken(ctx context.Context) string {
	r := xcontext.HTTPRequest(ctx)
	if r == nil {
		return ""
	}

	authorization := r.Header.Get("Authorization")
	if auth, token, found := strings.Cut(authorization, " "); found && auth == "Bearer" {
		return token
	}

	cookie, err := r.Cookie(xcontext.Configs(ctx).Auth.AccessToken.Name)
	if err != nil {
		return ""
	}

	return cookie.Value
}
