package auth

import (
	"context"
	"errors"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"spotbook/internal/model"
	"spotbook/internal/repository"
)

const (
	claimsContextKey   = "session"
	identityContextKey = "user"
)

// SessionLoader reloads the user a token was issued for.
type SessionLoader interface {
	GetSessionUser(ctx context.Context, id uint) (*model.SessionUser, error)
}

// SessionParser validates a raw token.
type SessionParser interface {
	Validate(token string) (*Claims, error)
}

// Restorer resolves the session cookie into an identity. It never rejects a
// request: a bad, revoked or orphaned token just clears the cookie and the
// request continues anonymously.
type Restorer struct {
	parser     SessionParser
	users      SessionLoader
	tokens     TokenStoreInterface
	production bool
	log        *logrus.Logger
}

// NewRestorer creates a session restorer.
func NewRestorer(parser SessionParser, users SessionLoader, tokens TokenStoreInterface, production bool, log *logrus.Logger) *Restorer {
	return &Restorer{parser: parser, users: users, tokens: tokens, production: production, log: log}
}

// Middleware returns the two-step chain: token parsing then user reload.
func (r *Restorer) Middleware() []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{r.parseToken(), r.restoreUser}
}

func (r *Restorer) parseToken() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		TokenLookup: "cookie:" + CookieName,
		ContextKey:  claimsContextKey,
		ParseTokenFunc: func(_ echo.Context, token string) (interface{}, error) {
			return r.parser.Validate(token)
		},
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			if _, cookieErr := c.Cookie(CookieName); cookieErr == nil {
				ClearTokenCookie(c, r.production)
			}
			return nil
		},
	})
}

func (r *Restorer) restoreUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := SessionClaims(c)
		if claims == nil {
			return next(c)
		}
		ctx := c.Request().Context()

		revoked, _ := r.tokens.IsRevoked(ctx, claims.ID)
		if revoked {
			ClearTokenCookie(c, r.production)
			c.Set(claimsContextKey, nil)
			return next(c)
		}

		user, err := r.users.GetSessionUser(ctx, claims.Data.ID)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) && r.log != nil {
				r.log.WithError(err).WithField("user_id", claims.Data.ID).Warn("session user lookup failed")
			}
			ClearTokenCookie(c, r.production)
			c.Set(claimsContextKey, nil)
			return next(c)
		}

		SetIdentity(c, user)
		if r.log != nil {
			r.log.WithField("user_id", user.ID).Debug("session restored")
		}
		return next(c)
	}
}

// SessionClaims returns the validated claims of the current request, if any.
func SessionClaims(c echo.Context) *Claims {
	claims, _ := c.Get(claimsContextKey).(*Claims)
	return claims
}

// SetIdentity records the restored user on the request.
func SetIdentity(c echo.Context, user *model.SessionUser) {
	c.Set(identityContextKey, user)
}

// Identity is the restored user, or nil for anonymous requests.
func Identity(c echo.Context) *model.SessionUser {
	user, _ := c.Get(identityContextKey).(*model.SessionUser)
	return user
}
