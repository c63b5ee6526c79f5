package echoapi

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/trezcool/masomo-console/core"
	"github.com/trezcool/masomo-console/core/session"
)

const (
	contextTokenKey   = "userToken"
	contextSessionKey = "session"
)

// Claims represents the authorization claims transmitted via a JWT.
// Tokens are issued by the Masomo auth service; this API only reads them.
type Claims struct {
	jwt.StandardClaims
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role"`
	SchoolID string `json:"school_id,omitempty"`
}

// Session converts the claims into the caller's session.
func (c Claims) Session() session.Session {
	return session.Session{
		ID:       c.Id,
		UserID:   c.Subject,
		Username: c.Username,
		Email:    c.Email,
		Role:     c.Role,
		Tenant:   session.Tenant{SchoolID: c.SchoolID},
	}
}

func jwtConfig(conf *core.Config) middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    []byte(conf.SecretKey),
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    contextTokenKey,
		Claims:        new(Claims),
	}
}

// NewClaims returns the claims of a session, valid for conf.Server.JWTExpirationDelta.
func NewClaims(sess session.Session, conf *core.Config) *Claims {
	now := time.Now()
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Id:        sess.ID,
			Issuer:    conf.Server.JWTIssuer,
			Subject:   sess.UserID,
			ExpiresAt: now.Add(conf.Server.JWTExpirationDelta).Unix(),
			IssuedAt:  now.Unix(),
		},
		Username: sess.Username,
		Email:    sess.Email,
		Role:     sess.Role,
		SchoolID: sess.Tenant.SchoolID,
	}
}

// GenerateToken generates a signed JWT token string representing the Claims.
func GenerateToken(claims *Claims, conf *core.Config) (string, error) {
	method := jwt.GetSigningMethod(middleware.AlgorithmHS256)
	token := jwt.NewWithClaims(method, claims)

	ss, err := token.SignedString([]byte(conf.SecretKey))
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(contextTokenKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

func getContextSession(ctx echo.Context) (session.Session, error) {
	if sess, ok := ctx.Get(contextSessionKey).(session.Session); ok {
		return sess, nil
	}
	claims, err := getContextClaims(ctx)
	if err != nil {
		return session.Session{}, err
	}
	sess := claims.Session()
	ctx.Set(contextSessionKey, sess)
	return sess, nil
}
