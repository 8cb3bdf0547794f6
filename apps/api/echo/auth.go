package echoapi

import (
	"net/http"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/qemer/lms/core"
	"github.com/qemer/lms/core/auth"
)

const tokenContextKey = "userToken"

// Claims represents the identity transmitted via a JWT. Tokens carry no
// expiry: the persisted session never expires either, and the token mirrors
// that (known prototype gap).
type Claims struct {
	jwt.StandardClaims
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Role    string `json:"role,omitempty"`
	Avatar  string `json:"avatar,omitempty"`
	IsAdmin bool   `json:"is_admin,omitempty"` // -> ADMIN PORTAL
}

func GetIdentityClaims(conf *core.Config, identity auth.Identity) *Claims {
	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:   conf.AppName,
			Subject:  identity.ID,
			IssuedAt: time.Now().Unix(),
		},
		Name:    identity.Name,
		Email:   identity.Email,
		Role:    identity.Role,
		Avatar:  identity.Avatar,
		IsAdmin: identity.Role == "admin",
	}
}

// GenerateToken generates a signed JWT token string representing the Claims.
func GenerateToken(conf *core.Config, claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString([]byte(conf.SecretKey))
	return ss, errors.Wrap(err, "signing token")
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if token, ok := ctx.Get(tokenContextKey).(*jwt.Token); ok {
		if claims, ok := token.Claims.(*Claims); ok {
			return *claims, nil
		}
	}
	return Claims{}, errUnauthorized
}

func (c Claims) identity() auth.Identity {
	return auth.Identity{
		ID:     c.Subject,
		Name:   c.Name,
		Email:  c.Email,
		Role:   c.Role,
		Avatar: c.Avatar,
	}
}

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string        `json:"token"`
		User  auth.Identity `json:"user"`
	}
)

func (r *LoginRequest) Validate(validate *validator.Validate) error {
	r.Email = core.CleanString(r.Email)
	return validate.Struct(r)
}

type authApi struct {
	session  *auth.Session
	conf     *core.Config
	validate *validator.Validate
}

func registerAuthAPI(g *echo.Group, jwt echo.MiddlewareFunc, session *auth.Session, conf *core.Config, validate *validator.Validate) {
	api := authApi{session: session, conf: conf, validate: validate}

	ag := g.Group("/auth")
	ag.POST("/login", api.login)

	// authed endpoints
	tg := ag.Group("", jwt)
	tg.GET("/me", api.me)
	tg.POST("/logout", api.logout)
}

// login drives the session store. A credential mismatch is an expected
// outcome, reported without hinting at which of email or password was wrong.
func (api *authApi) login(ctx echo.Context) error {
	data := new(LoginRequest)
	if err := ctx.Bind(data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ok, err := api.session.Login(ctx.Request().Context(), data.Email, data.Password)
	if err != nil {
		return errors.Wrap(err, "logging in")
	}
	if !ok {
		return errAuthenticationFailed
	}

	identity, _ := api.session.Current()
	token, err := GenerateToken(api.conf, GetIdentityClaims(api.conf, identity))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, LoginResponse{Token: token, User: identity})
}

func (api *authApi) me(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, claims.identity())
}

func (api *authApi) logout(ctx echo.Context) error {
	if err := api.session.Logout(); err != nil {
		return errors.Wrap(err, "logging out")
	}
	return ctx.NoContent(http.StatusNoContent)
}
