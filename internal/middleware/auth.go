package middleware

import (
	"errors"
	"net/http"

	"github.com/SeakMengs/RenovaSite/internal/auth"
	"github.com/SeakMengs/RenovaSite/internal/constant"
	"github.com/SeakMengs/RenovaSite/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const SIGN_OUT_URL = "/api/v1/auth/sign-out"

func (m Middleware) AuthMiddleware(ctx *gin.Context) {
	token, err := util.ReadBearerToken(ctx)
	if err != nil {
		m.app.Logger.Debugf("Failed to read token: %v", err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(err, "unauthorized"), nil)
		return
	}

	claim, err := m.app.JWTService.VerifyJwtToken(token)
	if err != nil {
		m.app.Logger.Debugf("Failed to verify token: %v", err)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Invalid token", util.GenerateErrorMessages(err, "unauthorized"), nil)
		return
	}

	if claim.Type != constant.JWT_TYPE_ACCESS {
		m.app.Logger.Debugf("Invalid token type: %s", claim.Type)
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Invalid access token type", util.GenerateErrorMessages(errors.New("expected an access token"), "unauthorized"), nil)
		return
	}

	ctx.Set("user", claim.User)
	ctx.Next()
}

// AdminMiddleware must run after AuthMiddleware. The role is read from the database so a
// demoted user loses access before their access token expires.
func (m Middleware) AdminMiddleware(ctx *gin.Context) {
	value, _ := ctx.Get("user")
	payload, ok := value.(auth.JWTPayload)
	if !ok {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "", util.GenerateErrorMessages(errors.New("missing user"), "unauthorized"), nil)
		return
	}

	user, err := m.app.Repository.User.GetById(ctx, nil, payload.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.ResponseFailed(ctx, http.StatusUnauthorized, "User no longer exists", util.GenerateErrorMessages(err, "unauthorized"), nil)
			return
		}
		m.app.Logger.Errorf("Failed to load user %s: %v", payload.ID, err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	if !user.IsAdmin() {
		m.app.Logger.Infof("Non admin %s tried to reach %s", user.Email, ctx.FullPath())
		util.ResponseFailed(ctx, http.StatusForbidden, "You do not have access to the admin area", util.GenerateErrorMessages(errors.New("admin role required"), "forbidden"), gin.H{
			"accessDenied": true,
			"signOutUrl":   SIGN_OUT_URL,
		})
		return
	}

	ctx.Set("admin", user)
	ctx.Next()
}
