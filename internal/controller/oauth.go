package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/SeakMengs/RenovaSite/internal/constant"
	"github.com/SeakMengs/RenovaSite/internal/model"
	"github.com/SeakMengs/RenovaSite/internal/util"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
)

const (
	oauthStateCookie = "oauth_state"
	oauthStateMaxAge = 10 * 60
)

type OAuthController struct {
	*baseController
	googleOAuthConfig *oauth2.Config
}

type GoogleUser struct {
	Email         string `json:"email"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	ID            string `json:"id"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	VerifiedEmail bool   `json:"verified_email"`
	AccessToken   string `json:"-"`
}

func (oc OAuthController) ContinueWithGoogle(ctx *gin.Context) {
	oc.app.Logger.Debug("OAuth: Google logic")

	state, err := util.GenerateNChar(16)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(oauthStateCookie, state, oauthStateMaxAge, "/", "", oc.app.Config.IsProduction(), true)

	url := oc.googleOAuthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)

	oc.app.Logger.Debugf("OAuth: Google, Redirect to: %s", url)
	ctx.Redirect(http.StatusTemporaryRedirect, url)
}

func (oc OAuthController) getGoogleUserInfo(ctx context.Context, code string) (*GoogleUser, error) {
	oc.app.Logger.Debug("OAuth: Google, Get user info logic")

	// Exchange the authorization code for an access token
	token, err := oc.googleOAuthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange token: %w", err)
	}

	// Use the access token to fetch user info
	client := oc.googleOAuthConfig.Client(ctx, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info request failed with status: %d", resp.StatusCode)
	}

	var userInfo GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	userInfo.AccessToken = token.AccessToken

	return &userInfo, nil
}

func (oc OAuthController) ContinueWithGoogleCallback(ctx *gin.Context) {
	oc.app.Logger.Debug("OAuth: Google callback logic")

	state, err := ctx.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != ctx.Query("state") {
		util.ResponseFailed(ctx, http.StatusBadRequest, "Invalid oauth state", util.GenerateErrorMessages(errors.New("oauth state mismatch"), "state"), nil)
		return
	}
	ctx.SetCookie(oauthStateCookie, "", -1, "/", "", oc.app.Config.IsProduction(), true)

	userInfo, err := oc.getGoogleUserInfo(ctx, ctx.Query("code"))
	if err != nil {
		oc.app.Logger.Errorf("OAuth: Google, Failed to get user info: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	if !userInfo.VerifiedEmail {
		util.ResponseFailed(ctx, http.StatusForbidden, "Google account email is not verified", util.GenerateErrorMessages(errors.New("email not verified"), "email"), nil)
		return
	}

	// ADMIN_EMAILS is the source of truth for the role on every sign in.
	role := constant.UserRoleUser
	if oc.app.Config.Auth.IsAdminEmail(userInfo.Email) {
		role = constant.UserRoleAdmin
	}

	user, err := oc.app.Repository.User.Upsert(ctx, nil, model.User{
		Email:      userInfo.Email,
		FirstName:  userInfo.GivenName,
		LastName:   userInfo.FamilyName,
		ProfileURL: userInfo.Picture,
		Role:       role,
	})
	if err != nil {
		oc.app.Logger.Errorf("OAuth: Google, Failed to upsert user: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	// Create or update oauth provider such that we can store the access token
	if err := oc.app.Repository.OAuthProvider.CreateOrUpdateByProviderUserId(ctx, nil, model.OAuthProvider{
		ProviderUserId: userInfo.ID,
		ProviderType:   constant.OAUTH_PROVIDER_GOOGLE,
		AccessToken:    userInfo.AccessToken,
		UserID:         user.ID,
	}); err != nil {
		oc.app.Logger.Warnw("OAuth: Google, Failed to store provider token", "userId", user.ID, "error", err)
	}

	refreshToken, accessToken, err := oc.app.Repository.JWT.GenRefreshAndAccessToken(ctx, nil, *user)
	if err != nil {
		oc.app.Logger.Errorf("OAuth: Google, Failed to generate refresh and access token: %v", err)
		util.ResponseFailed(ctx, http.StatusInternalServerError, "", util.GenerateErrorMessages(err), nil)
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"refreshToken": refreshToken,
		"accessToken":  accessToken,
		"isAdmin":      user.IsAdmin(),
	})
}
