package controller

import (
	"net/http"

	"github.com/SeakMengs/RenovaSite/internal/util"
	"github.com/gin-gonic/gin"
)

type UserController struct {
	*baseController
}

// Me returns the signed in user as stored, so the role reflects the latest sign in.
func (uc UserController) Me(ctx *gin.Context) {
	authUser, err := uc.getAuthUser(ctx)
	if err != nil {
		util.ResponseFailed(ctx, http.StatusUnauthorized, "Unauthorized", util.GenerateErrorMessages(err), nil)
		return
	}

	user, err := uc.app.Repository.User.GetById(ctx, nil, authUser.ID)
	if err != nil {
		uc.fail(ctx, err, "Failed to get user", "user")
		return
	}

	util.ResponseSuccess(ctx, gin.H{
		"user":    user,
		"isAdmin": user.IsAdmin(),
	})
}
