package controller

import (
	"errors"
	"net/http"
	"strconv"

	appcontext "github.com/SeakMengs/RenovaSite/internal/app_context"
	"github.com/SeakMengs/RenovaSite/internal/auth"
	"github.com/SeakMengs/RenovaSite/internal/repository"
	"github.com/SeakMengs/RenovaSite/internal/util"
	"github.com/SeakMengs/RenovaSite/pkg/portfolio"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

type baseController struct {
	app *appcontext.Application
}

type Controller struct {
	User         *UserController
	Index        *IndexController
	Auth         *AuthController
	OAuth        *OAuthController
	Public       *PublicController
	Contact      *ContactController
	Project      *ProjectController
	Image        *ImageController
	Video        *VideoController
	ContentBlock *ContentBlockController
	Category     *CategoryController
	SiteSettings *SiteSettingsController
	Dashboard    *DashboardController
}

func newBaseController(app *appcontext.Application) *baseController {
	return &baseController{app: app}
}

func NewController(app *appcontext.Application) *Controller {
	bc := newBaseController(app)

	googleOAuthConfig := &oauth2.Config{
		ClientID:     app.Config.Auth.GoogleOAuthConfig.ClientID,
		ClientSecret: app.Config.Auth.GoogleOAuthConfig.ClientSecret,
		RedirectURL:  app.Config.Auth.GoogleOAuthConfig.RedirectURL,
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
		Endpoint:     google.Endpoint,
	}

	return &Controller{
		User:         &UserController{baseController: bc},
		Index:        &IndexController{baseController: bc},
		Auth:         &AuthController{baseController: bc},
		OAuth:        &OAuthController{baseController: bc, googleOAuthConfig: googleOAuthConfig},
		Public:       &PublicController{baseController: bc},
		Contact:      &ContactController{baseController: bc},
		Project:      &ProjectController{baseController: bc},
		Image:        &ImageController{baseController: bc},
		Video:        &VideoController{baseController: bc},
		ContentBlock: &ContentBlockController{baseController: bc},
		Category:     &CategoryController{baseController: bc},
		SiteSettings: &SiteSettingsController{baseController: bc},
		Dashboard:    &DashboardController{baseController: bc},
	}
}

func (b *baseController) getAuthUser(ctx *gin.Context) (*auth.JWTPayload, error) {
	user, exists := ctx.Get("user")
	if !exists {
		return nil, errors.New("user not found in context")
	}

	payload, ok := user.(auth.JWTPayload)
	if !ok {
		return nil, errors.New("user in context has an unexpected type")
	}

	return &payload, nil
}

// statusOf maps domain and storage errors to an HTTP status.
func statusOf(err error) int {
	var ve validator.ValidationErrors
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, portfolio.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrSlugTaken), errors.Is(err, gorm.ErrDuplicatedKey):
		return http.StatusConflict
	case errors.Is(err, repository.ErrCategoryNotFound),
		errors.Is(err, portfolio.ErrIndexOutOfRange),
		errors.Is(err, portfolio.ErrNoNeighbor),
		errors.Is(err, portfolio.ErrUnsupportedBlockType),
		errors.Is(err, portfolio.ErrInvalidContent),
		errors.Is(err, portfolio.ErrUnknownVideoHost),
		errors.Is(err, ErrInvalidUpload):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// fail answers with the status statusOf picks for err. Server errors are logged.
func (b *baseController) fail(ctx *gin.Context, err error, message string, field string) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		b.app.Logger.Errorw(message, "path", ctx.FullPath(), "error", err)
	} else {
		b.app.Logger.Debugw(message, "path", ctx.FullPath(), "error", err)
	}

	util.ResponseFailed(ctx, status, message, util.GenerateErrorMessages(err, field), nil)
}

func (b *baseController) badRequest(ctx *gin.Context, err error, message string, field string) {
	b.app.Logger.Debugw(message, "path", ctx.FullPath(), "error", err)
	util.ResponseFailed(ctx, http.StatusBadRequest, message, util.GenerateErrorMessages(err, field), nil)
}

func queryUint(ctx *gin.Context, key string) uint {
	v, err := strconv.ParseUint(ctx.Query(key), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}

type reorderRequest struct {
	From *int `json:"from" form:"from" binding:"required,gte=0"`
	To   *int `json:"to" form:"to" binding:"required,gte=0"`
}

type swapRequest struct {
	Direction string `json:"direction" form:"direction" binding:"required,oneof=left right up down previous prev next"`
}
