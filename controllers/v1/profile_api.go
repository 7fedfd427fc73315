package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sajib4386/Asset-verse-Server/controllers"
	accounthandler "github.com/sajib4386/Asset-verse-Server/lib/account"
	filestorage "github.com/sajib4386/Asset-verse-Server/lib/file-storage"
	"github.com/sajib4386/Asset-verse-Server/middleware"
	apimodels "github.com/sajib4386/Asset-verse-Server/models/api"
	accountapimodels "github.com/sajib4386/Asset-verse-Server/models/api/account"
)

type profileApiController struct {
	controllers.BaseAPIController
}

func InitProfileApiRouters(app *fiber.App) {
	controller := profileApiController{}
	app.Route("profile", func(router fiber.Router) {
		router.Use(middleware.AuthorizationRequired())
		router.Put("", controller.update)
		router.Post("upload-image", controller.uploadImage)
	})
}

// @Summary Update profile
// @Tags Profile
// @Description Update the signed-in account's profile
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		accountapimodels.UpdateProfile	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/profile [put]
func (c *profileApiController) update(ctx *fiber.Ctx) error {
	var payload accountapimodels.UpdateProfile
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := accounthandler.Instance.UpdateProfile(middleware.GetUserID(ctx), payload); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Upload an image
// @Tags Profile
// @Description Upload a profile, logo or asset image and get its public URL
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	file				formData	file	true	"image file"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/profile/upload-image [post]
func (c *profileApiController) uploadImage(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("image file is required"))
	}
	file, err := fileHeader.Open()
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("image file could not be read"))
	}
	defer file.Close()

	url, err := filestorage.Instance.UploadImage(ctx.Context(),
		fileHeader.Filename,
		fileHeader.Header.Get(fiber.HeaderContentType),
		file,
		fileHeader.Size)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(url))
}
