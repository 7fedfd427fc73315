package apiv1

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sajib4386/Asset-verse-Server/controllers"
	assethandler "github.com/sajib4386/Asset-verse-Server/lib/asset"
	xlsexport "github.com/sajib4386/Asset-verse-Server/lib/export/xls"
	"github.com/sajib4386/Asset-verse-Server/middleware"
	apimodels "github.com/sajib4386/Asset-verse-Server/models/api"
	assetapimodels "github.com/sajib4386/Asset-verse-Server/models/api/asset"
)

type assetApiController struct {
	controllers.BaseAPIController
}

func InitAssetApiRouters(app *fiber.App) {
	controller := assetApiController{}
	app.Route("asset", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Post("list", controller.list)
		router.Get("export", controller.export)
		router.Get(":id", controller.getByID)
		router.Put(":id", controller.update)
		router.Delete(":id", controller.delete)
	})
}

func InitAssetEmployeeApiRouters(app *fiber.App) {
	controller := assetApiController{}
	app.Route("asset", func(router fiber.Router) {
		router.Post("browse", controller.browse)
		router.Get(":id", controller.getByID)
	})
}

// @Summary Create an asset
// @Tags Assets
// @Description Add an inventory position to the company
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		assetapimodels.AssetData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/hr/asset [post]
func (c *assetApiController) create(ctx *fiber.Ctx) error {
	var payload assetapimodels.AssetData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hr := middleware.GetCurrentUser(ctx)
	id, err := assethandler.Instance.Create(hr, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary Asset list
// @Tags Assets
// @Description List the company inventory with filters and paging
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		assetapimodels.AssetFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]assetapimodels.AssetView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/hr/asset/list [post]
func (c *assetApiController) list(ctx *fiber.Ctx) error {
	var payload assetapimodels.AssetFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := assethandler.Instance.List(middleware.GetUserEmail(ctx), payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Browse assets
// @Tags Assets
// @Description Cross-company asset catalog employees request from
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		assetapimodels.AssetFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]assetapimodels.AssetView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employee/asset/browse [post]
func (c *assetApiController) browse(ctx *fiber.Ctx) error {
	var payload assetapimodels.AssetFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := assethandler.Instance.Browse(payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Inventory export
// @Tags Assets
// @Description Download the company inventory as an xlsx file
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {file} file
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/hr/asset/export [get]
func (c *assetApiController) export(ctx *fiber.Ctx) error {
	list, err := assethandler.Instance.ListForExport(middleware.GetUserEmail(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	buf, err := xlsexport.Instance.ExportInventory(list)
	if err != nil {
		return c.SendError(ctx, err)
	}
	fileName := fmt.Sprintf("inventory_%v.xlsx", time.Now().Format("2006-01-02"))
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, fileName))
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}

// @Summary Asset details
// @Tags Assets
// @Description Get one inventory position
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"asset id"
// @Success 200 {object} apimodels.Response{data=assetapimodels.AssetView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/hr/asset/{id} [get]
func (c *assetApiController) getByID(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := assethandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Edit an asset
// @Tags Assets
// @Description Change an inventory position; availability is recomputed from open assignments
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"asset id"
// @Param	body				body		assetapimodels.AssetData	true	"request body"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/hr/asset/{id} [put]
func (c *assetApiController) update(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	var payload assetapimodels.AssetData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hr := middleware.GetCurrentUser(ctx)
	if err := assethandler.Instance.Update(hr, id, payload); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Delete an asset
// @Tags Assets
// @Description Remove an inventory position with no open assignments
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"asset id"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/hr/asset/{id} [delete]
func (c *assetApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hr := middleware.GetCurrentUser(ctx)
	if err := assethandler.Instance.Delete(hr, id); err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
