package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sajib4386/Asset-verse-Server/controllers"
	requesthandler "github.com/sajib4386/Asset-verse-Server/lib/request"
	"github.com/sajib4386/Asset-verse-Server/middleware"
	apimodels "github.com/sajib4386/Asset-verse-Server/models/api"
	requestapimodels "github.com/sajib4386/Asset-verse-Server/models/api/request"
)

type requestApiController struct {
	controllers.BaseAPIController
}

func InitRequestHrApiRouters(app *fiber.App) {
	controller := requestApiController{}
	app.Route("request", func(router fiber.Router) {
		router.Post("list", controller.hrList)
		router.Get(":id", controller.getByID)
		router.Post(":id/approve", controller.approve)
		router.Post(":id/reject", controller.reject)
	})
}

func InitRequestEmployeeApiRouters(app *fiber.App) {
	controller := requestApiController{}
	app.Route("request", func(router fiber.Router) {
		router.Post("", controller.create)
		router.Post("list", controller.employeeList)
	})
}

// @Summary Request an asset
// @Tags Asset requests
// @Description Open a pending request for one unit of an asset
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		requestapimodels.RequestCreateData	true	"request body"
// @Success 200 {object} apimodels.Response{data=string}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employee/request [post]
func (c *requestApiController) create(ctx *fiber.Ctx) error {
	var payload requestapimodels.RequestCreateData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	employee := middleware.GetCurrentUser(ctx)
	id, err := requesthandler.Instance.Create(employee, payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(id))
}

// @Summary My requests
// @Tags Asset requests
// @Description List the signed-in employee's requests
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		requestapimodels.RequestFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]requestapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employee/request/list [post]
func (c *requestApiController) employeeList(ctx *fiber.Ctx) error {
	var payload requestapimodels.RequestFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := requesthandler.Instance.ListForEmployee(middleware.GetUserEmail(ctx), payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Incoming requests
// @Tags Asset requests
// @Description List requests against the company's assets
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		requestapimodels.RequestFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]requestapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/hr/request/list [post]
func (c *requestApiController) hrList(ctx *fiber.Ctx) error {
	var payload requestapimodels.RequestFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := requesthandler.Instance.ListForHr(middleware.GetUserEmail(ctx), payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Request details
// @Tags Asset requests
// @Description Get one request
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"request id"
// @Success 200 {object} apimodels.Response{data=requestapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/hr/request/{id} [get]
func (c *requestApiController) getByID(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := requesthandler.Instance.GetByID(id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	if resp.HrEmail != middleware.GetUserEmail(ctx) {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError("request not found"))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Approve a request
// @Tags Asset requests
// @Description Reserve a unit, open an assignment and affiliate the employee in one step
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"request id"
// @Success 200 {object} apimodels.Response{data=requestapimodels.ApprovalResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 422 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/hr/request/{id}/approve [post]
func (c *requestApiController) approve(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hr := middleware.GetCurrentUser(ctx)
	resp, err := requesthandler.Instance.Approve(hr, id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Reject a request
// @Tags Asset requests
// @Description Close a pending request without side effects
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	id					path		string	true	"request id"
// @Success 200 {object} apimodels.Response{data=requestapimodels.RequestView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/hr/request/{id}/reject [post]
func (c *requestApiController) reject(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hr := middleware.GetCurrentUser(ctx)
	resp, err := requesthandler.Instance.Reject(hr, id)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
