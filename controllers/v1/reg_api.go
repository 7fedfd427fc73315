package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sajib4386/Asset-verse-Server/controllers"
	accounthandler "github.com/sajib4386/Asset-verse-Server/lib/account"
	billinghandler "github.com/sajib4386/Asset-verse-Server/lib/billing"
	apimodels "github.com/sajib4386/Asset-verse-Server/models/api"
	accountapimodels "github.com/sajib4386/Asset-verse-Server/models/api/account"
)

type regApiController struct {
	controllers.BaseAPIController
}

func InitRegRouters(app *fiber.App) {
	controller := regApiController{}
	app.Route("register", func(router fiber.Router) {
		router.Post("employee", controller.registerEmployee)
		router.Post("hr", controller.registerHR)
		router.Get("plans", controller.plans)
	})
}

// @Summary Register an employee account
// @Tags Registration
// @Description Register an employee account
// @Param	body				body		accountapimodels.RegisterEmployee	true	"request body"
// @Success 200 {object} apimodels.Response{data=accountapimodels.UserView}
// @Failure 400 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/register/employee [post]
func (c *regApiController) registerEmployee(ctx *fiber.Ctx) error {
	var payload accountapimodels.RegisterEmployee
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := accounthandler.Instance.RegisterEmployee(payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Register an HR account
// @Tags Registration
// @Description Register an HR account with a company and a subscription package
// @Param	body				body		accountapimodels.RegisterHR	true	"request body"
// @Success 200 {object} apimodels.Response{data=accountapimodels.UserView}
// @Failure 400 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/register/hr [post]
func (c *regApiController) registerHR(ctx *fiber.Ctx) error {
	var payload accountapimodels.RegisterHR
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := accounthandler.Instance.RegisterHR(payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Subscription packages
// @Tags Registration
// @Description List the available subscription packages
// @Success 200 {object} apimodels.Response{data=[]billingapimodels.PlanView}
// @Failure 500 {object} apimodels.Response
// @router /api/v1/register/plans [get]
func (c *regApiController) plans(ctx *fiber.Ctx) error {
	resp, err := billinghandler.Instance.GetPlans()
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
