package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sajib4386/Asset-verse-Server/controllers"
	accounthandler "github.com/sajib4386/Asset-verse-Server/lib/account"
	affiliationhandler "github.com/sajib4386/Asset-verse-Server/lib/affiliation"
	"github.com/sajib4386/Asset-verse-Server/middleware"
	apimodels "github.com/sajib4386/Asset-verse-Server/models/api"
)

type staffApiController struct {
	controllers.BaseAPIController
}

func InitStaffApiRouters(app *fiber.App) {
	controller := staffApiController{}
	app.Route("staff", func(router fiber.Router) {
		router.Get("list", controller.list)
		router.Get("affiliations", controller.affiliations)
		router.Delete(":email", controller.remove)
	})
}

func InitAffiliationEmployeeApiRouters(app *fiber.App) {
	controller := staffApiController{}
	app.Route("affiliation", func(router fiber.Router) {
		router.Get("list", controller.myCompanies)
	})
}

// @Summary Company staff
// @Tags Staff
// @Description List the employees currently affiliated with the company
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]accountapimodels.UserView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/hr/staff/list [get]
func (c *staffApiController) list(ctx *fiber.Ctx) error {
	resp, err := accounthandler.Instance.ListEmployees(middleware.GetUserEmail(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Active affiliations
// @Tags Staff
// @Description List the company's active affiliation records
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]affiliationapimodels.AffiliationView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/hr/staff/affiliations [get]
func (c *staffApiController) affiliations(ctx *fiber.Ctx) error {
	resp, err := affiliationhandler.Instance.ListActiveForHr(middleware.GetUserEmail(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Remove an employee
// @Tags Staff
// @Description End the affiliation, return all held units to inventory and free a seat
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	email				path		string	true	"employee email"
// @Success 200 {object} apimodels.Response{data=affiliationapimodels.RemovalResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/hr/staff/{email} [delete]
func (c *staffApiController) remove(ctx *fiber.Ctx) error {
	email, err := c.GetIDByKey(ctx, "email")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	hr := middleware.GetCurrentUser(ctx)
	resp, err := affiliationhandler.Instance.RemoveEmployee(hr, email)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary My companies
// @Tags Staff
// @Description List the companies the signed-in employee is affiliated with
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]affiliationapimodels.AffiliationView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employee/affiliation/list [get]
func (c *staffApiController) myCompanies(ctx *fiber.Ctx) error {
	resp, err := affiliationhandler.Instance.ListActiveForEmployee(middleware.GetUserEmail(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
