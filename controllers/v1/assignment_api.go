package apiv1

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sajib4386/Asset-verse-Server/controllers"
	assignmenthandler "github.com/sajib4386/Asset-verse-Server/lib/assignment"
	xlsexport "github.com/sajib4386/Asset-verse-Server/lib/export/xls"
	"github.com/sajib4386/Asset-verse-Server/middleware"
	apimodels "github.com/sajib4386/Asset-verse-Server/models/api"
	assignmentapimodels "github.com/sajib4386/Asset-verse-Server/models/api/assignment"
)

type assignmentApiController struct {
	controllers.BaseAPIController
}

func InitAssignmentHrApiRouters(app *fiber.App) {
	controller := assignmentApiController{}
	app.Route("assignment", func(router fiber.Router) {
		router.Post("list", controller.hrList)
		router.Get("export", controller.export)
	})
}

func InitAssignmentEmployeeApiRouters(app *fiber.App) {
	controller := assignmentApiController{}
	app.Route("assignment", func(router fiber.Router) {
		router.Post("list", controller.employeeList)
	})
}

// @Summary Company assignments
// @Tags Assignments
// @Description List asset units held by the company's employees
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		assignmentapimodels.AssignmentFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]assignmentapimodels.AssignmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/hr/assignment/list [post]
func (c *assignmentApiController) hrList(ctx *fiber.Ctx) error {
	var payload assignmentapimodels.AssignmentFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := assignmenthandler.Instance.ListForHr(middleware.GetUserEmail(ctx), payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Assignment export
// @Tags Assignments
// @Description Download the company's assignment ledger as an xlsx file
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {file} file
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/hr/assignment/export [get]
func (c *assignmentApiController) export(ctx *fiber.Ctx) error {
	list, err := assignmenthandler.Instance.ListForExport(middleware.GetUserEmail(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	buf, err := xlsexport.Instance.ExportAssignmentList(list)
	if err != nil {
		return c.SendError(ctx, err)
	}
	fileName := fmt.Sprintf("assignments_%v.xlsx", time.Now().Format("2006-01-02"))
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, fileName))
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}

// @Summary My assets
// @Tags Assignments
// @Description List asset units held by the signed-in employee
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		assignmentapimodels.AssignmentFilter	true	"request body"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]assignmentapimodels.AssignmentView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/employee/assignment/list [post]
func (c *assignmentApiController) employeeList(ctx *fiber.Ctx) error {
	var payload assignmentapimodels.AssignmentFilter
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := assignmenthandler.Instance.ListForEmployee(middleware.GetUserEmail(ctx), payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}
