package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sajib4386/Asset-verse-Server/controllers"
	billinghandler "github.com/sajib4386/Asset-verse-Server/lib/billing"
	"github.com/sajib4386/Asset-verse-Server/middleware"
	apimodels "github.com/sajib4386/Asset-verse-Server/models/api"
	billingapimodels "github.com/sajib4386/Asset-verse-Server/models/api/billing"
)

type billingApiController struct {
	controllers.BaseAPIController
}

func InitBillingApiRouters(app *fiber.App) {
	controller := billingApiController{}
	app.Route("billing", func(router fiber.Router) {
		router.Get("plans", controller.plans)
		router.Get("subscription", controller.subscription)
		router.Post("checkout", controller.checkout)
		router.Get("payments", controller.payments)
	})
}

// InitPaymentWebhookRouters mounts the provider callback; it carries no JWT
// and is deduplicated by transaction id instead.
func InitPaymentWebhookRouters(app *fiber.App) {
	controller := billingApiController{}
	app.Route("webhooks", func(router fiber.Router) {
		router.Post("payment", controller.paymentWebhook)
	})
}

// @Summary Subscription plans
// @Tags Billing
// @Description List the purchasable subscription plans
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]billingapimodels.PlanView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/hr/billing/plans [get]
func (c *billingApiController) plans(ctx *fiber.Ctx) error {
	resp, err := billinghandler.Instance.GetPlans()
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Current subscription
// @Tags Billing
// @Description Get the company's plan, seat limit and seats in use
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=billingapimodels.SubscriptionView}
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/hr/billing/subscription [get]
func (c *billingApiController) subscription(ctx *fiber.Ctx) error {
	resp, err := billinghandler.Instance.GetSubscription(middleware.GetUserEmail(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Start a checkout
// @Tags Billing
// @Description Open a pending payment for a plan upgrade
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	body				body		billingapimodels.CheckoutRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=billingapimodels.CheckoutResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/hr/billing/checkout [post]
func (c *billingApiController) checkout(ctx *fiber.Ctx) error {
	var payload billingapimodels.CheckoutRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := billinghandler.Instance.CreateCheckout(middleware.GetUserEmail(ctx), payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Payment history
// @Tags Billing
// @Description List the company's payments, newest first
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]billingapimodels.PaymentView}
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/hr/billing/payments [get]
func (c *billingApiController) payments(ctx *fiber.Ctx) error {
	resp, err := billinghandler.Instance.ListPayments(middleware.GetUserEmail(ctx))
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Payment completion callback
// @Tags Billing
// @Description Provider callback marking a checkout as paid; repeated deliveries are acknowledged without effect
// @Param	body				body		billingapimodels.PaymentWebhook	true	"request body"
// @Success 200 {object} apimodels.Response{data=billingapimodels.PaymentView}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/webhooks/payment [post]
func (c *billingApiController) paymentWebhook(ctx *fiber.Ctx) error {
	var payload billingapimodels.PaymentWebhook
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := payload.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	resp, err := billinghandler.Instance.ConfirmPayment(payload)
	if err != nil {
		return c.SendError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}
