package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	apperrors "github.com/sajib4386/Asset-verse-Server/lib/utils/app-errors"
	"github.com/sajib4386/Asset-verse-Server/middleware"
	apimodels "github.com/sajib4386/Asset-verse-Server/models/api"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("request body parse failed")
		return errors.New("request body could not be parsed")
	}
	return nil
}

func (c *BaseAPIController) GetID(ctx *fiber.Ctx) (string, error) {
	return c.GetIDByKey(ctx, "id")
}

func (c *BaseAPIController) GetIDByKey(ctx *fiber.Ctx, key string) (string, error) {
	id := ctx.Params(key)
	if id == "" {
		return "", errors.Errorf("path parameter is required: %v", key)
	}
	return id, nil
}

func (c *BaseAPIController) GetLogger(ctx *fiber.Ctx) *log.Entry {
	return log.
		WithField("user_id", middleware.GetUserID(ctx)).
		WithField("api_method", ctx.Method()).
		WithField("api_path", ctx.Path())
}

// SendError maps the error kind onto an HTTP status; untyped errors
// are treated as internal.
func (c *BaseAPIController) SendError(ctx *fiber.Ctx, err error) error {
	kind := apperrors.KindOf(err)
	status := fiber.StatusInternalServerError
	switch kind {
	case apperrors.KindNotFound:
		status = fiber.StatusNotFound
	case apperrors.KindInvalidState,
		apperrors.KindAssetUnavailable,
		apperrors.KindDuplicateRequest,
		apperrors.KindAlreadyExists:
		status = fiber.StatusConflict
	case apperrors.KindCapacityExceeded:
		status = fiber.StatusUnprocessableEntity
	case apperrors.KindUnauthorized:
		status = fiber.StatusForbidden
	}
	if status == fiber.StatusInternalServerError {
		c.GetLogger(ctx).WithError(err).Error("request failed")
		return ctx.Status(status).JSON(apimodels.NewError("internal error"))
	}
	return ctx.Status(status).JSON(apimodels.NewKindError(string(kind), err.Error()))
}
