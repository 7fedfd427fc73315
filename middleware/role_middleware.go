package middleware

import (
	"github.com/gofiber/fiber/v2"

	authutils "github.com/sajib4386/Asset-verse-Server/lib/utils/auth-utils"
	"github.com/sajib4386/Asset-verse-Server/models"
	apimodels "github.com/sajib4386/Asset-verse-Server/models/api"
)

func HRRoleRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if GetUserRole(ctx) != models.HRRole {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("operation requires an HR account"))
		}
		return ctx.Next()
	}
}

func EmployeeRoleRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if GetUserRole(ctx) != models.EmployeeRole {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("operation requires an employee account"))
		}
		return ctx.Next()
	}
}

func GetUserID(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if sub, exist := claims["sub"]; exist {
		if value, ok := sub.(string); ok {
			return value
		}
	}
	return ""
}

func GetUserEmail(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if email, exist := claims["email"]; exist {
		if value, ok := email.(string); ok {
			return value
		}
	}
	return ""
}

func GetUserName(ctx *fiber.Ctx) string {
	claims := authutils.GetClaims(ctx)
	if name, exist := claims["name"]; exist {
		if value, ok := name.(string); ok {
			return value
		}
	}
	return ""
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	claims := authutils.GetClaims(ctx)
	if role, exist := claims["role"]; exist {
		if value, ok := role.(string); ok && value != "" {
			return models.UserRole(value)
		}
	}
	return ""
}

func GetCurrentUser(ctx *fiber.Ctx) models.CurrentUser {
	return models.CurrentUser{
		ID:    GetUserID(ctx),
		Email: GetUserEmail(ctx),
		Name:  GetUserName(ctx),
		Role:  GetUserRole(ctx),
	}
}
