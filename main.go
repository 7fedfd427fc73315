package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberRecover "github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"

	"github.com/sajib4386/Asset-verse-Server/config"
	apiv1 "github.com/sajib4386/Asset-verse-Server/controllers/v1"
	"github.com/sajib4386/Asset-verse-Server/fiberlog"
	"github.com/sajib4386/Asset-verse-Server/initializers"
	"github.com/sajib4386/Asset-verse-Server/middleware"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	initializers.InitAllServices(ctx)

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // limit of 20MB
	})
	app.Use(fiberRecover.New())

	swaggerCfg := swagger.Config{
		Path:     "/swagger",
		FilePath: "./docs/swagger.json",
	}
	app.Use(swagger.New(swaggerCfg))

	//api
	apiV1 := fiber.New()
	apiV1.Use(fiberlog.New(*initializers.LoggerConfig))
	app.Mount("/api/v1", apiV1)
	apiV1.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE, PUT",
	}))
	apiv1.InitRegRouters(apiV1)
	apiv1.InitAuthApiRouters(apiV1)
	apiv1.InitPaymentWebhookRouters(apiV1)

	apiv1.InitProfileApiRouters(apiV1)

	//hr
	hr := fiber.New()
	apiV1.Mount("/hr", hr)
	hr.Use(middleware.AuthorizationRequired())
	hr.Use(middleware.HRRoleRequired())
	apiv1.InitAssetApiRouters(hr)
	apiv1.InitRequestHrApiRouters(hr)
	apiv1.InitAssignmentHrApiRouters(hr)
	apiv1.InitStaffApiRouters(hr)
	apiv1.InitBillingApiRouters(hr)

	//employee
	employee := fiber.New()
	apiV1.Mount("/employee", employee)
	employee.Use(middleware.AuthorizationRequired())
	employee.Use(middleware.EmployeeRoleRequired())
	apiv1.InitAssetEmployeeApiRouters(employee)
	apiv1.InitRequestEmployeeApiRouters(employee)
	apiv1.InitAssignmentEmployeeApiRouters(employee)
	apiv1.InitAffiliationEmployeeApiRouters(employee)

	app.Hooks().OnShutdown()

	// gracefully shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	wg := sync.WaitGroup{}
	go func() {
		<-c
		wg.Add(1)
		defer wg.Done()
		log.Info("Gracefully shutting down...")
		cancel()
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("Error when try gracefully shutting down")
		}
		time.Sleep(time.Second)
		log.Info("Gracefully shutting down finished")
	}()

	// run HTTP server
	if err := app.Listen(fmt.Sprintf("%s:%d", config.Conf.App.ListenAddr, config.Conf.App.Port)); err != nil {
		log.Fatal(err)
	}

	wg.Wait()
	log.Info("HTTP server successfully stopped")
}
