package main

import (
	"fmt"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/sirupsen/logrus"

	_ "welfare-center-api/docs"
	"welfare-center-api/src/apperrors"
	"welfare-center-api/src/database"
	"welfare-center-api/src/jobs"
	"welfare-center-api/src/routes"
	"welfare-center-api/src/seeder"
)

// @title Welfare Center API
// @version 1.0
// @description Multi-tenant backend for welfare-center institutions: members, daily questions and uploads.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if err := database.ConnectMongoDB(); err != nil {
		logrus.Fatalf("error connecting to the database: %v", err)
	}
	database.InitRedis()
	database.InitAsynq()
	seeder.SeedSystemAdmin()

	// worker mode processes background tasks instead of serving HTTP
	if os.Getenv("WORKER") == "1" || (len(os.Args) > 1 && os.Args[1] == "worker") {
		if err := jobs.RunWorker(); err != nil {
			logrus.Fatalf("worker stopped: %v", err)
		}
		return
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: apperrors.ErrorHandler,
		BodyLimit:    64 << 20,
	})

	origins := os.Getenv("ALLOWED_ORIGINS")
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: origins != "*",
	}))

	app.Get("/swagger/*", swagger.HandlerDefault)

	routes.InitRoutes(app)

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8888"
	}

	logrus.Infof("server is running on port %s", port)
	if err := app.Listen(fmt.Sprintf(":%s", port)); err != nil {
		logrus.Fatal(err)
	}
}
