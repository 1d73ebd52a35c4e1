package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/coursehub/internal/buildinfo"
	"github.com/dmitrijs2005/coursehub/internal/client/api"
	"github.com/dmitrijs2005/coursehub/internal/client/cli"
	"github.com/dmitrijs2005/coursehub/internal/client/config"
	"github.com/dmitrijs2005/coursehub/internal/client/credentials"
	"github.com/dmitrijs2005/coursehub/internal/client/events"
	"github.com/dmitrijs2005/coursehub/internal/client/idp"
	"github.com/dmitrijs2005/coursehub/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/coursehub/internal/client/services"
	"github.com/dmitrijs2005/coursehub/internal/client/session"
	"github.com/dmitrijs2005/coursehub/internal/client/storage"
	"github.com/dmitrijs2005/coursehub/internal/logging"
	"github.com/dmitrijs2005/coursehub/internal/otelx"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	shutdownTracing, err := otelx.Setup(ctx, cfg.OTelEndpoint, "coursehub-cli", buildinfo.Version)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn(context.Background(), "trace flush failed", "error", err)
		}
	}()

	db, err := storage.Open(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer db.Close()

	client := api.New(cfg.APIBaseURL, cfg.RequestTimeout, logger)
	sess := session.NewStore()
	bus := events.NewBus()

	auth := services.NewAuthService(client, credentials.NewStore(db, cfg.SecureCookies()), sess, bus, logger)
	client.SetTokenSource(auth)

	carts := services.NewCartIDs(metadata.NewSQLiteRepository(db))
	flow := idp.NewFlow(cfg.IdentityProviderURL, cfg.CallbackTimeout, logger).
		OnSignInURL(func(url string) {
			fmt.Printf("If the browser did not open, visit:\n  %s\n", url)
		})

	app := cli.NewApp(cli.Deps{
		Config:   cfg,
		Auth:     auth,
		UserData: services.NewUserDataService(client, carts, logger),
		Student:  services.NewStudentService(client, sess),
		Teacher:  services.NewTeacherService(client, sess),
		SignIn:   flow,
		Session:  sess,
		Bus:      bus,
		Log:      logger,
	})

	app.Run(ctx)

}
