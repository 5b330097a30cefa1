package main

import (
	"database/sql"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/lib/pq"

	"github.com/go-wallet/ledger-engine/internal/accountdelivery"
	"github.com/go-wallet/ledger-engine/internal/accountrepo"
	"github.com/go-wallet/ledger-engine/internal/accountservice"
	"github.com/go-wallet/ledger-engine/internal/entrydelivery"
	"github.com/go-wallet/ledger-engine/internal/entryrepo"
	"github.com/go-wallet/ledger-engine/internal/entryservice"
	"github.com/go-wallet/ledger-engine/internal/eventpub"
	"github.com/go-wallet/ledger-engine/internal/middleware"
	"github.com/go-wallet/ledger-engine/internal/transactiondelivery"
	"github.com/go-wallet/ledger-engine/internal/transactionrepo"
	"github.com/go-wallet/ledger-engine/internal/transactionservice"
	"github.com/go-wallet/ledger-engine/pkg/configpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.GetLogger(config)

	conn, err := sql.Open(config.DBDriver, config.DBSource)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot connect to db")
	}

	server, err := createServer(conn, logger, config)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot create server")
	}

	err = server.Run(config.ServerAddress)
	if err != nil {
		logger.Fatal().Err(err).Msg("cannot start server")
	}
}

func createServer(conn *sql.DB, logger zerolog.Logger, config configpkg.Config) (*gin.Engine, error) {
	accountRepo := accountrepo.NewRepoPGS(conn)
	entryRepo := entryrepo.NewRepoPGS(conn)
	transactionRepo := transactionrepo.NewRepoPGS(conn, config.LockTimeout)

	var publisher transactionservice.EventPublisher
	if config.KafkaBrokers != "" {
		publisher = eventpub.NewKafkaPublisher(config.KafkaBrokers, config.KafkaTopic)
	}

	accountService := accountservice.New(accountRepo)
	entryService := entryservice.New(entryRepo)
	transactionService := transactionservice.New(transactionRepo, publisher)

	accountHandler := accountdelivery.NewHandler(accountService)
	entryHandler := entrydelivery.NewHandler(entryService)
	transactionHandler := transactiondelivery.NewHandler(transactionService)

	gin.SetMode(gin.ReleaseMode)
	server := gin.New()

	server.Use(middleware.RequestLogger(logger))
	server.Use(gin.Recovery())

	server.POST("/accounts", accountHandler.Create)
	server.GET("/accounts/:id", accountHandler.Get)
	server.GET("/accounts/:id/entries", entryHandler.List)

	server.POST("/transactions", transactionHandler.Create)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("kind", transactiondelivery.ValidKind)
		if err != nil {
			return nil, errors.New("cannot register kind validator")
		}
	}

	return server, nil
}
