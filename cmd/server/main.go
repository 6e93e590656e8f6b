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

	"github.com/go-petr/bank-ledger/internal/accountdelivery"
	"github.com/go-petr/bank-ledger/internal/accountrepo"
	"github.com/go-petr/bank-ledger/internal/accountservice"
	"github.com/go-petr/bank-ledger/internal/middleware"
	"github.com/go-petr/bank-ledger/internal/transactiondelivery"
	"github.com/go-petr/bank-ledger/internal/transactionrepo"
	"github.com/go-petr/bank-ledger/internal/transactionservice"
	"github.com/go-petr/bank-ledger/internal/transferdelivery"
	"github.com/go-petr/bank-ledger/internal/transferrepo"
	"github.com/go-petr/bank-ledger/internal/transferservice"
	"github.com/go-petr/bank-ledger/pkg/configpkg"
	"github.com/go-petr/bank-ledger/pkg/dbpkg"
)

func main() {
	config, err := configpkg.Load("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	logger := middleware.CreateLogger(config)

	conn, err := dbpkg.Setup(config.DBDriver, config.DBSource)
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
	transactionRepo := transactionrepo.NewRepoPGS(conn)
	transferRepo := transferrepo.NewRepoPGS(conn)

	accountService := accountservice.New(accountRepo)
	transactionService := transactionservice.New(transactionRepo)
	transferService := transferservice.New(transferRepo, config.TransferMaxRetries)

	accountHandler := accountdelivery.NewHandler(accountService)
	transactionHandler := transactiondelivery.NewHandler(transactionService, accountService)
	transferHandler := transferdelivery.NewHandler(transferService, accountService)

	gin.SetMode(gin.ReleaseMode)
	server := gin.New()

	server.Use(middleware.RequestLogger(logger))
	server.Use(gin.Recovery())

	routes := server.Group("/").Use(middleware.Identity())

	routes.POST("/accounts", accountHandler.Create)
	routes.GET("/accounts/:id", accountHandler.Get)
	routes.GET("/accounts", accountHandler.List)
	routes.POST("/accounts/:id/deactivate", accountHandler.Deactivate)
	routes.GET("/accounts/:id/transactions", transactionHandler.ListByAccount)

	routes.POST("/transfers", transferHandler.Create)
	routes.POST("/transfers/number", transferHandler.CreateByNumber)

	routes.GET("/transactions/:id", transactionHandler.Get)
	routes.POST("/transactions/:id/reversals", transferHandler.Reverse)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		err := v.RegisterValidation("category", accountdelivery.ValidCategory)
		if err != nil {
			return nil, errors.New("cannot register category validator")
		}
	}

	return server, nil
}
