package app

import (
	"net/http"

	"github.com/simseulnyang/TripNote/internal/config"
	"github.com/simseulnyang/TripNote/internal/db"
	analyticsdomain "github.com/simseulnyang/TripNote/internal/domain/analytics"
	expensesdomain "github.com/simseulnyang/TripNote/internal/domain/expenses"
	triplogsdomain "github.com/simseulnyang/TripNote/internal/domain/triplogs"
	tripsdomain "github.com/simseulnyang/TripNote/internal/domain/trips"
	userdomain "github.com/simseulnyang/TripNote/internal/domain/user"
	analyticsrepo "github.com/simseulnyang/TripNote/internal/repository/postgres/analytics"
	expensesrepo "github.com/simseulnyang/TripNote/internal/repository/postgres/expenses"
	triplogsrepo "github.com/simseulnyang/TripNote/internal/repository/postgres/triplogs"
	tripsrepo "github.com/simseulnyang/TripNote/internal/repository/postgres/trips"
	userrepo "github.com/simseulnyang/TripNote/internal/repository/postgres/user"
	"github.com/simseulnyang/TripNote/internal/transport/httpserver"
	"github.com/simseulnyang/TripNote/internal/transport/httpserver/handler"
	"github.com/simseulnyang/TripNote/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}

	log.Info("app: running migrations")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	tripService := tripsdomain.NewService(tripsrepo.NewPostgres(dbConn))
	expenseService := expensesdomain.NewService(expensesrepo.NewPostgres(dbConn), tripService)
	logService := triplogsdomain.NewService(triplogsrepo.NewPostgres(dbConn), tripService)
	analyticsService := analyticsdomain.NewService(analyticsrepo.NewPostgres(dbConn))
	userService := userdomain.NewService(userrepo.NewPostgres(dbConn))

	log.Info("app: initializing router")
	handlers := handler.New(tripService, expenseService, logService, analyticsService, userService, log)
	router := httpserver.NewRouter(cfg, handlers, userService, log)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
