package handler

import (
	analyticsdomain "github.com/simseulnyang/TripNote/internal/domain/analytics"
	expensesdomain "github.com/simseulnyang/TripNote/internal/domain/expenses"
	triplogsdomain "github.com/simseulnyang/TripNote/internal/domain/triplogs"
	tripsdomain "github.com/simseulnyang/TripNote/internal/domain/trips"
	userdomain "github.com/simseulnyang/TripNote/internal/domain/user"
	"github.com/simseulnyang/TripNote/pkg/logger"
)

type Handlers struct {
	Trips     *tripsdomain.Service
	Expenses  *expensesdomain.Service
	Logs      *triplogsdomain.Service
	Analytics *analyticsdomain.Service
	Users     *userdomain.Service

	log logger.Logger
}

func New(trips *tripsdomain.Service, expenses *expensesdomain.Service, logs *triplogsdomain.Service, analytics *analyticsdomain.Service, users *userdomain.Service, log logger.Logger) *Handlers {
	return &Handlers{
		Trips:     trips,
		Expenses:  expenses,
		Logs:      logs,
		Analytics: analytics,
		Users:     users,
		log:       log,
	}
}
