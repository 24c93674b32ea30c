package contract

import (
	"github.com/alexanderramin/parley/internal/app"
	"github.com/alexanderramin/parley/internal/domain"
)

type TurnRequest = app.TurnRequest

func NewTurnRequest(message string) TurnRequest {
	return app.NewTurnRequest(message)
}

type TurnResponse = app.TurnResponse

type ActionResult = app.ActionResult

type TaskView = app.TaskView

type AccountView = app.AccountView

var ErrMessageRequired = app.ErrMessageRequired

func NewTaskViewFor(t *domain.Task) TaskView { return app.NewTaskView(t) }

func NewTaskViewsFor(tasks []*domain.Task) []TaskView { return app.NewTaskViews(tasks) }

func NewAccountViewFor(a *domain.Account) AccountView { return app.NewAccountView(a) }

func NewAccountViewsFor(accounts []*domain.Account) []AccountView {
	return app.NewAccountViews(accounts)
}
