package contract

import "github.com/alexanderramin/parley/internal/app"

type TaskChanges = app.TaskChanges

type NewAccount = app.NewAccount

type AccountChanges = app.AccountChanges
