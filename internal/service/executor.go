package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/parley/internal/contract"
	"github.com/alexanderramin/parley/internal/domain"
	"github.com/alexanderramin/parley/internal/intelligence"
	"github.com/alexanderramin/parley/internal/repository"
)

// recentlyCompletedLimit caps the tasks echoed back after complete_all.
const recentlyCompletedLimit = 5

// ActionExecutor turns a resolved intent into store operations. It
// re-checks required fields itself, so a payload missing one never
// reaches the store no matter who produced it.
type ActionExecutor struct {
	tasks    TaskService
	accounts AccountService
}

func NewActionExecutor(tasks TaskService, accounts AccountService) *ActionExecutor {
	return &ActionExecutor{tasks: tasks, accounts: accounts}
}

func (e *ActionExecutor) Execute(ctx context.Context, in intelligence.Intent) contract.ActionResult {
	data := in.Data
	if data == nil {
		data = intelligence.Data{}
	}

	switch in.Action {
	case intelligence.ActionCreateTodo:
		return e.createTodo(ctx, data)
	case intelligence.ActionReadTodos:
		return e.readTodos(ctx)
	case intelligence.ActionUpdateTodo:
		return e.updateTodo(ctx, data)
	case intelligence.ActionDeleteTodo:
		return e.deleteTodo(ctx, data)
	case intelligence.ActionMarkCompleted:
		return e.markCompleted(ctx, data)
	case intelligence.ActionCompleteAll:
		return e.completeAll(ctx)
	case intelligence.ActionDeleteAll:
		return e.deleteAll(ctx)
	case intelligence.ActionCreateAccount:
		return e.createAccount(ctx, data)
	case intelligence.ActionReadAccounts:
		return e.readAccounts(ctx)
	case intelligence.ActionUpdateAccount:
		return e.updateAccount(ctx, data)
	case intelligence.ActionDeleteAccount:
		return e.deleteAccount(ctx, data)
	case intelligence.ActionChangePassword:
		return e.changePassword(ctx, data)
	case intelligence.ActionChat:
		return contract.ActionResult{Success: true}
	default:
		return failure("Unknown action")
	}
}

func failure(msg string) contract.ActionResult {
	return contract.ActionResult{Success: false, Message: msg}
}

func storeFailure(what string, err error) contract.ActionResult {
	return failure(fmt.Sprintf("Failed to %s: %v", what, err))
}

func needMore(action intelligence.ActionKind, message string, missing []intelligence.Field, partial intelligence.Data) contract.ActionResult {
	return needMoreWithPrompt(message, missing, partial, intelligence.PromptFor(action, missing))
}

func needMoreWithPrompt(message string, missing []intelligence.Field, partial intelligence.Data, prompt string) contract.ActionResult {
	if partial == nil {
		partial = intelligence.Data{}
	}
	return contract.ActionResult{
		Success: false,
		Message: message,
		NeedMoreInfo: &intelligence.NeedMoreInfo{
			Missing:     missing,
			PartialData: partial,
			Prompt:      prompt,
		},
	}
}

// pick copies the present fields of data, in order, and lists the absent ones.
func pick(data intelligence.Data, fields ...intelligence.Field) (intelligence.Data, []intelligence.Field) {
	payload := intelligence.Data{}
	var missing []intelligence.Field
	for _, f := range fields {
		if data.Has(f) {
			payload[f] = data.Get(f)
		} else {
			missing = append(missing, f)
		}
	}
	return payload, missing
}

func accountFilter(data intelligence.Data) repository.AccountFilter {
	return repository.AccountFilter{ID: data.Get(intelligence.FieldID), Email: data.Get(intelligence.FieldEmail)}
}

// --- tasks ---

func (e *ActionExecutor) createTodo(ctx context.Context, data intelligence.Data) contract.ActionResult {
	payload, missing := pick(data, intelligence.FieldTitle)
	if len(missing) > 0 {
		return needMore(intelligence.ActionCreateTodo, "More info required", missing, payload)
	}

	t, err := e.tasks.Create(ctx, payload.Get(intelligence.FieldTitle), data.Get(intelligence.FieldDescription))
	if err != nil {
		return storeFailure("create todo", err)
	}
	all, err := e.tasks.List(ctx)
	if err != nil {
		return storeFailure("list todos", err)
	}
	view := contract.NewTaskViewFor(t)
	return contract.ActionResult{Success: true, Message: "Todo created successfully", Todo: &view, Todos: contract.NewTaskViewsFor(all)}
}

func (e *ActionExecutor) readTodos(ctx context.Context) contract.ActionResult {
	all, err := e.tasks.List(ctx)
	if err != nil {
		return storeFailure("list todos", err)
	}
	return contract.ActionResult{
		Success: true,
		Message: "Todos retrieved successfully",
		Todos:   contract.NewTaskViewsFor(all),
		Count:   int64(len(all)),
	}
}

func (e *ActionExecutor) updateTodo(ctx context.Context, data intelligence.Data) contract.ActionResult {
	latest, err := e.tasks.FindLatest(ctx, repository.TaskFilter{})
	if errors.Is(err, domain.ErrNotFound) {
		return failure("No todos found to update")
	}
	if err != nil {
		return storeFailure("update todo", err)
	}

	var changes contract.TaskChanges
	if data.Has(intelligence.FieldTitle) {
		title := data.Get(intelligence.FieldTitle)
		changes.Title = &title
	}
	if data.Has(intelligence.FieldDescription) {
		desc := data.Get(intelligence.FieldDescription)
		changes.Description = &desc
	}
	if done, ok := completionFrom(data); ok {
		changes.IsCompleted = &done
	}

	t, err := e.tasks.Update(ctx, latest.ID, changes)
	if err != nil {
		return storeFailure("update todo", err)
	}
	view := contract.NewTaskViewFor(t)
	return contract.ActionResult{Success: true, Message: "Todo updated successfully", Todo: &view}
}

// completionFrom reads isCompleted, then status, as a completion flag.
func completionFrom(data intelligence.Data) (bool, bool) {
	if v := data.Get(intelligence.FieldIsCompleted); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b, true
		}
	}
	switch domain.TaskStatus(strings.ToLower(data.Get(intelligence.FieldStatus))) {
	case domain.TaskCompleted:
		return true, true
	case domain.TaskPending:
		return false, true
	}
	return false, false
}

func (e *ActionExecutor) deleteTodo(ctx context.Context, data intelligence.Data) contract.ActionResult {
	t, err := e.tasks.FindLatest(ctx, repository.TaskFilter{TitleContains: data.Get(intelligence.FieldTitle)})
	if errors.Is(err, domain.ErrNotFound) {
		return failure("No matching todo found to delete")
	}
	if err != nil {
		return storeFailure("delete todo", err)
	}
	if err := e.tasks.Delete(ctx, t.ID); err != nil {
		return storeFailure("delete todo", err)
	}
	view := contract.NewTaskViewFor(t)
	return contract.ActionResult{Success: true, Message: "Todo deleted successfully", Todo: &view}
}

func (e *ActionExecutor) markCompleted(ctx context.Context, data intelligence.Data) contract.ActionResult {
	var (
		t   *domain.Task
		err error
	)
	if title := data.Get(intelligence.FieldTitle); title != "" {
		t, err = e.tasks.FindLatest(ctx, repository.TaskFilter{TitleContains: title, IncompleteOnly: true})
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return storeFailure("complete todo", err)
		}
	}
	if t == nil {
		t, err = e.tasks.FindLatest(ctx, repository.TaskFilter{IncompleteOnly: true})
		if errors.Is(err, domain.ErrNotFound) {
			return failure("No incomplete todos found to complete")
		}
		if err != nil {
			return storeFailure("complete todo", err)
		}
	}

	done, err := e.tasks.Complete(ctx, t.ID)
	if err != nil {
		return storeFailure("complete todo", err)
	}
	view := contract.NewTaskViewFor(done)
	return contract.ActionResult{Success: true, Message: "Todo marked as completed", Todo: &view}
}

func (e *ActionExecutor) completeAll(ctx context.Context) contract.ActionResult {
	n, err := e.tasks.CompleteAll(ctx)
	if err != nil {
		return storeFailure("complete todos", err)
	}
	recent, err := e.tasks.RecentlyCompleted(ctx, recentlyCompletedLimit)
	if err != nil {
		return storeFailure("list todos", err)
	}
	return contract.ActionResult{
		Success: true,
		Message: fmt.Sprintf("Marked %d incomplete tasks as completed", n),
		Todos:   contract.NewTaskViewsFor(recent),
		Count:   n,
	}
}

func (e *ActionExecutor) deleteAll(ctx context.Context) contract.ActionResult {
	n, err := e.tasks.DeleteAll(ctx)
	if err != nil {
		return storeFailure("delete todos", err)
	}
	return contract.ActionResult{Success: true, Message: "All todos deleted", Count: n}
}

// --- accounts ---

func (e *ActionExecutor) createAccount(ctx context.Context, data intelligence.Data) contract.ActionResult {
	payload, missing := pick(data, intelligence.FieldEmail, intelligence.FieldPassword, intelligence.FieldName)
	if len(missing) > 0 {
		return needMore(intelligence.ActionCreateAccount, "More account info required", missing, payload)
	}

	a, err := e.accounts.Create(ctx, contract.NewAccount{
		Email:    payload.Get(intelligence.FieldEmail),
		Password: payload.Get(intelligence.FieldPassword),
		Name:     payload.Get(intelligence.FieldName),
		Role:     domain.Role(data.Get(intelligence.FieldRole)),
	})
	if errors.Is(err, domain.ErrAlreadyExists) {
		return failure("Account with this email already exists")
	}
	if err != nil {
		return storeFailure("create account", err)
	}
	view := contract.NewAccountViewFor(a)
	return contract.ActionResult{Success: true, Message: "Account created successfully", Account: &view}
}

func (e *ActionExecutor) readAccounts(ctx context.Context) contract.ActionResult {
	all, err := e.accounts.List(ctx)
	if err != nil {
		return storeFailure("retrieve accounts", err)
	}
	return contract.ActionResult{
		Success:  true,
		Message:  "Accounts retrieved successfully",
		Accounts: contract.NewAccountViewsFor(all),
		Count:    int64(len(all)),
	}
}

func (e *ActionExecutor) updateAccount(ctx context.Context, data intelligence.Data) contract.ActionResult {
	if !data.Has(intelligence.FieldEmail) && !data.Has(intelligence.FieldID) {
		return needMore(intelligence.ActionUpdateAccount, "More account info required",
			[]intelligence.Field{intelligence.FieldEmail}, data.Clone())
	}

	changes := accountChangesFrom(data)
	if changes.IsEmpty() {
		return needMore(intelligence.ActionUpdateAccount, "More update info required",
			[]intelligence.Field{intelligence.FieldUpdateField}, data.Clone())
	}

	a, err := e.accounts.Update(ctx, accountFilter(data), changes)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return failure("Account not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		return failure("Email already exists")
	case err != nil:
		return storeFailure("update account", err)
	}
	view := contract.NewAccountViewFor(a)
	return contract.ActionResult{Success: true, Message: "Account updated successfully", Account: &view}
}

func accountChangesFrom(data intelligence.Data) contract.AccountChanges {
	var changes contract.AccountChanges
	if data.Has(intelligence.FieldNewName) {
		name := data.Get(intelligence.FieldNewName)
		changes.Name = &name
	}
	if data.Has(intelligence.FieldNewRole) {
		role := domain.Role(data.Get(intelligence.FieldNewRole))
		changes.Role = &role
	}
	if v := data.Get(intelligence.FieldIsActive); v != "" {
		if active, err := strconv.ParseBool(v); err == nil {
			changes.IsActive = &active
		}
	}
	return changes
}

func (e *ActionExecutor) deleteAccount(ctx context.Context, data intelligence.Data) contract.ActionResult {
	if !data.Has(intelligence.FieldEmail) && !data.Has(intelligence.FieldID) {
		return needMore(intelligence.ActionDeleteAccount, "More account info required",
			[]intelligence.Field{intelligence.FieldEmail}, intelligence.Data{})
	}

	a, err := e.accounts.Delete(ctx, accountFilter(data))
	if errors.Is(err, domain.ErrNotFound) {
		return failure("Account not found")
	}
	if err != nil {
		return storeFailure("delete account", err)
	}
	view := contract.NewAccountViewFor(a)
	return contract.ActionResult{Success: true, Message: "Account deleted successfully", Account: &view}
}

func (e *ActionExecutor) changePassword(ctx context.Context, data intelligence.Data) contract.ActionResult {
	payload := intelligence.Data{}
	var missing []intelligence.Field
	if data.Has(intelligence.FieldEmail) || data.Has(intelligence.FieldID) {
		for _, f := range []intelligence.Field{intelligence.FieldEmail, intelligence.FieldID} {
			if data.Has(f) {
				payload[f] = data.Get(f)
			}
		}
	} else {
		missing = append(missing, intelligence.FieldEmail)
	}
	if data.Has(intelligence.FieldNewPassword) {
		payload[intelligence.FieldNewPassword] = data.Get(intelligence.FieldNewPassword)
	} else {
		missing = append(missing, intelligence.FieldNewPassword)
	}
	if len(missing) > 0 {
		return needMore(intelligence.ActionChangePassword, "More password change info required", missing, payload)
	}

	// Keep the new password so the corrected email alone completes the flow.
	retry := intelligence.Data{intelligence.FieldNewPassword: payload.Get(intelligence.FieldNewPassword)}
	if email := payload.Get(intelligence.FieldEmail); email != "" {
		if suggestion, ok := intelligence.CorrectEmailTypo(email); ok {
			msg := fmt.Sprintf("Did you mean %s? Please provide the correct email address.", suggestion)
			return needMoreWithPrompt(msg, []intelligence.Field{intelligence.FieldEmail}, retry, msg)
		}
	}

	err := e.accounts.ChangePassword(ctx, accountFilter(payload), payload.Get(intelligence.FieldNewPassword))
	if errors.Is(err, domain.ErrNotFound) {
		msg := "Account not found. Please provide a valid email address."
		return needMoreWithPrompt(msg, []intelligence.Field{intelligence.FieldEmail}, retry, msg)
	}
	if err != nil {
		return storeFailure("change password", err)
	}
	return contract.ActionResult{Success: true, Message: "Password changed successfully"}
}
