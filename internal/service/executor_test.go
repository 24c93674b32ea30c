package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/parley/internal/intelligence"
	"github.com/alexanderramin/parley/internal/repository"
	"github.com/alexanderramin/parley/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func intent(action intelligence.ActionKind, data intelligence.Data) intelligence.Intent {
	return intelligence.Intent{Action: action, Data: data, Category: action.Category()}
}

func TestExecute_CreateTodo(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.tasks.Create(ctx, "older", "")
	require.NoError(t, err)

	res := env.executor.Execute(ctx, intent(intelligence.ActionCreateTodo, intelligence.Data{
		intelligence.FieldTitle: "buy milk",
	}))

	require.True(t, res.Success)
	assert.Equal(t, "Todo created successfully", res.Message)
	require.NotNil(t, res.Todo)
	assert.Equal(t, "buy milk", res.Todo.Title)
	assert.Len(t, res.Todos, 2)
}

func TestExecute_CreateTodo_MissingTitleNeverTouchesStore(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res := env.executor.Execute(ctx, intent(intelligence.ActionCreateTodo, intelligence.Data{
		intelligence.FieldDescription: "orphan",
	}))

	assert.False(t, res.Success)
	assert.Equal(t, "More info required", res.Message)
	require.NotNil(t, res.NeedMoreInfo)
	assert.Equal(t, []intelligence.Field{intelligence.FieldTitle}, res.NeedMoreInfo.Missing)
	assert.Equal(t, intelligence.Data{}, res.NeedMoreInfo.PartialData)
	assert.Equal(t, "What task would you like me to add to your list?", res.NeedMoreInfo.Prompt)

	all, err := env.tasks.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestExecute_ReadTodos(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	for _, title := range []string{"one", "two"} {
		_, err := env.tasks.Create(ctx, title, "")
		require.NoError(t, err)
	}

	res := env.executor.Execute(ctx, intent(intelligence.ActionReadTodos, nil))
	require.True(t, res.Success)
	assert.Equal(t, "Todos retrieved successfully", res.Message)
	assert.Equal(t, int64(2), res.Count)
	assert.Len(t, res.Todos, 2)
}

func TestExecute_UpdateTodo(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res := env.executor.Execute(ctx, intent(intelligence.ActionUpdateTodo, intelligence.Data{intelligence.FieldTitle: "x"}))
	assert.False(t, res.Success)
	assert.Equal(t, "No todos found to update", res.Message)

	require.NoError(t, env.taskRepo.Create(ctx, testutil.NewTestTask("first", testutil.WithCreatedAt(time.Now().Add(-time.Hour)))))
	require.NoError(t, env.taskRepo.Create(ctx, testutil.NewTestTask("latest")))

	res = env.executor.Execute(ctx, intent(intelligence.ActionUpdateTodo, intelligence.Data{
		intelligence.FieldTitle:  "latest, renamed",
		intelligence.FieldStatus: "completed",
	}))
	require.True(t, res.Success)
	assert.Equal(t, "Todo updated successfully", res.Message)
	assert.Equal(t, "latest, renamed", res.Todo.Title)
	assert.True(t, res.Todo.IsCompleted)
}

func TestExecute_DeleteTodo(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.tasks.Create(ctx, "Call Mom", "")
	require.NoError(t, err)

	res := env.executor.Execute(ctx, intent(intelligence.ActionDeleteTodo, intelligence.Data{intelligence.FieldTitle: "dentist"}))
	assert.False(t, res.Success)
	assert.Equal(t, "No matching todo found to delete", res.Message)

	res = env.executor.Execute(ctx, intent(intelligence.ActionDeleteTodo, intelligence.Data{intelligence.FieldTitle: "call mom"}))
	require.True(t, res.Success)
	assert.Equal(t, "Todo deleted successfully", res.Message)
	assert.Equal(t, "Call Mom", res.Todo.Title)

	all, err := env.tasks.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestExecute_MarkCompleted_FallsBackToLatestIncomplete(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res := env.executor.Execute(ctx, intent(intelligence.ActionMarkCompleted, nil))
	assert.False(t, res.Success)
	assert.Equal(t, "No incomplete todos found to complete", res.Message)

	require.NoError(t, env.taskRepo.Create(ctx, testutil.NewTestTask("water plants", testutil.WithCreatedAt(time.Now().Add(-time.Hour)))))
	require.NoError(t, env.taskRepo.Create(ctx, testutil.NewTestTask("pay rent")))

	res = env.executor.Execute(ctx, intent(intelligence.ActionMarkCompleted, intelligence.Data{intelligence.FieldTitle: "water"}))
	require.True(t, res.Success)
	assert.Equal(t, "Todo marked as completed", res.Message)
	assert.Equal(t, "water plants", res.Todo.Title)

	res = env.executor.Execute(ctx, intent(intelligence.ActionMarkCompleted, intelligence.Data{intelligence.FieldTitle: "no such thing"}))
	require.True(t, res.Success)
	assert.Equal(t, "pay rent", res.Todo.Title)
	assert.True(t, res.Todo.IsCompleted)
}

func TestExecute_CompleteAllAndDeleteAll(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.taskRepo.Create(ctx, testutil.NewTestTask("done already", testutil.WithCompleted(time.Now().UTC()))))
	require.NoError(t, env.taskRepo.Create(ctx, testutil.NewTestTask("a")))
	require.NoError(t, env.taskRepo.Create(ctx, testutil.NewTestTask("b")))

	res := env.executor.Execute(ctx, intent(intelligence.ActionCompleteAll, nil))
	require.True(t, res.Success)
	assert.Equal(t, "Marked 2 incomplete tasks as completed", res.Message)
	assert.Equal(t, int64(2), res.Count)
	assert.Len(t, res.Todos, 3)

	res = env.executor.Execute(ctx, intent(intelligence.ActionDeleteAll, nil))
	require.True(t, res.Success)
	assert.Equal(t, "All todos deleted", res.Message)
	assert.Equal(t, int64(3), res.Count)
}

func TestExecute_CreateAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	res := env.executor.Execute(ctx, intent(intelligence.ActionCreateAccount, intelligence.Data{
		intelligence.FieldEmail: "john@example.com",
	}))
	assert.False(t, res.Success)
	assert.Equal(t, "More account info required", res.Message)
	require.NotNil(t, res.NeedMoreInfo)
	assert.Equal(t, []intelligence.Field{intelligence.FieldPassword, intelligence.FieldName}, res.NeedMoreInfo.Missing)
	assert.Equal(t, intelligence.Data{intelligence.FieldEmail: "john@example.com"}, res.NeedMoreInfo.PartialData)
	assert.Equal(t, "What password would you like to set for your account?", res.NeedMoreInfo.Prompt)

	full := intelligence.Data{
		intelligence.FieldEmail:    "john@example.com",
		intelligence.FieldPassword: "hunter22",
		intelligence.FieldName:     "john",
	}
	res = env.executor.Execute(ctx, intent(intelligence.ActionCreateAccount, full))
	require.True(t, res.Success)
	assert.Equal(t, "Account created successfully", res.Message)
	assert.Equal(t, "john", res.Account.Name)
	assert.Equal(t, "user", res.Account.Role)

	res = env.executor.Execute(ctx, intent(intelligence.ActionCreateAccount, full))
	assert.False(t, res.Success)
	assert.Nil(t, res.NeedMoreInfo)
	assert.Equal(t, "Account with this email already exists", res.Message)
}

func TestExecute_ReadAccounts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.accRepo.Create(ctx, testutil.NewTestAccount("a@example.com")))

	res := env.executor.Execute(ctx, intent(intelligence.ActionReadAccounts, nil))
	require.True(t, res.Success)
	assert.Equal(t, "Accounts retrieved successfully", res.Message)
	require.Len(t, res.Accounts, 1)
	assert.Equal(t, "a@example.com", res.Accounts[0].Email)
}

func TestExecute_UpdateAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.accRepo.Create(ctx, testutil.NewTestAccount("jane@example.com")))

	tests := []struct {
		name    string
		data    intelligence.Data
		message string
		missing []intelligence.Field
		prompt  string
	}{
		{
			name:    "no target",
			data:    intelligence.Data{intelligence.FieldNewRole: "admin"},
			message: "More account info required",
			missing: []intelligence.Field{intelligence.FieldEmail},
			prompt:  "What email would you like to use for your account?",
		},
		{
			name:    "no changes",
			data:    intelligence.Data{intelligence.FieldEmail: "jane@example.com"},
			message: "More update info required",
			missing: []intelligence.Field{intelligence.FieldUpdateField},
			prompt:  "I've found that account. What would you like to update? (e.g., name, role)",
		},
		{
			name:    "unknown account",
			data:    intelligence.Data{intelligence.FieldEmail: "ghost@example.com", intelligence.FieldNewName: "Ghost"},
			message: "Account not found",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := env.executor.Execute(ctx, intent(intelligence.ActionUpdateAccount, tt.data))
			assert.False(t, res.Success)
			assert.Equal(t, tt.message, res.Message)
			if tt.missing == nil {
				assert.Nil(t, res.NeedMoreInfo)
				return
			}
			require.NotNil(t, res.NeedMoreInfo)
			assert.Equal(t, tt.missing, res.NeedMoreInfo.Missing)
			assert.Equal(t, tt.data, res.NeedMoreInfo.PartialData)
			assert.Equal(t, tt.prompt, res.NeedMoreInfo.Prompt)
		})
	}

	res := env.executor.Execute(ctx, intent(intelligence.ActionUpdateAccount, intelligence.Data{
		intelligence.FieldEmail:   "jane@example.com",
		intelligence.FieldNewRole: "ADMIN",
	}))
	require.True(t, res.Success)
	assert.Equal(t, "Account updated successfully", res.Message)
	assert.Equal(t, "admin", res.Account.Role)
}

func TestExecute_DeleteAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.accRepo.Create(ctx, testutil.NewTestAccount("bye@example.com")))

	res := env.executor.Execute(ctx, intent(intelligence.ActionDeleteAccount, intelligence.Data{intelligence.FieldName: "bye"}))
	assert.False(t, res.Success)
	require.NotNil(t, res.NeedMoreInfo)
	assert.Equal(t, []intelligence.Field{intelligence.FieldEmail}, res.NeedMoreInfo.Missing)
	assert.Equal(t, intelligence.Data{}, res.NeedMoreInfo.PartialData)
	assert.Equal(t, "Which account should I delete? Please provide the email.", res.NeedMoreInfo.Prompt)

	res = env.executor.Execute(ctx, intent(intelligence.ActionDeleteAccount, intelligence.Data{intelligence.FieldEmail: "ghost@example.com"}))
	assert.False(t, res.Success)
	assert.Equal(t, "Account not found", res.Message)

	res = env.executor.Execute(ctx, intent(intelligence.ActionDeleteAccount, intelligence.Data{intelligence.FieldEmail: "bye@example.com"}))
	require.True(t, res.Success)
	assert.Equal(t, "Account deleted successfully", res.Message)
	assert.Equal(t, "bye@example.com", res.Account.Email)
}

func TestExecute_ChangePassword(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	acc := testutil.NewTestAccount("john@gmail.com")
	require.NoError(t, env.accRepo.Create(ctx, acc))

	t.Run("missing fields", func(t *testing.T) {
		res := env.executor.Execute(ctx, intent(intelligence.ActionChangePassword, nil))
		assert.False(t, res.Success)
		assert.Equal(t, "More password change info required", res.Message)
		require.NotNil(t, res.NeedMoreInfo)
		assert.Equal(t, []intelligence.Field{intelligence.FieldEmail, intelligence.FieldNewPassword}, res.NeedMoreInfo.Missing)
		assert.Equal(t, "What email would you like to use for your account?", res.NeedMoreInfo.Prompt)
	})

	t.Run("typo keeps new password", func(t *testing.T) {
		res := env.executor.Execute(ctx, intent(intelligence.ActionChangePassword, intelligence.Data{
			intelligence.FieldEmail:       "john@gamil.com",
			intelligence.FieldNewPassword: "n3w-secret",
		}))
		assert.False(t, res.Success)
		require.NotNil(t, res.NeedMoreInfo)
		want := "Did you mean john@gmail.com? Please provide the correct email address."
		assert.Equal(t, want, res.Message)
		assert.Equal(t, want, res.NeedMoreInfo.Prompt)
		assert.Equal(t, []intelligence.Field{intelligence.FieldEmail}, res.NeedMoreInfo.Missing)
		assert.Equal(t, intelligence.Data{intelligence.FieldNewPassword: "n3w-secret"}, res.NeedMoreInfo.PartialData)
	})

	t.Run("unknown account", func(t *testing.T) {
		res := env.executor.Execute(ctx, intent(intelligence.ActionChangePassword, intelligence.Data{
			intelligence.FieldEmail:       "ghost@example.com",
			intelligence.FieldNewPassword: "n3w-secret",
		}))
		assert.False(t, res.Success)
		require.NotNil(t, res.NeedMoreInfo)
		assert.Equal(t, "Account not found. Please provide a valid email address.", res.NeedMoreInfo.Prompt)
		assert.Equal(t, intelligence.Data{intelligence.FieldNewPassword: "n3w-secret"}, res.NeedMoreInfo.PartialData)
	})

	t.Run("success", func(t *testing.T) {
		res := env.executor.Execute(ctx, intent(intelligence.ActionChangePassword, intelligence.Data{
			intelligence.FieldEmail:       "john@gmail.com",
			intelligence.FieldNewPassword: "n3w-secret",
		}))
		require.True(t, res.Success)
		assert.Equal(t, "Password changed successfully", res.Message)

		stored, err := env.accRepo.Get(ctx, repository.AccountFilter{ID: acc.ID})
		require.NoError(t, err)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("n3w-secret")))
	})
}

func TestExecute_ChatAndUnknown(t *testing.T) {
	env := newTestEnv(t)

	res := env.executor.Execute(context.Background(), intent(intelligence.ActionChat, intelligence.Data{intelligence.FieldMessage: "hi"}))
	assert.True(t, res.Success)
	assert.Empty(t, res.Message)

	res = env.executor.Execute(context.Background(), intelligence.Intent{Action: "launch_rocket"})
	assert.False(t, res.Success)
	assert.Equal(t, "Unknown action", res.Message)
}

func TestExecute_StoreFailureIsReported(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, env.db.Close())

	res := env.executor.Execute(context.Background(), intent(intelligence.ActionReadTodos, nil))
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "Failed to list todos")
}
