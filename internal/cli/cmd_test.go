package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/parley/internal/config"
	"github.com/alexanderramin/parley/internal/contract"
	"github.com/alexanderramin/parley/internal/domain"
	"github.com/alexanderramin/parley/internal/intelligence"
	"github.com/alexanderramin/parley/internal/repository"
	"github.com/alexanderramin/parley/internal/service"
	"github.com/alexanderramin/parley/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// testApp wires a full App over an in-memory DB with heuristics only.
func testApp(t *testing.T) *App {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)

	tasks := service.NewTaskService(repository.NewSQLiteTaskRepo(database), uow)
	accounts := service.NewAccountService(repository.NewSQLiteAccountRepo(database), uow,
		service.AccountSettings{HashCost: bcrypt.MinCost, DefaultRole: domain.RoleUser})

	cfg := &config.Config{}
	cfg.Database.Path = ":memory:"
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 5000
	cfg.Accounts.PasswordHashCost = bcrypt.MinCost
	cfg.Accounts.DefaultRole = "user"
	cfg.Oracle.Provider = "gemini"
	cfg.Oracle.HistoryWindow = 12
	cfg.Oracle.TimeoutMs = 8000
	cfg.Session.Path = filepath.Join(t.TempDir(), "session.json")

	return &App{
		Chat:     service.NewChatService(nil, service.NewActionExecutor(tasks, accounts), nil),
		Tasks:    tasks,
		Accounts: accounts,
		Config:   cfg,
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// --- Root ---

func TestRootCmd_NonInteractivePrintsHelp(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app)
	require.NoError(t, err)
	assert.Contains(t, out, "parley")
	assert.Contains(t, out, "say")
	assert.Contains(t, out, "todo")
}

func TestChatCmd_RequiresTerminal(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "chat")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parley say")
}

// --- Todo ---

func TestTodoCmd_AddListDone(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	out, err := executeCmd(t, app, "todo", "add", "buy", "milk", "-d", "2 litres")
	require.NoError(t, err)
	assert.Contains(t, out, "Created todo")
	assert.Contains(t, out, "buy milk")

	tasks, err := app.Tasks.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "2 litres", tasks[0].Description)

	out, err = executeCmd(t, app, "todo", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "buy milk")

	out, err = executeCmd(t, app, "todo", "done", tasks[0].ID[:8])
	require.NoError(t, err)
	assert.Contains(t, out, "Completed")

	got, err := app.Tasks.GetByID(ctx, tasks[0].ID)
	require.NoError(t, err)
	assert.True(t, got.IsCompleted)
}

func TestTodoCmd_ToggleAndRemove(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	task, err := app.Tasks.Create(ctx, "water plants", "")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "todo", "toggle", task.ID)
	require.NoError(t, err)
	got, err := app.Tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, got.IsCompleted)

	out, err := executeCmd(t, app, "todo", "rm", task.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted todo")

	tasks, err := app.Tasks.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestTodoCmd_UnknownID(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "todo", "done", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "todo not found")
}

func TestTodoCmd_ClearNeedsForce(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	for _, title := range []string{"a", "b"} {
		_, err := app.Tasks.Create(ctx, title, "")
		require.NoError(t, err)
	}

	_, err := executeCmd(t, app, "todo", "clear")
	require.Error(t, err)

	out, err := executeCmd(t, app, "todo", "clear", "--force")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 2 todos")
}

// --- Account ---

func TestAccountCmd_AddListRemove(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()

	out, err := executeCmd(t, app, "account", "add",
		"--email", "Ann@Example.com", "--name", "Ann", "--password", "secret1", "--role", "Admin")
	require.NoError(t, err)
	assert.Contains(t, out, "ann@example.com")

	a, err := app.Accounts.FindByEmail(ctx, "ann@example.com")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, a.Role)

	out, err = executeCmd(t, app, "account", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Ann")

	out, err = executeCmd(t, app, "account", "rm", "ann@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted account")

	accounts, err := app.Accounts.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestAccountCmd_AddWithoutPasswordOffTerminal(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "account", "add", "--email", "bob@example.com", "--name", "Bob")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--password is required")
}

func TestAccountCmd_Passwd(t *testing.T) {
	app := testApp(t)
	ctx := context.Background()
	_, err := executeCmd(t, app, "account", "add",
		"--email", "bob@example.com", "--name", "Bob", "--password", "old-pass")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "account", "passwd", "bob@example.com", "--password", "new-pass")
	require.NoError(t, err)
	assert.Contains(t, out, "Password updated for bob@example.com")

	_, err = app.Accounts.FindByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
}

// --- Say ---

func TestSayCmd_CreatesTodo(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "say", "add", "buy", "milk")
	require.NoError(t, err)
	assert.Contains(t, out, "buy milk")

	tasks, err := app.Tasks.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "buy milk", tasks[0].Title)
}

func TestSayCmd_PendingSurvivesBetweenRuns(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "say", "create an account")
	require.NoError(t, err)
	assert.Contains(t, out, "What email would you like to use for your account?")

	conv, err := loadConversation(app.Config.Session.Path)
	require.NoError(t, err)
	require.NotNil(t, conv.Pending)
	assert.Equal(t, intelligence.ActionCreateAccount, conv.Pending.Action)
	assert.Len(t, conv.History, 2)

	out, err = executeCmd(t, app, "say", "john@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "What password would you like to set for your account?")

	_, err = executeCmd(t, app, "say", "--reset")
	require.NoError(t, err)
	_, statErr := os.Stat(app.Config.Session.Path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSayCmd_JSON(t *testing.T) {
	app := testApp(t)

	out, err := executeCmd(t, app, "say", "--json", "add", "buy", "milk")
	require.NoError(t, err)

	var got turnJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, intelligence.ActionCreateTodo, got.Intent.Action)
	assert.Equal(t, intelligence.SourceHeuristic, got.Source)
	assert.True(t, got.Result.Success)
	assert.Nil(t, got.Pending)
}

func TestSayCmd_EmptyMessage(t *testing.T) {
	app := testApp(t)

	_, err := executeCmd(t, app, "say")
	require.Error(t, err)
}

// --- Config ---

func TestConfigShow_MasksAPIKey(t *testing.T) {
	app := testApp(t)
	app.Config.Oracle.APIKey = "sk-live-123"

	out, err := executeCmd(t, app, "config", "show")
	require.NoError(t, err)
	assert.NotContains(t, out, "sk-live-123")
	assert.Contains(t, out, "********")
	assert.Equal(t, "sk-live-123", app.Config.Oracle.APIKey, "the loaded config is untouched")
}

func TestConfigInit_DefaultsWritesFile(t *testing.T) {
	app := testApp(t)
	path := filepath.Join(t.TempDir(), "parley.yaml")

	out, err := executeCmd(t, app, "--config", path, "config", "init", "--defaults")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	_, err = os.Stat(path)
	require.NoError(t, err)

	_, err = executeCmd(t, app, "--config", path, "config", "init", "--defaults")
	require.Error(t, err, "existing file needs --force")
}

func TestConversation_HistoryIsBounded(t *testing.T) {
	c := &conversation{}
	for i := 0; i < historyLimit; i++ {
		c.record("hi", &contract.TurnResponse{ReplyText: "hello"})
	}
	assert.Len(t, c.History, historyLimit)
	assert.Equal(t, roleUser, c.History[0].Role)
	assert.Equal(t, roleAssistant, c.History[historyLimit-1].Role)
}

func TestConversation_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	c := &conversation{
		Pending: &intelligence.PendingAction{
			Action:      intelligence.ActionChangePassword,
			Missing:     []intelligence.Field{intelligence.FieldNewPassword},
			PartialData: intelligence.Data{intelligence.FieldEmail: "john@gmail.com"},
		},
	}
	require.NoError(t, c.save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := loadConversation(path)
	require.NoError(t, err)
	assert.Equal(t, c.Pending, loaded.Pending)

	fresh, err := loadConversation(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Nil(t, fresh.Pending)
}

func TestResolveByPrefix(t *testing.T) {
	ids := []string{"abc123", "abd456", "xyz789"}

	tests := []struct {
		input   string
		want    string
		wantErr string
	}{
		{"abc123", "abc123", ""},
		{"abd", "abd456", ""},
		{"ab", "", "ambiguous"},
		{"q", "", "not found"},
		{"", "", "required"},
	}
	for _, tt := range tests {
		got, err := resolveByPrefix("todo", tt.input, ids)
		if tt.wantErr != "" {
			require.Error(t, err, tt.input)
			assert.Contains(t, err.Error(), tt.wantErr)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestApp_NowDefaultsToWallClock(t *testing.T) {
	fixed := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, fixed, (&App{Now: func() time.Time { return fixed }}).now())
	assert.WithinDuration(t, time.Now(), (&App{}).now(), time.Second)
}
