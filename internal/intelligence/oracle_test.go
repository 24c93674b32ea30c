package intelligence

import (
	"context"
	"fmt"
	"testing"

	"github.com/alexanderramin/parley/internal/llm"
	"github.com/alexanderramin/parley/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOracle_Classify(t *testing.T) {
	tests := []struct {
		name     string
		response string
		status   OracleStatus
		action   ActionKind
		data     Data
		err      error
	}{
		{
			name:     "valid intent",
			response: `{"action":"create_todo","data":{"title":"buy milk","description":""},"mood":"helpful","confidence":0.9}`,
			status:   OracleOK,
			action:   ActionCreateTodo,
			data:     Data{FieldTitle: "buy milk"},
		},
		{
			name:     "fenced with prose",
			response: "Sure!\n```json\n{\"action\":\"read_todos\",\"data\":{}}\n```",
			status:   OracleOK,
			action:   ActionReadTodos,
			data:     Data{},
		},
		{
			name:     "null data",
			response: `{"action":"complete_all","data":null}`,
			status:   OracleOK,
			action:   ActionCompleteAll,
			data:     Data{},
		},
		{
			name:     "scalars are stringified",
			response: `{"action":"update_account","data":{"email":"a@b.co","isActive":false}}`,
			status:   OracleOK,
			action:   ActionUpdateAccount,
			data:     Data{FieldEmail: "a@b.co", FieldIsActive: "false"},
		},
		{
			name:     "numbers are stringified",
			response: `{"action":"delete_account","data":{"id":42}}`,
			status:   OracleOK,
			action:   ActionDeleteAccount,
			data:     Data{FieldID: "42"},
		},
		{
			name:     "unknown action",
			response: `{"action":"launch_rocket","data":{}}`,
			status:   OracleInvalid,
			err:      ErrOracleAction,
		},
		{
			name:     "missing action",
			response: `{"data":{"title":"x"}}`,
			status:   OracleInvalid,
			err:      ErrOracleAction,
		},
		{
			name:     "field outside allow-list",
			response: `{"action":"create_todo","data":{"title":"x","email":"a@b.co"}}`,
			status:   OracleInvalid,
			err:      ErrOracleField,
		},
		{
			name:     "nested value",
			response: `{"action":"create_todo","data":{"title":{"text":"x"}}}`,
			status:   OracleInvalid,
			err:      ErrOracleValue,
		},
		{
			name:     "no json",
			response: "I think you want to add a task.",
			status:   OracleUnavailable,
			err:      llm.ErrInvalidOutput,
		},
		{
			name:     "malformed json",
			response: `{"action": create_todo}`,
			status:   OracleUnavailable,
			err:      llm.ErrInvalidOutput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oracle := NewOracle(&testutil.FakeLLMClient{Response: tt.response}, 0)

			res := oracle.Classify(context.Background(), "anything", nil)

			assert.Equal(t, tt.status, res.Status)
			if tt.err != nil {
				assert.ErrorIs(t, res.Err, tt.err)
				return
			}
			require.NoError(t, res.Err)
			assert.Equal(t, tt.action, res.Intent.Action)
			assert.Equal(t, tt.data, res.Intent.Data)
			assert.Equal(t, tt.action.Category(), res.Intent.Category)
		})
	}
}

func TestOracle_CallFailureIsUnavailable(t *testing.T) {
	oracle := NewOracle(&testutil.FakeLLMClient{Err: llm.ErrTimeout}, 0)

	res := oracle.Classify(context.Background(), "add milk", nil)

	assert.Equal(t, OracleUnavailable, res.Status)
	assert.ErrorIs(t, res.Err, llm.ErrTimeout)
}

func TestOracle_PromptCarriesRecentHistory(t *testing.T) {
	client := &testutil.FakeLLMClient{Response: `{"action":"chat","data":{}}`}
	oracle := NewOracle(client, 12)

	var history []HistoryMessage
	for i := 0; i < 20; i++ {
		history = append(history, HistoryMessage{Role: "user", Content: fmt.Sprintf("turn-%02d", i)})
	}
	oracle.Classify(context.Background(), "add milk", history)

	reqs := client.Requests()
	require.Len(t, reqs, 1, "exactly one attempt")
	assert.Equal(t, llm.TaskClassify, reqs[0].Task)
	assert.Equal(t, classifySystemPrompt, reqs[0].SystemPrompt)

	prompt := reqs[0].UserPrompt
	assert.NotContains(t, prompt, "turn-07")
	assert.Contains(t, prompt, "user: turn-08")
	assert.Contains(t, prompt, "user: turn-19")
	assert.Contains(t, prompt, `User: "add milk"`)
	assert.Contains(t, prompt, "Return ONLY valid JSON.")
}

func TestClassifier_FallbackPaths(t *testing.T) {
	ctx := context.Background()

	t.Run("no oracle", func(t *testing.T) {
		got := NewClassifier(nil).Classify(ctx, "why?", nil)
		assert.Equal(t, SourceHeuristic, got.Source)
		assert.Equal(t, OracleSkipped, got.OracleStatus)
		assert.Equal(t, ActionChat, got.Intent.Action)
	})

	t.Run("unavailable uses plain cascade", func(t *testing.T) {
		c := NewClassifier(NewOracle(&testutil.FakeLLMClient{Err: llm.ErrUnavailable}, 0))
		got := c.Classify(ctx, "why?", nil)
		assert.Equal(t, SourceHeuristic, got.Source)
		assert.Equal(t, OracleUnavailable, got.OracleStatus)
		assert.Equal(t, ActionChat, got.Intent.Action)
		assert.Error(t, got.OracleErr)
	})

	t.Run("invalid forces non-chat fallback", func(t *testing.T) {
		c := NewClassifier(NewOracle(&testutil.FakeLLMClient{Response: `{"action":"dance"}`}, 0))
		got := c.Classify(ctx, "why?", nil)
		assert.Equal(t, SourceHeuristic, got.Source)
		assert.Equal(t, OracleInvalid, got.OracleStatus)
		assert.Equal(t, ActionCreateTodo, got.Intent.Action)
	})

	t.Run("ok is trusted", func(t *testing.T) {
		c := NewClassifier(NewOracle(&testutil.FakeLLMClient{Response: `{"action":"read_accounts","data":{}}`}, 0))
		got := c.Classify(ctx, "who is here", nil)
		assert.Equal(t, SourceOracle, got.Source)
		assert.Equal(t, OracleOK, got.OracleStatus)
		assert.Equal(t, ActionReadAccounts, got.Intent.Action)
	})
}
