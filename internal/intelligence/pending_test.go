package intelligence

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePending_CreateAccountFlow(t *testing.T) {
	pending := PendingAction{
		Action:      ActionCreateAccount,
		Missing:     []Field{FieldEmail, FieldPassword, FieldName},
		PartialData: Data{},
	}

	res := ResolvePending("john@example.com", pending)
	require.Equal(t, ResolutionNeedMore, res.Kind)
	want := &NeedMoreInfo{
		Missing:     []Field{FieldPassword, FieldName},
		PartialData: Data{FieldEmail: "john@example.com"},
		Prompt:      "What password would you like to set for your account?",
	}
	if diff := cmp.Diff(want, res.NeedMoreInfo); diff != "" {
		t.Errorf("after email (-want +got):\n%s", diff)
	}

	res = ResolvePending("hunter22", *res.NeedMoreInfo.PendingFor(ActionCreateAccount))
	require.Equal(t, ResolutionNeedMore, res.Kind)
	assert.Equal(t, []Field{FieldName}, res.NeedMoreInfo.Missing)
	assert.Equal(t, "What username would you like to use for your account?", res.NeedMoreInfo.Prompt)

	res = ResolvePending("johnny", *res.NeedMoreInfo.PendingFor(ActionCreateAccount))
	require.Equal(t, ResolutionComplete, res.Kind)
	assert.Nil(t, res.NeedMoreInfo)
	assert.Equal(t, ActionCreateAccount, res.Intent.Action)
	assert.Equal(t, Data{
		FieldEmail:    "john@example.com",
		FieldPassword: "hunter22",
		FieldName:     "johnny",
	}, res.Intent.Data)
}

func TestResolvePending_BreakoutToNewTask(t *testing.T) {
	pending := PendingAction{
		Action:      ActionCreateAccount,
		Missing:     []Field{FieldPassword, FieldName},
		PartialData: Data{FieldEmail: "john@example.com"},
	}

	res := ResolvePending("add buy milk", pending)

	require.Equal(t, ResolutionBreakout, res.Kind)
	assert.Nil(t, res.NeedMoreInfo)
	assert.Equal(t, ActionCreateTodo, res.Intent.Action)
	assert.Equal(t, Data{FieldTitle: "buy milk"}, res.Intent.Data)
}

func TestResolvePending_BreakoutMatchesDirectClassification(t *testing.T) {
	pending := PendingAction{Action: ActionChangePassword, Missing: []Field{FieldNewPassword}, PartialData: Data{FieldEmail: "a@b.co"}}
	inputs := []string{
		"add buy milk",
		"create task",
		"please add water plants",
		"delete the account",
		"remove user x@y.co",
		"call mom at 5",
		"meeting tomorrow",
		"gym 7am",
		"new york?",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			res := ResolvePending(in, pending)
			require.Equal(t, ResolutionBreakout, res.Kind)
			direct := ClassifyForced(in)
			assert.Equal(t, direct.Action, res.Intent.Action)
			assert.Equal(t, direct.Data, res.Intent.Data)
		})
	}
}

func TestIsBreakout(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"delete the account", true},
		{"add task", true},
		{"new todo please", true},
		{"please add milk", true},
		{"call mom at 5", true},
		{"add user", false},
		{"add a new password", false},
		{"john.on@example.com", false},
		{"hunter22", false},
		{"role", false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBreakout(tt.text))
		})
	}
}

func TestResolvePending_UpdateFieldSelector(t *testing.T) {
	pending := PendingAction{
		Action:      ActionUpdateAccount,
		Missing:     []Field{FieldUpdateField},
		PartialData: Data{FieldEmail: "ana@example.com"},
	}

	res := ResolvePending("Role", pending)
	require.Equal(t, ResolutionNeedMore, res.Kind)
	assert.Equal(t, []Field{FieldNewRole}, res.NeedMoreInfo.Missing)
	assert.Equal(t, "What should the new role be? (e.g., 'admin' or 'user')", res.NeedMoreInfo.Prompt)

	res = ResolvePending("admin", *res.NeedMoreInfo.PendingFor(ActionUpdateAccount))
	require.Equal(t, ResolutionComplete, res.Kind)
	assert.Equal(t, Data{FieldEmail: "ana@example.com", FieldNewRole: "admin"}, res.Intent.Data)

	res = ResolvePending("name", pending)
	require.Equal(t, ResolutionNeedMore, res.Kind)
	assert.Equal(t, []Field{FieldNewName}, res.NeedMoreInfo.Missing)
	assert.Equal(t, "What should the new name be?", res.NeedMoreInfo.Prompt)
}

func TestResolvePending_UnknownSelectorRepromptsUnchanged(t *testing.T) {
	pending := PendingAction{
		Action:      ActionUpdateAccount,
		Missing:     []Field{FieldUpdateField},
		PartialData: Data{FieldEmail: "ana@example.com"},
	}

	res := ResolvePending("color", pending)

	require.Equal(t, ResolutionNeedMore, res.Kind)
	assert.Equal(t, []Field{FieldUpdateField}, res.NeedMoreInfo.Missing)
	assert.Equal(t, Data{FieldEmail: "ana@example.com"}, res.NeedMoreInfo.PartialData)
	assert.Equal(t, "I've found that account. What would you like to update? (e.g., name, role)", res.NeedMoreInfo.Prompt)
}

func TestResolvePending_NameRejectsCommandsAndAddresses(t *testing.T) {
	pending := PendingAction{Action: ActionCreateAccount, Missing: []Field{FieldName}, PartialData: Data{}}

	for _, in := range []string{"my user", "x@y"} {
		res := ResolvePending(in, pending)
		require.Equal(t, ResolutionNeedMore, res.Kind, in)
		assert.Equal(t, []Field{FieldName}, res.NeedMoreInfo.Missing, in)
		assert.Empty(t, res.NeedMoreInfo.PartialData, in)
	}
}

func TestResolvePending_TitleKeepsRawText(t *testing.T) {
	pending := PendingAction{Action: ActionCreateTodo, Missing: []Field{FieldTitle}}

	res := ResolvePending("  Buy Milk ", pending)

	require.Equal(t, ResolutionComplete, res.Kind)
	assert.Equal(t, Data{FieldTitle: "Buy Milk"}, res.Intent.Data)
	assert.Equal(t, CategoryTask, res.Intent.Category)
}

func TestResolvePending_PromptTablePerAction(t *testing.T) {
	tests := []struct {
		name    string
		pending PendingAction
		text    string
		prompt  string
	}{
		{
			name:    "password change asks for new password",
			pending: PendingAction{Action: ActionChangePassword, Missing: []Field{FieldEmail, FieldNewPassword}},
			text:    "ana@example.com",
			prompt:  "What new password would you like to set for your account?",
		},
		{
			name:    "delete account asks for email",
			pending: PendingAction{Action: ActionDeleteAccount, Missing: []Field{FieldEmail}},
			text:    "not sure",
			prompt:  "Which account should I delete? Please provide the email.",
		},
		{
			name:    "task table fallback",
			pending: PendingAction{Action: ActionCreateTodo, Missing: []Field{FieldDescription}},
			text:    "whatever",
			prompt:  "Could you provide the missing details?",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ResolvePending(tt.text, tt.pending)
			require.Equal(t, ResolutionNeedMore, res.Kind)
			assert.Equal(t, tt.prompt, res.NeedMoreInfo.Prompt)
		})
	}
}

func TestResolvePending_Converges(t *testing.T) {
	tests := []struct {
		name    string
		pending PendingAction
		answers map[Field]string
	}{
		{
			name:    "create account",
			pending: PendingAction{Action: ActionCreateAccount, Missing: []Field{FieldEmail, FieldPassword, FieldName}},
			answers: map[Field]string{FieldEmail: "kim@example.com", FieldPassword: "pw-123456", FieldName: "kim"},
		},
		{
			name:    "change password",
			pending: PendingAction{Action: ActionChangePassword, Missing: []Field{FieldEmail, FieldNewPassword}},
			answers: map[Field]string{FieldEmail: "kim@example.com", FieldNewPassword: "n3w-secret"},
		},
		{
			name:    "create todo",
			pending: PendingAction{Action: ActionCreateTodo, Missing: []Field{FieldTitle}},
			answers: map[Field]string{FieldTitle: "water plants"},
		},
		{
			name:    "delete account",
			pending: PendingAction{Action: ActionDeleteAccount, Missing: []Field{FieldEmail}},
			answers: map[Field]string{FieldEmail: "kim@example.com"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.pending
			initial := len(p.Missing)
			turns := 0
			for {
				require.NotEmpty(t, p.Missing)
				turns++
				res := ResolvePending(tt.answers[p.Missing[0]], p)
				if res.Kind == ResolutionComplete {
					for f, v := range tt.answers {
						assert.Equal(t, v, res.Intent.Data.Get(f))
					}
					break
				}
				require.Equal(t, ResolutionNeedMore, res.Kind)
				require.Len(t, res.NeedMoreInfo.Missing, len(p.Missing)-1, "exactly one field per turn")
				p = *res.NeedMoreInfo.PendingFor(p.Action)
			}
			assert.Equal(t, initial, turns)
		})
	}
}

func TestResolvePending_DoesNotMutateInput(t *testing.T) {
	pending := PendingAction{
		Action:      ActionCreateAccount,
		Missing:     []Field{FieldEmail, FieldEmail, FieldPassword},
		PartialData: Data{FieldName: "kim"},
	}

	res := ResolvePending("kim@example.com", pending)

	require.Equal(t, ResolutionNeedMore, res.Kind)
	assert.Equal(t, []Field{FieldPassword}, res.NeedMoreInfo.Missing)
	assert.Equal(t, []Field{FieldEmail, FieldEmail, FieldPassword}, pending.Missing)
	assert.Equal(t, Data{FieldName: "kim"}, pending.PartialData)
}
