package intelligence

// ActionKind enumerates every action the engine can resolve a turn into.
type ActionKind string

const (
	ActionCreateTodo     ActionKind = "create_todo"
	ActionReadTodos      ActionKind = "read_todos"
	ActionUpdateTodo     ActionKind = "update_todo"
	ActionDeleteTodo     ActionKind = "delete_todo"
	ActionMarkCompleted  ActionKind = "mark_completed"
	ActionCompleteAll    ActionKind = "complete_all"
	ActionDeleteAll      ActionKind = "delete_all"
	ActionCreateAccount  ActionKind = "create_account"
	ActionReadAccounts   ActionKind = "read_accounts"
	ActionUpdateAccount  ActionKind = "update_account"
	ActionDeleteAccount  ActionKind = "delete_account"
	ActionChangePassword ActionKind = "change_password"
	ActionChat           ActionKind = "chat"
)

// Category groups actions by the record type they touch.
type Category string

const (
	CategoryTask         Category = "task_management"
	CategoryAccount      Category = "account_management"
	CategoryConversation Category = "conversation"
)

// actionCategories doubles as the closed set of valid actions.
var actionCategories = map[ActionKind]Category{
	ActionCreateTodo:     CategoryTask,
	ActionReadTodos:      CategoryTask,
	ActionUpdateTodo:     CategoryTask,
	ActionDeleteTodo:     CategoryTask,
	ActionMarkCompleted:  CategoryTask,
	ActionCompleteAll:    CategoryTask,
	ActionDeleteAll:      CategoryTask,
	ActionCreateAccount:  CategoryAccount,
	ActionReadAccounts:   CategoryAccount,
	ActionUpdateAccount:  CategoryAccount,
	ActionDeleteAccount:  CategoryAccount,
	ActionChangePassword: CategoryAccount,
	ActionChat:           CategoryConversation,
}

// AllActions lists the enum in declaration order.
var AllActions = []ActionKind{
	ActionCreateTodo, ActionReadTodos, ActionUpdateTodo, ActionDeleteTodo,
	ActionMarkCompleted, ActionCompleteAll, ActionDeleteAll,
	ActionCreateAccount, ActionReadAccounts, ActionUpdateAccount,
	ActionDeleteAccount, ActionChangePassword, ActionChat,
}

// IsValidAction reports whether a is a member of the closed action enum.
func IsValidAction(a ActionKind) bool {
	_, ok := actionCategories[a]
	return ok
}

// Category returns the category of a valid action, or "" otherwise.
func (a ActionKind) Category() Category {
	return actionCategories[a]
}

// Field names a datum carried in Intent.Data or requested through a PendingAction.
type Field string

const (
	FieldTitle       Field = "title"
	FieldDescription Field = "description"
	FieldIsCompleted Field = "isCompleted"
	FieldStatus      Field = "status"

	FieldID          Field = "id"
	FieldEmail       Field = "email"
	FieldPassword    Field = "password"
	FieldName        Field = "name"
	FieldRole        Field = "role"
	FieldIsActive    Field = "isActive"
	FieldNewPassword Field = "newPassword"
	FieldNewRole     Field = "newRole"
	FieldNewName     Field = "newName"

	// FieldUpdateField is virtual: its answer selects whether newRole or
	// newName is requested next. It is never persisted.
	FieldUpdateField Field = "updateField"

	FieldMessage Field = "message"
	FieldTopic   Field = "topic"
	FieldMood    Field = "mood"
)

// Data is the string payload of an intent.
type Data map[Field]string

// Get returns the value for f, or "" when absent.
func (d Data) Get(f Field) string {
	return d[f]
}

// Has reports whether f carries a non-empty value.
func (d Data) Has(f Field) bool {
	return d[f] != ""
}

// Clone returns an independent copy. A nil receiver yields an empty map.
func (d Data) Clone() Data {
	out := make(Data, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// Chat topics produced by the conversational rules.
const (
	TopicGreeting    = "greeting"
	TopicWellbeing   = "wellbeing"
	TopicGratitude   = "gratitude"
	TopicFarewell    = "farewell"
	TopicInformation = "information"
)

// Intent is a classified turn: an action plus whatever fields were recognised.
type Intent struct {
	Action   ActionKind `json:"action"`
	Data     Data       `json:"data"`
	Category Category   `json:"category,omitempty"`
	Mood     string     `json:"mood,omitempty"`
	FollowUp string     `json:"follow_up,omitempty"`

	// Rule names the heuristic or override that produced the intent.
	Rule string `json:"-"`
}

// PendingAction is an action waiting on more fields. It is owned by the
// caller and handed back on the next turn.
type PendingAction struct {
	Action      ActionKind `json:"action"`
	Missing     []Field    `json:"missing"`
	PartialData Data       `json:"partialData"`
}

// NeedMoreInfo asks the caller for the first of Missing.
type NeedMoreInfo struct {
	Missing     []Field `json:"missing"`
	PartialData Data    `json:"partialData"`
	Prompt      string  `json:"prompt"`
}

// PendingFor converts the request into the state the next turn must carry.
func (n *NeedMoreInfo) PendingFor(action ActionKind) *PendingAction {
	if n == nil {
		return nil
	}
	return &PendingAction{
		Action:      action,
		Missing:     append([]Field(nil), n.Missing...),
		PartialData: n.PartialData.Clone(),
	}
}

// HistoryMessage is one prior turn of the conversation, oldest first.
type HistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Source records which stage decided the action for a turn.
type Source string

const (
	SourcePending   Source = "pending"
	SourceBreakout  Source = "breakout"
	SourceOracle    Source = "oracle"
	SourceHeuristic Source = "heuristic"
	SourceGuardRail Source = "guard_rail"
)
