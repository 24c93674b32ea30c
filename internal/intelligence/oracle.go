package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/parley/internal/llm"
)

// DefaultHistoryWindow is how many prior turns the oracle sees.
const DefaultHistoryWindow = 12

// OracleStatus classifies one oracle consultation.
type OracleStatus int

const (
	// OracleSkipped means no oracle is configured.
	OracleSkipped OracleStatus = iota
	OracleOK
	// OracleUnavailable covers call failures and output with no parseable object.
	OracleUnavailable
	// OracleInvalid means the object parsed but broke the action or field contract.
	OracleInvalid
)

func (s OracleStatus) String() string {
	switch s {
	case OracleSkipped:
		return "skipped"
	case OracleOK:
		return "ok"
	case OracleUnavailable:
		return "unavailable"
	case OracleInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

var (
	ErrOracleAction = errors.New("oracle action outside the closed set")
	ErrOracleField  = errors.New("oracle field not allowed for action")
	ErrOracleValue  = errors.New("oracle field value is not a scalar")
)

// oracleAllowedFields is the per-action allow-list for oracle data.
var oracleAllowedFields = map[ActionKind][]Field{
	ActionCreateTodo:     {FieldTitle, FieldDescription},
	ActionUpdateTodo:     {FieldTitle, FieldDescription, FieldIsCompleted, FieldStatus},
	ActionDeleteTodo:     {FieldTitle},
	ActionMarkCompleted:  {FieldTitle},
	ActionCreateAccount:  {FieldEmail, FieldPassword, FieldName, FieldRole},
	ActionUpdateAccount:  {FieldEmail, FieldID, FieldNewName, FieldNewRole, FieldIsActive},
	ActionDeleteAccount:  {FieldEmail, FieldID},
	ActionChangePassword: {FieldEmail, FieldID, FieldNewPassword},
	ActionChat:           {FieldMessage, FieldTopic, FieldMood},
}

func fieldAllowed(a ActionKind, f Field) bool {
	for _, allowed := range oracleAllowedFields[a] {
		if allowed == f {
			return true
		}
	}
	return false
}

// OracleResult is the outcome of one consultation. Intent is meaningful
// only when Status is OracleOK.
type OracleResult struct {
	Status OracleStatus
	Intent Intent
	Err    error
}

// Oracle asks a language model to classify a turn. It makes exactly one
// attempt and never surfaces an error; failures come back as a status.
type Oracle struct {
	client        llm.LLMClient
	historyWindow int
}

func NewOracle(client llm.LLMClient, historyWindow int) *Oracle {
	if historyWindow <= 0 {
		historyWindow = DefaultHistoryWindow
	}
	return &Oracle{client: client, historyWindow: historyWindow}
}

func (o *Oracle) Classify(ctx context.Context, text string, history []HistoryMessage) OracleResult {
	resp, err := o.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskClassify,
		SystemPrompt: classifySystemPrompt,
		UserPrompt:   buildClassifyPrompt(text, history, o.historyWindow),
	})
	if err != nil {
		return OracleResult{Status: OracleUnavailable, Err: err}
	}

	raw, err := llm.ExtractJSON[map[string]any](resp.Text, nil)
	if err != nil {
		return OracleResult{Status: OracleUnavailable, Err: err}
	}

	intent, err := decodeOracleIntent(raw)
	if err != nil {
		return OracleResult{Status: OracleInvalid, Err: err}
	}
	return OracleResult{Status: OracleOK, Intent: intent}
}

func buildClassifyPrompt(text string, history []HistoryMessage, window int) string {
	if len(history) > window {
		history = history[len(history)-window:]
	}

	var b strings.Builder
	b.WriteString("Previous conversation:\n")
	for _, m := range history {
		fmt.Fprintf(&b, "%s: %s\n", m.Role, m.Content)
	}
	fmt.Fprintf(&b, "\nUser: \"%s\"\n\n", strings.TrimSpace(text))
	b.WriteString(classifyResponseInstructions)
	return b.String()
}

// decodeOracleIntent trusts nothing: the action must be in the enum and
// every non-empty data field must be on that action's allow-list.
func decodeOracleIntent(raw map[string]any) (Intent, error) {
	name, _ := raw["action"].(string)
	action := ActionKind(strings.TrimSpace(name))
	if !IsValidAction(action) {
		return Intent{}, fmt.Errorf("%w: %q", ErrOracleAction, name)
	}

	data, err := decodeOracleData(action, raw["data"])
	if err != nil {
		return Intent{}, err
	}

	intent := Intent{Action: action, Data: data, Category: action.Category(), Rule: "oracle"}
	if mood, ok := raw["mood"].(string); ok {
		intent.Mood = strings.TrimSpace(mood)
	}
	if followUp, ok := raw["follow_up"].(string); ok {
		intent.FollowUp = strings.TrimSpace(followUp)
	}
	return intent, nil
}

func decodeOracleData(action ActionKind, v any) (Data, error) {
	data := Data{}
	if v == nil {
		return data, nil
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: data is %T", ErrOracleValue, v)
	}

	for key, value := range obj {
		s, err := scalarString(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		if s == "" {
			continue
		}
		field := Field(key)
		if !fieldAllowed(action, field) {
			return nil, fmt.Errorf("%w: %s for %s", ErrOracleField, key, action)
		}
		data[field] = s
	}
	return data, nil
}

func scalarString(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return strings.TrimSpace(t), nil
	case bool:
		return strconv.FormatBool(t), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("%w: %T", ErrOracleValue, v)
	}
}
