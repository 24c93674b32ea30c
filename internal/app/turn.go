package app

import (
	"errors"

	"github.com/alexanderramin/parley/internal/intelligence"
)

// ErrMessageRequired rejects a turn with no utterance.
var ErrMessageRequired = errors.New("message is required")

// TurnRequest is one chat turn. Pending is whatever the previous turn
// returned; the caller owns it and must serialize turns per conversation.
type TurnRequest struct {
	Message string
	History []intelligence.HistoryMessage
	Pending *intelligence.PendingAction
}

// NewTurnRequest builds a request with no history and no pending action.
func NewTurnRequest(message string) TurnRequest {
	return TurnRequest{Message: message}
}

// TurnResponse is the outcome of a turn. Pending is non-nil exactly when
// Result carries NeedMoreInfo.
type TurnResponse struct {
	Intent    intelligence.Intent
	Source    intelligence.Source
	Result    ActionResult
	ReplyText string
	Pending   *intelligence.PendingAction
}

// ActionResult is the uniform executor outcome.
//
// Success=false with NeedMoreInfo set means no mutation was attempted.
// Success=false without it means the store rejected the operation.
type ActionResult struct {
	Success      bool                       `json:"success"`
	Message      string                     `json:"message,omitempty"`
	Todo         *TaskView                  `json:"todo,omitempty"`
	Todos        []TaskView                 `json:"todos,omitempty"`
	Account      *AccountView               `json:"account,omitempty"`
	Accounts     []AccountView              `json:"accounts,omitempty"`
	Count        int64                      `json:"count,omitempty"`
	NeedMoreInfo *intelligence.NeedMoreInfo `json:"needMoreInfo,omitempty"`
}

// NeedsMoreInfo reports whether the result asks the user for more fields.
func (r ActionResult) NeedsMoreInfo() bool {
	return r.NeedMoreInfo != nil
}
