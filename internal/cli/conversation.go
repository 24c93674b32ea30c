package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/alexanderramin/parley/internal/contract"
	"github.com/alexanderramin/parley/internal/intelligence"
	"github.com/alexanderramin/parley/internal/service"
)

// historyLimit bounds how many history lines a conversation keeps.
const historyLimit = 50

const (
	roleUser      = "user"
	roleAssistant = "assistant"
)

// conversation is the caller-owned state carried between turns: the prior
// exchange and whatever action is still collecting fields.
type conversation struct {
	Pending *intelligence.PendingAction   `json:"pending,omitempty"`
	History []intelligence.HistoryMessage `json:"history,omitempty"`
}

func (c *conversation) request(message string) contract.TurnRequest {
	req := contract.NewTurnRequest(message)
	req.History = c.History
	req.Pending = c.Pending
	return req
}

// record folds a completed turn into the conversation.
func (c *conversation) record(message string, resp *contract.TurnResponse) {
	c.Pending = resp.Pending
	c.History = append(c.History,
		intelligence.HistoryMessage{Role: roleUser, Content: message},
		intelligence.HistoryMessage{Role: roleAssistant, Content: resp.ReplyText},
	)
	if n := len(c.History); n > historyLimit {
		c.History = append([]intelligence.HistoryMessage(nil), c.History[n-historyLimit:]...)
	}
}

// send runs one turn and records it. A failed turn leaves the state untouched.
func (c *conversation) send(ctx context.Context, chat service.ChatService, message string) (*contract.TurnResponse, error) {
	resp, err := chat.Turn(ctx, c.request(message))
	if err != nil {
		return nil, err
	}
	c.record(message, resp)
	return resp, nil
}

// loadConversation reads the session file. A missing file is a fresh conversation.
func loadConversation(path string) (*conversation, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &conversation{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading session %s: %w", path, err)
	}

	var c conversation
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decoding session %s: %w", path, err)
	}
	return &c, nil
}

// save writes the session owner-readable only; partial data may hold a password.
func (c *conversation) save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating session dir: %w", err)
	}
	raw, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		return fmt.Errorf("writing session %s: %w", path, err)
	}
	return nil
}

func clearConversation(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing session %s: %w", path, err)
	}
	return nil
}
