package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/parley/internal/contract"
	"github.com/alexanderramin/parley/internal/intelligence"
)

type chatService struct {
	classifier *intelligence.Classifier
	executor   *ActionExecutor
	replies    *ReplySynthesizer
	observer   UseCaseObserver
}

// NewChatService wires the turn pipeline. A nil classifier classifies with
// heuristics only; a nil synthesizer uses the wall clock.
func NewChatService(
	classifier *intelligence.Classifier,
	executor *ActionExecutor,
	replies *ReplySynthesizer,
	observers ...UseCaseObserver,
) ChatService {
	if classifier == nil {
		classifier = intelligence.NewClassifier(nil)
	}
	if replies == nil {
		replies = NewReplySynthesizer()
	}
	return &chatService{
		classifier: classifier,
		executor:   executor,
		replies:    replies,
		observer:   combineObservers(observers),
	}
}

func (s *chatService) Turn(ctx context.Context, req contract.TurnRequest) (resp *contract.TurnResponse, err error) {
	startedAt := time.Now()
	var (
		oracleStatus = intelligence.OracleSkipped
		oracleErr    error
	)
	defer func() {
		fields := map[string]any{"oracle_status": oracleStatus.String()}
		if oracleErr != nil {
			fields["oracle_error"] = oracleErr.Error()
		}
		if resp != nil {
			fields["action"] = string(resp.Intent.Action)
			fields["source"] = string(resp.Source)
			fields["needs_more_info"] = resp.Result.NeedsMoreInfo()
			fields["action_success"] = resp.Result.Success
			if !resp.Result.Success && !resp.Result.NeedsMoreInfo() {
				fields["action_message"] = resp.Result.Message
			}
		}
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "chat.turn",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, contract.ErrMessageRequired
	}

	var (
		intent  intelligence.Intent
		source  intelligence.Source
		pending = req.Pending
	)
	// A pending action naming no known action is stale or forged; drop it.
	if pending != nil && !intelligence.IsValidAction(pending.Action) {
		pending = nil
	}

	if pending != nil {
		res := intelligence.ResolvePending(message, *pending)
		switch res.Kind {
		case intelligence.ResolutionNeedMore:
			return &contract.TurnResponse{
				Intent: res.Intent,
				Source: intelligence.SourcePending,
				Result: contract.ActionResult{
					Success:      false,
					Message:      "More info required",
					NeedMoreInfo: res.NeedMoreInfo,
				},
				ReplyText: res.NeedMoreInfo.Prompt,
				Pending:   res.NeedMoreInfo.PendingFor(pending.Action),
			}, nil
		case intelligence.ResolutionComplete:
			intent, source = res.Intent, intelligence.SourcePending
		default:
			// The user moved on; classify afresh and forget the old action.
			c := s.classifier.ClassifyBreakout(ctx, message, req.History)
			intent, source = c.Intent, intelligence.SourceBreakout
			oracleStatus, oracleErr = c.OracleStatus, c.OracleErr
			pending = nil
		}
	} else {
		c := s.classifier.Classify(ctx, message, req.History)
		intent, source = c.Intent, c.Source
		oracleStatus, oracleErr = c.OracleStatus, c.OracleErr
	}

	if guarded, replaced := intelligence.ApplyGuardRails(message, intent, pending); replaced {
		intent, source = guarded, intelligence.SourceGuardRail
	}

	result := s.executor.Execute(ctx, intent)
	return &contract.TurnResponse{
		Intent:    intent,
		Source:    source,
		Result:    result,
		ReplyText: s.replies.Reply(message, intent, result),
		Pending:   result.NeedMoreInfo.PendingFor(intent.Action),
	}, nil
}
