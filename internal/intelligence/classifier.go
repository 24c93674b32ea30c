package intelligence

import "context"

// Classification is a classified first-pass turn plus how it was reached.
type Classification struct {
	Intent       Intent
	Source       Source
	OracleStatus OracleStatus
	OracleErr    error
}

// Classifier consults the oracle when one is configured and falls back to
// the rule cascade. An unavailable oracle yields the plain cascade; an
// invalid answer yields the cascade with the non-chat fallback forced.
type Classifier struct {
	oracle *Oracle
}

// NewClassifier builds a Classifier. A nil oracle means heuristics only.
func NewClassifier(oracle *Oracle) *Classifier {
	return &Classifier{oracle: oracle}
}

func (c *Classifier) Classify(ctx context.Context, text string, history []HistoryMessage) Classification {
	return c.classify(ctx, text, history, false)
}

// ClassifyBreakout classifies text that abandoned a pending action. The
// cascade always runs with the non-chat fallback forced.
func (c *Classifier) ClassifyBreakout(ctx context.Context, text string, history []HistoryMessage) Classification {
	return c.classify(ctx, text, history, true)
}

func (c *Classifier) classify(ctx context.Context, text string, history []HistoryMessage, force bool) Classification {
	if c.oracle == nil {
		return Classification{Intent: classify(text, force), Source: SourceHeuristic, OracleStatus: OracleSkipped}
	}

	res := c.oracle.Classify(ctx, text, history)
	switch res.Status {
	case OracleOK:
		return Classification{Intent: res.Intent, Source: SourceOracle, OracleStatus: OracleOK}
	case OracleInvalid:
		return Classification{Intent: ClassifyForced(text), Source: SourceHeuristic, OracleStatus: res.Status, OracleErr: res.Err}
	default:
		return Classification{Intent: classify(text, force), Source: SourceHeuristic, OracleStatus: res.Status, OracleErr: res.Err}
	}
}
