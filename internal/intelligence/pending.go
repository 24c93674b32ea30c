package intelligence

import (
	"regexp"
	"slices"
	"strings"
)

// ResolutionKind says what a pending turn turned into.
type ResolutionKind int

const (
	// ResolutionBreakout means the user started something new; Intent is
	// the fresh classification and the pending action is dropped.
	ResolutionBreakout ResolutionKind = iota + 1
	// ResolutionComplete means every missing field is now filled.
	ResolutionComplete
	// ResolutionNeedMore means at least one field is still missing.
	ResolutionNeedMore
)

func (k ResolutionKind) String() string {
	switch k {
	case ResolutionBreakout:
		return "breakout"
	case ResolutionComplete:
		return "complete"
	case ResolutionNeedMore:
		return "need_more"
	default:
		return "unknown"
	}
}

// Resolution is the outcome of ResolvePending. NeedMoreInfo is set only
// for ResolutionNeedMore.
type Resolution struct {
	Kind         ResolutionKind
	Intent       Intent
	NeedMoreInfo *NeedMoreInfo
}

var (
	breakoutAccountDelete = regexp.MustCompile(`\b(delete|remove)\s+(the\s+)?(account|user)\b`)
	breakoutNewTask       = regexp.MustCompile(`\b(add|create|new)\s+(task|todo)\b`)
	breakoutLeadingCreate = regexp.MustCompile(`^(please\s+)?(add|create|new)\s+`)
	nameBlockers          = regexp.MustCompile(`\b(delete|remove|accounts?|users?)\b`)
)

// IsBreakout reports whether text abandons an in-flight action for a new
// request. An address in the text is treated as an answer, never a breakout
// on natural-language cues alone.
func IsBreakout(text string) bool {
	u := newUtterance(text)
	switch {
	case breakoutAccountDelete.MatchString(u.norm):
		return true
	case breakoutNewTask.MatchString(u.norm):
		return true
	case breakoutLeadingCreate.MatchString(u.norm) &&
		!mentionsAccountVocabulary(u.norm) && !passwordToken.MatchString(u.norm):
		return true
	case !emailPattern.MatchString(u.norm) && looksLikeNaturalTask(u.norm):
		return true
	}
	return false
}

// ResolvePending applies one user turn to an in-flight action. It never
// touches the store.
func ResolvePending(text string, pending PendingAction) Resolution {
	if IsBreakout(text) {
		return Resolution{Kind: ResolutionBreakout, Intent: ClassifyForced(text)}
	}

	u := newUtterance(text)
	missing := dedupeFields(pending.Missing)
	data := pending.PartialData.Clone()

	if slices.Contains(missing, FieldUpdateField) {
		switch u.norm {
		case "role":
			missing = []Field{FieldNewRole}
		case "name":
			missing = []Field{FieldNewName}
		}
	} else if field, value, ok := nextSlot(u, pending.Action, missing); ok {
		data[field] = value
		missing = slices.DeleteFunc(missing, func(f Field) bool { return f == field })
	}

	intent := Intent{
		Action:   pending.Action,
		Data:     data,
		Category: pending.Action.Category(),
		Rule:     "pending",
	}
	if len(missing) == 0 {
		return Resolution{Kind: ResolutionComplete, Intent: intent}
	}
	return Resolution{
		Kind:   ResolutionNeedMore,
		Intent: intent,
		NeedMoreInfo: &NeedMoreInfo{
			Missing:     missing,
			PartialData: data.Clone(),
			Prompt:      PromptFor(pending.Action, missing),
		},
	}
}

// nextSlot picks the single field this turn fills. Order matters: an email
// must never land in name, and a command must never become a username.
func nextSlot(u utterance, action ActionKind, missing []Field) (Field, string, bool) {
	has := func(f Field) bool { return slices.Contains(missing, f) }

	switch {
	case has(FieldNewRole):
		return FieldNewRole, u.raw, true
	case has(FieldNewName):
		return FieldNewName, u.raw, true
	case action == ActionCreateTodo && has(FieldTitle):
		return FieldTitle, u.raw, true
	}
	if has(FieldEmail) {
		if email := ExtractEmail(u.raw); email != "" {
			return FieldEmail, email, true
		}
	}
	switch {
	case has(FieldPassword):
		return FieldPassword, u.raw, true
	case has(FieldNewPassword):
		return FieldNewPassword, u.raw, true
	case has(FieldName) && !strings.ContainsRune(u.raw, '@') && !nameBlockers.MatchString(u.norm):
		return FieldName, u.raw, true
	}
	return "", "", false
}

func dedupeFields(in []Field) []Field {
	out := make([]Field, 0, len(in))
	for _, f := range in {
		if !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}
