package intelligence

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// utterance carries the two views every rule needs.
type utterance struct {
	raw  string // trimmed, original case
	norm string // trimmed, lower-cased
}

func newUtterance(text string) utterance {
	raw := strings.TrimSpace(text)
	return utterance{raw: raw, norm: strings.ToLower(raw)}
}

// rule is one entry of the classification cascade.
type rule struct {
	name   string
	domain Category
	match  func(u utterance) bool
	build  func(u utterance) Intent
}

var (
	accountToken  = regexp.MustCompile(`\b(accounts?|users?|profiles?)\b`)
	emailToken    = regexp.MustCompile(`\be-?mails?\b`)
	passwordToken = regexp.MustCompile(`\bpasswords?\b`)

	updateAccountPattern = regexp.MustCompile(`\b(update|modify|change|edit)\s+.*(account|user|profile|role)s?\b`)
	deleteAccountPattern = regexp.MustCompile(`\b(delete|remove)\s+.*(account|user|profile)s?\b`)
	createAccountPattern = regexp.MustCompile(`\b(create|add|register|make)\s+.*(account|user|profile)s?\b`)
	listAccountsPattern  = regexp.MustCompile(`\b(show|list|view|get)\s+.*(account|user|profile)s?\b`)

	passwordChangePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\bchange\s+(my\s+|the\s+|your\s+|a\s+)?password\b`),
		regexp.MustCompile(`\b(reset|update|modify)\s+(my\s+|the\s+|your\s+|a\s+)?password\b`),
		regexp.MustCompile(`\bpassword\s+(change|reset|update|modify)\b`),
		regexp.MustCompile(`\bcreate\s+a\s+new\s+password\b`),
	}

	listTodosPattern  = regexp.MustCompile(`\b(show|list|view|all tasks|tasks|todos|what|how many)\b`)
	completePattern   = regexp.MustCompile(`\b(complete|done|finish|mark\s+(it\s+|this\s+)?complete|check off|tick off)`)
	allPattern        = regexp.MustCompile(`\ball\b`)
	deleteVerbPattern = regexp.MustCompile(`\b(delete|remove|clear|get rid of|drop|cancel)\b`)
	deleteTaskPhrase  = regexp.MustCompile(`(?i)\bdelete\s+task\b`)
	completedSuffix   = regexp.MustCompile(`(?i)\s+as\s+(complete|completed|done|finished)$`)

	createCuePattern = regexp.MustCompile(`\b(add|create|make|note|remember|schedule|start|new task|new todo|need to|have to|want to|going to)\b`)
	leadingTo        = regexp.MustCompile(`^to\s+`)
	createStrippers  = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^(please\s+)?(add|create|make|note|remember|schedule|start)\s+`),
		regexp.MustCompile(`(?i)^to\s+`),
		regexp.MustCompile(`(?i)^(new task|new todo)\s+`),
		regexp.MustCompile(`(?i)^(need to|have to|want to|going to)\s+`),
	}

	naturalTaskCue = regexp.MustCompile(`\b(at|by|before|after|on)\b|\b(message|call|meet|remind|todo|task)`)
	numericTimeCue = regexp.MustCompile(`\d+['’]?\s*(o'clock|am|pm|hour|minute)`)

	greetingPattern  = regexp.MustCompile(`\b(hello|hi|hey|good morning|good afternoon|good evening|how are you|what's up|sup|greetings)\b`)
	wellbeingPattern = regexp.MustCompile(`\b(how are you|how do you feel|are you ok|are you well)\b`)
	gratitudePattern = regexp.MustCompile(`\b(thank you|thanks|thx|appreciate it|grateful)\b`)
	farewellPattern  = regexp.MustCompile(`\b(bye|goodbye|see you|later|take care|farewell)\b`)
	questionPattern  = regexp.MustCompile(`\b(explain|what is|how does|tell me about|describe|what are|how do|can you|could you)\b`)
)

var (
	completeStripper = newVerbStripper("complete", "completed", "finish", "mark", "check", "tick")
	deleteStripper   = newVerbStripper("delete", "remove", "clear", "get rid of", "drop", "cancel")
)

// placeholderTitles name no task at all.
var placeholderTitles = map[string]bool{
	"task": true, "todo": true, "a task": true, "a todo": true,
	"new task": true, "new todo": true, "a new task": true, "a new todo": true,
}

func cleanTitle(title string) string {
	title = strings.TrimSpace(title)
	if placeholderTitles[strings.ToLower(title)] {
		return ""
	}
	return title
}

func withTitle(title string) Data {
	d := Data{}
	if t := cleanTitle(title); t != "" {
		d[FieldTitle] = t
	}
	return d
}

func withEmail(text string) Data {
	d := Data{}
	if e := ExtractEmail(text); e != "" {
		d[FieldEmail] = e
	}
	return d
}

func mentionsAccountVocabulary(s string) bool {
	return accountToken.MatchString(s) || emailToken.MatchString(s)
}

// looksLikeNaturalTask reports a verb-less task statement: time or action
// cues and nothing that points at accounts.
func looksLikeNaturalTask(norm string) bool {
	if mentionsAccountVocabulary(norm) || passwordToken.MatchString(norm) {
		return false
	}
	return naturalTaskCue.MatchString(norm) || numericTimeCue.MatchString(norm)
}

func isPasswordChange(norm string) bool {
	for _, re := range passwordChangePatterns {
		if re.MatchString(norm) {
			return true
		}
	}
	return false
}

func taskIntent(a ActionKind, d Data) Intent {
	return Intent{Action: a, Data: d, Category: CategoryTask}
}

func accountIntent(a ActionKind, d Data) Intent {
	return Intent{Action: a, Data: d, Category: CategoryAccount}
}

func chatIntent(message, topic, mood, followUp string) Intent {
	d := Data{FieldMessage: message}
	if topic != "" {
		d[FieldTopic] = topic
	}
	return Intent{Action: ActionChat, Data: d, Category: CategoryConversation, Mood: mood, FollowUp: followUp}
}

// heuristicRules is evaluated top to bottom; the first match wins.
var heuristicRules = []rule{
	{
		name:   "update_account",
		domain: CategoryAccount,
		match: func(u utterance) bool {
			return updateAccountPattern.MatchString(u.norm) && !passwordToken.MatchString(u.norm)
		},
		build: func(u utterance) Intent { return accountIntent(ActionUpdateAccount, withEmail(u.raw)) },
	},
	{
		name:   "delete_account",
		domain: CategoryAccount,
		match:  func(u utterance) bool { return deleteAccountPattern.MatchString(u.norm) },
		build:  func(u utterance) Intent { return accountIntent(ActionDeleteAccount, withEmail(u.raw)) },
	},
	{
		name:   "create_account",
		domain: CategoryAccount,
		match:  func(u utterance) bool { return createAccountPattern.MatchString(u.norm) },
		build:  func(u utterance) Intent { return accountIntent(ActionCreateAccount, withEmail(u.raw)) },
	},
	{
		name:   "read_accounts",
		domain: CategoryAccount,
		match:  func(u utterance) bool { return listAccountsPattern.MatchString(u.norm) },
		build:  func(utterance) Intent { return accountIntent(ActionReadAccounts, Data{}) },
	},
	{
		name:   "change_password",
		domain: CategoryAccount,
		match:  func(u utterance) bool { return isPasswordChange(u.norm) },
		build:  func(u utterance) Intent { return accountIntent(ActionChangePassword, withEmail(u.raw)) },
	},
	{
		name:   "read_todos",
		domain: CategoryTask,
		match:  func(u utterance) bool { return listTodosPattern.MatchString(u.norm) },
		build:  func(utterance) Intent { return taskIntent(ActionReadTodos, Data{}) },
	},
	{
		name:   "complete",
		domain: CategoryTask,
		match:  func(u utterance) bool { return completePattern.MatchString(u.norm) },
		build: func(u utterance) Intent {
			if allPattern.MatchString(u.norm) {
				return taskIntent(ActionCompleteAll, Data{})
			}
			title := completedSuffix.ReplaceAllString(completeStripper.strip(u.raw), "")
			return taskIntent(ActionMarkCompleted, withTitle(title))
		},
	},
	{
		name:   "delete",
		domain: CategoryTask,
		match:  func(u utterance) bool { return deleteVerbPattern.MatchString(u.norm) },
		build: func(u utterance) Intent {
			if allPattern.MatchString(u.norm) {
				return taskIntent(ActionDeleteAll, Data{})
			}
			if deleteTaskPhrase.MatchString(u.raw) {
				if title := cleanTitle(deleteTaskPhrase.ReplaceAllString(u.raw, "")); title != "" {
					return taskIntent(ActionDeleteTodo, withTitle(title))
				}
			}
			return taskIntent(ActionDeleteTodo, withTitle(deleteStripper.strip(u.raw)))
		},
	},
	{
		name:   "create_todo",
		domain: CategoryTask,
		match: func(u utterance) bool {
			if passwordToken.MatchString(u.norm) {
				return false
			}
			return createCuePattern.MatchString(u.norm) || leadingTo.MatchString(u.norm)
		},
		build: func(u utterance) Intent {
			title := u.raw
			for _, re := range createStrippers {
				title = strings.TrimSpace(re.ReplaceAllString(title, ""))
			}
			if mentionsAccountVocabulary(strings.ToLower(title)) {
				return chatIntent(u.raw, "", "friendly", "Let me know if you want to manage accounts!")
			}
			return taskIntent(ActionCreateTodo, withTitle(title))
		},
	},
	{
		name:   "natural_task",
		domain: CategoryTask,
		match:  func(u utterance) bool { return looksLikeNaturalTask(u.norm) },
		build:  func(u utterance) Intent { return taskIntent(ActionCreateTodo, Data{FieldTitle: u.raw}) },
	},
	{
		name:   "greeting",
		domain: CategoryConversation,
		match:  func(u utterance) bool { return greetingPattern.MatchString(u.norm) },
		build: func(u utterance) Intent {
			return chatIntent(u.raw, TopicGreeting, "excited", "How are you doing today?")
		},
	},
	{
		name:   "wellbeing",
		domain: CategoryConversation,
		match:  func(u utterance) bool { return wellbeingPattern.MatchString(u.norm) },
		build: func(u utterance) Intent {
			return chatIntent(u.raw, TopicWellbeing, "friendly", "I'm doing great! How about you?")
		},
	},
	{
		name:   "gratitude",
		domain: CategoryConversation,
		match:  func(u utterance) bool { return gratitudePattern.MatchString(u.norm) },
		build: func(u utterance) Intent {
			return chatIntent(u.raw, TopicGratitude, "excited", "You're very welcome! It's my pleasure to help!")
		},
	},
	{
		name:   "farewell",
		domain: CategoryConversation,
		match:  func(u utterance) bool { return farewellPattern.MatchString(u.norm) },
		build: func(u utterance) Intent {
			return chatIntent(u.raw, TopicFarewell, "friendly", "Take care! I'll be here when you need me!")
		},
	},
}

// RuleNames lists the cascade in evaluation order.
func RuleNames() []string {
	names := make([]string, len(heuristicRules))
	for i, r := range heuristicRules {
		names[i] = r.name
	}
	return names
}

// Classify maps text to an intent using the rule cascade alone.
// It never fails; unmatched text degrades to chat or a bare create_todo.
func Classify(text string) Intent {
	return classify(text, false)
}

// ClassifyForced is Classify with the non-chat fallback forced on, for
// turns where a classifier answer had to be discarded.
func ClassifyForced(text string) Intent {
	return classify(text, true)
}

func classify(text string, force bool) Intent {
	u := newUtterance(text)
	for _, r := range heuristicRules {
		if r.match(u) {
			in := r.build(u)
			in.Rule = r.name
			return in
		}
	}
	in := fallback(u, force)
	in.Rule = "fallback"
	return in
}

func fallback(u utterance, force bool) Intent {
	n := utf8.RuneCountInString(u.norm)
	plausible := !strings.Contains(u.norm, "?") && n >= 3 && n <= 200
	if !force && !plausible {
		return chatIntent(u.raw, "", "friendly", "That's interesting! Tell me more about that.")
	}
	switch {
	case accountToken.MatchString(u.norm) || emailPattern.MatchString(u.norm):
		return accountIntent(ActionCreateAccount, Data{})
	case questionPattern.MatchString(u.norm):
		return chatIntent(u.raw, TopicInformation, "helpful", "")
	default:
		return taskIntent(ActionCreateTodo, Data{})
	}
}
