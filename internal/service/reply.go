package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/parley/internal/contract"
	"github.com/alexanderramin/parley/internal/intelligence"
)

// ReplySynthesizer renders the assistant's text for an executed turn.
type ReplySynthesizer struct {
	now func() time.Time
}

func NewReplySynthesizer() *ReplySynthesizer {
	return &ReplySynthesizer{now: time.Now}
}

// NewReplySynthesizerAt pins the clock used for time-of-day greetings.
func NewReplySynthesizerAt(now func() time.Time) *ReplySynthesizer {
	if now == nil {
		now = time.Now
	}
	return &ReplySynthesizer{now: now}
}

func (r *ReplySynthesizer) Reply(message string, in intelligence.Intent, result contract.ActionResult) string {
	if result.NeedMoreInfo != nil && result.NeedMoreInfo.Prompt != "" {
		return result.NeedMoreInfo.Prompt
	}
	if !result.Success {
		msg := result.Message
		if msg == "" {
			msg = "unknown error"
		}
		return fmt.Sprintf("Oops! 😅 I couldn't complete that action: %s. Could you try rephrasing it for me?", msg)
	}

	timeOfDay := intelligence.TimeOfDay(r.now())

	switch in.Action {
	case intelligence.ActionCreateTodo:
		return taskList(result.Todos)
	case intelligence.ActionReadTodos:
		if len(result.Todos) > 0 {
			return taskList(result.Todos)
		}
		return "You're all caught up! 🎉 No todos at the moment. Want to add something to your list?"
	case intelligence.ActionUpdateTodo:
		return "Perfect! I've updated that todo for you. ✨ Is there anything else you'd like me to help you with?"
	case intelligence.ActionDeleteTodo:
		return "Done! That todo has been removed. 🗑️ Sometimes clearing things out feels great, doesn't it?"
	case intelligence.ActionMarkCompleted:
		return completionCheer(intelligence.DetectMood(message)) + " What's next on your list?"
	case intelligence.ActionCompleteAll:
		return "Incredible! 🚀 You've completed ALL your tasks! That's some serious productivity right there! 💪 How does it feel to be so accomplished?"
	case intelligence.ActionDeleteAll:
		return "Fresh start! 🧹 All todos cleared. Sometimes a clean slate is exactly what we need. Ready to start fresh?"

	case intelligence.ActionCreateAccount:
		var name, email string
		if result.Account != nil {
			name, email = result.Account.Name, result.Account.Email
		}
		return fmt.Sprintf("%s\n- **Status**: Account created! 🎉\n- **User**: %s\n- **Email**: %s\n\nThey're all set up and ready to go! ✨",
			greetingFor(timeOfDay), name, email)
	case intelligence.ActionReadAccounts:
		if len(result.Accounts) > 0 {
			return accountList(result.Accounts)
		}
		return "No accounts found yet! 🚀 Ready to create your first one? Just let me know the name and email!"
	case intelligence.ActionUpdateAccount:
		return "Perfect! ✨ I've updated that account for you. Changes are now active! Is there anything else you'd like me to help you with?"
	case intelligence.ActionDeleteAccount:
		return "Done! 🗑️ That account has been removed from the system. Sometimes cleaning up accounts feels great, right?"
	case intelligence.ActionChangePassword:
		return "Security updated! 🔐 The password has been changed successfully. Keeping things secure is always a good idea! 💪"

	case intelligence.ActionChat:
		return chatReply(in, result, timeOfDay)
	}
	return "Done! What else can I help you with?"
}

func taskList(todos []contract.TaskView) string {
	var b strings.Builder
	b.WriteString("Reply Text: - **Your Tasks**:")
	for _, t := range todos {
		mark := "⏳"
		if t.IsCompleted {
			mark = "✅"
		}
		fmt.Fprintf(&b, "\n  • %s %s", t.Title, mark)
	}
	return b.String()
}

func accountList(accounts []contract.AccountView) string {
	var b strings.Builder
	b.WriteString("Reply Text: - **System Accounts**:")
	for _, a := range accounts {
		fmt.Fprintf(&b, "\n  • %s (%s) - Role: %s", a.Name, a.Email, a.Role)
	}
	return b.String()
}

func completionCheer(mood intelligence.Mood) string {
	switch mood {
	case intelligence.MoodPositive:
		return "You're absolutely crushing it today! 🚀"
	case intelligence.MoodNegative:
		return "Great job! Every completed task is a step forward! 💪"
	default:
		return "Woohoo! 🎉 Another task completed!"
	}
}

func greetingFor(timeOfDay string) string {
	switch timeOfDay {
	case "morning":
		return "Good morning! 🌅"
	case "afternoon":
		return "Good afternoon! ☀️"
	case "evening":
		return "Good evening! 🌆"
	default:
		return "Good night! 🌙"
	}
}

func chatReply(in intelligence.Intent, result contract.ActionResult, timeOfDay string) string {
	topic := in.Data.Get(intelligence.FieldTopic)

	base := result.Message
	if base == "" {
		switch topic {
		case intelligence.TopicGreeting:
			switch timeOfDay {
			case "morning":
				base = "Good morning! 🌅 How are you doing today?"
			case "afternoon":
				base = "Good afternoon! ☀️ How's your day going?"
			case "evening":
				base = "Good evening! 🌆 How was your day?"
			default:
				base = "Good night! 🌙 Still up and about?"
			}
		case intelligence.TopicWellbeing:
			base = "I'm doing fantastic, thank you for asking! 😊 How about you? How's everything going?"
		case intelligence.TopicGratitude:
			base = "You're absolutely welcome! 💝 It's my pleasure to help you out."
		case intelligence.TopicFarewell:
			base = "Take care! 👋 I'll be here when you need me. Have a wonderful time!"
		default:
			base = "Hey there! 👋 I'm here to chat and help you out."
		}
	}

	switch {
	case in.FollowUp != "":
		return base + " " + in.FollowUp
	case topic == "":
		return base + " How can I assist you today?"
	}
	return base
}
