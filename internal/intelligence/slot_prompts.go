package intelligence

// promptTable picks the question for the first missing field.
type promptTable struct {
	prompts  map[Field]string
	fallback string
}

func (t promptTable) promptFor(missing []Field) string {
	if len(missing) > 0 {
		if p, ok := t.prompts[missing[0]]; ok {
			return p
		}
	}
	return t.fallback
}

var taskPrompts = promptTable{
	prompts: map[Field]string{
		FieldTitle: "What task would you like me to add to your list?",
	},
	fallback: "Could you provide the missing details?",
}

var accountPrompts = promptTable{
	prompts: map[Field]string{
		FieldEmail:       "What email would you like to use for your account?",
		FieldPassword:    "What password would you like to set for your account?",
		FieldName:        "What username would you like to use for your account?",
		FieldUpdateField: "I've found that account. What would you like to update? (e.g., name, role)",
		FieldNewRole:     "What should the new role be? (e.g., 'admin' or 'user')",
		FieldNewName:     "What should the new name be?",
	},
	fallback: "Could you provide the missing account details?",
}

var passwordPrompts = promptTable{
	prompts: map[Field]string{
		FieldEmail:       "What email would you like to use for your account?",
		FieldNewPassword: "What new password would you like to set for your account?",
	},
	fallback: "Could you provide the missing password change details?",
}

var deleteAccountPrompts = promptTable{
	prompts: map[Field]string{
		FieldEmail: "Which account should I delete? Please provide the email.",
	},
	fallback: "Please provide the missing information to delete the account.",
}

func promptTableFor(action ActionKind) promptTable {
	switch {
	case action.Category() == CategoryTask:
		return taskPrompts
	case action == ActionChangePassword:
		return passwordPrompts
	case action == ActionDeleteAccount:
		return deleteAccountPrompts
	default:
		return accountPrompts
	}
}

// PromptFor returns the question asked when action still lacks missing.
func PromptFor(action ActionKind, missing []Field) string {
	return promptTableFor(action).promptFor(missing)
}
