package intelligence

import "regexp"

var explicitAccountDelete = regexp.MustCompile(`\b(delete|remove)\s+account\b`)

// ApplyGuardRails enforces the overrides no classifier may bypass. It
// reports whether the intent was replaced.
//
// An explicit "delete account" always becomes delete_account, carrying only
// an email found in text. An in-flight change_password survives a turn whose
// classification produced no action.
func ApplyGuardRails(text string, intent Intent, pending *PendingAction) (Intent, bool) {
	u := newUtterance(text)
	if explicitAccountDelete.MatchString(u.norm) {
		return Intent{
			Action:   ActionDeleteAccount,
			Data:     withEmail(u.raw),
			Category: CategoryAccount,
			Rule:     "guard:delete_account",
		}, true
	}
	if pending != nil && pending.Action == ActionChangePassword && intent.Action == "" {
		return Intent{
			Action:   ActionChangePassword,
			Data:     intent.Data.Clone(),
			Category: CategoryAccount,
			Rule:     "guard:change_password",
		}, true
	}
	return intent, false
}
