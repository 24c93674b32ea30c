package intelligence

import (
	"regexp"
	"strings"
	"time"
)

var (
	emailPattern = regexp.MustCompile(`[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}`)
	quotedTitle  = regexp.MustCompile(`"([^"]+)"|'([^']+)'`)
)

// repairDomains are recognised when a user drops the "@" in front of them.
var repairDomains = []string{"gmail.com", "yahoo.com", "outlook.com", "hotmail.com"}

// emailTypos maps misspelled provider domains to the intended one.
var emailTypos = map[string]string{
	"gamil.com":  "gmail.com",
	"gmial.com":  "gmail.com",
	"gmal.com":   "gmail.com",
	"gmai.com":   "gmail.com",
	"yaho.com":   "yahoo.com",
	"yhaoo.com":  "yahoo.com",
	"hotmai.com": "hotmail.com",
	"hotmal.com": "hotmail.com",
}

// ExtractEmail returns the first email address in text, lower-cased.
// "namegmail.com" style input is repaired to "name@gmail.com" first.
// Returns "" when nothing address-like is present.
func ExtractEmail(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	if !strings.Contains(s, "@") {
		for _, d := range repairDomains {
			if strings.HasSuffix(s, d) && len(s) > len(d) {
				s = s[:len(s)-len(d)] + "@" + d
				break
			}
		}
	}
	return emailPattern.FindString(s)
}

// CorrectEmailTypo suggests a corrected address when the domain of email
// is a known misspelling.
func CorrectEmailTypo(email string) (string, bool) {
	at := strings.LastIndexByte(email, '@')
	if at < 0 {
		return "", false
	}
	fixed, ok := emailTypos[strings.ToLower(email[at+1:])]
	if !ok {
		return "", false
	}
	return email[:at+1] + fixed, true
}

type verbStripper []*regexp.Regexp

func newVerbStripper(verbs ...string) verbStripper {
	s := make(verbStripper, 0, len(verbs))
	for _, v := range verbs {
		s = append(s, regexp.MustCompile(`(?i)^(please\s+)?`+regexp.QuoteMeta(v)+`\s+`))
	}
	return s
}

// strip returns the text after the first leading verb that matches,
// otherwise the first quoted string, otherwise "".
func (s verbStripper) strip(text string) string {
	t := strings.TrimSpace(text)
	for _, re := range s {
		if loc := re.FindStringIndex(t); loc != nil {
			return strings.TrimSpace(t[loc[1]:])
		}
	}
	if m := quotedTitle.FindStringSubmatch(t); m != nil {
		if m[1] != "" {
			return m[1]
		}
		return m[2]
	}
	return ""
}

// ExtractTitleAfterVerb pulls a task title out of text by removing a leading
// verb from verbs, falling back to a quoted phrase. Case is preserved.
func ExtractTitleAfterVerb(text string, verbs []string) string {
	return newVerbStripper(verbs...).strip(text)
}

// Mood is the coarse sentiment of an utterance.
type Mood string

const (
	MoodPositive  Mood = "positive"
	MoodNegative  Mood = "negative"
	MoodTired     Mood = "tired"
	MoodMotivated Mood = "motivated"
	MoodNeutral   Mood = "neutral"
)

var moodPatterns = []struct {
	mood Mood
	re   *regexp.Regexp
}{
	{MoodPositive, regexp.MustCompile(`\b(happy|joy|excited|great|awesome|wonderful|amazing|fantastic)`)},
	{MoodNegative, regexp.MustCompile(`\b(sad|upset|angry|frustrated|overwhelmed|stressed|worried|anxious)`)},
	{MoodTired, regexp.MustCompile(`\b(tired|exhausted|sleepy|drained)`)},
	{MoodMotivated, regexp.MustCompile(`\b(motivated|inspired|energized|pumped|ready)`)},
}

// DetectMood scans for mood vocabulary; the first matching group wins.
func DetectMood(text string) Mood {
	s := strings.ToLower(text)
	for _, p := range moodPatterns {
		if p.re.MatchString(s) {
			return p.mood
		}
	}
	return MoodNeutral
}

// TimeOfDay buckets the hour of t.
func TimeOfDay(t time.Time) string {
	switch h := t.Hour(); {
	case h < 12:
		return "morning"
	case h < 17:
		return "afternoon"
	case h < 21:
		return "evening"
	default:
		return "night"
	}
}
