package api

import "strings"

// Usage contexts inferred from an email.
const (
	ContextStudent  = "student"
	ContextWork     = "work"
	ContextPersonal = "personal"
	ContextMixed    = "mixed"
)

type emailRule struct {
	context string
	subject []string
	senders []string
}

// emailRules are checked in order; the first match wins.
var emailRules = []emailRule{
	{
		context: ContextStudent,
		subject: []string{"exam", "tarea", "universidad", "homework", "university"},
		senders: []string{"edu", "universidad"},
	},
	{
		context: ContextWork,
		subject: []string{"reunión", "reunion", "meeting", "proyecto", "project", "cliente", "client"},
		senders: []string{"trabajo"},
	},
	{
		context: ContextPersonal,
		subject: []string{"médico", "medico", "cita", "personal", "doctor", "appointment"},
	},
}

// EmailContent joins subject and body into the text handed to extraction.
func EmailContent(subject, body string) string {
	var b strings.Builder
	if subject != "" {
		b.WriteString("Asunto: ")
		b.WriteString(subject)
		b.WriteString("\n")
	}
	b.WriteString(body)
	return b.String()
}

// InferEmailContext guesses the usage context from keywords in the subject
// and sender address. Unmatched emails are "mixed".
func InferEmailContext(subject, sender string) string {
	subject = strings.ToLower(subject)
	sender = strings.ToLower(sender)

	for _, rule := range emailRules {
		if containsAny(subject, rule.subject) || containsAny(sender, rule.senders) {
			return rule.context
		}
	}
	return ContextMixed
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
