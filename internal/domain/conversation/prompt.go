package conversation

import "strings"

// RenderChatPrompt renders prior history as alternating "sender: text" lines,
// oldest first, followed by the new user message and the bot cue. The exact
// byte layout is a contract: stub-provider tests assert on it, and changing
// it changes what the model sees.
//
// Given history [{user,"hi"},{bot,"hello"}] and message "how are you" the
// result is:
//
//	user: hi\nbot: hello\nuser: how are you\nAria:
func RenderChatPrompt(history []Message, message, botName string) string {
	var b strings.Builder
	for _, msg := range history {
		b.WriteString(string(msg.Sender))
		b.WriteString(": ")
		b.WriteString(msg.Text)
		b.WriteString("\n")
	}
	b.WriteString("user: ")
	b.WriteString(message)
	b.WriteString("\n")
	b.WriteString(botName)
	b.WriteString(":")
	return b.String()
}

// TailMessages returns the most recent limit messages, preserving order.
// A limit of 0 disables the cap.
func TailMessages(history []Message, limit int) []Message {
	if limit <= 0 || len(history) <= limit {
		return history
	}
	return history[len(history)-limit:]
}
