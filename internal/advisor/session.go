package advisor

// ChatRole identifies who produced a conversation turn.
type ChatRole string

const (
	// RoleUser marks turns written by the user.
	RoleUser ChatRole = "user"
	// RoleAssistant marks turns written by the provider.
	RoleAssistant ChatRole = "assistant"
)

// ChatTurn is a single message in a conversation.
type ChatTurn struct {
	Role    ChatRole
	Content string
}

// Conversation is an explicit session handle for the chat operation. The
// gateway passes the full ledger on every call, so the handle carries only
// dialogue history, never transaction data.
type Conversation struct {
	turns []ChatTurn
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{}
}

// Turns returns a copy of the conversation history.
func (c *Conversation) Turns() []ChatTurn {
	out := make([]ChatTurn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Append records a turn.
func (c *Conversation) Append(role ChatRole, content string) {
	c.turns = append(c.turns, ChatTurn{Role: role, Content: content})
}

// Len returns the number of recorded turns.
func (c *Conversation) Len() int {
	return len(c.turns)
}
