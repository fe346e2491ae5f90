package game

// EventLog accumulates the human-readable messages commands produce, e.g.
// "You hit the jackal for 4 damage.", "The jackal dies.". Engine keeps one
// log for the whole run and appends every command's messages to it;
// CommandResult carries a command's messages as a single string.
type EventLog struct {
	messages []string
}

// NewEventLog returns an empty log.
func NewEventLog() *EventLog {
	return &EventLog{}
}

// Printf-free by design: callers build messages with fmt.Sprintf
// themselves so this package doesn't need to import fmt solely for
// logging glue.

// Add appends a message.
func (l *EventLog) Add(msg string) {
	l.messages = append(l.messages, msg)
}

// Messages returns every message added so far, in order.
func (l *EventLog) Messages() []string {
	return l.messages
}

// Empty reports whether nothing has been logged.
func (l *EventLog) Empty() bool {
	return len(l.messages) == 0
}
