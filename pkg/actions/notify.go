package actions

import "github.com/sirupsen/logrus"

// Level classifies a notification.
type Level int

// Notification levels.
const (
	LevelSuccess Level = iota
	LevelError
)

func (l Level) String() string {
	if l == LevelError {
		return "error"
	}
	return "success"
}

// Notification is a transient user-facing message about a finished action.
type Notification struct {
	Level      Level
	EntityType string
	Action     Action
	Message    string
}

// Notifier shows notifications. Implementations must be safe for concurrent
// use; dialogs notify from whichever goroutine completes their request.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Notification)

// Notify calls f(n).
func (f NotifierFunc) Notify(n Notification) { f(n) }

// LogNotifier writes notifications to a logger.
type LogNotifier struct {
	Log logrus.FieldLogger
}

// Notify logs n at info level on success and warn level on error.
func (l LogNotifier) Notify(n Notification) {
	entry := l.Log.WithFields(logrus.Fields{
		"entity": n.EntityType,
		"action": string(n.Action),
	})
	if n.Level == LevelError {
		entry.Warn(n.Message)
		return
	}
	entry.Info(n.Message)
}
