package actions

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogNotifier(t *testing.T) {
	logger, hook := test.NewNullLogger()
	n := LogNotifier{Log: logger}

	n.Notify(Notification{Level: LevelError, EntityType: "customers", Action: ActionEdit, Message: "conflict"})
	n.Notify(Notification{Level: LevelSuccess, EntityType: "customers", Action: ActionDelete, Message: "Deleted."})

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, logrus.WarnLevel, entries[0].Level)
	assert.Equal(t, "conflict", entries[0].Message)
	assert.Equal(t, "edit", entries[0].Data["action"])
	assert.Equal(t, logrus.InfoLevel, entries[1].Level)
}

func TestNotifierFunc(t *testing.T) {
	var got Notification
	var n Notifier = NotifierFunc(func(x Notification) { got = x })
	n.Notify(Notification{Message: "hi"})
	assert.Equal(t, "hi", got.Message)
	assert.Equal(t, "success", got.Level.String())
}
