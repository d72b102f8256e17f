package log

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestWithComponent(t *testing.T) {
	entry := WithComponent("bot.discord")
	assert.Equal(t, "bot.discord", entry.Data["component"])
}

func TestWithComponentAndFields(t *testing.T) {
	fields := Fields{"channel_id": "123", "component": "overridden"}

	entry := WithComponentAndFields("bot.discord", fields)

	assert.Equal(t, "bot.discord", entry.Data["component"])
	assert.Equal(t, "123", entry.Data["channel_id"])
	assert.Equal(t, "overridden", fields["component"], "호출자의 맵은 변경되지 않아야 합니다")
}

func TestSetDebugMode(t *testing.T) {
	defer logrus.SetLevel(logrus.InfoLevel)

	SetDebugMode(true)
	assert.Equal(t, TraceLevel, logrus.GetLevel())

	SetDebugMode(false)
	assert.Equal(t, InfoLevel, logrus.GetLevel())
}

func TestStandardLogger(t *testing.T) {
	assert.Same(t, logrus.StandardLogger(), StandardLogger())
}
