package logger

import (
	"bytes"
	"testing"

	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
)

func TestConfigure(t *testing.T) {
	tests := []struct {
		name        string
		level       string
		environment string
		want        log.Lvl
	}{
		{"development default", "", "development", log.DEBUG},
		{"production default", "", "production", log.INFO},
		{"explicit level wins", "warn", "development", log.WARN},
		{"case insensitive", "ERROR", "production", log.ERROR},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := newLogger(&bytes.Buffer{})
			configure(l, tt.level, tt.environment)
			assert.Equal(t, tt.want, l.Level())
		})
	}
}

func TestConfigure_UnknownLevelKeepsCurrent(t *testing.T) {
	l := newLogger(&bytes.Buffer{})
	configure(l, "debug", "production")
	configure(l, "verbose", "production")
	assert.Equal(t, log.DEBUG, l.Level())
}

func TestDebugSuppressedAtInfo(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf)

	l.Debugf("hidden %d", 1)
	l.Infof("shown %d", 2)

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 2")
}
