package cli

import (
	"fmt"

	"github.com/moffa90/go-i2ceeprom/eeprom"
	log "github.com/sirupsen/logrus"
)

// logrusLogger adapts a logrus entry to eeprom.Logger.
type logrusLogger struct {
	entry *log.Entry
}

func newLogger(entry *log.Entry) eeprom.Logger {
	return logrusLogger{entry: entry}
}

func (l logrusLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(fields(keysAndValues)).Debug(msg)
}

func (l logrusLogger) Info(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(fields(keysAndValues)).Info(msg)
}

func (l logrusLogger) Error(msg string, keysAndValues ...interface{}) {
	l.entry.WithFields(fields(keysAndValues)).Error(msg)
}

// fields turns alternating key/value pairs into logrus fields.
// A trailing key without a value is kept under "extra".
func fields(keysAndValues []interface{}) log.Fields {
	f := make(log.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		f[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	if len(keysAndValues)%2 == 1 {
		f["extra"] = keysAndValues[len(keysAndValues)-1]
	}
	return f
}
