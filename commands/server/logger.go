package server

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/tendermint/tendermint/libs/log"
)

// zeroLogger exposes a zerolog logger as a tendermint logger.
type zeroLogger struct {
	zl zerolog.Logger
}

var _ log.Logger = zeroLogger{}

// NewLogger returns a tendermint logger writing through zl.
func NewLogger(zl zerolog.Logger) log.Logger {
	return zeroLogger{zl: zl}
}

func (z zeroLogger) Debug(msg string, keyvals ...interface{}) {
	z.zl.Debug().Fields(fields(keyvals)).Msg(msg)
}

func (z zeroLogger) Info(msg string, keyvals ...interface{}) {
	z.zl.Info().Fields(fields(keyvals)).Msg(msg)
}

func (z zeroLogger) Error(msg string, keyvals ...interface{}) {
	z.zl.Error().Fields(fields(keyvals)).Msg(msg)
}

func (z zeroLogger) With(keyvals ...interface{}) log.Logger {
	return zeroLogger{zl: z.zl.With().Fields(fields(keyvals)).Logger()}
}

// fields turns tendermint key value pairs into zerolog fields. A dangling
// key gets the value "(MISSING)".
func fields(keyvals []interface{}) map[string]interface{} {
	out := make(map[string]interface{}, (len(keyvals)+1)/2)
	for i := 0; i < len(keyvals); i += 2 {
		key := fmt.Sprint(keyvals[i])
		if i+1 < len(keyvals) {
			out[key] = keyvals[i+1]
		} else {
			out[key] = "(MISSING)"
		}
	}
	return out
}
