package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/dataline-io/tap-autopilot/constants"
)

// instance writes human logs to stderr; stdout is reserved for protocol
// messages (see output.go).
var instance zerolog.Logger

func init() {
	instance = zerolog.New(consoleWriter()).With().Timestamp().Logger()
}

func consoleWriter() zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
}

// Init attaches the rotating file sink under the config folder; called once
// the root command has resolved CONFIG_FOLDER.
func Init() {
	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(viper.GetString(constants.ConfigFolder), "logs", "tap.log"),
		MaxSize:    100, // megabytes
		MaxBackups: 5,
		MaxAge:     30, // days
		Compress:   true,
	}

	instance = zerolog.New(zerolog.MultiLevelWriter(consoleWriter(), fileWriter)).
		With().Timestamp().Logger()
}

func Debug(v ...any) {
	instance.Debug().Msg(fmt.Sprint(v...))
}

func Debugf(format string, v ...any) {
	instance.Debug().Msgf(format, v...)
}

func Info(v ...any) {
	instance.Info().Msg(fmt.Sprint(v...))
}

func Infof(format string, v ...any) {
	instance.Info().Msgf(format, v...)
}

func Warn(v ...any) {
	instance.Warn().Msg(fmt.Sprint(v...))
}

func Warnf(format string, v ...any) {
	instance.Warn().Msgf(format, v...)
}

func Error(v ...any) {
	instance.Error().Msg(fmt.Sprint(v...))
}

func Errorf(format string, v ...any) {
	instance.Error().Msgf(format, v...)
}

func Fatal(v ...any) {
	instance.Error().Msg(fmt.Sprint(v...))
	os.Exit(1)
}

// Metric emits one structured metric line; used for request timers and
// record counters.
func Metric(fields map[string]any) {
	event := instance.Info()
	for key, value := range fields {
		event = event.Interface(key, value)
	}
	event.Msg("METRIC")
}
