package logger

import (
	stdlog "log"
	"os"

	"github.com/op/go-logging"
)

/*
InitLogger creates the process logger. Messages go to stderr with a
"[LEVEL] module message" layout. An unrecognized level falls back to INFO.
*/
func InitLogger(name, level string) *logging.Logger {
	logLevel, err := logging.LogLevel(level)
	if err != nil {
		logLevel = logging.INFO
	}
	log := logging.MustGetLogger(name)
	format := logging.MustStringFormatter("[%{level}] %{module} %{message}")
	backend := logging.NewLogBackend(os.Stderr, "", stdlog.LstdFlags|stdlog.LUTC)
	formatted := logging.NewBackendFormatter(backend, format)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logLevel, "")
	logging.SetBackend(leveled)
	return log
}
