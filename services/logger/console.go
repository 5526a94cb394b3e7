package logsvc

import "log"

// ConsoleLogger writes everything to a std logger; used in DEV and tests.
type ConsoleLogger struct {
	std   *log.Logger
	quiet bool
}

func NewConsoleLogger(std *log.Logger) *ConsoleLogger {
	return &ConsoleLogger{std: std}
}

// NewQuietLogger discards everything but Fatal; used in tests.
func NewQuietLogger(std *log.Logger) *ConsoleLogger {
	return &ConsoleLogger{std: std, quiet: true}
}

func (l ConsoleLogger) print(level, msg string, args []interface{}) {
	if l.quiet {
		return
	}
	l.std.Printf("%s: %s", level, msg)
	for _, arg := range args {
		l.std.Printf("%+v\n", arg)
	}
}

func (l ConsoleLogger) Debug(msg string, args ...interface{}) { l.print("DEBUG", msg, args) }
func (l ConsoleLogger) Info(msg string, args ...interface{})  { l.print("INFO", msg, args) }
func (l ConsoleLogger) Warn(msg string, args ...interface{})  { l.print("WARN", msg, args) }
func (l ConsoleLogger) Error(msg string, args ...interface{}) { l.print("ERROR", msg, args) }

func (l ConsoleLogger) Fatal(msg string, args ...interface{}) {
	for _, arg := range args {
		l.std.Printf("%+v\n", arg)
	}
	l.std.Fatal(msg)
}
