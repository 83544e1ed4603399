package encio

import (
	"os"

	"github.com/rs/zerolog"
)

// Warnings is where warnings are sent to.
// In many cases pvdata will continue to operate with e.g. incorrectly implemented io.Writers,
// however I don't want to silently put up with things that seem worrying.
var Warnings = zerolog.New(os.Stderr).With().Timestamp().Str("lib", "pvdata").Logger()

// MessageType is the severity of a reported message.
type MessageType int

const (
	// InfoMessage is informational.
	InfoMessage MessageType = iota
	// WarningMessage reports something odd that did not stop the operation.
	WarningMessage
	// ErrorMessage reports a refused operation, i.e. writing to an immutable field.
	ErrorMessage
	// FatalMessage reports a condition the field cannot recover from.
	FatalMessage
)

var messageTypeNames = [...]string{
	InfoMessage:    "info",
	WarningMessage: "warning",
	ErrorMessage:   "error",
	FatalMessage:   "fatal",
}

func (t MessageType) String() string {
	if t < 0 || int(t) >= len(messageTypeNames) {
		return "unknown"
	}
	return messageTypeNames[t]
}

// Requester receives soft reports from fields.
// Policy violations, like writing to an immutable array, are delivered here instead of being returned as errors,
// so bulk operations over many fields can continue past them.
type Requester interface {
	RequesterName() string
	Message(message string, messageType MessageType)
}

// NewLogRequester returns a Requester that writes messages to logger.
func NewLogRequester(name string, logger zerolog.Logger) *LogRequester {
	return &LogRequester{
		name:   name,
		logger: logger,
	}
}

// LogRequester is a Requester backed by a zerolog.Logger.
type LogRequester struct {
	name   string
	logger zerolog.Logger
}

// RequesterName implements Requester.
func (l *LogRequester) RequesterName() string {
	return l.name
}

// Message implements Requester.
func (l *LogRequester) Message(message string, messageType MessageType) {
	var event *zerolog.Event
	switch messageType {
	case InfoMessage:
		event = l.logger.Info()
	case WarningMessage:
		event = l.logger.Warn()
	case ErrorMessage:
		event = l.logger.Error()
	default:
		// zerolog's Fatal exits the process, a report must not.
		event = l.logger.WithLevel(zerolog.FatalLevel)
	}
	event.Str("requester", l.name).Str("type", messageType.String()).Msg(message)
}

// DefaultRequester is used by fields that have not been given a Requester.
var DefaultRequester Requester = NewLogRequester("pvdata", Warnings)
