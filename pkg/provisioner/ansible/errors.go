package ansible

import (
	"go.uber.org/zap"
)

// SysExitError is a fatal error that ends the run with Code. The message has already been
// logged where the error was raised.
type SysExitError struct {
	Code    int
	Message string
}

// Error returns the message
func (e *SysExitError) Error() string {
	return e.Message
}

// sysExit logs message at error level and returns it as a SysExitError with the given code
func sysExit(logger *zap.Logger, message string, code int) *SysExitError {
	logger.Error(message)
	return &SysExitError{Code: code, Message: message}
}
