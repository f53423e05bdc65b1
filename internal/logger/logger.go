package logger

import (
	"fmt"
	"log"
	"os"
)

var (
	// Debug flag to control debug logging
	debugEnabled = false
	// The logger instances, usable before Init so library code can log
	// unconditionally
	debugLogger = log.New(os.Stdout, "DEBUG: ", log.Ldate|log.Ltime|log.Lshortfile)
	infoLogger  = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime)
	warnLogger  = log.New(os.Stdout, "WARN: ", log.Ldate|log.Ltime)
	errorLogger = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime|log.Lshortfile)
)

// Init initializes the logger
func Init(debug bool) {
	debugEnabled = debug

	if debugEnabled {
		Debug("Debug logging enabled")
	}
}

// Debug logs a debug message if debug mode is enabled
func Debug(format string, v ...interface{}) {
	if debugEnabled {
		debugLogger.Output(2, fmt.Sprintf(format, v...))
	}
}

// Info logs an info message
func Info(format string, v ...interface{}) {
	infoLogger.Output(2, fmt.Sprintf(format, v...))
}

// Warn logs a warning message
func Warn(format string, v ...interface{}) {
	warnLogger.Output(2, fmt.Sprintf(format, v...))
}

// Error logs an error message
func Error(format string, v ...interface{}) {
	errorLogger.Output(2, fmt.Sprintf(format, v...))
}

// IsDebugEnabled returns whether debug logging is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

// Subsystem helpers keep log lines greppable per component without a
// structured logging dependency.

// TelegramDebug logs a debug message for the Telegram subsystem
func TelegramDebug(format string, v ...interface{}) {
	Debug("[Telegram] "+format, v...)
}

// TelegramInfo logs an info message for the Telegram subsystem
func TelegramInfo(format string, v ...interface{}) {
	Info("[Telegram] "+format, v...)
}

// TelegramWarn logs a warning for the Telegram subsystem
func TelegramWarn(format string, v ...interface{}) {
	Warn("[Telegram] "+format, v...)
}

// TelegramError logs an error for the Telegram subsystem
func TelegramError(format string, v ...interface{}) {
	Error("[Telegram] "+format, v...)
}

// WalletDebug logs a debug message for the wallet resolution subsystem
func WalletDebug(format string, v ...interface{}) {
	Debug("[Wallet] "+format, v...)
}

// WalletInfo logs an info message for the wallet resolution subsystem
func WalletInfo(format string, v ...interface{}) {
	Info("[Wallet] "+format, v...)
}

// WalletWarn logs a warning for the wallet resolution subsystem
func WalletWarn(format string, v ...interface{}) {
	Warn("[Wallet] "+format, v...)
}

// WalletError logs an error for the wallet resolution subsystem
func WalletError(format string, v ...interface{}) {
	Error("[Wallet] "+format, v...)
}

// MetaDebug logs a debug message for the token metadata subsystem
func MetaDebug(format string, v ...interface{}) {
	Debug("[Meta] "+format, v...)
}

// MetaWarn logs a warning for the token metadata subsystem
func MetaWarn(format string, v ...interface{}) {
	Warn("[Meta] "+format, v...)
}
