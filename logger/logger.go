package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

const (
	LOGGER_FILE = "fluorine.log"
)

// Closed set of level tags delivered to the callback sink. Callers of the
// boundary treat these as opaque short strings.
const (
	LevelInfo     = "info"
	LevelWarning  = "warning"
	LevelError    = "error"
	LevelInstall  = "install"
	LevelAction   = "action"
	LevelDownload = "download"
)

var (
	logger *zap.Logger

	callbackMu sync.RWMutex
	callback   func(level, message string)
)

// Create new logger
func newLogger(workingFolder string, debug bool) {
	config := zap.NewDevelopmentConfig()

	// If not debug keep at info level
	if !debug {
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	logPath := filepath.Join(workingFolder, LOGGER_FILE)
	// delete old file
	os.Remove(logPath)

	config.OutputPaths = []string{logPath}
	config.ErrorOutputPaths = []string{logPath}

	// Creating the logger
	var loggerErr error
	logger, loggerErr = config.Build()
	if loggerErr != nil {
		fmt.Printf("failed to create logger - %v", loggerErr)
		panic(1)
	}
	zap.ReplaceGlobals(logger)
}

// Get sugared logger from logger
func GetSugar(workingFolder string, debug bool) *zap.SugaredLogger {
	if logger == nil {
		newLogger(workingFolder, debug)
	}

	return logger.Sugar()
}

// Sync on defer (call it with defer)
func Defer() {
	if logger != nil {
		logger.Sync()
	}
}

// SetCallback installs a process-global sink that receives every engine log
// event as a (level, message) pair. Intended to be called once at startup,
// before any other engine operation, by the embedding front-end.
func SetCallback(cb func(level, message string)) {
	callbackMu.Lock()
	callback = cb
	callbackMu.Unlock()
}

func emit(level, message string) {
	callbackMu.RLock()
	cb := callback
	callbackMu.RUnlock()
	if cb != nil {
		cb(level, message)
	}
}

func Info(message string) {
	zap.S().Info(message)
	emit(LevelInfo, message)
}

func Infof(format string, args ...interface{}) {
	Info(fmt.Sprintf(format, args...))
}

func Warning(message string) {
	zap.S().Warn(message)
	emit(LevelWarning, message)
}

func Warningf(format string, args ...interface{}) {
	Warning(fmt.Sprintf(format, args...))
}

func Error(message string) {
	zap.S().Error(message)
	emit(LevelError, message)
}

func Errorf(format string, args ...interface{}) {
	Error(fmt.Sprintf(format, args...))
}

// Install reports installation step activity.
func Install(message string) {
	zap.S().Info(message)
	emit(LevelInstall, message)
}

func Installf(format string, args ...interface{}) {
	Install(fmt.Sprintf(format, args...))
}

// Action reports a user visible action being performed.
func Action(message string) {
	zap.S().Info(message)
	emit(LevelAction, message)
}

func Actionf(format string, args ...interface{}) {
	Action(fmt.Sprintf(format, args...))
}

// Download reports file retrieval activity. The engine itself performs no
// downloads, the level exists for the embedding front-end, which routes its
// own fetch progress through the same callback sink.
func Download(message string) {
	zap.S().Info(message)
	emit(LevelDownload, message)
}

func Downloadf(format string, args ...interface{}) {
	Download(fmt.Sprintf(format, args...))
}
