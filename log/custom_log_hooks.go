package log

// CustomLogHook is a function type for external log handling. It should return
// true if the internal logging system should be bypassed for the message.
type CustomLogHook func(header, subLoggerName string, a ...any) (bypassLibraryLogSystem bool)

var customLogHook CustomLogHook

// SetCustomLogHook sets a custom log hook function, nil removes it
func SetCustomLogHook(h CustomLogHook) {
	mu.Lock()
	customLogHook = h
	mu.Unlock()
}
