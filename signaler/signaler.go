package signaler

import (
	"os"
	"os/signal"
	"syscall"
)

// WaitForInterrupt returns a channel that receives the first interrupt or
// terminate signal sent to the process
func WaitForInterrupt() <-chan os.Signal {
	c, _ := NotifyInterrupt()
	return c
}

// NotifyInterrupt registers for interrupt and terminate signals and returns
// the channel along with a func that deregisters it. Once stopped, the
// process reverts to the default signal handling unless other channels are
// still registered
func NotifyInterrupt() (sig <-chan os.Signal, stop func()) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	return c, func() { signal.Stop(c) }
}
