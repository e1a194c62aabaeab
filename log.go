package vtengine

import (
	"io"
	"log"
	"time"
)

// Logger tees the raw input stream to an optional writer, interleaving
// timestamp markers the way the original session logger does (§5 ambient
// logging). It is deliberately thin: callers that want structured logging
// can wrap the stdlib logger themselves, matching the logging style used
// throughout the corpus for this kind of ambient diagnostic output.
type Logger struct {
	out         io.Writer
	errLog      *log.Logger
	tstampOn    bool
	tstampAfter time.Duration
	flush       bool
	lastStamp   time.Time
}

// NewLogger creates a Logger writing raw session bytes to out (nil disables
// session logging) and diagnostics to errLog (nil uses log.Default()).
func NewLogger(out io.Writer, errLog *log.Logger, cfg *Config) *Logger {
	if errLog == nil {
		errLog = log.Default()
	}
	return &Logger{
		out:         out,
		errLog:      errLog,
		tstampOn:    cfg.LogTstampOn,
		tstampAfter: time.Duration(cfg.LogTstampAfter) * time.Second,
		flush:       cfg.LogFlush,
	}
}

// Write appends raw bytes to the session log, if one is configured.
func (lg *Logger) Write(b []byte) {
	if lg == nil || lg.out == nil {
		return
	}
	if lg.tstampOn {
		lg.maybeStamp()
	}
	if _, err := lg.out.Write(b); err != nil {
		lg.Warnf("session log write failed: %v", err)
		return
	}
	if lg.flush {
		if f, ok := lg.out.(interface{ Sync() error }); ok {
			_ = f.Sync()
		}
	}
}

func (lg *Logger) maybeStamp() {
	now := time.Now()
	if lg.lastStamp.IsZero() || now.Sub(lg.lastStamp) >= lg.tstampAfter {
		lg.lastStamp = now
		_, _ = lg.out.Write([]byte(now.Format("-- 2006-01-02 15:04:05 --\n")))
	}
}

// Warnf records a non-fatal diagnostic; this is the "warn" hook threaded
// through Grid/Line for §7 ResourceExhausted and similar degraded paths.
func (lg *Logger) Warnf(format string, args ...any) {
	if lg == nil || lg.errLog == nil {
		return
	}
	lg.errLog.Printf(format, args...)
}

// Warn is Warnf with no formatting, matching the warn func(string) shape
// threaded through Grid and Line.
func (lg *Logger) Warn(msg string) {
	lg.Warnf("%s", msg)
}
