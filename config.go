package vtengine

// Config holds process-wide toggles that are fixed for the lifetime of a
// Window rather than changed mid-parse by an escape sequence (§5). It is
// built with functional options, mirroring the teacher's constructor style.
type Config struct {
	UseAltScreen   bool
	UseHardStatus  bool
	VisualBell     bool
	PrintCmd       string
	CompactHist    bool
	LogTstampOn    bool
	LogTstampAfter int
	LogFlush       bool
	TabWidth       int
	NVersion       string
	HistCap        int
	Accept8BitC1   bool
}

// Option configures a Config.
type Option func(*Config)

// defaultConfig matches the original engine's compiled-in defaults.
func defaultConfig() *Config {
	return &Config{
		UseAltScreen:   true,
		CompactHist:    true,
		TabWidth:       8,
		NVersion:       "vtengine",
		HistCap:        1000,
		LogTstampAfter: 0,
	}
}

// NewConfig builds a Config from defaults plus the given options.
func NewConfig(opts ...Option) *Config {
	c := defaultConfig()
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithAltScreen enables or disables alternate-screen support (modes 47/1047/1049).
func WithAltScreen(on bool) Option {
	return func(c *Config) { c.UseAltScreen = on }
}

// WithHardStatus records the hardstatus toggle in Config. The engine does
// not read it: AKA strings are handled whether or not it is set.
func WithHardStatus(on bool) Option {
	return func(c *Config) { c.UseHardStatus = on }
}

// WithVisualBell makes BEL trigger a visual flash report instead of an audible one.
func WithVisualBell(on bool) Option {
	return func(c *Config) { c.VisualBell = on }
}

// WithPrintCmd records the name of an external print command in Config.
// New does not build a sink from it; media-copy output goes to the sink set
// with WithPrinterSink (NoopPrinterSink by default).
func WithPrintCmd(cmd string) Option {
	return func(c *Config) { c.PrintCmd = cmd }
}

// WithCompactHist enables dropping the trailing blank lines of a block of
// lines scrolled off the top before the rest is pushed to scrollback.
func WithCompactHist(on bool) Option {
	return func(c *Config) { c.CompactHist = on }
}

// WithHistCap sets the scrollback ring capacity in lines.
func WithHistCap(n int) Option {
	return func(c *Config) { c.HistCap = n }
}

// WithTabWidth sets the default tab-stop interval used on reset/resize.
func WithTabWidth(n int) Option {
	return func(c *Config) { c.TabWidth = n }
}

// WithNVersion sets the string reported in DA2 and similar identification replies.
func WithNVersion(v string) Option {
	return func(c *Config) { c.NVersion = v }
}

// WithAccept8BitC1 enables recognizing 8-bit C1 control codes (0x80-0x9F) as
// control introducers rather than printable input.
func WithAccept8BitC1(on bool) Option {
	return func(c *Config) { c.Accept8BitC1 = on }
}

// WithLogTimestamps enables periodic timestamp markers in the session log,
// emitted no more often than every afterSeconds seconds.
func WithLogTimestamps(on bool, afterSeconds int) Option {
	return func(c *Config) {
		c.LogTstampOn = on
		c.LogTstampAfter = afterSeconds
	}
}

// WithLogFlush forces the log sink to flush after every write.
func WithLogFlush(on bool) Option {
	return func(c *Config) { c.LogFlush = on }
}
