package logger

// Console configures logging to stdout/stderr, the default in containers and
// during development.
type Console struct {
	Enabled bool `toml:"enabled"`
	// UseConsoleWriter switches from JSON lines to zerolog's human-readable
	// console format.
	UseConsoleWriter bool
}

// LogFile configures rolling log files, one file per level group plus the
// separate access log written by the fiber adapter.
type LogFile struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`

	AccessLog        string `toml:"access"`
	AccessMaxSize    int    `toml:"accessMaxSize"`
	AccessMaxBackups int    `toml:"accessMaxBackups"`
	AccessMaxAge     int    `toml:"accessMaxAge"`

	ErrorLog        string `toml:"error"`
	ErrorMaxSize    int    `toml:"errorMaxSize"`
	ErrorMaxBackups int    `toml:"errorMaxBackups"`
	ErrorMaxAge     int    `toml:"errorMaxAge"`

	InfoLog        string `toml:"info"`
	InfoMaxSize    int    `toml:"infoMaxSize"`
	InfoMaxBackups int    `toml:"infoMaxBackups"`
	InfoMaxAge     int    `toml:"infoMaxAge"`

	TraceLog        string `toml:"trace"`
	TraceMaxSize    int    `toml:"traceMaxSize"`
	TraceMaxBackups int    `toml:"traceMaxBackups"`
	TraceMaxAge     int    `toml:"traceMaxAge"`

	WarnLog        string `toml:"warn"`
	WarnMaxSize    int    `toml:"warnMaxSize"`
	WarnMaxBackups int    `toml:"warnMaxBackups"`
	WarnMaxAge     int    `toml:"warnMaxAge"`
}

// Log is the logging configuration of the service.
type Log struct {
	// LogLevel is the minimum level zerolog emits (trace, debug, info, warn,
	// error). An empty value disables level filtering.
	LogLevel string

	// EnableAccessLogToConsole lets the webservice write its access log to the
	// console. It does not overrule Console.Enabled: with the console logger
	// disabled no access log reaches the console either.
	EnableAccessLogToConsole bool

	// ReportCaller adds the caller (or the error stack on trace level) to each
	// log entry.
	ReportCaller bool

	// DisableCheckAlive suppresses access-log entries for the liveness
	// endpoint, which load balancers hit constantly.
	DisableCheckAlive bool

	AppName     string
	ServiceName string

	Console Console
	File    LogFile `toml:"file"`
}
