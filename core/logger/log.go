package logger

// LogEntry is a single event. Exactly one of the event fields is set.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionId       string `json:"session_id,omitempty"`

	RunCommand      *RunCommand      `json:"run_command,omitempty"`
	ChangeDirectory *ChangeDirectory `json:"change_directory,omitempty"`
}

// GetLogType returns the event held by the entry, or nil if it has none.
func (le *LogEntry) GetLogType() LogType {
	switch {
	case le.RunCommand != nil:
		return le.RunCommand
	case le.ChangeDirectory != nil:
		return le.ChangeDirectory
	default:
		return nil
	}
}

// LogType is implemented by every event that can be recorded.
type LogType interface {
	setOn(le *LogEntry)
}

// RunCommand is a pipeline submitted to the shell.
type RunCommand struct {
	Line   string        `json:"line"`
	Stages []*StageState `json:"stages"`
}

func (rc *RunCommand) setOn(le *LogEntry) {
	le.RunCommand = rc
}

// StageState is the outcome of one stage of a pipeline.
type StageState struct {
	Command  []string `json:"command"`
	Started  bool     `json:"started"`
	ExitCode int      `json:"exit_code"`
	Error    string   `json:"error,omitempty"`
}

// ChangeDirectory is a cd builtin invocation.
type ChangeDirectory struct {
	Dir   string `json:"dir"`
	Error string `json:"error,omitempty"`
}

func (cd *ChangeDirectory) setOn(le *LogEntry) {
	le.ChangeDirectory = cd
}
