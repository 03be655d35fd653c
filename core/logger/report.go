package logger

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	Sessions       StrCounter `json:"sessions"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`

	RunCommand      RunCommandReport      `json:"run_command_report"`
	ChangeDirectory ChangeDirectoryReport `json:"change_directory_report"`
}

func NewReport() *Report {
	return &Report{
		RunCommand: RunCommandReport{
			Failures: NewPathCounter("command", "error"),
		},
		ChangeDirectory: ChangeDirectoryReport{
			Failures: NewPathCounter("dir", "error"),
		},
	}
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++
	r.Sessions.Increment(le.SessionId)

	switch event := le.GetLogType().(type) {
	case *RunCommand:
		r.RunCommand.update(event)
	case *ChangeDirectory:
		r.ChangeDirectory.update(event)
	default:
		r.InvalidEntries.Increment(fmt.Sprintf("%T", event))
	}
}

type RunCommandReport struct {
	// Number of stages per pipeline.
	PipelineLengths StrCounter `json:"pipeline_lengths"`
	// Name of the program run by each stage.
	CommandNames StrCounter `json:"command_names"`
	// Exit codes of stages that were waited on.
	ExitCodes StrCounter `json:"exit_codes"`
	// Stages that failed before or while running.
	Failures *PathCounter `json:"failures"`
}

func (r *RunCommandReport) update(rc *RunCommand) {
	r.PipelineLengths.Increment(fmt.Sprint(len(rc.Stages)))
	for _, stage := range rc.Stages {
		var name string
		if len(stage.Command) > 0 {
			name = stage.Command[0]
		}
		r.CommandNames.Increment(name)
		if stage.Started {
			r.ExitCodes.Increment(fmt.Sprint(stage.ExitCode))
		}
		if stage.Error != "" {
			r.Failures.Increment(name, stage.Error)
		}
	}
}

type ChangeDirectoryReport struct {
	Dirs     StrCounter   `json:"dirs"`
	Failures *PathCounter `json:"failures"`
}

func (r *ChangeDirectoryReport) update(cd *ChangeDirectory) {
	r.Dirs.Increment(cd.Dir)
	if cd.Error != "" {
		r.Failures.Increment(cd.Dir, cd.Error)
	}
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Count returns the number of times key was seen.
func (s *StrCounter) Count(key string) int {
	return s.internal[key]
}

// MarshalJSON implements custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts the number of tuples seen.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// Count returns the number of times the tuple was seen.
func (ctr *PathCounter) Count(vals ...string) int {
	return ctr.internal[toKey(vals...)]
}

// MarshalJSON implements custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	out := []Count{}
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
