package cmd

import (
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/josephlewis42/crush/core/config"
	"github.com/josephlewis42/crush/core/logger"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

var logsCmd = &cobra.Command{
	Use:     "logs",
	Aliases: []string{"log"},
	Short:   "List the commands recorded in the event log.",
	Long: `List the commands recorded in the event log of the config directory.
Set event_log in the configuration to record sessions.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		fd, err := openEventLog(log.New(cmd.ErrOrStderr(), "[crush] ", 0))
		if err != nil {
			return err
		}
		defer fd.Close()

		return writeEventTable(cmd.OutOrStdout(), fd)
	},
}

var reportCommand = &cobra.Command{
	Use:   "report",
	Short: "Show a report of events.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		fd, err := openEventLog(log.New(cmd.ErrOrStderr(), "[crush] ", 0))
		if err != nil {
			return err
		}
		defer fd.Close()

		report := logger.NewReport()
		if err := logger.ReadJSONLinesLog(fd, report.Update); err != nil {
			return err
		}

		out, err := yaml.Marshal(report)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(out))

		return nil
	},
}

func openEventLog(appLog *log.Logger) (io.ReadCloser, error) {
	configuration, err := loadConfig(appLog)
	if err != nil {
		return nil, err
	}

	fd, err := configuration.ReadEventLog()
	if errors.Is(err, config.ErrNoConfigDir) {
		return nil, fmt.Errorf("the event log is kept in the config directory, set --config: %w", err)
	}
	return fd, err
}

// writeEventTable prints one row per logged event.
func writeEventTable(w io.Writer, r io.Reader) error {
	tw := tabwriter.NewWriter(w, 8, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tSESSION\tSTATUS\tCOMMAND")

	err := logger.ReadJSONLinesLog(r, func(le *logger.LogEntry) {
		timestamp := time.UnixMicro(le.TimestampMicros).UTC().Format(time.RFC3339)

		switch event := le.GetLogType().(type) {
		case *logger.RunCommand:
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", timestamp, le.SessionId, stageStatuses(event.Stages), event.Line)
		case *logger.ChangeDirectory:
			status := "ok"
			if event.Error != "" {
				status = "error"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\tcd %s\n", timestamp, le.SessionId, status, event.Dir)
		}
	})
	if err != nil {
		return err
	}

	return tw.Flush()
}

// stageStatuses renders the exit code of each stage, or "error" for stages
// that failed without one.
func stageStatuses(stages []*logger.StageState) string {
	var out []string
	for _, stage := range stages {
		if stage.ExitCode < 0 {
			out = append(out, "error")
			continue
		}
		out = append(out, fmt.Sprint(stage.ExitCode))
	}
	return strings.Join(out, ",")
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.AddCommand(reportCommand)
}
