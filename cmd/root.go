package cmd

import (
	"errors"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/crush/core"
	"github.com/josephlewis42/crush/core/config"
	"github.com/josephlewis42/crush/core/editor"
	"github.com/josephlewis42/crush/core/logger"
	"github.com/spf13/cobra"
)

var cfgPath string

func loadConfig(appLog *log.Logger) (*config.Configuration, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}

	configuration, err := config.Load(cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		appLog.Println("Couldn't load config: did you run init?")
	}

	return configuration, err
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "crush",
	Short: "A small interactive shell.",
	Long: `Runs programs connected by pipes (|) and file redirections (<, >)
with line editing and command history.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		appLog := log.New(cmd.ErrOrStderr(), "[crush] ", 0)
		configuration, err := loadConfig(appLog)
		if err != nil {
			return err
		}

		history := &editor.History{}
		reader, err := newLineReader(configuration, cmd.OutOrStdout(), history)
		if err != nil {
			return err
		}

		sh := core.NewShell(reader, history)
		sh.Stdout = cmd.OutOrStdout()
		sh.Stderr = cmd.ErrOrStderr()
		sh.Log = appLog
		sh.Color = core.ColorPrinter{
			Mode:       configuration.Color,
			IsTerminal: readline.IsTerminal(int(os.Stderr.Fd())),
		}

		if configuration.EventLog {
			fd, err := configuration.OpenEventLog()
			if err != nil {
				return err
			}
			defer fd.Close()
			sh.Events = logger.NewJsonLinesLogRecorder(fd).NewSession()
		}

		return sh.Run()
	},
}

// newLineReader edits lines on the terminal, or reads them as plain text if
// stdin isn't one.
func newLineReader(configuration *config.Configuration, out io.Writer, history *editor.History) (core.LineReader, error) {
	tty, err := editor.NewTTY(os.Stdin, configuration.KeyPollInterval())
	switch {
	case errors.Is(err, editor.ErrNotTerminal):
		return editor.NewScanner(os.Stdin), nil
	case err != nil:
		return nil, err
	}

	keys := make(chan editor.KeyEvent, configuration.KeyBufferSize)
	go tty.PollKeys(keys)

	return editor.New(tty, keys, out, history), nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config directory, the built in defaults are used if unset")
}
