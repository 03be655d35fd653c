package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/josephlewis42/crush/core/config"
	"github.com/josephlewis42/crush/core/logger"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

func TestWriteEventTable(t *testing.T) {
	fd, err := os.Open(filepath.Join("testdata", "events.log"))
	assert.Nil(t, err)
	defer fd.Close()

	var buf bytes.Buffer
	assert.Nil(t, writeEventTable(&buf, fd))

	g := goldie.New(t, goldie.WithFixtureDir(filepath.Join("testdata", "golden")), goldie.WithDiffEngine(goldie.ColoredDiff))
	g.Assert(t, "event-table", buf.Bytes())
}

func TestStageStatuses(t *testing.T) {
	assert.Equal(t, "0,1,error", stageStatuses([]*logger.StageState{
		{ExitCode: 0, Started: true},
		{ExitCode: 1, Started: true},
		{ExitCode: -1},
	}))
	assert.Equal(t, "", stageStatuses(nil))
}

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { cfgPath = "" })

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestBuiltinsCmd(t *testing.T) {
	out, err := executeRoot(t, "builtins")

	assert.Nil(t, err)
	assert.Equal(t, "cd\nexit\n", out)
}

func TestInitCmd(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "crush")

	_, err := executeRoot(t, "init", "--config", dir)
	assert.Nil(t, err)

	cfg, err := config.Load(dir)
	assert.Nil(t, err)
	assert.Equal(t, config.Default().KeyBufferSize, cfg.KeyBufferSize)
}

func TestLogsCmd(t *testing.T) {
	t.Run("no config dir", func(t *testing.T) {
		_, err := executeRoot(t, "logs")
		assert.ErrorIs(t, err, config.ErrNoConfigDir)
	})

	t.Run("report", func(t *testing.T) {
		dir := t.TempDir()
		_, err := executeRoot(t, "init", "--config", dir)
		assert.Nil(t, err)

		contents, err := os.ReadFile(filepath.Join("testdata", "events.log"))
		assert.Nil(t, err)
		assert.Nil(t, os.WriteFile(filepath.Join(dir, config.EventLogName), contents, 0600))

		out, err := executeRoot(t, "logs", "report", "--config", dir)
		assert.Nil(t, err)
		assert.Contains(t, out, "log_entries: 4")
		assert.Contains(t, out, "wc: 1")
	})
}
