package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/mirrorgrid/internal/config"
	"github.com/vovakirdan/mirrorgrid/internal/engine"
	"github.com/vovakirdan/mirrorgrid/internal/levels"
	"github.com/vovakirdan/mirrorgrid/internal/levels/formats"
)

const faultLevel = `id: edge
size: {w: 5, h: 5}
player: {x: 2, y: 2, heading: up}
automatic:
  - {x: 0, y: 0, heading: left}
`

// execute runs the root command with a fixed config file so the user's
// own config never leaks into a test.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "mirrorgrid.yaml")
	require.NoError(t, os.WriteFile(cfgPath, config.DefaultYAML(), 0o644))

	flagConfig, flagLevels, flagFPS, flagLogLevel = "", "", 0, ""
	flagTicks, flagFile, flagCheckTicks, flagAuto = 100, "", 200, false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(append(args, "--config", cfgPath, "--log-level", "error"))
	err := rootCmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLevelIndex(t *testing.T) {
	lvls, err := levels.Builtin().LoadAll()
	require.NoError(t, err)

	idx, err := levelIndex(lvls, "")
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	idx, err = levelIndex(lvls, "lvl03")
	require.NoError(t, err)
	assert.Equal(t, 2, idx)

	_, err = levelIndex(lvls, "nope")
	assert.ErrorIs(t, err, levels.ErrNotFound)
}

func TestListCommand(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "built-in")
	assert.Contains(t, out, "First Light")
	assert.Contains(t, out, "40x13")
}

func TestSimulateClearsFirstLevel(t *testing.T) {
	out, err := execute(t, "simulate", "lvl01", "--ticks", "30")
	require.NoError(t, err)

	st, err := formats.UnmarshalState([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, uint64(30), st.Tick)
	assert.Empty(t, st.Automatic)
	assert.True(t, st.Player.Alive())

	// The printed state can be restored and run on.
	w, err := engine.Restore(st)
	require.NoError(t, err)
	_, err = w.Run(170)
	assert.NoError(t, err)
}

func TestSimulateFaultPrintsLastGoodState(t *testing.T) {
	p := writeFile(t, "edge.yaml", faultLevel)

	out, err := execute(t, "simulate", "--file", p, "--ticks", "5")
	require.ErrorIs(t, err, engine.ErrOutOfBounds)

	st, err := formats.UnmarshalState([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, uint64(0), st.Tick)
	assert.Equal(t, engine.P(2, 2), st.Player.Pos)
}

func TestSimulateArguments(t *testing.T) {
	_, err := execute(t, "simulate")
	assert.Error(t, err)

	_, err = execute(t, "simulate", "missing")
	assert.ErrorIs(t, err, levels.ErrNotFound)

	_, err = execute(t, "simulate", "lvl01", "--file", "x.yaml")
	assert.Error(t, err)
}

func TestCheckBuiltinLevels(t *testing.T) {
	_, err := execute(t, "check")
	assert.NoError(t, err)
}

func TestCheckReportsFaultsAndBadFiles(t *testing.T) {
	good := writeFile(t, "good.yaml", "id: still\nsize: {w: 3, h: 3}\nplayer: {x: 1, y: 2, heading: up}\n")
	bad := writeFile(t, "edge.yaml", faultLevel)
	broken := writeFile(t, "broken.yaml", "id: [")

	_, err := execute(t, "check", good, "--ticks", "1")
	assert.NoError(t, err)

	_, err = execute(t, "check", good, bad, broken, "--ticks", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3 levels failed")
}
