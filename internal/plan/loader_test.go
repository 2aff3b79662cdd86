package plan

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePlanFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	writePlanFile(t, dir, "morning.yaml", `
name: Morning Mobility
warmup:
  - name: Neck Rolls
    duration_seconds: 20
exercises:
  - name: Squats
    work_seconds: 45
    sets: 2
    rest_seconds: 15
  - name: Crunches
    rep_based: true
    reps: 20
    sets: 2
cooldown:
  - name: Deep Breathing
    duration_seconds: 60
default_rest_seconds: 25
`)

	p, err := LoadFile(filepath.Join(dir, "morning.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "Morning Mobility", p.Name)
	require.Len(t, p.Warmup, 1)
	assert.Equal(t, 20, p.Warmup[0].DurationSeconds)
	require.Len(t, p.Exercises, 2)
	assert.Equal(t, 45, p.Exercises[0].WorkSeconds)
	assert.Equal(t, 15, p.Exercises[0].RestSeconds)
	assert.True(t, p.Exercises[1].RepBased)
	assert.Equal(t, 20, p.Exercises[1].Reps)
	assert.Equal(t, 25, p.DefaultRestSeconds)
}

func TestLoadFileNameFallsBackToFilename(t *testing.T) {
	dir := t.TempDir()
	writePlanFile(t, dir, "leg-day.yaml", `
exercises:
  - name: Squats
    work_seconds: 30
`)

	p, err := LoadFile(filepath.Join(dir, "leg-day.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "leg-day", p.Name)
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadDirSortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	writePlanFile(t, dir, "b-second.yaml", "name: Second\n")
	writePlanFile(t, dir, "a-first.yml", "name: First\n")
	writePlanFile(t, dir, "notes.txt", "not a plan\n")

	plans := LoadDir(dir, log.New(io.Discard, "", 0))
	require.Len(t, plans, 2)
	assert.Equal(t, "First", plans[0].Name)
	assert.Equal(t, "Second", plans[1].Name)
}

func TestLoadDirSkipsBadFile(t *testing.T) {
	dir := t.TempDir()
	writePlanFile(t, dir, "good.yaml", "name: Good\n")
	writePlanFile(t, dir, "bad.yaml", "name: [unclosed\n")

	plans := LoadDir(dir, log.New(io.Discard, "", 0))
	require.Len(t, plans, 1)
	assert.Equal(t, "Good", plans[0].Name)
}

func TestLoadDirMissingDirectory(t *testing.T) {
	plans := LoadDir(filepath.Join(t.TempDir(), "does-not-exist"), log.New(io.Discard, "", 0))
	assert.Nil(t, plans)
}
