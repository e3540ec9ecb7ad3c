package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/whalecast/internal/platform/logging"
)

type fakeMigrator struct {
	calls   []string
	steps   int
	forced  int
	target  uint
	version uint
	upErr   error
	verErr  error
	closed  bool
}

func (f *fakeMigrator) Up() error {
	f.calls = append(f.calls, "up")
	return f.upErr
}

func (f *fakeMigrator) Steps(n int) error {
	f.calls = append(f.calls, "steps")
	f.steps = n
	return nil
}

func (f *fakeMigrator) Version() (uint, bool, error) {
	return f.version, false, f.verErr
}

func (f *fakeMigrator) Force(v int) error {
	f.calls = append(f.calls, "force")
	f.forced = v
	return nil
}

func (f *fakeMigrator) Migrate(v uint) error {
	f.calls = append(f.calls, "migrate")
	f.target = v
	return nil
}

func (f *fakeMigrator) Close() (error, error) {
	f.closed = true
	return nil, nil
}

func run(t *testing.T, fake *fakeMigrator, args ...string) (string, error) {
	t.Helper()

	var gotDir string
	cmd := newRootCmd(logging.NewNop(), func(dir string) (migrator, error) {
		gotDir = dir
		return fake, nil
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--dir", ""}, args...))
	err := cmd.Execute()
	assert.Empty(t, gotDir)
	return out.String(), err
}

func TestMigrationCommands(t *testing.T) {
	fake := &fakeMigrator{upErr: migrate.ErrNoChange}
	_, err := run(t, fake, "up")
	require.NoError(t, err, "no change is not an error")
	assert.True(t, fake.closed)

	fake = &fakeMigrator{}
	_, err = run(t, fake, "down")
	require.NoError(t, err)
	assert.Equal(t, -1, fake.steps)

	fake = &fakeMigrator{}
	_, err = run(t, fake, "down", "3")
	require.NoError(t, err)
	assert.Equal(t, -3, fake.steps)

	fake = &fakeMigrator{}
	_, err = run(t, fake, "force", "1771776034")
	require.NoError(t, err)
	assert.Equal(t, 1771776034, fake.forced)

	fake = &fakeMigrator{}
	_, err = run(t, fake, "migrate", "1771776034")
	require.NoError(t, err)
	assert.Equal(t, uint(1771776034), fake.target)
}

func TestMigrationVersion(t *testing.T) {
	out, err := run(t, &fakeMigrator{verErr: migrate.ErrNilVersion}, "version")
	require.NoError(t, err)
	assert.Equal(t, "version: none\ndirty: false\n", out)

	out, err = run(t, &fakeMigrator{version: 1771776034}, "version")
	require.NoError(t, err)
	assert.Equal(t, "version: 1771776034\ndirty: false\n", out)
}

func TestMigrationRejectsBadArgs(t *testing.T) {
	fake := &fakeMigrator{}
	_, err := run(t, fake, "down", "0")
	require.Error(t, err)
	assert.Empty(t, fake.calls)

	_, err = run(t, fake, "force", "-2")
	require.Error(t, err)

	_, err = run(t, fake, "goto", "abc")
	require.Error(t, err)

	_, err = run(t, &fakeMigrator{upErr: errors.New("dirty database")}, "up")
	require.EqualError(t, err, "dirty database")
}

func TestParseSteps(t *testing.T) {
	steps, err := parseSteps(nil)
	require.NoError(t, err)
	assert.Equal(t, 1, steps)

	_, err = parseSteps([]string{"x"})
	assert.Error(t, err)
}
