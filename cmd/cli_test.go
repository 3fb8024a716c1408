package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateStores points both storage roots at per-test directories and returns
// them for direct file assertions.
func isolateStores(t *testing.T) (string, string) {
	t.Helper()

	home := t.TempDir()
	stateDir := filepath.Join(home, "state")
	runtimeDir := filepath.Join(home, "runtime")

	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("AUTHBOX_STATE_DIR", stateDir)
	t.Setenv("AUTHBOX_RUNTIME_DIR", runtimeDir)

	return stateDir, runtimeDir
}

func executeCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	root := newRootCmd()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func assertSessionFiles(t *testing.T, root string, want bool) {
	t.Helper()

	for _, key := range []string{"session/user", "session/token"} {
		_, err := os.Stat(filepath.Join(root, key))
		if want {
			assert.NoError(t, err)
			continue
		}
		assert.True(t, os.IsNotExist(err))
	}
}

func TestRegisterThenWhoamiAcrossInvocations(t *testing.T) {
	isolateStores(t)

	stdout, _, err := executeCLI(t, "register", "--username", "alice", "--password", "pw1", "--name", "Alice", "--remember")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Signed in as Alice (remembered)")

	stdout, _, err = executeCLI(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Alice (alice)")
	assert.Contains(t, stdout, "remembered (survives restarts)")
}

func TestRegisterDuplicateUsernameFails(t *testing.T) {
	isolateStores(t)

	_, _, err := executeCLI(t, "register", "--username", "alice", "--password", "pw1")
	require.NoError(t, err)

	_, stderr, err := executeCLI(t, "register", "--username", "alice", "--password", "pw2")
	require.Error(t, err)
	assert.EqualError(t, err, "User already exists")
	assert.Contains(t, stderr, "User already exists")
}

func TestRegisterMissingFieldsFails(t *testing.T) {
	isolateStores(t)

	_, _, err := executeCLI(t, "register", "--username", "alice")
	require.Error(t, err)
	assert.EqualError(t, err, "Provide username and password")
}

func TestLoginWrongPasswordFails(t *testing.T) {
	isolateStores(t)

	_, _, err := executeCLI(t, "register", "--username", "alice", "--password", "pw1")
	require.NoError(t, err)

	_, _, err = executeCLI(t, "login", "--username", "alice", "--password", "wrong")
	require.Error(t, err)
	assert.EqualError(t, err, "Invalid credentials")
}

func TestRememberFlagSelectsDurableBackend(t *testing.T) {
	stateDir, runtimeDir := isolateStores(t)

	_, _, err := executeCLI(t, "register", "--username", "alice", "--password", "pw1", "--remember")
	require.NoError(t, err)

	assertSessionFiles(t, stateDir, true)
	assertSessionFiles(t, runtimeDir, false)
}

func TestWithoutRememberFlagSessionBackendIsUsed(t *testing.T) {
	stateDir, runtimeDir := isolateStores(t)

	_, _, err := executeCLI(t, "register", "--username", "alice", "--password", "pw1")
	require.NoError(t, err)

	assertSessionFiles(t, stateDir, false)
	assertSessionFiles(t, runtimeDir, true)

	stdout, _, err := executeCLI(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, stdout, "this session only")
}

func TestLogoutClearsBothBackends(t *testing.T) {
	stateDir, runtimeDir := isolateStores(t)

	_, _, err := executeCLI(t, "register", "--username", "alice", "--password", "pw1", "--remember")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, "logout")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Signed out")

	assertSessionFiles(t, stateDir, false)
	assertSessionFiles(t, runtimeDir, false)

	stdout, _, err = executeCLI(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Not signed in.")
}

func TestRegisterLogoutLoginFlow(t *testing.T) {
	isolateStores(t)

	_, _, err := executeCLI(t, "register", "--username", "alice", "--password", "pw1")
	require.NoError(t, err)

	_, _, err = executeCLI(t, "logout")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, "login", "--username", "alice", "--password", "pw1", "--remember")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Signed in as alice (remembered)")
}

func TestAccountListShowsRegistrationOrder(t *testing.T) {
	isolateStores(t)

	_, _, err := executeCLI(t, "register", "--username", "alice", "--password", "pw1", "--name", "Alice")
	require.NoError(t, err)
	_, _, err = executeCLI(t, "register", "--username", "bob", "--password", "pw2")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, "account", "list")
	require.NoError(t, err)
	assert.Equal(t, "alice\tAlice\nbob\t\n", stdout)
}

func TestAccountListJSONOutput(t *testing.T) {
	isolateStores(t)

	_, _, err := executeCLI(t, "register", "--username", "alice", "--password", "pw1", "--name", "Alice")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, "account", "list", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, "\"Username\": \"alice\"")
	assert.Contains(t, stdout, "\"Name\": \"Alice\"")
	assert.NotContains(t, stdout, "pw1")
}

func TestWhoamiJSONOutput(t *testing.T) {
	isolateStores(t)

	_, _, err := executeCLI(t, "register", "--username", "alice", "--password", "pw1", "--remember")
	require.NoError(t, err)

	stdout, _, err := executeCLI(t, "whoami", "--json")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(stdout)))
	assert.Contains(t, stdout, "\"Authenticated\": true")
	assert.Contains(t, stdout, "\"Username\": \"alice\"")
	assert.Contains(t, stdout, "\"Scope\": \"durable\"")
	assert.NotContains(t, stdout, "pw1")
}

func TestRegisterPromptsForPasswordOnTerminal(t *testing.T) {
	isolateStores(t)
	stubTerminal(t, "pw9")

	stdout, _, err := executeCLI(t, "register", "--username", "carol")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Password:")
	assert.Contains(t, stdout, "Signed in as carol")

	_, _, err = executeCLI(t, "login", "--username", "carol", "--password", "pw9")
	require.NoError(t, err)
}

func TestLoginPromptsForPasswordOnTerminal(t *testing.T) {
	isolateStores(t)

	_, _, err := executeCLI(t, "register", "--username", "carol", "--password", "pw9")
	require.NoError(t, err)

	stubTerminal(t, "pw9")
	stdout, _, err := executeCLI(t, "login", "--username", "carol")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Password:")
	assert.Contains(t, stdout, "Signed in as carol")
}

func TestVersionPrintsVersion(t *testing.T) {
	isolateStores(t)

	stdout, _, err := executeCLI(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "dev")
}

// stubTerminal makes the CLI believe it runs on a terminal and answers the
// password prompt with the given value.
func stubTerminal(t *testing.T, password string) {
	t.Helper()

	origIsTerminal := isTerminal
	origReadPassword := readPassword
	isTerminal = func(int) bool { return true }
	readPassword = func(int) ([]byte, error) { return []byte(password), nil }
	t.Cleanup(func() {
		isTerminal = origIsTerminal
		readPassword = origReadPassword
	})
}
