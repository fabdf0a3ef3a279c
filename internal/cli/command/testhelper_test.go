package command

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yndnr/shurlty-go/internal/core/domain"
	"github.com/yndnr/shurlty-go/internal/storage"
	"github.com/yndnr/shurlty-go/internal/testutil/fakeapi"
)

// cliFixture runs the real command tree against a fake backend with a
// file token store in a temp dir.
type cliFixture struct {
	t          *testing.T
	api        *fakeapi.Server
	dir        string
	configPath string
}

func newCLIFixture(t *testing.T) *cliFixture {
	t.Helper()
	api := fakeapi.New(t)
	api.AddUser("Ada", "ada@example.com", "password1")

	dir := t.TempDir()
	configPath := filepath.Join(dir, "cli.yaml")
	content := fmt.Sprintf("api:\n  base_url: %s\nstorage:\n  backend: file\n  dir: %s\n", api.URL, dir)
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))

	return &cliFixture{t: t, api: api, dir: dir, configPath: configPath}
}

// run executes shurlty-cli with args, feeding input to prompts.
func (f *cliFixture) run(input string, args ...string) (string, error) {
	f.t.Helper()
	var out bytes.Buffer
	app := App()
	app.Writer = &out
	app.ErrWriter = io.Discard
	app.Reader = strings.NewReader(input)

	argv := append([]string{"shurlty-cli", "--config", f.configPath}, args...)
	err := app.RunContext(context.Background(), argv)
	return out.String(), err
}

func (f *cliFixture) storeConfig() storage.Config {
	return storage.Config{Backend: storage.BackendFile, Dir: f.dir}
}

func (f *cliFixture) token() domain.Credential {
	f.t.Helper()
	s, err := storage.Open(f.storeConfig(), nil)
	require.NoError(f.t, err)
	defer s.Close()
	cred, err := s.Get(context.Background())
	require.NoError(f.t, err)
	return cred
}

func (f *cliFixture) setToken(cred domain.Credential) {
	f.t.Helper()
	s, err := storage.Open(f.storeConfig(), nil)
	require.NoError(f.t, err)
	defer s.Close()
	require.NoError(f.t, s.Set(context.Background(), cred))
}

func (f *cliFixture) login() {
	f.t.Helper()
	f.setToken(f.api.IssueToken("ada@example.com"))
}
