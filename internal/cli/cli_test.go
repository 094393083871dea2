package cli

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gitdeps/pkg/errors"
	depsio "github.com/matzehuels/gitdeps/pkg/io"
)

// fakeGit records git operations and simulates clones by creating the
// destination directory.
type fakeGit struct {
	calls      []string
	manifests  map[string]string
	failClone  bool
	versionErr error
}

func (f *fakeGit) Version(context.Context) error {
	f.calls = append(f.calls, "version")
	return f.versionErr
}

func (f *fakeGit) Clone(_ context.Context, url, _, dest string) error {
	f.calls = append(f.calls, "clone "+filepath.Base(dest))
	if f.failClone {
		return errors.New(errors.ErrCodeSynchronizer, "clone %s: exit status 128", url)
	}
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return err
	}
	if content, ok := f.manifests[url]; ok {
		return os.WriteFile(filepath.Join(dest, "dependency.txt"), []byte(content), 0o644)
	}
	return nil
}

func (f *fakeGit) Pull(_ context.Context, dest string) error {
	f.calls = append(f.calls, "pull "+filepath.Base(dest))
	return nil
}

func (f *fakeGit) Reset(_ context.Context, dest string) error {
	f.calls = append(f.calls, "reset "+filepath.Base(dest))
	return nil
}

// testEnv is a work directory with a declaration file, a CLI wired to a
// fake git, and buffers for its output.
type testEnv struct {
	work string
	cli  *CLI
	git  *fakeGit
	logs bytes.Buffer
}

func newTestEnv(t *testing.T, declaration string) *testEnv {
	t.Helper()
	env := &testEnv{work: t.TempDir(), git: &fakeGit{}}
	if declaration != "" {
		writeTestFile(t, filepath.Join(env.work, "dependency.txt"), declaration)
	}
	env.cli = New(&env.logs, LogInfo)
	env.cli.WorkDir = env.work
	env.cli.Sync = env.git
	return env
}

func (env *testEnv) run(args ...string) (stdout, stderr string, err error) {
	root := env.cli.RootCommand()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func (env *testEnv) ops() []string {
	var out []string
	for _, c := range env.git.calls {
		if c != "version" {
			out = append(out, c)
		}
	}
	return out
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestListText(t *testing.T) {
	env := newTestEnv(t, "#DEPENDENCIES\nhttps://x/alpha main\nhttps://x/beta v2 \"pinned\"\n")
	if err := os.MkdirAll(filepath.Join(env.work, "libraries", "alpha-main"), 0o755); err != nil {
		t.Fatal(err)
	}

	out, _, err := env.run("list")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("list output = %q, want 2 lines", out)
	}
	if !strings.Contains(lines[0], "alpha-main") || !strings.Contains(lines[0], "[main]") || !strings.Contains(lines[0], iconPresent) {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "beta-v2") || !strings.Contains(lines[1], iconMissing) {
		t.Errorf("line 1 = %q", lines[1])
	}
	if len(env.git.calls) != 1 || env.git.calls[0] != "version" {
		t.Errorf("git calls = %q, want only version", env.git.calls)
	}
}

func TestListJSONWithPaths(t *testing.T) {
	env := newTestEnv(t, "")
	writeTestFile(t, filepath.Join(env.work, "deps.txt"), "#DEPENDENCIES\nhttps://x/alpha main\n")
	libs := filepath.Join(t.TempDir(), "vendor")

	out, _, err := env.run("list", libs, "deps.txt", "--format", "json")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}

	var listing depsio.Listing
	if err := json.Unmarshal([]byte(out), &listing); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(listing.Libraries) != 1 || listing.Libraries[0].Name != "alpha-main" {
		t.Errorf("listing = %+v", listing)
	}
	if env.cli.Config.LibraryDir != libs || env.cli.Config.DependencyFile != "deps.txt" {
		t.Errorf("config = %+v, want positional paths applied", env.cli.Config)
	}
}

func TestListNoDependencies(t *testing.T) {
	env := newTestEnv(t, "")

	out, errOut, err := env.run("list")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if out != "" {
		t.Errorf("stdout = %q, want empty", out)
	}
	if !strings.Contains(errOut, "No dependencies found") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestListErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		prep func(env *testEnv)
		code errors.Code
	}{
		{
			name: "missing git",
			args: []string{"list"},
			prep: func(env *testEnv) {
				env.git.versionErr = errors.New(errors.ErrCodeSynchronizerMissing, "could not find git")
			},
			code: errors.ErrCodeSynchronizerMissing,
		},
		{
			name: "unknown format",
			args: []string{"list", "--format", "xml"},
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "interactive without terminal",
			args: []string{"list", "--interactive"},
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "bad dependency file name",
			args: []string{"list", "libs", "../dependency.txt"},
			code: errors.ErrCodeInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, "#DEPENDENCIES\nhttps://x/alpha main\n")
			if tt.prep != nil {
				tt.prep(env)
			}
			_, _, err := env.run(tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestUpdate(t *testing.T) {
	env := newTestEnv(t, "#DEPENDENCIES\nhttps://x/alpha main\n")
	env.git.manifests = map[string]string{"https://x/alpha": "#DEPENDENCIES\nhttps://x/beta main\n"}

	out, _, err := env.run("update")
	if err != nil {
		t.Fatalf("update error: %v", err)
	}

	want := []string{"clone alpha-main", "clone beta-main"}
	if got := env.ops(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("ops = %q, want %q", got, want)
	}
	for _, s := range []string{"Dependencies are up to date", "2 cloned", "3 passes"} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q:\n%s", s, out)
		}
	}
}

func TestUpdatePolicies(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default", []string{"update"}, "pull alpha-main"},
		{"ignore pull", []string{"update", "--ignore-pull"}, ""},
		{"clean", []string{"update", "--clean"}, "reset alpha-main,pull alpha-main"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, "#DEPENDENCIES\nhttps://x/alpha main\n")
			if err := os.MkdirAll(filepath.Join(env.work, "libraries", "alpha-main"), 0o755); err != nil {
				t.Fatal(err)
			}
			if _, _, err := env.run(tt.args...); err != nil {
				t.Fatalf("update error: %v", err)
			}
			if got := strings.Join(env.ops(), ","); got != tt.want {
				t.Errorf("ops = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUpdateIgnoreCurrentPath(t *testing.T) {
	env := newTestEnv(t, "#DEPENDENCIES\nhttps://x/alpha main\n")

	out, _, err := env.run("update", "--ignore-curpath")
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if len(env.ops()) != 0 || strings.Count(out, "No dependencies found") != 1 {
		t.Errorf("ops = %q, output = %q", env.ops(), out)
	}
	if strings.Contains(env.logs.String(), "no dependencies found") {
		t.Errorf("logs = %q, want the empty run reported once", env.logs.String())
	}
}

func TestUpdateStrict(t *testing.T) {
	env := newTestEnv(t, "#DEPENDENCIES\nhttps://x/alpha main\n")
	env.git.failClone = true

	out, _, err := env.run("update")
	if err != nil {
		t.Fatalf("update without --strict should succeed, got %v", err)
	}
	if !strings.Contains(out, "clone alpha-main failed") {
		t.Errorf("output missing failure:\n%s", out)
	}

	env = newTestEnv(t, "#DEPENDENCIES\nhttps://x/alpha main\n")
	env.git.failClone = true
	if _, _, err := env.run("update", "--strict"); !errors.Is(err, errors.ErrCodeSynchronizer) {
		t.Errorf("update --strict error = %v, want %s", err, errors.ErrCodeSynchronizer)
	}
}

func TestUpdateMissingGit(t *testing.T) {
	env := newTestEnv(t, "#DEPENDENCIES\nhttps://x/alpha main\n")
	env.git.versionErr = stderrors.New("executable file not found")

	if _, _, err := env.run("update"); !errors.Is(err, errors.ErrCodeSynchronizerMissing) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeSynchronizerMissing)
	}
}

func TestGraph(t *testing.T) {
	env := newTestEnv(t, "#DEPENDENCIES\nhttps://x/alpha main\n")
	writeTestFile(t, filepath.Join(env.work, "libraries", "alpha-main", "dependency.txt"),
		"#DEPENDENCIES\nhttps://x/beta main\n")

	out, _, err := env.run("graph")
	if err != nil {
		t.Fatalf("graph error: %v", err)
	}
	for _, want := range []string{`"(project)" -> "alpha-main";`, `"alpha-main" -> "beta-main";`} {
		if !strings.Contains(out, want) {
			t.Errorf("DOT missing %q:\n%s", want, out)
		}
	}

	out, _, err = env.run("graph", "--format", "json")
	if err != nil {
		t.Fatalf("graph --format json error: %v", err)
	}
	if !json.Valid([]byte(out)) {
		t.Errorf("invalid JSON:\n%s", out)
	}
}

func TestGraphCycleAndOutputFile(t *testing.T) {
	env := newTestEnv(t, "")
	libs := filepath.Join(env.work, "libraries")
	writeTestFile(t, filepath.Join(libs, "alpha-main", "dependency.txt"), "#DEPENDENCIES\nhttps://x/beta main\n")
	writeTestFile(t, filepath.Join(libs, "beta-main", "dependency.txt"), "#DEPENDENCIES\nhttps://x/alpha main\n")
	target := filepath.Join(t.TempDir(), "deps.dot")

	out, errOut, err := env.run("graph", "-o", target)
	if err != nil {
		t.Fatalf("graph error: %v", err)
	}
	if !strings.Contains(errOut, "Declaration cycle") {
		t.Errorf("stderr = %q, want cycle warning", errOut)
	}
	if !strings.Contains(out, target) {
		t.Errorf("stdout = %q, want output path", out)
	}
	data, err := os.ReadFile(target)
	if err != nil || !strings.HasPrefix(string(data), "digraph G {") {
		t.Errorf("output file = %q, %v", data, err)
	}
}

func TestConfigShow(t *testing.T) {
	env := newTestEnv(t, "")
	writeTestFile(t, filepath.Join(env.work, ".gitdeps.toml"), "library_dir = \"vendor\"\n[policy]\nignore_pull = true\n")

	out, _, err := env.run("config", "show", "--clean")
	if err != nil {
		t.Fatalf("config show error: %v", err)
	}
	for _, want := range []string{`library_dir = "vendor"`, "ignore_pull = true", "clean = true"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	out, _, err = env.run("config", "show", "--ignore-pull=false")
	if err != nil {
		t.Fatalf("config show error: %v", err)
	}
	if !strings.Contains(out, "ignore_pull = false") {
		t.Errorf("flag should override file value:\n%s", out)
	}
}

func TestConfigPath(t *testing.T) {
	env := newTestEnv(t, "")
	explicit := filepath.Join(t.TempDir(), "custom.toml")
	writeTestFile(t, explicit, "dependency_file = \"deps.txt\"\n")

	out, _, err := env.run("config", "path", "--config", explicit)
	if err != nil {
		t.Fatalf("config path error: %v", err)
	}
	if !strings.Contains(out, explicit) {
		t.Errorf("output = %q, want %q", out, explicit)
	}
}

func TestInvalidConfigFile(t *testing.T) {
	env := newTestEnv(t, "")
	writeTestFile(t, filepath.Join(env.work, ".gitdeps.toml"), "unknown = 1\n")

	if _, _, err := env.run("list"); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidConfig)
	}
	if len(env.git.calls) != 0 {
		t.Errorf("git calls = %q, want none", env.git.calls)
	}
}

func TestVerboseEnablesDebug(t *testing.T) {
	env := newTestEnv(t, "#DEPENDENCIES\nhttps://x/alpha main\n")

	if _, _, err := env.run("list", "--verbose"); err != nil {
		t.Fatalf("list error: %v", err)
	}
	if env.cli.Logger.GetLevel() != log.DebugLevel {
		t.Errorf("level = %v, want debug", env.cli.Logger.GetLevel())
	}
	if !strings.Contains(env.logs.String(), "found dependency file") && !strings.Contains(env.logs.String(), "searching for current path dependencies") {
		t.Errorf("debug logs missing:\n%s", env.logs.String())
	}
}

func TestCompletion(t *testing.T) {
	env := newTestEnv(t, "")

	out, _, err := env.run("completion", "bash")
	if err != nil {
		t.Fatalf("completion error: %v", err)
	}
	if !strings.Contains(out, "gitdeps") {
		t.Errorf("completion script does not mention gitdeps")
	}
}

func TestCompletePaths(t *testing.T) {
	tests := []struct {
		args      []string
		wantComp  []string
		wantDirec cobra.ShellCompDirective
	}{
		{nil, nil, cobra.ShellCompDirectiveFilterDirs},
		{[]string{"libraries"}, []string{"txt"}, cobra.ShellCompDirectiveFilterFileExt},
		{[]string{"libraries", "dependency.txt"}, nil, cobra.ShellCompDirectiveNoFileComp},
	}

	for _, tt := range tests {
		comps, directive := completePaths(nil, tt.args, "")
		if strings.Join(comps, ",") != strings.Join(tt.wantComp, ",") || directive != tt.wantDirec {
			t.Errorf("completePaths(%q) = %q, %v; want %q, %v", tt.args, comps, directive, tt.wantComp, tt.wantDirec)
		}
	}
}
