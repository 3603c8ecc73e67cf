package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/firefly-engineering/kitchen-puppet/internal/errors"
	"github.com/firefly-engineering/kitchen-puppet/internal/logging"
	"github.com/firefly-engineering/kitchen-puppet/internal/provisioner"
	"github.com/firefly-engineering/kitchen-puppet/internal/testutil"
)

// executeCommand runs the root command with args and returns its stdout.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	verbose, jsonOutput, configPath, kitchenRoot, sandboxKeep = false, false, "", "", true
	logging.Stdout, logging.Stderr = io.Discard, io.Discard
	t.Cleanup(func() {
		logging.Stdout, logging.Stderr = os.Stdout, os.Stderr
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootCommand_HasLifecycleCommands(t *testing.T) {
	want := []string{"init", "install", "prepare", "run", "sandbox", "commands", "cleanup"}

	for _, name := range want {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}

func TestInstallCommand_FromKitchenFile(t *testing.T) {
	p := testutil.NewProject(t)
	p.AddFixture("kitchen.yml", ".kitchen.yml")

	out, err := executeCommand(t, "install", "--kitchen-root", p.Root)
	if err != nil {
		t.Fatalf("install error: %v", err)
	}
	if !strings.Contains(out, "sudo -E yum -y install puppet-3.7.3-1.el6") {
		t.Errorf("install output = %q", out)
	}
	if strings.Contains(out, "yum -y update") {
		t.Errorf("update_packages is false in the config: %q", out)
	}
}

func TestInitCommand_Output(t *testing.T) {
	p := testutil.NewProject(t)

	out, err := executeCommand(t, "init", "--kitchen-root", p.Root)
	if err != nil {
		t.Fatalf("init error: %v", err)
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "; mkdir -p /tmp/kitchen") {
		t.Errorf("init output = %q", out)
	}
}

func TestRunCommand_FromTOMLConfig(t *testing.T) {
	p := testutil.NewProject(t)
	path := p.AddFixture("kitchen.toml", ".kitchen.toml")

	out, err := executeCommand(t, "run", "--config", path)
	if err != nil {
		t.Fatalf("run error: %v", err)
	}

	want := "export FACTER_zone=b FACTER_app=api FACTER_env=staging; sudo -E puppet apply /tmp/kitchen/manifests/site.pp " +
		"--modulepath=/tmp/kitchen/modules --manifestdir=/tmp/kitchen/manifests -d\n"
	if out != want {
		t.Errorf("run output =\n%q\nwant\n%q", out, want)
	}
}

func TestPrepareCommand_WithHiera(t *testing.T) {
	p := testutil.NewProject(t).WithHiera()

	out, err := executeCommand(t, "prepare", "--kitchen-root", p.Root, "--json")
	if err != nil {
		t.Fatalf("prepare error: %v", err)
	}

	var phase provisioner.Phase
	if err := json.Unmarshal([]byte(out), &phase); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if phase.Name != "prepare" || !strings.Contains(phase.Command, "cp -r /tmp/kitchen/hiera /var/lib/") {
		t.Errorf("phase = %+v", phase)
	}
}

func TestCommandsCommand(t *testing.T) {
	p := testutil.NewProject(t)

	out, err := executeCommand(t, "commands", "--kitchen-root", p.Root)
	if err != nil {
		t.Fatalf("commands error: %v", err)
	}

	var headers []string
	for _, line := range strings.Split(out, "\n") {
		if strings.HasPrefix(line, "# ") {
			headers = append(headers, strings.TrimPrefix(line, "# "))
		}
	}
	if strings.Join(headers, ",") != "init,install,prepare,run" {
		t.Errorf("phase headers = %v", headers)
	}
}

func TestCommandsCommand_JSON(t *testing.T) {
	p := testutil.NewProject(t)

	out, err := executeCommand(t, "commands", "--kitchen-root", p.Root, "--json")
	if err != nil {
		t.Fatalf("commands error: %v", err)
	}

	var phases []provisioner.Phase
	if err := json.Unmarshal([]byte(out), &phases); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if len(phases) != 4 || phases[0].Name != "init" || phases[3].Name != "run" {
		t.Errorf("phases = %+v", phases)
	}
	if phases[2].Command != "" {
		t.Errorf("prepare should be empty without Hiera, got %q", phases[2].Command)
	}
}

func TestSandboxCommand_KeepAndCleanup(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())
	p := testutil.NewProject(t)

	out, err := executeCommand(t, "sandbox", "--kitchen-root", p.Root)
	if err != nil {
		t.Fatalf("sandbox error: %v", err)
	}
	path := strings.TrimSpace(out)
	if got := testutil.ReadFile(t, filepath.Join(path, "manifests", "site.pp")); got != testutil.SiteManifest {
		t.Errorf("staged site.pp = %q", got)
	}

	if _, err := executeCommand(t, "cleanup", path); err != nil {
		t.Fatalf("cleanup error: %v", err)
	}
	testutil.AssertNotExists(t, path)

	// Cleaning up again is harmless.
	if _, err := executeCommand(t, "cleanup", path); err != nil {
		t.Errorf("second cleanup error: %v", err)
	}
}

func TestSandboxCommand_NoKeep(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())
	p := testutil.NewProject(t)

	out, err := executeCommand(t, "sandbox", "--kitchen-root", p.Root, "--keep=false", "--json")
	if err != nil {
		t.Fatalf("sandbox error: %v", err)
	}

	var result sandboxResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	want := []string{"manifests/site.pp", "modules/foo/manifests/init.pp"}
	if strings.Join(result.Files, ",") != strings.Join(want, ",") {
		t.Errorf("files = %v, want %v", result.Files, want)
	}
	if result.Kept {
		t.Error("result should report the sandbox as removed")
	}
	testutil.AssertNotExists(t, result.Path)
}

func TestCleanupCommand_RejectsOtherDirectories(t *testing.T) {
	dir := t.TempDir()

	_, err := executeCommand(t, "cleanup", dir)
	if err == nil {
		t.Fatal("cleanup should refuse a directory that is not a sandbox")
	}
	if _, statErr := os.Stat(dir); statErr != nil {
		t.Errorf("directory should be left alone: %v", statErr)
	}
}

func TestExitCodes(t *testing.T) {
	tests := []struct {
		name  string
		setup func(p *testutil.Project) []string
		want  int
	}{
		{
			name: "missing manifests",
			setup: func(p *testutil.Project) []string {
				p.AddDir("modules")
				return []string{"run", "--kitchen-root", p.Root}
			},
			want: errors.ExitConfigError,
		},
		{
			name: "unsupported platform",
			setup: func(p *testutil.Project) []string {
				p.AddDir("modules")
				p.AddDir("manifests")
				path := p.AddFile("kitchen.yml", "puppet_platform: windows\n")
				return []string{"install", "--config", path}
			},
			want: errors.ExitUnsupportedPlatform,
		},
		{
			name: "unreadable config",
			setup: func(p *testutil.Project) []string {
				return []string{"run", "--config", p.Path("missing.yml")}
			},
			want: errors.ExitConfigError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := tt.setup(testutil.NewEmptyProject(t))

			_, err := executeCommand(t, args...)
			if got := errors.GetExitCode(err); got != tt.want {
				t.Errorf("exit code = %d (%v), want %d", got, err, tt.want)
			}
		})
	}
}

func TestExecute_LogsFailure(t *testing.T) {
	p := testutil.NewEmptyProject(t)
	var errOut bytes.Buffer

	verbose, jsonOutput, configPath, kitchenRoot, sandboxKeep = false, false, "", "", true
	logging.Stdout, logging.Stderr = io.Discard, &errOut
	t.Cleanup(func() {
		logging.Stdout, logging.Stderr = os.Stdout, os.Stderr
	})
	rootCmd.SetOut(io.Discard)
	rootCmd.SetArgs([]string{"run", "--config", p.Path("missing.yml")})

	err := Execute()
	if errors.GetExitCode(err) != errors.ExitConfigError {
		t.Fatalf("Execute() error = %v, want a config error", err)
	}
	if !strings.Contains(errOut.String(), "command failed") || !strings.Contains(errOut.String(), "exit_code=2") {
		t.Errorf("failure not logged: %q", errOut.String())
	}
}
