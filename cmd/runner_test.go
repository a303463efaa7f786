package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/plantx/internal/models"
	"github.com/desertthunder/plantx/internal/shared"
	tu "github.com/desertthunder/plantx/internal/testing"
)

// testCLI drives the full command tree against a reference backend with a file-backed credential store.
type testCLI struct {
	runner *Runner
	output *bytes.Buffer
	input  *bytes.Buffer
	config string
}

func newTestCLI(t *testing.T, baseURL string) *testCLI {
	t.Helper()

	dir := t.TempDir()
	config := shared.DefaultConfig()
	config.API.BaseURL = baseURL
	config.Database.Path = filepath.Join(dir, "plantx.db")

	output, input := &bytes.Buffer{}, &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config: config,
		Logger: shared.NewLogger(io.Discard),
		Output: output,
		Input:  input,
	})
	t.Cleanup(func() { runner.Close() })

	return &testCLI{runner: runner, output: output, input: input, config: filepath.Join(dir, "missing.toml")}
}

// run executes one invocation and returns its output.
func (c *testCLI) run(args ...string) (string, error) {
	c.output.Reset()
	argv := append([]string{"plantx", "--config", c.config}, args...)
	err := newApp(c.runner).Run(context.Background(), argv)
	return c.output.String(), err
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			input := strings.NewReader("")
			httpClient := &http.Client{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				Input:      input,
				HTTPClient: httpClient,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.input != input {
				t.Error("expected input to be set")
			}
			if runner.httpClient != httpClient {
				t.Error("expected httpClient to be set")
			}
			if runner.plants != nil || runner.session != nil || runner.db != nil {
				t.Error("expected client dependencies to be opened lazily")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("with nil httpClient uses configured timeout", func(t *testing.T) {
			config := shared.DefaultConfig()
			config.API.TimeoutSeconds = 3
			runner := NewRunner(RunnerOpts{Config: config})

			if runner.httpClient == nil || runner.httpClient.Timeout != config.API.Timeout() {
				t.Errorf("expected client with %v timeout, got %+v", config.API.Timeout(), runner.httpClient)
			}
		})

		t.Run("with configPath sets field", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{ConfigPath: "/test/path/config.toml"})

			if runner.configPath != "/test/path/config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if result := output.String(); result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			// channels cannot be marshaled to JSON
			err := runner.writeJSON(make(chan int), false)
			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if result := output.String(); result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		names := map[string]bool{}
		for i, cmd := range commands {
			if cmd == nil {
				t.Fatalf("command at index %d is nil", i)
			}
			names[cmd.Name] = true
		}
		for _, want := range []string{"setup", "auth", "plants", "api", "tui", "dev-server"} {
			if !names[want] {
				t.Errorf("expected %q command to be registered", want)
			}
		}
	})

	t.Run("readPassword", func(t *testing.T) {
		t.Run("reads a line from non-terminal input", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Input: strings.NewReader("secret\r\n")})

			got, err := runner.readPassword("Password: ")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != "secret" {
				t.Errorf("expected secret, got %q", got)
			}
		})

		t.Run("accepts a final line without newline", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Input: strings.NewReader("secret")})

			if got, err := runner.readPassword("Password: "); err != nil || got != "secret" {
				t.Errorf("expected secret, got %q (%v)", got, err)
			}
		})

		t.Run("empty input", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Input: strings.NewReader("")})

			_, err := runner.readPassword("Password: ")
			if !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected ErrMissingArgument, got %v", err)
			}
		})
	})
}

func TestBefore(t *testing.T) {
	t.Run("config file is loaded", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "config.toml")
		contents := "[api]\nbase_url = \"http://plants.test/api\"\n\n[log]\nlevel = \"debug\"\n"
		if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(io.Discard), Output: &bytes.Buffer{}})
		if err := newApp(runner).Run(context.Background(), []string{"plantx", "--config", path}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if got := runner.config.API.BaseURL; got != "http://plants.test/api" {
			t.Errorf("expected base URL from file, got %q", got)
		}
		if got := runner.config.Database.Path; got != shared.DefaultConfig().Database.Path {
			t.Errorf("expected default database path, got %q", got)
		}
	})

	t.Run("environment beats file and flag beats environment", func(t *testing.T) {
		t.Setenv("PLANTX_BASE_URL", "http://env.test/api")
		missing := filepath.Join(t.TempDir(), "none.toml")

		runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(io.Discard), Output: &bytes.Buffer{}})
		if err := newApp(runner).Run(context.Background(), []string{"plantx", "--config", missing}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := runner.config.API.BaseURL; got != "http://env.test/api" {
			t.Errorf("expected env base URL, got %q", got)
		}

		runner = NewRunner(RunnerOpts{Logger: shared.NewLogger(io.Discard), Output: &bytes.Buffer{}})
		args := []string{"plantx", "--config", missing, "--base-url", "http://flag.test/api"}
		if err := newApp(runner).Run(context.Background(), args); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if got := runner.config.API.BaseURL; got != "http://flag.test/api" {
			t.Errorf("expected flag base URL, got %q", got)
		}
	})

	t.Run("invalid config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("[api\n"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(io.Discard), Output: &bytes.Buffer{}})
		err := newApp(runner).Run(context.Background(), []string{"plantx", "--config", path})
		if !errors.Is(err, shared.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestSetupCommands(t *testing.T) {
	t.Run("setup config writes the default file once", func(t *testing.T) {
		cli := newTestCLI(t, "http://unused.test/api")
		path := filepath.Join(t.TempDir(), "config.toml")

		out, err := cli.run("setup", "config", "--path", path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, path) {
			t.Errorf("expected path in output, got %q", out)
		}
		if !strings.Contains(tu.MustReadFile(t, path), "[api]") {
			t.Error("expected default config contents")
		}

		if _, err := cli.run("setup", "config", "--path", path); err == nil {
			t.Error("expected error when config already exists")
		}
	})

	t.Run("setup database creates the file", func(t *testing.T) {
		cli := newTestCLI(t, "http://unused.test/api")

		if _, err := cli.run("setup", "database"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		tu.AssertFileExists(t, cli.runner.config.Database.Path)
	})

	t.Run("setup database --rollback drops the credentials table", func(t *testing.T) {
		cli := newTestCLI(t, "http://unused.test/api")
		if _, err := cli.run("setup", "database"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		out, err := cli.run("setup", "database", "--rollback")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "Rolled back") {
			t.Errorf("expected rollback confirmation, got %q", out)
		}

		db, err := shared.NewDatabase(cli.runner.config.Database.Path)
		if err != nil {
			t.Fatalf("failed to reopen database: %v", err)
		}
		defer db.Close()
		if _, err := db.Exec("SELECT 1 FROM credentials"); err == nil {
			t.Error("expected credentials table to be gone")
		}

		if _, err := cli.run("setup", "database", "--rollback"); err == nil {
			t.Error("expected error with nothing left to roll back")
		}
	})
}

func TestAuthCommands(t *testing.T) {
	backend := tu.NewTestBackend(t)
	backend.MustRegister(t, "alice")

	t.Run("login with prompted password persists the session", func(t *testing.T) {
		cli := newTestCLI(t, backend.BaseURL)
		cli.input.WriteString("secret\n")

		out, err := cli.run("auth", "login", "--username", "alice")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "Logged in as alice") {
			t.Errorf("expected login confirmation, got %q", out)
		}

		out, err = cli.run("auth", "status")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "Logged in as alice") {
			t.Errorf("expected restored identity, got %q", out)
		}
		if !strings.Contains(out, "Token expires") {
			t.Errorf("expected token expiry, got %q", out)
		}
	})

	t.Run("bad password shows the detail", func(t *testing.T) {
		cli := newTestCLI(t, backend.BaseURL)

		out, err := cli.run("auth", "login", "-u", "alice", "-p", "wrong")
		if !errors.Is(err, shared.ErrAuthFailed) {
			t.Fatalf("expected ErrAuthFailed, got %v", err)
		}
		if !strings.Contains(out, "Incorrect username or password") {
			t.Errorf("expected backend detail, got %q", out)
		}

		if out, _ := cli.run("auth", "status"); !strings.Contains(out, "Not logged in") {
			t.Errorf("expected no session, got %q", out)
		}
	})

	t.Run("register then logout", func(t *testing.T) {
		cli := newTestCLI(t, backend.BaseURL)

		out, err := cli.run("auth", "register", "-u", "bob", "-e", "bob@example.com", "-p", "pw")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "Logged in as bob") {
			t.Errorf("expected registration confirmation, got %q", out)
		}

		if _, err := cli.run("auth", "logout"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if out, _ := cli.run("auth", "status"); !strings.Contains(out, "Not logged in") {
			t.Errorf("expected session to be cleared, got %q", out)
		}
	})

	t.Run("duplicate registration", func(t *testing.T) {
		cli := newTestCLI(t, backend.BaseURL)

		out, err := cli.run("auth", "register", "-u", "alice", "-e", "other@example.com", "-p", "pw")
		if !errors.Is(err, shared.ErrAuthFailed) {
			t.Fatalf("expected ErrAuthFailed, got %v", err)
		}
		if !strings.Contains(out, "Username or email already registered") {
			t.Errorf("expected backend detail, got %q", out)
		}
	})
}

func TestPlantsCommands(t *testing.T) {
	backend := tu.NewTestBackend(t)
	alice, _ := backend.MustRegister(t, "alice")
	bob, _ := backend.MustRegister(t, "bob")
	cactus := backend.MustCreatePlant(t, bob, "Cactus", 4)
	aloe := backend.MustCreatePlant(t, alice, "Aloe", 9)

	cli := newTestCLI(t, backend.BaseURL)

	t.Run("requires login", func(t *testing.T) {
		_, err := cli.run("plants", "list")
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	if _, err := cli.run("auth", "login", "-u", "alice", "-p", "secret"); err != nil {
		t.Fatalf("failed to log in: %v", err)
	}

	t.Run("list as text", func(t *testing.T) {
		out, err := cli.run("plants", "list")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		for _, want := range []string{"Cactus", "Aloe", "(yours)"} {
			if !strings.Contains(out, want) {
				t.Errorf("expected %q in output, got %q", want, out)
			}
		}
	})

	t.Run("list as json", func(t *testing.T) {
		out, err := cli.run("plants", "list", "--format", "json")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var plants []models.Plant
		if err := json.Unmarshal([]byte(out), &plants); err != nil {
			t.Fatalf("expected JSON output, got %q: %v", out, err)
		}
		if len(plants) != 2 {
			t.Errorf("expected 2 plants, got %d", len(plants))
		}
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := cli.run("plants", "list", "--format", "yaml")
		if !errors.Is(err, shared.ErrInvalidFlag) {
			t.Errorf("expected ErrInvalidFlag, got %v", err)
		}
	})

	t.Run("like and unlike", func(t *testing.T) {
		out, err := cli.run("plants", "like", cactus.ID.String())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "Liked Cactus (1 likes)") {
			t.Errorf("expected like confirmation, got %q", out)
		}

		out, err = cli.run("plants", "unlike", cactus.ID.String())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "Unliked Cactus (0 likes)") {
			t.Errorf("expected unlike confirmation, got %q", out)
		}
	})

	t.Run("cannot like own listing", func(t *testing.T) {
		_, err := cli.run("plants", "like", aloe.ID.String())
		if !errors.Is(err, shared.ErrOwnListing) {
			t.Errorf("expected ErrOwnListing, got %v", err)
		}
	})

	t.Run("like requires an id", func(t *testing.T) {
		_, err := cli.run("plants", "like")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("samples are numbered", func(t *testing.T) {
		out, err := cli.run("plants", "samples")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "1. https://") {
			t.Errorf("expected numbered samples, got %q", out)
		}
	})

	t.Run("add with a sample photo", func(t *testing.T) {
		out, err := cli.run("plants", "add", "--name", "Fern", "--description", "Leafy", "--price", "12.50", "--sample", "1")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "Listed Fern for $12.5") {
			t.Errorf("expected creation confirmation, got %q", out)
		}
	})

	t.Run("add rejects an invalid price", func(t *testing.T) {
		out, err := cli.run("plants", "add", "--name", "Fern", "--description", "Leafy", "--price", "cheap", "--photo-url", "https://example.com/f.jpg")
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
		if !strings.Contains(out, "price must be a number") {
			t.Errorf("expected inline message, got %q", out)
		}
	})

	t.Run("add requires exactly one photo source", func(t *testing.T) {
		_, err := cli.run("plants", "add", "--name", "Fern", "--description", "Leafy", "--price", "1")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}

		_, err = cli.run("plants", "add", "--name", "Fern", "--description", "Leafy", "--price", "1", "--photo-url", "https://example.com/f.jpg", "--sample", "2")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("add with an out of range sample", func(t *testing.T) {
		_, err := cli.run("plants", "add", "--name", "Fern", "--description", "Leafy", "--price", "1", "--sample", "99")
		if !errors.Is(err, shared.ErrInvalidArgument) {
			t.Errorf("expected ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("mine includes likers", func(t *testing.T) {
		if err := backend.Like(bob.ID.String(), aloe.ID.String()); err != nil {
			t.Fatalf("failed to like: %v", err)
		}

		out, err := cli.run("plants", "mine", "--format", "csv")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "Aloe") || !strings.Contains(out, "Fern") {
			t.Errorf("expected owned listings, got %q", out)
		}
		if strings.Contains(out, "Cactus") {
			t.Errorf("expected only owned listings, got %q", out)
		}
		if !strings.Contains(out, "bob") {
			t.Errorf("expected bob among likers, got %q", out)
		}
	})

	t.Run("mine to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out", "mine.md")

		if _, err := cli.run("plants", "mine", "--format", "md", "--output", path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(tu.MustReadFile(t, path), "Aloe") {
			t.Error("expected markdown file to contain listings")
		}
	})
}

func TestAPICommands(t *testing.T) {
	backend := tu.NewTestBackend(t)
	backend.MustRegister(t, "alice")
	cli := newTestCLI(t, backend.BaseURL)

	t.Run("public get without session", func(t *testing.T) {
		out, err := cli.run("api", "get", "/sample-images")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, "images") {
			t.Errorf("expected sample images, got %q", out)
		}
	})

	t.Run("authenticated get after login", func(t *testing.T) {
		if _, err := cli.run("auth", "login", "-u", "alice", "-p", "secret"); err != nil {
			t.Fatalf("failed to log in: %v", err)
		}

		out, err := cli.run("api", "get", "/me", "--pretty=false")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !strings.Contains(out, `"username":"alice"`) {
			t.Errorf("expected compact identity JSON, got %q", out)
		}
	})

	t.Run("non-2xx response", func(t *testing.T) {
		_, err := cli.run("api", "get", "/plants/999/likes")
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("post with invalid JSON", func(t *testing.T) {
		_, err := cli.run("api", "post", "/plants", "--data", "{not json")
		if !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("post and delete", func(t *testing.T) {
		body := `{"name":"Ivy","description":"Climbing","price":3,"photo_url":"https://example.com/i.jpg"}`
		out, err := cli.run("api", "post", "/plants", "--data", body)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		var created models.Plant
		if err := json.Unmarshal([]byte(out), &created); err != nil {
			t.Fatalf("expected plant JSON, got %q: %v", out, err)
		}

		_, err = cli.run("api", "delete", "/plants/"+created.ID.String()+"/like")
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected unliking a plant not liked to fail, got %v", err)
		}
	})

	t.Run("missing path", func(t *testing.T) {
		_, err := cli.run("api", "get")
		if !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})
}
