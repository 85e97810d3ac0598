package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"tabbatch/internal/classify"
	"tabbatch/internal/config"
	"tabbatch/internal/logging"
	"tabbatch/internal/search"
	"tabbatch/internal/testsupport"
)

type fakeOpener struct {
	mu    sync.Mutex
	calls [][]string
	err   error
}

func (f *fakeOpener) Launch(_ context.Context, urls []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, urls)
	return f.err
}

func (f *fakeOpener) launched() [][]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]string(nil), f.calls...)
}

type fakeRunner struct {
	mu      sync.Mutex
	batches []classify.Batch
}

func (f *fakeRunner) RunBatch(_ context.Context, batch classify.Batch, progress search.ProgressFunc) (search.Outcome, error) {
	f.mu.Lock()
	f.batches = append(f.batches, batch)
	f.mu.Unlock()
	for i, pair := range batch {
		progress(search.Progress{Phase: search.PhaseSearching, Tab: i + 1, Total: len(batch), Pair: pair})
	}
	return search.Outcome{Loaded: len(batch), Searched: len(batch)}, nil
}

func (f *fakeRunner) searched() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var skus []string
	for _, batch := range f.batches {
		for _, pair := range batch {
			skus = append(skus, pair.SKU)
		}
	}
	return skus
}

type fakeKeyboard struct {
	mu    sync.Mutex
	taps  []string
	typed []string
}

func (f *fakeKeyboard) Tap(key string, modifiers ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.taps = append(f.taps, strings.Join(append(modifiers, key), "+"))
	return nil
}

func (f *fakeKeyboard) Type(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.typed = append(f.typed, text)
	return nil
}

type fakeClipboard struct {
	mu      sync.Mutex
	content string
}

func (f *fakeClipboard) ReadAll() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.content, nil
}

func (f *fakeClipboard) WriteAll(text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.content = text
	return nil
}

type fakeTitles struct {
	title string
}

func (f fakeTitles) ActiveTitle(context.Context) (string, error) { return f.title, nil }

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	opener     *fakeOpener
	runner     *fakeRunner
	keyboard   *fakeKeyboard
	clip       *fakeClipboard
	titles     fakeTitles
}

// setupCLITestEnv writes a config whose lookup tables exclude SPU 900 and map
// 111 and 222 to it, and 333 to the directly editable SPU 901.
func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)

	cfg := testsupport.NewConfig(t,
		testsupport.WithStubbedBinaries(),
		testsupport.WithLookupTables(
			[]string{"900"},
			map[string]string{"111": "900", "222": "900", "333": "901"},
		),
	)
	cfg.URLs.EditTemplate = "http://edit/{}"
	cfg.URLs.StorefrontTemplate = "http://shop/{}"

	configPath := filepath.Join(homeDir, ".config", "tabbatch", "config.toml")
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{
		cfg:        cfg,
		configPath: configPath,
		opener:     &fakeOpener{},
		runner:     &fakeRunner{},
		keyboard:   &fakeKeyboard{},
		clip:       &fakeClipboard{},
		titles:     fakeTitles{title: "Edit 900 - Google Chrome"},
	}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// newContext returns a command context whose desktop tools are fakes.
func (env *cliTestEnv) newContext() *commandContext {
	ctx := newCommandContext()
	ctx.logger = logging.NewNop()
	ctx.tools = &toolset{
		opener:   env.opener,
		runner:   env.runner,
		keyboard: env.keyboard,
		clip:     env.clip,
		titles:   env.titles,
	}
	return ctx
}

func runCLI(t *testing.T, env *cliTestEnv, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCommandWithContext(env.newContext())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q\n--- output ---\n%s", needle, haystack)
	}
}
