package main

import (
	"reflect"
	"strings"
	"testing"
)

func TestShellSession(t *testing.T) {
	env := setupCLITestEnv(t)
	script := strings.Join([]string{
		"help",
		"classify 111 333",
		"search 111 222",
		"wait",
		"jobs",
		"open 333",
		"paste public",
		"123",
		"456",
		"",
		"bogus",
		"quit",
	}, "\n") + "\n"

	out, err := runCLI(t, env, script, "shell")
	if err != nil {
		t.Fatalf("shell: %v", err)
	}

	requireContains(t, out, shellPrompt)
	requireContains(t, out, "paste <command>")
	requireContains(t, out, "2 valid (1 search, 1 open), 0 rejected")
	requireContains(t, out, "all 1 batches done")
	requireContains(t, out, "finished: loaded 2, searched 2, failed 0")
	requireContains(t, out, `unknown command "bogus"`)

	want := [][]string{{"http://edit/901"}, {"http://shop/123", "http://shop/456"}}
	if got := env.opener.launched(); !reflect.DeepEqual(got, want) {
		t.Fatalf("launched %v, want %v", got, want)
	}
	if got := env.runner.searched(); !reflect.DeepEqual(got, []string{"111", "222"}) {
		t.Fatalf("searched %v", got)
	}
}

func TestShellWithoutJob(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, "jobs\ncancel\nwait\n", "shell")
	if err != nil {
		t.Fatalf("shell: %v", err)
	}
	requireContains(t, out, "no search started in this session")
	requireContains(t, out, "no search running")
}

func TestShellPasteUsage(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, env, "paste\nexit\n", "shell")
	if err != nil {
		t.Fatalf("shell: %v", err)
	}
	requireContains(t, out, "usage: paste")
}

func TestShellTabInfo(t *testing.T) {
	env := setupCLITestEnv(t)
	env.clip.content = "http://edit/x?productId=901"

	out, err := runCLI(t, env, "tab 0\nexit\n", "shell")
	if err != nil {
		t.Fatalf("shell: %v", err)
	}
	requireContains(t, out, "SPU 901 (http://edit/x?productId=901)")
	requireContains(t, out, "Edit 900 - Google Chrome")
}
