package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func testEnv(t *testing.T) func(string) string {
	t.Helper()
	env := map[string]string{
		"BCRYPT_COST":   "4",
		"DATABASE_PATH": filepath.Join(t.TempDir(), "ctl.db"),
	}
	return func(key string) string { return env[key] }
}

func stubPasswords(t *testing.T, passwords ...string) {
	t.Helper()
	orig := readPassword
	i := 0
	readPassword = func() ([]byte, error) {
		if i >= len(passwords) {
			return nil, errors.New("no more input")
		}
		pw := passwords[i]
		i++
		return []byte(pw), nil
	}
	t.Cleanup(func() { readPassword = orig })
}

func TestRun_MigrateWithoutJWTSecret(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), []string{"migrate"}, testEnv(t), &out); err != nil {
		t.Fatalf("run migrate: %v", err)
	}
	if !strings.Contains(out.String(), "migrations applied, schema version 3") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRun_RejectsBadStorageSettings(t *testing.T) {
	env := func(key string) string {
		if key == "DATABASE_DRIVER" {
			return "postgres"
		}
		return ""
	}
	err := run(context.Background(), []string{"migrate"}, env, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "DATABASE_DSN is required") {
		t.Fatalf("expected DSN error, got %v", err)
	}
}

func TestRun_Stats(t *testing.T) {
	env := testEnv(t)
	ctx := context.Background()

	var out bytes.Buffer
	if err := run(ctx, []string{"group", "create", "-title", "Cats", "-slug", "cats"}, env, &out); err != nil {
		t.Fatalf("group create: %v", err)
	}
	stubPasswords(t, "Somepessword", "Somepessword")
	if err := run(ctx, []string{"user", "create", "-username", "admin", "-email", "admin@test.com"}, env, &out); err != nil {
		t.Fatalf("user create: %v", err)
	}

	out.Reset()
	if err := run(ctx, []string{"stats"}, env, &out); err != nil {
		t.Fatalf("stats: %v", err)
	}
	got := strings.Fields(out.String())
	want := []string{"users", "1", "groups", "1", "posts", "0"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Fatalf("unexpected stats %q", out.String())
	}
}

func TestRun_GroupCreateAndList(t *testing.T) {
	env := testEnv(t)
	ctx := context.Background()

	var out bytes.Buffer
	err := run(ctx, []string{"group", "create", "-title", "Cats", "-slug", "cats", "-description", "All about cats"}, env, &out)
	if err != nil {
		t.Fatalf("group create: %v", err)
	}

	out.Reset()
	if err := run(ctx, []string{"group", "list"}, env, &out); err != nil {
		t.Fatalf("group list: %v", err)
	}
	if !strings.Contains(out.String(), "cats") || !strings.Contains(out.String(), "Cats") {
		t.Fatalf("expected group in listing, got %q", out.String())
	}

	if err := run(ctx, []string{"group", "create", "-title", "Bad", "-slug", "not a slug"}, env, &out); err == nil {
		t.Fatal("expected invalid slug to be rejected")
	}
}

func TestRun_UserCreate(t *testing.T) {
	env := testEnv(t)

	stubPasswords(t, "Somepessword", "Somepessword")
	var out bytes.Buffer
	if err := run(context.Background(), []string{"user", "create", "-username", "admin", "-email", "admin@test.com"}, env, &out); err != nil {
		t.Fatalf("user create: %v (output %q)", err, out.String())
	}
	if !strings.Contains(out.String(), "created user") {
		t.Fatalf("unexpected output %q", out.String())
	}

	stubPasswords(t, "Somepessword", "Different1x")
	out.Reset()
	err := run(context.Background(), []string{"user", "create", "-username", "other", "-email", "other@test.com"}, env, &out)
	if err == nil {
		t.Fatal("expected mismatched passwords to fail")
	}
	if !strings.Contains(out.String(), "password2") {
		t.Fatalf("expected field error in output, got %q", out.String())
	}
}

func TestRun_Usage(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), nil, testEnv(t), &out); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if err := run(context.Background(), []string{"frobnicate"}, testEnv(t), &out); !errors.Is(err, errUsage) {
		t.Fatalf("expected usage error, got %v", err)
	}
}
