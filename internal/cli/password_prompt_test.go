package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadPasswordNoEchoAcceptsPipedInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stdin")
	if err := os.WriteFile(path, []byte("Piped#Secret9\r\n"), 0o600); err != nil {
		t.Fatalf("write stdin fixture: %v", err)
	}
	stdin, err := os.Open(path)
	if err != nil {
		t.Fatalf("open stdin fixture: %v", err)
	}
	defer stdin.Close()

	password, err := readPasswordNoEcho(stdin)
	if err != nil {
		t.Fatalf("readPasswordNoEcho returned error: %v", err)
	}
	if string(password) != "Piped#Secret9" {
		t.Fatalf("expected trimmed password, got %q", password)
	}
}

func TestReadPasswordNoEchoRequiresStdin(t *testing.T) {
	if _, err := readPasswordNoEcho(nil); err == nil {
		t.Fatal("expected nil stdin to fail")
	}
}

func TestReadPasswordNoEchoLeavesFollowingLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stdin")
	if err := os.WriteFile(path, []byte("First#Secret1\nSecond#Secret2\n"), 0o600); err != nil {
		t.Fatalf("write stdin fixture: %v", err)
	}
	stdin, err := os.Open(path)
	if err != nil {
		t.Fatalf("open stdin fixture: %v", err)
	}
	defer stdin.Close()

	for _, want := range []string{"First#Secret1", "Second#Secret2"} {
		got, err := readPasswordNoEcho(stdin)
		if err != nil {
			t.Fatalf("readPasswordNoEcho returned error: %v", err)
		}
		if string(got) != want {
			t.Fatalf("expected %q, got %q", want, got)
		}
	}
}
