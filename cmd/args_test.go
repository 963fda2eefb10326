package cmd

import (
	"strings"
	"testing"
)

func TestSplitDir(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantDir  string
		wantRest string
	}{
		{"no dir", []string{"prefix", "x_"}, "", "prefix x_"},
		{"dir first", []string{"photos", "prefix", "x_"}, "photos", "prefix x_"},
		{"dir after bool flags", []string{"-r", "-f", "photos", "lowercase"}, "photos", "-r -f lowercase"},
		{"grouped shorthands", []string{"-rd", "photos", "hash"}, "photos", "-rd hash"},
		{"flag with value", []string{"--on-conflict", "skip", "photos", "hash"}, "photos", "--on-conflict skip hash"},
		{"flag with inline value", []string{"--on-conflict=skip", "photos", "hash"}, "photos", "--on-conflict=skip hash"},
		{"value that looks like a command", []string{"--log-file", "prefix", "suffix", "_1"}, "", "--log-file prefix suffix _1"},
		{"flags after command", []string{"prefix", "-r", "x_"}, "", "prefix -r x_"},
		{"dash dash", []string{"--", "photos"}, "", "-- photos"},
		{"help command", []string{"help", "prefix"}, "", "help prefix"},
		{"only flags", []string{"--version"}, "", "--version"},
		{"relative command-named dir", []string{"./prefix", "prefix", "x_"}, "./prefix", "prefix x_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, _ := newRootCmd()
			dir, rest := splitDir(root, tt.args)

			if dir != tt.wantDir {
				t.Errorf("dir = %q, want %q", dir, tt.wantDir)
			}
			if got := strings.Join(rest, " "); got != tt.wantRest {
				t.Errorf("rest = %q, want %q", got, tt.wantRest)
			}
		})
	}
}

func TestSplitDir_DoesNotModifyInput(t *testing.T) {
	root, _ := newRootCmd()
	args := []string{"photos", "prefix", "x_"}

	splitDir(root, args)

	if strings.Join(args, " ") != "photos prefix x_" {
		t.Errorf("input modified: %v", args)
	}
}
