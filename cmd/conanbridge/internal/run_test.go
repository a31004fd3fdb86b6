package internal

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/conanbridge/conanbridge/internal/conan"
)

func TestSplitSubcommand(t *testing.T) {
	tests := []struct {
		args     []string
		wantName string
		wantRest []string
		wantErr  bool
	}{
		{[]string{"install", "zlib/1.2.13@"}, "install", []string{"zlib/1.2.13@"}, false},
		{[]string{"remote", "add", "origin", "url"}, "remote add", []string{"origin", "url"}, false},
		{[]string{"remote add", "origin"}, "remote add", []string{"origin"}, false},
		{[]string{"profile", "show", "default"}, "profile show", []string{"default"}, false},
		{[]string{"frobnicate"}, "", nil, true},
		{[]string{"remote", "frobnicate"}, "", nil, true},
	}
	for _, tt := range tests {
		name, rest, err := splitSubcommand(tt.args)
		if (err != nil) != tt.wantErr {
			t.Errorf("splitSubcommand(%v) error = %v, wantErr %v", tt.args, err, tt.wantErr)
			continue
		}
		if err != nil {
			continue
		}
		if name != tt.wantName {
			t.Errorf("splitSubcommand(%v) name = %q, want %q", tt.args, name, tt.wantName)
		}
		if len(rest) != 0 || len(tt.wantRest) != 0 {
			if !reflect.DeepEqual(rest, tt.wantRest) {
				t.Errorf("splitSubcommand(%v) rest = %v, want %v", tt.args, rest, tt.wantRest)
			}
		}
	}
}

func TestWriteCaptures(t *testing.T) {
	dir := t.TempDir()
	ctl := conan.Control{
		OutputFile: filepath.Join(dir, "out.txt"),
		ErrorFile:  filepath.Join(dir, "err.txt"),
		ResultFile: filepath.Join(dir, "rc.txt"),
	}
	res := &conan.Result{Stdout: "packages\n", Stderr: "warning\n", ExitCode: 6}

	if err := writeCaptures(ctl, res); err != nil {
		t.Fatalf("writeCaptures: %v", err)
	}
	for _, tt := range []struct {
		path, want string
	}{
		{ctl.OutputFile, "packages\n"},
		{ctl.ErrorFile, "warning\n"},
		{ctl.ResultFile, "6\n"},
	} {
		data, err := os.ReadFile(tt.path)
		if err != nil {
			t.Fatalf("read %s: %v", tt.path, err)
		}
		if string(data) != tt.want {
			t.Errorf("%s = %q, want %q", filepath.Base(tt.path), data, tt.want)
		}
	}
}
