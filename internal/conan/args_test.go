package conan

import (
	"reflect"
	"testing"
)

func TestTranslateFlags(t *testing.T) {
	spec := ArgSpec{Flags: []string{"UPDATE", "NO_IMPORTS"}}

	args := Args{
		{Name: "UPDATE"},
		{Name: "NO_IMPORTS", Values: []string{"OFF"}},
	}
	got := Translate(spec, args)
	want := []string{"--update"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Translate = %v, want %v", got, want)
	}
}

func TestTranslateValuePresence(t *testing.T) {
	spec := ArgSpec{Values: []string{"INSTALL_FOLDER"}}

	tests := []struct {
		name string
		args Args
		want []string
	}{
		{"empty value", Args{{Name: "INSTALL_FOLDER", Values: []string{""}}}, []string{"--install-folder"}},
		{"bare occurrence", Args{{Name: "INSTALL_FOLDER"}}, []string{"--install-folder"}},
		{"non-empty value", Args{{Name: "INSTALL_FOLDER", Values: []string{"out/conan"}}}, []string{"--install-folder=out/conan"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Translate(spec, tt.args); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Translate = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTranslateValueRepeats(t *testing.T) {
	spec := ArgSpec{Values: []string{"REMOTE"}}

	// A repeated occurrence repeats the flag instead of dropping values.
	args := Args{
		{Name: "REMOTE", Values: []string{"a"}},
		{Name: "REMOTE", Values: []string{"b"}},
	}
	got := Translate(spec, args)
	want := []string{"--remote=a", "--remote=b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Translate = %v, want %v", got, want)
	}
}

func TestTranslateLists(t *testing.T) {
	spec := ArgSpec{Lists: []string{"SETTINGS"}}

	args := Args{
		{Name: "SETTINGS", Values: []string{"os=Linux"}},
		{Name: "SETTINGS", Values: []string{"arch=x86_64"}},
	}
	got := Translate(spec, args)
	want := []string{"--settings=os=Linux", "--settings=arch=x86_64"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Translate = %v, want %v", got, want)
	}
}

func TestTranslateListEmptyElement(t *testing.T) {
	spec := ArgSpec{Lists: []string{"BUILD"}}

	got := Translate(spec, Args{{Name: "BUILD", Values: []string{""}}})
	want := []string{"--build"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Translate = %v, want %v", got, want)
	}
}

func TestTranslatePassThroughOrder(t *testing.T) {
	spec := ArgSpec{
		Flags:  []string{"UPDATE"},
		Values: []string{"PROFILE"},
	}
	args := Args{
		{Values: []string{"--dry-run"}},
		{Name: "PROFILE", Values: []string{"default"}},
		{Name: "EXTRA", Values: []string{"x"}},
		{Values: []string{"--json"}},
	}
	got := Translate(spec, args)
	want := []string{"--profile=default", "--dry-run", "EXTRA=x", "--json"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Translate = %v, want %v", got, want)
	}
}

func TestKebabDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		if got := kebab("INSTALL_FOLDER"); got != "install-folder" {
			t.Fatalf("kebab(INSTALL_FOLDER) = %q, want %q", got, "install-folder")
		}
	}
}

func TestParseArgs(t *testing.T) {
	args := ParseArgs([]string{"UPDATE", "SETTINGS=os=Linux", "--build=missing", "zlib/1.2.13@"})

	if vals, ok := args.Get("UPDATE"); !ok || len(vals) != 0 {
		t.Errorf("UPDATE = %v,%v, want bare occurrence", vals, ok)
	}
	if vals, _ := args.Get("SETTINGS"); !reflect.DeepEqual(vals, []string{"os=Linux"}) {
		t.Errorf("SETTINGS = %v, want [os=Linux]", vals)
	}
	// Raw flags and references stay pass-through tokens.
	var raw []string
	for _, a := range args {
		if a.Name == "" {
			raw = append(raw, a.Values...)
		}
	}
	if !reflect.DeepEqual(raw, []string{"--build=missing", "zlib/1.2.13@"}) {
		t.Errorf("pass-through = %v", raw)
	}
}

func TestTruthy(t *testing.T) {
	tests := []struct {
		vals []string
		want bool
	}{
		{nil, true},
		{[]string{"ON"}, true},
		{[]string{"true"}, true},
		{[]string{"1"}, true},
		{[]string{"OFF"}, false},
		{[]string{"0"}, false},
		{[]string{"NO"}, false},
	}
	for _, tt := range tests {
		if got := truthy(tt.vals); got != tt.want {
			t.Errorf("truthy(%v) = %v, want %v", tt.vals, got, tt.want)
		}
	}
}
