package conan

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// commands declares, per conan subcommand, which argument names translate to
// CLI flags. Anything not declared here passes through verbatim, so the table
// only needs the names the build scripts actually spell out.
var commands = map[string]ArgSpec{
	"alias": {},
	"build": {
		Flags:  []string{"CONFIGURE", "BUILD", "INSTALL", "TEST"},
		Values: []string{"BUILD_FOLDER", "INSTALL_FOLDER", "PACKAGE_FOLDER", "SOURCE_FOLDER"},
	},
	"config get":  {},
	"config home": {},
	"config install": {
		Values: []string{"TYPE", "ARGS", "SOURCE_FOLDER", "TARGET_FOLDER", "VERIFY_SSL"},
	},
	"config rm":  {},
	"config set": {},
	"copy": {
		Flags:  []string{"ALL", "FORCE"},
		Values: []string{"PACKAGE"},
	},
	"create": {
		Flags:  []string{"UPDATE", "NOT_EXPORT", "KEEP_SOURCE", "KEEP_BUILD"},
		Values: []string{"PROFILE", "TEST_FOLDER", "TEST_BUILD_FOLDER", "REMOTE", "JSON"},
		Lists:  []string{"BUILD", "SETTINGS", "OPTIONS", "ENV"},
	},
	"download": {
		Flags:  []string{"RECIPE"},
		Values: []string{"REMOTE"},
		Lists:  []string{"PACKAGE"},
	},
	"editable add": {
		Values: []string{"LAYOUT"},
	},
	"editable list":   {},
	"editable remove": {},
	"export": {
		Flags:  []string{"KEEP_SOURCE"},
		Values: []string{"LOCKFILE"},
	},
	"export-pkg": {
		Flags:  []string{"FORCE"},
		Values: []string{"BUILD_FOLDER", "INSTALL_FOLDER", "PACKAGE_FOLDER", "PROFILE", "SOURCE_FOLDER", "JSON"},
		Lists:  []string{"OPTIONS", "SETTINGS", "ENV"},
	},
	"get": {
		Flags:  []string{"RAW"},
		Values: []string{"PACKAGE", "REMOTE"},
	},
	"imports": {
		Flags:  []string{"UNDO"},
		Values: []string{"INSTALL_FOLDER", "IMPORT_FOLDER"},
	},
	"info": {
		Flags:  []string{"PATHS", "UPDATE"},
		Values: []string{"INSTALL_FOLDER", "JSON", "GRAPH", "BUILD_ORDER", "PACKAGE_FILTER"},
		Lists:  []string{"ONLY"},
	},
	"inspect": {
		Values: []string{"REMOTE", "JSON"},
		Lists:  []string{"ATTRIBUTE"},
	},
	"install": {
		Flags:  []string{"UPDATE", "NO_IMPORTS"},
		Values: []string{"INSTALL_FOLDER", "OUTPUT_FOLDER", "MANIFESTS", "LOCKFILE", "REMOTE"},
		Lists:  []string{"GENERATOR", "BUILD", "ENV", "OPTIONS", "PROFILE", "SETTINGS"},
	},
	"new": {
		Flags:  []string{"BARE", "TEST", "HEADER", "SOURCES"},
		Values: []string{"TEMPLATE"},
	},
	"package": {
		Values: []string{"BUILD_FOLDER", "INSTALL_FOLDER", "PACKAGE_FOLDER", "SOURCE_FOLDER"},
	},
	"profile list": {},
	"profile new": {
		Flags: []string{"DETECT", "FORCE"},
	},
	"profile show":   {},
	"profile update": {},
	"remote add": {
		Flags:  []string{"FORCE"},
		Values: []string{"INSERT"},
	},
	"remote clean":   {},
	"remote disable": {},
	"remote enable":  {},
	"remote list": {
		Flags: []string{"RAW"},
	},
	"remote list_ref": {},
	"remote remove":   {},
	"remote rename":   {},
	"remote update": {
		Values: []string{"INSERT"},
	},
	"remove": {
		Flags:  []string{"FORCE", "SRC", "OUTDATED", "LOCKS"},
		Values: []string{"QUERY", "REMOTE"},
		Lists:  []string{"BUILDS", "PACKAGES"},
	},
	"search": {
		Flags:  []string{"CASE_SENSITIVE", "RAW", "OUTDATED"},
		Values: []string{"QUERY", "TABLE", "REMOTE", "JSON"},
	},
	"source": {
		Values: []string{"SOURCE_FOLDER", "INSTALL_FOLDER"},
	},
	"test": {
		Flags:  []string{"UPDATE"},
		Values: []string{"TEST_BUILD_FOLDER", "PROFILE"},
		Lists:  []string{"BUILD", "SETTINGS", "OPTIONS", "ENV"},
	},
	"upload": {
		Flags:  []string{"ALL", "SKIP_UPLOAD", "CHECK", "FORCE", "CONFIRM", "NO_OVERWRITE"},
		Values: []string{"PACKAGE", "QUERY", "REMOTE", "RETRY", "RETRY_WAIT", "PARALLEL"},
	},
	"user": {
		Flags:  []string{"CLEAN", "SKIP_AUTH"},
		Values: []string{"PASSWORD", "REMOTE"},
	},
}

// Subcommands returns the declared subcommand names, sorted.
func Subcommands() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Spec returns the argument shapes declared for a subcommand.
func Spec(name string) (ArgSpec, bool) {
	spec, ok := commands[name]
	return spec, ok
}

// Run translates args for the named subcommand and invokes conan. Multi-word
// names ("remote add", "config install") become separate argv words.
func (t *Tool) Run(ctx context.Context, name string, args Args, opts RunOptions) (*Result, error) {
	spec, ok := commands[name]
	if !ok {
		return nil, fmt.Errorf("unknown conan subcommand %q", name)
	}
	argv := append(strings.Fields(name), Translate(spec, args)...)
	return t.Invoke(ctx, argv, opts)
}

// Install runs "conan install" with translated arguments.
func (t *Tool) Install(ctx context.Context, args Args, opts RunOptions) (*Result, error) {
	return t.Run(ctx, "install", args, opts)
}

// Export runs "conan export" with translated arguments.
func (t *Tool) Export(ctx context.Context, args Args, opts RunOptions) (*Result, error) {
	return t.Run(ctx, "export", args, opts)
}

// Upload runs "conan upload" with translated arguments.
func (t *Tool) Upload(ctx context.Context, args Args, opts RunOptions) (*Result, error) {
	return t.Run(ctx, "upload", args, opts)
}

// RemoteAdd runs "conan remote add" with translated arguments.
func (t *Tool) RemoteAdd(ctx context.Context, args Args, opts RunOptions) (*Result, error) {
	return t.Run(ctx, "remote add", args, opts)
}
