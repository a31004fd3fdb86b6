package internal

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conanbridge/conanbridge/internal/conan"
	"github.com/conanbridge/conanbridge/internal/detect"
	"github.com/conanbridge/conanbridge/internal/install"
)

var (
	installState      string
	installConanfile  string
	installFolder     string
	installConanPath  string
	installMinVersion string
	installGenerators []string
	installArch       string
	installProfile    string
	installProfiles   map[string]string
	installSettings   []string
	installBasicSetup bool
	installTargets    bool
	installKeepRPaths bool
	installNoOutDirs  bool
)

var installCmd = &cobra.Command{
	Use:   "install [reference] [-- conan-install-args...]",
	Short: "Install dependencies through conan and load the results",
	Long: `Install runs the full integration step: check the conan executable, infer
settings from the build state, run "conan install" (once per configuration
for multi-config hosts), and load the generated build information. With
--basic-setup it also emits an include script applying the results to the
host build's targets.

Arguments after "--" are forwarded to conan install, translated when they
match a declared name (BUILD=missing) and passed through verbatim otherwise.`,
	Args: cobra.ArbitraryArgs,
	RunE: runInstallCmd,
}

func init() {
	installCmd.Flags().StringVar(&installState, "state", "", "Build-state YAML file (required)")
	installCmd.Flags().StringVar(&installConanfile, "conanfile", "", "Conanfile path; wins over a package reference")
	installCmd.Flags().StringVar(&installFolder, "install-folder", "", "Where conan runs and writes output (default: build dir)")
	installCmd.Flags().StringVar(&installConanPath, "conan", "", "Explicit conan executable path")
	installCmd.Flags().StringVar(&installMinVersion, "min-version", "", "Required minimum conan version")
	installCmd.Flags().StringArrayVarP(&installGenerators, "generator", "g", nil, "Conan generator (default: cmake or cmake_multi)")
	installCmd.Flags().StringVar(&installArch, "arch", "", "Explicit architecture override")
	installCmd.Flags().StringVar(&installProfile, "profile", "", "Conan profile name")
	installCmd.Flags().StringToStringVar(&installProfiles, "profile-for", nil, "Per-configuration profile (e.g. Debug=dbg)")
	installCmd.Flags().StringArrayVarP(&installSettings, "setting", "s", nil, "Explicit name=value setting")
	installCmd.Flags().BoolVar(&installBasicSetup, "basic-setup", false, "Emit the setup include script after loading")
	installCmd.Flags().BoolVar(&installTargets, "cmake-targets", false, "Setup with target-based linkage")
	installCmd.Flags().BoolVar(&installKeepRPaths, "keep-rpaths", false, "Setup preserving rpaths")
	installCmd.Flags().BoolVar(&installNoOutDirs, "no-output-dirs", false, "Setup without overriding output directories")
	installCmd.MarkFlagRequired("state")
	rootCmd.AddCommand(installCmd)
}

func runInstallCmd(cmd *cobra.Command, args []string) error {
	e, err := detect.LoadEnv(installState)
	if err != nil {
		return err
	}

	var lookupOpts []conan.Option
	if installConanPath != "" {
		lookupOpts = append(lookupOpts, conan.WithPath(installConanPath))
	}
	if installMinVersion != "" {
		lookupOpts = append(lookupOpts, conan.WithMinVersion(installMinVersion))
	}
	tool, err := conan.Lookup(lookupOpts...)
	if err != nil {
		return err
	}

	reference := ""
	extra := args
	if len(args) > 0 && cmd.ArgsLenAtDash() != 0 {
		reference = args[0]
		extra = args[1:]
	}

	generators := installGenerators
	if len(generators) == 0 {
		// A preference recorded by an earlier check wins over the default.
		if g := conan.PreferredGenerator(""); g != "" {
			generators = []string{g}
		}
	}

	res, err := install.Run(context.Background(), tool, e, install.Options{
		Reference:     reference,
		ConanfilePath: installConanfile,
		InstallFolder: installFolder,
		Generators:    generators,
		Detect: detect.Options{
			Arch:            installArch,
			Profile:         installProfile,
			ProfileByConfig: installProfiles,
			Settings:        installSettings,
		},
		InstallArgs:  conan.ParseArgs(extra),
		BasicSetup:   installBasicSetup,
		CMakeTargets: installTargets,
		KeepRPaths:   installKeepRPaths,
		NoOutputDirs: installNoOutDirs,
	})
	if err != nil {
		return err
	}

	if res.SetupScript != "" {
		fmt.Println(res.SetupScript)
	}
	return nil
}
