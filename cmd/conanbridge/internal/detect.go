package internal

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conanbridge/conanbridge/internal/detect"
)

var (
	detectState     string
	detectArch      string
	detectBuildType string
	detectProfile   string
	detectProfiles  map[string]string
	detectSettings  []string
	detectInclude   []string
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Infer conan settings from the detected build state",
	Long: `Detect loads the build-state file the CMake side exported and prints the
conan settings arguments inferred from it, one per line.`,
	Args: cobra.NoArgs,
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().StringVar(&detectState, "state", "", "Build-state YAML file (required)")
	detectCmd.Flags().StringVar(&detectArch, "arch", "", "Explicit architecture override")
	detectCmd.Flags().StringVar(&detectBuildType, "build-type", "", "Build configuration override")
	detectCmd.Flags().StringVar(&detectProfile, "profile", "", "Conan profile name")
	detectCmd.Flags().StringToStringVar(&detectProfiles, "profile-for", nil, "Per-configuration profile (e.g. Debug=dbg)")
	detectCmd.Flags().StringArrayVarP(&detectSettings, "setting", "s", nil, "Explicit name=value setting, appended after inferred ones")
	detectCmd.Flags().StringArrayVar(&detectInclude, "include", nil, "Restrict which settings are auto-included")
	detectCmd.MarkFlagRequired("state")
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	e, err := detect.LoadEnv(detectState)
	if err != nil {
		return err
	}

	profile, err := detect.Detect(e, detect.Options{
		Arch:            detectArch,
		BuildType:       detectBuildType,
		Profile:         detectProfile,
		ProfileByConfig: detectProfiles,
		Settings:        detectSettings,
		Include:         detectInclude,
	})
	if err != nil {
		return err
	}

	if profile.OS != "" {
		color.Cyan("os: %s", profile.OS)
	}
	for _, s := range profile.Settings {
		fmt.Printf("-s %s=%s\n", s.Name, s.Value)
	}
	if profile.Name != "" {
		fmt.Printf("-pr %s\n", profile.Name)
	}
	return nil
}
