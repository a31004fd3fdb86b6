package internal

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/conanbridge/conanbridge/internal/conanfile"
)

var (
	genGenerators []string
	genRequires   []string
	genOptions    []string
	genImports    []string
	genOutput     string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a conanfile.txt manifest",
	Long: `Generate writes the declarative conan manifest: generators, required
packages, options and import rules, fully replacing any previous file.`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringArrayVarP(&genGenerators, "generator", "g", nil, "Generator entry")
	generateCmd.Flags().StringArrayVarP(&genRequires, "require", "r", nil, "Required package (e.g. zlib/1.2.13)")
	generateCmd.Flags().StringArrayVarP(&genOptions, "option", "o", nil, "Package option (e.g. zlib:shared=True)")
	generateCmd.Flags().StringArrayVarP(&genImports, "import", "i", nil, "Import rule")
	generateCmd.Flags().StringVar(&genOutput, "output", "conanfile.txt", "Manifest path to write")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	c := &conanfile.Conanfile{
		Generators: genGenerators,
		Requires:   genRequires,
		Options:    genOptions,
		Imports:    genImports,
	}
	if err := c.WriteFile(genOutput); err != nil {
		return err
	}
	log.Info().Str("path", genOutput).Int("requires", len(genRequires)).Msg("wrote conan manifest")
	return nil
}
