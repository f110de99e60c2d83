package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	rollconf "github.com/rollkit/eigenda-client/pkg/config"
	"github.com/rollkit/eigenda-client/pkg/protofiles"
)

const flagOverwriteProto = "overwrite-proto"

// NewInitCmd returns the command writing a default eigenda.yaml and the disperser
// proto files to the home directory.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: fmt.Sprintf("Initialize a new %s file and the disperser proto files", rollconf.ConfigFileName),
		Long: fmt.Sprintf(`This command initializes a new %s file in the home directory and writes the
disperser proto files the grpcurl transport needs. Flags given to init are stored in the file.`, rollconf.ConfigFileName),
		RunE: func(cmd *cobra.Command, args []string) error {
			homePath, err := cmd.Flags().GetString(rollconf.FlagRootDir)
			if err != nil {
				return fmt.Errorf("error reading home flag: %w", err)
			}
			if homePath == "" {
				return fmt.Errorf("home path is required")
			}

			configFilePath := filepath.Join(homePath, rollconf.ConfigFileName)
			if _, err := os.Stat(configFilePath); err == nil {
				return fmt.Errorf("%s file already exists in the specified directory", rollconf.ConfigFileName)
			}

			if err := rollconf.EnsureRoot(homePath); err != nil {
				return err
			}

			config, err := rollconf.LoadConfig(cmd, homePath)
			if err != nil {
				return fmt.Errorf("error loading config: %w", err)
			}
			if err := config.Validate(); err != nil {
				return err
			}

			if err := rollconf.WriteYamlConfig(config); err != nil {
				return fmt.Errorf("error writing %s file: %w", rollconf.ConfigFileName, err)
			}

			overwrite, err := cmd.Flags().GetBool(flagOverwriteProto)
			if err != nil {
				return fmt.Errorf("error reading %s flag: %w", flagOverwriteProto, err)
			}
			protoDir := config.ResolvePath(config.DA.ProtoPath)
			written, err := protofiles.Setup(protoDir, overwrite)
			if err != nil {
				return fmt.Errorf("failed to write proto files: %w", err)
			}

			cmd.Printf("Initialized %s file in %s\n", rollconf.ConfigFileName, homePath)
			cmd.Printf("Wrote %d proto files to %s\n", len(written), protoDir)
			return nil
		},
	}
	cmd.Flags().Bool(flagOverwriteProto, false, "Replace proto files that already exist")
	return cmd
}
