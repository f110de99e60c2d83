package cmd

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rollkit/eigenda-client/da/eigenda"
	rollconf "github.com/rollkit/eigenda-client/pkg/config"
	"github.com/rollkit/eigenda-client/pkg/protofiles"
)

var (
	// GitSHA is set at build time
	GitSHA string

	// Version is set at build time
	Version = rollconf.Version
)

const flagShort = "short"

// NewVersionCmd shows the client build along with the payload protocols and
// disperser proto files it ships.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version info",
		RunE: func(cmd *cobra.Command, args []string) error {
			if Version == "" {
				return errors.New("version not set")
			}
			if short, _ := cmd.Flags().GetBool(flagShort); short {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), Version)
				return err
			}
			if GitSHA == "" {
				return errors.New("git SHA not set")
			}
			protos, err := protofiles.Files()
			if err != nil {
				return fmt.Errorf("listing proto files: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 0, 2, ' ', 0)
			_, err1 := fmt.Fprintf(w, "\neigenda version:\t%v\n", Version)
			_, err2 := fmt.Fprintf(w, "eigenda git sha:\t%v\n", GitSHA)
			_, err3 := fmt.Fprintf(w, "payload protocols:\t%s, %s (default %s)\n",
				eigenda.ProtocolV1, eigenda.ProtocolV2, rollconf.DefaultConfig.Dispersal.ProtocolVersion)
			_, err4 := fmt.Fprintf(w, "proto files:\t%s\n", strings.Join(protos, ", "))
			_, err5 := fmt.Fprintln(w, "")
			return errors.Join(err1, err2, err3, err4, err5, w.Flush())
		},
	}
	cmd.Flags().Bool(flagShort, false, "print only the client version")
	return cmd
}
