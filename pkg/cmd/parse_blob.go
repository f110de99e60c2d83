package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rollkit/eigenda-client/da/eigenda"
)

const flagJSON = "json"

// NewParseBlobCmd returns the command decoding a status reply pasted from grpcurl output.
func NewParseBlobCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse-blob",
		Short: "Decode a blob status reply",
		Long: `Decode a GetBlobStatus reply as printed by grpcurl and print the decoded status.
The reply is taken from --json or, when omitted, from stdin.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := cmd.Flags().GetString(flagJSON)
			if err != nil {
				return err
			}
			if raw == "" {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return err
				}
				raw = string(data)
			}
			if strings.TrimSpace(raw) == "" {
				return fmt.Errorf("no status given, use --%s or stdin", flagJSON)
			}

			status, err := eigenda.NewParser(eigenda.PropagateError, nil).ParseStatus([]byte(raw))
			if err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), status); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "result: %s\n", status.Result())
			if !status.IsConfirmed() {
				return nil
			}
			hash, _ := status.BatchHeaderHash()
			index, _ := status.BlobIndex()
			fmt.Fprintf(out, "batch header hash: %s\nblob index: %d\n", hash, index)
			if err := status.ValidateBasic(); err != nil {
				fmt.Fprintf(out, "validation: %v\n", err)
			} else {
				fmt.Fprintln(out, "validation: ok")
			}
			return nil
		},
	}
	cmd.Flags().StringP(flagJSON, "j", "", "status reply to decode")
	return cmd
}
