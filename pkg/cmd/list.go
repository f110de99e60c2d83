package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	rollconf "github.com/rollkit/eigenda-client/pkg/config"
)

// NewListCmd returns the command printing the dispersal journal.
func NewListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List journaled dispersal requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ParseConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Store.Path == "" {
				return fmt.Errorf("%s is empty, the journal is not persisted", rollconf.FlagStorePath)
			}
			journal, err := OpenJournal(cfg)
			if err != nil {
				return err
			}
			defer journal.Close() //nolint:errcheck

			records, err := journal.List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 0, 2, ' ', 0)
			fmt.Fprintln(w, "REQUEST ID\tRESULT\tQUORUM\tSIZE\tSUBMITTED\tBATCH HEADER HASH\tBLOB INDEX")
			for _, r := range records {
				index := "-"
				hash := "-"
				if r.Confirmed() {
					index = fmt.Sprint(r.BlobIndex)
					hash = r.BatchHeaderHash.String()
				}
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
					r.RequestID, r.Result, r.QuorumID, r.DataSize, r.Submitted.Format(time.RFC3339), hash, index)
			}
			return w.Flush()
		},
	}
}
