package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rollkit/eigenda-client/types"
)

const (
	flagFile     = "file"
	flagWait     = "wait"
	flagRetrieve = "retrieve"
)

// NewDisperseCmd returns the command that submits a blob for dispersal.
func NewDisperseCmd(newInvoker InvokerProvider) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "disperse [data]",
		Short: "Submit a blob for dispersal",
		Long: `Submit a blob for dispersal to the configured quorum. The blob is the argument,
or the contents of --file ("-" reads stdin). With --wait the command polls until the
request reaches a terminal state; with --retrieve it then fetches the blob back.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readBlob(cmd, args)
			if err != nil {
				return err
			}
			wait, err := cmd.Flags().GetBool(flagWait)
			if err != nil {
				return err
			}
			retrieve, err := cmd.Flags().GetBool(flagRetrieve)
			if err != nil {
				return err
			}
			if retrieve && !wait {
				return fmt.Errorf("--%s requires --%s", flagRetrieve, flagWait)
			}

			s, err := newSession(cmd, newInvoker)
			if err != nil {
				return err
			}
			defer s.Close()

			resp, err := s.client.Disperse(s.ctx, data, s.cfg.Dispersal.QuorumID)
			if err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), resp); err != nil {
				return err
			}
			if !wait {
				return nil
			}
			if resp.Result() == types.ResultFailed || resp.RequestID() == "" {
				return fmt.Errorf("dispersal was not accepted: %s", resp.Result())
			}

			status, err := s.client.WaitForConfirmation(s.ctx, resp.RequestID(), PollPolicy(s.cfg))
			if err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), status); err != nil {
				return err
			}
			if !status.IsConfirmed() {
				return fmt.Errorf("dispersal %s ended in state %s", resp.RequestID(), status.Result())
			}
			if !retrieve {
				return nil
			}

			hash, err := status.BatchHeaderHash()
			if err != nil {
				return err
			}
			index, err := status.BlobIndex()
			if err != nil {
				return err
			}
			blob, err := s.client.Retrieve(s.ctx, hash, index)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(blob, '\n'))
			return err
		},
	}
	cmd.Flags().String(flagFile, "", "read the blob from a file (\"-\" for stdin)")
	cmd.Flags().Bool(flagWait, false, "wait for a terminal status")
	cmd.Flags().Bool(flagRetrieve, false, "retrieve the blob once confirmed (requires --wait)")
	return cmd
}

// NewStatusCmd returns the command that polls a request once.
func NewStatusCmd(newInvoker InvokerProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "status <request-id>",
		Short: "Show the current status of a dispersal request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, newInvoker)
			if err != nil {
				return err
			}
			defer s.Close()

			status, err := s.client.GetStatus(s.ctx, types.RequestID(args[0]))
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), status)
		},
	}
}

// NewWaitCmd returns the command that polls a request until it is terminal.
func NewWaitCmd(newInvoker InvokerProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "wait <request-id>",
		Short: "Poll a dispersal request until it reaches a terminal state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, newInvoker)
			if err != nil {
				return err
			}
			defer s.Close()

			status, err := s.client.WaitForConfirmation(s.ctx, types.RequestID(args[0]), PollPolicy(s.cfg))
			if status != nil {
				if perr := printJSON(cmd.OutOrStdout(), status); perr != nil {
					return errors.Join(err, perr)
				}
			}
			return err
		},
	}
}

// NewRetrieveCmd returns the command that fetches a dispersed blob.
func NewRetrieveCmd(newInvoker InvokerProvider) *cobra.Command {
	return &cobra.Command{
		Use:   "retrieve <batch-header-hash> <blob-index> | retrieve <request-id>",
		Short: "Retrieve a dispersed blob",
		Long: `Retrieve a dispersed blob by its batch header hash and blob index. Given a single
request id, the coordinates are taken from the dispersal journal.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, newInvoker)
			if err != nil {
				return err
			}
			defer s.Close()

			var (
				hash  types.BatchHeaderHash
				index uint64
			)
			if len(args) == 2 {
				hash = types.BatchHeaderHash(args[0])
				index, err = strconv.ParseUint(args[1], 10, 64)
				if err != nil {
					return fmt.Errorf("invalid blob index %q: %w", args[1], err)
				}
			} else {
				rec, err := s.journal.Get(s.ctx, types.RequestID(args[0]))
				if err != nil {
					return err
				}
				if !rec.Confirmed() {
					return fmt.Errorf("request %s is not confirmed (%s)", rec.RequestID, rec.Result)
				}
				hash, index = rec.BatchHeaderHash, rec.BlobIndex
			}

			blob, err := s.client.Retrieve(s.ctx, hash, index)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(blob, '\n'))
			return err
		},
	}
}

func readBlob(cmd *cobra.Command, args []string) ([]byte, error) {
	file, err := cmd.Flags().GetString(flagFile)
	if err != nil {
		return nil, err
	}
	switch {
	case file != "" && len(args) > 0:
		return nil, fmt.Errorf("pass the blob as an argument or with --%s, not both", flagFile)
	case file == "-":
		return io.ReadAll(cmd.InOrStdin())
	case file != "":
		return os.ReadFile(file) //nolint:gosec
	case len(args) == 1:
		return []byte(args[0]), nil
	}
	return nil, errors.New("no blob given")
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
