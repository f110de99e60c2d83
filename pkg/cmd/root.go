package cmd

import (
	"github.com/spf13/cobra"

	rollconf "github.com/rollkit/eigenda-client/pkg/config"
)

// NewRootCmd returns the eigenda command tree. Client commands dispatch through
// the transports built by newInvoker.
func NewRootCmd(newInvoker InvokerProvider) *cobra.Command {
	root := &cobra.Command{
		Use:           rollconf.AppName,
		Short:         "Disperse, track and retrieve blobs on EigenDA",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rollconf.AddGlobalFlags(root, rollconf.AppName)
	rollconf.AddFlags(root)

	root.AddCommand(
		NewInitCmd(),
		NewDisperseCmd(newInvoker),
		NewStatusCmd(newInvoker),
		NewWaitCmd(newInvoker),
		NewRetrieveCmd(newInvoker),
		NewParseBlobCmd(),
		NewListCmd(),
		NewVersionCmd(),
	)
	return root
}
