package main

import (
	"fmt"

	solanarpc "github.com/gagliardetto/solana-go/rpc"
	"github.com/spf13/cobra"

	"github.com/ninja0404/launchpad-go-sdk/pkg/types"
)

// printSimResult prints the logs and returns the decoded program error, if any.
func printSimResult(cmd *cobra.Command, res *solanarpc.SimulateTransactionResponse) error {
	out := cmd.OutOrStdout()
	if res == nil || res.Value == nil {
		fmt.Fprintf(out, "no simulation result\n")
		return nil
	}
	if res.Value.UnitsConsumed != nil {
		fmt.Fprintf(out, "compute units: %d\n", *res.Value.UnitsConsumed)
	}
	if len(res.Value.Logs) > 0 {
		fmt.Fprintln(out, "logs:")
		for _, l := range res.Value.Logs {
			fmt.Fprintf(out, "  %s\n", l)
		}
	}
	if err := types.ParseSimulationError(res.Value.Err, res.Value.Logs); err != nil {
		return err
	}
	fmt.Fprintln(out, "simulation ok")
	return nil
}
