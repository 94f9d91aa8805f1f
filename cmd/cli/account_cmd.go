package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ninja0404/launchpad-go-sdk/pkg/program/launchpad"
	"github.com/ninja0404/launchpad-go-sdk/pkg/program/pump"
)

func newAccountCmd(opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "account [pubkey]",
		Short: "Decode a launchpad or pump account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pub, err := parsePubkey("account", args[0])
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()

			data, err := newClient(opts).GetAccountData(ctx, pub)
			if err != nil {
				return fmt.Errorf("fetch account: %w", err)
			}
			name, decoded, err := decodeKnownAccount(data)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "account=%s\n", name)
			printJSON(cmd, decoded)
			return nil
		},
	}
}

type unmarshaler interface {
	Unmarshal([]byte) error
}

func decodeKnownAccount(data []byte) (string, interface{}, error) {
	if len(data) < 8 {
		return "", nil, fmt.Errorf("account data too short")
	}
	decoders := []struct {
		name string
		disc []byte
		new  func() unmarshaler
	}{
		{"launchpad.Launch", launchpad.LaunchDiscriminator, func() unmarshaler { return &launchpad.Launch{} }},
		{"launchpad.Contribution", launchpad.ContributionDiscriminator, func() unmarshaler { return &launchpad.Contribution{} }},
		{"pump.Global", pump.GlobalDiscriminator, func() unmarshaler { return &pump.Global{} }},
		{"pump.BondingCurve", pump.BondingCurveDiscriminator, func() unmarshaler { return &pump.BondingCurve{} }},
	}

	for _, d := range decoders {
		if bytes.Equal(data[:8], d.disc) {
			inst := d.new()
			if err := inst.Unmarshal(data); err != nil {
				return d.name, nil, err
			}
			return d.name, inst, nil
		}
	}
	return "", nil, fmt.Errorf("unknown discriminator %x", data[:8])
}
