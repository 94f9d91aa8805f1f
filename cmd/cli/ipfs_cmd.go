package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ninja0404/launchpad-go-sdk/pkg/ipfs"
)

func newIPFSCmd(opts *globalOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ipfs",
		Short: "Pin token assets through the configured pinning service",
	}
	cmd.AddCommand(newIPFSUploadCmd(opts))
	return cmd
}

func newIPFSUploadCmd(opts *globalOpts) *cobra.Command {
	var (
		meta  ipfs.TokenMetadata
		image string
	)
	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Pin a token image and metadata JSON, print the metadata URI",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ipfs.New(opts.cfg.IPFS, ipfs.WithLogger(opts.log))
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()

			var (
				img     io.Reader
				imgName string
			)
			if image != "" {
				f, err := os.Open(image)
				if err != nil {
					return fmt.Errorf("open image: %w", err)
				}
				defer f.Close()
				img, imgName = f, filepath.Base(image)
			}
			uri, err := client.UploadTokenMetadata(ctx, meta, img, imgName)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), uri)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&meta.Name, "name", "", "token name")
	f.StringVar(&meta.Symbol, "symbol", "", "token symbol")
	f.StringVar(&meta.Description, "description", "", "description")
	f.StringVar(&meta.Twitter, "twitter", "", "twitter URL")
	f.StringVar(&meta.Telegram, "telegram", "", "telegram URL")
	f.StringVar(&meta.Website, "website", "", "website URL")
	f.BoolVar(&meta.ShowName, "show-name", true, "show the name on the token page")
	f.StringVar(&image, "image", "", "image file")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("symbol")
	return cmd
}
