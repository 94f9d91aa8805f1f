package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ninja0404/launchpad-go-sdk/pkg/social"
	"github.com/ninja0404/launchpad-go-sdk/pkg/wallet"
)

func newSocialCmd(opts *globalOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "social",
		Short: "Profiles, comments and follows on the launchpad social service",
	}
	cmd.AddCommand(
		newSocialLoginCmd(opts),
		newSocialProfileCmd(opts),
		newSocialUpdateProfileCmd(opts),
		newSocialCommentsCmd(opts),
		newSocialCommentCmd(opts),
		newSocialFollowCmd(opts, true),
		newSocialFollowCmd(opts, false),
	)
	return cmd
}

func newSocialClient(opts *globalOpts) (*social.Client, error) {
	return social.New(opts.cfg.Social, social.WithLogger(opts.log))
}

// loggedIn returns a client with a session for the --keypair wallet.
func loggedIn(ctx context.Context, opts *globalOpts) (*social.Client, error) {
	if opts.keypair == "" {
		return nil, fmt.Errorf("signer is required (use --keypair or LAUNCHPAD_KEYPAIR)")
	}
	signer, err := wallet.Load(opts.keypair)
	if err != nil {
		return nil, err
	}
	c, err := newSocialClient(opts)
	if err != nil {
		return nil, err
	}
	if _, err := c.Login(ctx, signer); err != nil {
		return nil, err
	}
	return c, nil
}

func newSocialLoginCmd(opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Sign the login challenge and print the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opts.context(cmd)
			defer cancel()
			c, err := loggedIn(ctx, opts)
			if err != nil {
				return err
			}
			token, _ := c.Token()
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}

func newSocialProfileCmd(opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "profile [wallet]",
		Short: "Show a wallet's profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pk, err := parsePubkey("wallet", args[0])
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()
			c, err := newSocialClient(opts)
			if err != nil {
				return err
			}
			p, err := c.GetProfile(ctx, pk)
			if err != nil {
				return err
			}
			printJSON(cmd, p)
			return nil
		},
	}
}

func newSocialUpdateProfileCmd(opts *globalOpts) *cobra.Command {
	var username, bio, avatar, twitter string
	cmd := &cobra.Command{
		Use:   "update-profile",
		Short: "Update the signer's profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			var upd social.ProfileUpdate
			fields := []struct {
				flag string
				val  *string
				dst  **string
			}{
				{"username", &username, &upd.Username},
				{"bio", &bio, &upd.Bio},
				{"avatar-url", &avatar, &upd.AvatarURL},
				{"twitter", &twitter, &upd.Twitter},
			}
			for _, f := range fields {
				if cmd.Flags().Changed(f.flag) {
					*f.dst = f.val
				}
			}

			ctx, cancel := opts.context(cmd)
			defer cancel()
			c, err := loggedIn(ctx, opts)
			if err != nil {
				return err
			}
			p, err := c.UpdateProfile(ctx, upd)
			if err != nil {
				return err
			}
			printJSON(cmd, p)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "username")
	cmd.Flags().StringVar(&bio, "bio", "", "bio")
	cmd.Flags().StringVar(&avatar, "avatar-url", "", "avatar URL")
	cmd.Flags().StringVar(&twitter, "twitter", "", "twitter handle")
	return cmd
}

func newSocialCommentsCmd(opts *globalOpts) *cobra.Command {
	var (
		limit  int
		cursor string
	)
	cmd := &cobra.Command{
		Use:   "comments [launch]",
		Short: "List comments on a launch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			launchKey, err := parsePubkey("launch", args[0])
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()
			c, err := newSocialClient(opts)
			if err != nil {
				return err
			}
			page, err := c.ListComments(ctx, launchKey, limit, cursor)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, cm := range page.Comments {
				fmt.Fprintf(out, "%s  %s  %s\n", cm.CreatedAt.Format("2006-01-02 15:04"), cm.Author, cm.Text)
			}
			if page.NextCursor != "" {
				fmt.Fprintf(out, "next cursor: %s\n", page.NextCursor)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "page size")
	cmd.Flags().StringVar(&cursor, "cursor", "", "cursor from a previous page")
	return cmd
}

func newSocialCommentCmd(opts *globalOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "comment [launch] [text]",
		Short: "Post a comment on a launch as the signer",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			launchKey, err := parsePubkey("launch", args[0])
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()
			c, err := loggedIn(ctx, opts)
			if err != nil {
				return err
			}
			cm, err := c.PostComment(ctx, launchKey, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "comment %s posted\n", cm.ID)
			return nil
		},
	}
}

func newSocialFollowCmd(opts *globalOpts, follow bool) *cobra.Command {
	use, short := "follow [wallet]", "Follow a wallet"
	if !follow {
		use, short = "unfollow [wallet]", "Unfollow a wallet"
	}
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pk, err := parsePubkey("wallet", args[0])
			if err != nil {
				return err
			}
			ctx, cancel := opts.context(cmd)
			defer cancel()
			c, err := loggedIn(ctx, opts)
			if err != nil {
				return err
			}
			if follow {
				return c.Follow(ctx, pk)
			}
			return c.Unfollow(ctx, pk)
		},
	}
}
