package cmd

import (
	"time"

	sessionservice "lending/service/session"

	"github.com/asaskevich/govalidator"
	"github.com/spf13/cobra"
)

var issueTokenCmd = &cobra.Command{
	Use:     "issue-token",
	Aliases: []string{"it"},
	Short:   "issue an access token for a user",
	Run: func(cmd *cobra.Command, args []string) {
		user, e := cmd.Flags().GetString("user")
		if e != nil || !govalidator.IsUUID(user) {
			panic("invalid user")
		}

		exp, e := cmd.Flags().GetDuration("exp")
		if e != nil {
			panic("invalid exp")
		}

		token, err := sessionservice.Issue(cfg.App.SessionSecret, user, exp)
		if err != nil {
			cmd.PrintErrln("issue token error:", err)
			return
		}

		cmd.Println(token)
	},
}

func init() {
	rootCmd.AddCommand(issueTokenCmd)

	issueTokenCmd.Flags().StringP("user", "u", "", "user id")
	issueTokenCmd.Flags().DurationP("exp", "e", 24*time.Hour, "token lifetime")
}
