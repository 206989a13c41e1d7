package cmd

import (
	"lending/pkg/number"

	"github.com/spf13/cobra"
)

var createTokenAccountCmd = &cobra.Command{
	Use:     "create-token-account",
	Aliases: []string{"cta"},
	Short:   "create a token account for an owner and mint",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		owner, e := cmd.Flags().GetString("owner")
		if e != nil || owner == "" {
			panic("invalid owner")
		}
		mint, e := cmd.Flags().GetString("mint")
		if e != nil || mint == "" {
			panic("invalid mint")
		}

		database := provideDatabase()
		defer database.Close()

		tokenz := provideTokenService(database, provideTokenStore(database))
		account, err := tokenz.CreateAccount(ctx, owner, mint)
		if err != nil {
			cmd.PrintErrln("create token account error:", err)
			return
		}

		printJSON(cmd, account)
	},
}

var mintTokenCmd = &cobra.Command{
	Use:     "mint-token",
	Aliases: []string{"mt"},
	Short:   "mint tokens into a token account",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		address, e := cmd.Flags().GetString("address")
		if e != nil || address == "" {
			panic("invalid address")
		}
		raw, e := cmd.Flags().GetString("amount")
		if e != nil || raw == "" {
			panic("invalid amount")
		}
		amount, e := number.ParseAmount(raw)
		if e != nil {
			panic("invalid amount")
		}

		database := provideDatabase()
		defer database.Close()

		tokenz := provideTokenService(database, provideTokenStore(database))
		account, err := tokenz.Mint(ctx, address, amount)
		if err != nil {
			cmd.PrintErrln("mint token error:", err)
			return
		}

		printJSON(cmd, account)
	},
}

func init() {
	rootCmd.AddCommand(createTokenAccountCmd)
	rootCmd.AddCommand(mintTokenCmd)

	createTokenAccountCmd.Flags().StringP("owner", "o", "", "owner id")
	createTokenAccountCmd.Flags().StringP("mint", "m", "", "mint id")

	mintTokenCmd.Flags().StringP("address", "d", "", "token account address")
	mintTokenCmd.Flags().StringP("amount", "q", "", "amount")
}
