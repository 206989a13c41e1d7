package cmd

import (
	"encoding/json"

	"lending/core"
	"lending/handler/views"

	"github.com/spf13/cobra"
)

var initMarketCmd = &cobra.Command{
	Use:     "init-market",
	Aliases: []string{"im"},
	Short:   "initialize the lending market",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		authority, e := cmd.Flags().GetString("authority")
		if e != nil || authority == "" {
			panic("invalid authority")
		}
		collateralMint, e := cmd.Flags().GetString("collateral")
		if e != nil || collateralMint == "" {
			panic("invalid collateral mint")
		}
		loanMint, e := cmd.Flags().GetString("loan")
		if e != nil || loanMint == "" {
			panic("invalid loan mint")
		}

		database := provideDatabase()
		defer database.Close()

		ledgerz := provideLedgerService(database)
		market, err := ledgerz.InitializeMarket(ctx, &core.InitializeMarketReq{
			Actor:          authority,
			CollateralMint: collateralMint,
			LoanMint:       loanMint,
		})
		if err != nil {
			cmd.PrintErrln("initialize market error:", err)
			return
		}

		printJSON(cmd, views.MarketView(market))
	},
}

var showMarketCmd = &cobra.Command{
	Use:     "show-market",
	Aliases: []string{"sm"},
	Short:   "show the lending market",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		market, err := provideMarketStore(database).Find(ctx)
		if err != nil {
			cmd.PrintErrln("find market error:", err)
			return
		}

		if market.ID == 0 {
			cmd.PrintErrln("market not initialized")
			return
		}

		printJSON(cmd, views.MarketView(market))
	},
}

func printJSON(cmd *cobra.Command, v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		panic(err)
	}

	cmd.Println(string(data))
}

func init() {
	rootCmd.AddCommand(initMarketCmd)
	rootCmd.AddCommand(showMarketCmd)

	initMarketCmd.Flags().StringP("authority", "a", "", "market authority id")
	initMarketCmd.Flags().StringP("collateral", "c", "", "collateral mint id")
	initMarketCmd.Flags().StringP("loan", "l", "", "loan mint id")
}
