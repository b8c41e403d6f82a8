package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/finplan/internal/calc"
	"github.com/theirongolddev/finplan/internal/cli"

	"github.com/spf13/cobra"
)

var (
	flagSIPMonthly float64
	flagSIPStart   string
	flagSIPReturn  float64
)

var sipCmd = &cobra.Command{
	Use:   "sip",
	Short: "Project a single SIP without touching the saved draft",
	Args:  cobra.NoArgs,
	RunE:  runSIP,
}

func init() {
	sipCmd.Flags().Float64Var(&flagSIPMonthly, "monthly", 0, "Monthly contribution")
	sipCmd.Flags().StringVar(&flagSIPStart, "start", "", "Start month (YYYY-MM)")
	sipCmd.Flags().Float64Var(&flagSIPReturn, "return", 12, "Expected annual return (%)")
	rootCmd.AddCommand(sipCmd)
}

func runSIP(_ *cobra.Command, _ []string) error {
	if flagSIPStart == "" {
		return errors.New("--start is required (YYYY-MM)")
	}

	months := calc.MonthsBetween(flagSIPStart, time.Now())
	invested := flagSIPMonthly * float64(months)
	if months == 0 || flagSIPMonthly <= 0 {
		invested = 0
	}
	value := calc.SIPFutureValue(flagSIPMonthly, months, flagSIPReturn)

	fmt.Println()
	fmt.Println(cli.RenderTitle("SIP Projection"))
	fmt.Println()
	fmt.Println(cli.RenderKV([][2]string{
		{"Monthly", calc.FormatCurrency(flagSIPMonthly)},
		{"Start", flagSIPStart},
		{"Months", cli.FormatMonths(months)},
		{"Return", fmt.Sprintf("%.2f%% p.a.", flagSIPReturn)},
		{"Invested", calc.FormatCurrency(invested)},
		{"Est. Value", cli.RenderMoney(calc.FormatCurrency(value))},
	}))
	fmt.Println()
	return nil
}
