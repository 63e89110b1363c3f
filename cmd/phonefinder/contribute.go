package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/thesavant42/phonefinder/internal/models"
	"github.com/thesavant42/phonefinder/internal/ui"
)

var contributeCmd = &cobra.Command{
	Use:   "contribute",
	Short: "Validate a contribution and print the record it would store",
	Long: `contribute checks a name, city and carrier for a phone number and prints the
reconciled record. The store only lives for this process, so nothing is kept
after the command exits. Without --phone or --carrier an interactive form is shown.`,
	Example: `  phonefinder contribute --phone +919876543210 --carrier Airtel
  phonefinder contribute --phone +12015550123 --carrier Verizon --name "Jane Roe" --city Hoboken`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		var c models.Contribution
		c.PhoneNumber, _ = cmd.Flags().GetString("phone")
		c.Carrier, _ = cmd.Flags().GetString("carrier")
		c.Name, _ = cmd.Flags().GetString("name")
		c.City, _ = cmd.Flags().GetString("city")

		if !cmd.Flags().Changed("phone") && !cmd.Flags().Changed("carrier") {
			c, err = ui.PromptForContribution(c)
			if err != nil {
				return err
			}
		}

		rec, err := a.session.Contribute(ui.CleanContribution(c))
		if err != nil {
			return err
		}

		ui.PrintSuccess("Thank you! Your contribution has been saved.")
		ui.FprintRecord(os.Stdout, rec, a.cfg.HighSpamThreshold)
		return nil
	},
}

func init() {
	contributeCmd.Flags().String("phone", "", "Phone number in international format (required)")
	contributeCmd.Flags().String("carrier", "", "Carrier name (required)")
	contributeCmd.Flags().String("name", "", "Caller name")
	contributeCmd.Flags().String("city", "", "City")
}
