package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thesavant42/phonefinder/internal/ui"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <number>...",
	Short: "Look up one or more phone numbers and print the result",
	Example: `  phonefinder lookup +919876543210
  phonefinder lookup --export +18002345678 +447400123456`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		export, _ := cmd.Flags().GetBool("export")
		asJSON, _ := cmd.Flags().GetBool("json")
		explain, _ := cmd.Flags().GetBool("explain")
		showHistory, _ := cmd.Flags().GetBool("history")

		failed := 0
		for _, raw := range args {
			rec, err := a.session.Lookup(raw)
			if err != nil {
				ui.PrintError(fmt.Sprintf("%s: %v", raw, err))
				failed++
				continue
			}

			if asJSON {
				data, err := ui.MarshalRecord(rec)
				if err != nil {
					return err
				}
				fmt.Println(string(data))
			} else {
				ui.FprintRecord(os.Stdout, rec, a.cfg.HighSpamThreshold)
			}

			if explain {
				b, err := a.session.Explain(raw)
				if err != nil {
					return err
				}
				fmt.Printf("  repetition %.2f  sequence %.2f  short %.2f  line type %.2f\n\n",
					b.Repetition, b.Sequence, b.Short, b.LineType)
			}

			if export {
				path, err := ui.ExportLookupJSON(rec, a.cfg.ExportDir)
				if err != nil {
					return err
				}
				a.logger.Debug("exported lookup", "number", rec.PhoneNumber, "path", path)
				ui.PrintSuccess("Exported to " + path)
			}
		}

		if showHistory {
			entries, err := a.session.History()
			if err != nil {
				return err
			}
			ui.FprintHistory(os.Stdout, entries)
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d lookups failed", failed, len(args))
		}
		return nil
	},
}

func init() {
	lookupCmd.Flags().Bool("export", false, "Write each result to phone_lookup_<number>.json")
	lookupCmd.Flags().Bool("json", false, "Print results as JSON")
	lookupCmd.Flags().Bool("explain", false, "Print the spam score terms")
	lookupCmd.Flags().Bool("history", false, "Print the search history at the end")
}
