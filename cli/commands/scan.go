package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dmaloney/lanprobe/internal/event"
	"github.com/dmaloney/lanprobe/internal/scan"
	"github.com/dmaloney/lanprobe/internal/util"
)

/**
 * Command to run a single headless scan and print the results
 */
func scanCmd() *cobra.Command {
	var cidr string
	var rangeStart string
	var rangeEnd string

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run a one-shot scan and print results",
		RunE: func(cmd *cobra.Command, args []string) error {
			defaultCidr := cidr

			if defaultCidr == "" {
				netInfo, err := util.GetNetworkInfo()

				if err != nil {
					return err
				}

				defaultCidr = netInfo.Cidr
			}

			appCore, err := util.CreateNewAppCore(defaultCidr)

			if err != nil {
				return err
			}

			if cidr != "" {
				appCore.SetRange([]string{cidr}, "", "")
			}

			if rangeStart != "" && rangeEnd != "" {
				appCore.SetRange(nil, rangeStart, rangeEnd)
			}

			events := make(chan *event.Event, 100)
			listenerId := appCore.RegisterEventListener(events)

			defer appCore.RemoveEventListener(listenerId)

			if err := appCore.StartScan(); err != nil {
				return err
			}

			for evt := range events {
				if evt.Type == event.ScanCompleteEventType ||
					evt.Type == event.ScanStoppedEventType {
					break
				}
			}

			printResults(appCore.Results(), appCore.Progress())

			return nil
		},
	}

	cmd.Flags().StringVar(&cidr, "cidr", "", "cidr block to scan")
	cmd.Flags().StringVar(&rangeStart, "start", "", "first address of a manual range")
	cmd.Flags().StringVar(&rangeEnd, "end", "", "last address of a manual range")

	return cmd
}

func printResults(results []*scan.HostResult, progress scan.Progress) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "IP\tSTATUS\tRESPONSIVE PORTS")

	for _, result := range results {
		status := "unreachable"

		if result.Reachable {
			status = "reachable"
		}

		ports := ""

		for _, r := range result.Ports {
			if !r.Responsive() {
				continue
			}

			if ports != "" {
				ports += ", "
			}

			ports += fmt.Sprintf("%d/%s", r.Port.Number, r.Port.Label)
		}

		fmt.Fprintf(w, "%s\t%s\t%s\n", result.IP, status, ports)
	}

	w.Flush()

	fmt.Printf(
		"\nscanned %d/%d hosts, %d reachable\n",
		progress.Completed,
		progress.Total,
		progress.Reachable,
	)
}
