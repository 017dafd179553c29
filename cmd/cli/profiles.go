package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/mrios/netrecon/internal/profiles"
)

const profileDetailSeparator = 50

// profilesCmd represents the profiles command.
var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Inspect the available scan profiles",
	Long: `View the fixed set of scan profiles that define scanning depth and
speed. Each profile maps to a fixed argument list for the external tool.`,
	Example: `  netrecon profiles list
  netrecon profiles show vulnerability`,
}

// profilesListCmd represents the profiles list command.
var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available scan profiles",
	Run:   runProfilesList,
}

// profilesShowCmd represents the profiles show command.
var profilesShowCmd = &cobra.Command{
	Use:   "show <profile-name>",
	Short: "Show details of a specific scan profile",
	Args:  cobra.ExactArgs(1),
	Run:   runProfilesShow,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
	profilesCmd.AddCommand(profilesListCmd)
	profilesCmd.AddCommand(profilesShowCmd)
}

func runProfilesList(_ *cobra.Command, _ []string) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Name", "Arguments", "Estimated", "Timeout", "Description")

	for _, profile := range profiles.List() {
		_ = table.Append([]string{
			profile.Name,
			strings.Join(profile.Args, " "),
			profile.Estimated,
			profile.Timeout.String(),
			profile.Description,
		})
	}

	_ = table.Render()

	fmt.Println("\nUse 'netrecon profiles show <name>' to view profile details")
	fmt.Println("Use 'netrecon scan <target> --profile <name>' to run a scan")
}

func runProfilesShow(_ *cobra.Command, args []string) {
	profile, err := profiles.Resolve(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Profile: %s\n", profile.Name)
	fmt.Println(strings.Repeat("=", profileDetailSeparator))
	fmt.Printf("Description: %s\n", profile.Description)
	fmt.Printf("Arguments: %s\n", strings.Join(profile.Args, " "))
	fmt.Printf("Estimated time: %s\n", profile.Estimated)
	fmt.Printf("Timeout: %s\n", profile.Timeout)

	fmt.Printf("\nTo use this profile:\n")
	fmt.Printf("  netrecon scan <target> --profile %s\n", profile.Name)
}
