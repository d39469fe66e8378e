package main

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopdash/backend/internal/domain/partner"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// filtersReport is what the customer list derives from one query string
type filtersReport struct {
	URLFilters partner.CustomerListURLFilters `yaml:"urlFilters"`
	Variables  partner.CustomerFilterInput    `yaml:"variables"`
	Applied    bool                           `yaml:"applied"`
}

func newFiltersCmd() *cobra.Command {
	var permissions []string
	cmd := &cobra.Command{
		Use:   "filters <query>",
		Short: "Show the filter variables of a customer list query",
		Long: `Translate a customer list query string into the variables sent to the
customer query, restricted to the given permissions. Example:
  dashctl filters 'joinedFrom=2024-01-01&numberOfOrdersFrom=2' --permissions MANAGE_ORDERS`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := url.ParseQuery(strings.TrimPrefix(args[0], "?"))
			if err != nil {
				return fmt.Errorf("invalid query: %w", err)
			}
			report := buildFiltersReport(params, permissions)

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(report); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().StringSliceVar(&permissions, "permissions", nil, "Permissions of the viewing staff member")
	return cmd
}

func buildFiltersReport(params url.Values, permissions []string) filtersReport {
	urlFilters := partner.ParseCustomerListURLFilters(params)
	return filtersReport{
		URLFilters: urlFilters,
		Variables:  partner.RestrictFilterVariables(partner.GetFilterVariables(urlFilters), permissions),
		Applied:    partner.AreFiltersApplied(params),
	}
}
