package main

import (
	"net/url"

	"github.com/spf13/cobra"

	"invoicer/internal/api"
	"invoicer/internal/config"
)

func newListCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var (
		queryText string
		sortField string
		direction string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invoice records",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				query := url.Values{}
				setIfNotEmpty(query, "q", queryText)
				setIfNotEmpty(query, "sort", sortField)
				setIfNotEmpty(query, "direction", direction)

				resp, err := client.ListInvoices(cmd.Context(), query)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				return writeInvoiceList(resp)
			})
		},
	}

	cmd.Flags().StringVarP(&queryText, "query", "q", "", "filter by client, company, or invoice number")
	cmd.Flags().StringVar(&sortField, "sort", "", "sort field (invoice_number, client_name, invoice_date, service_date, service_description, total, generated)")
	cmd.Flags().StringVar(&direction, "direction", "", "sort direction (asc, desc)")

	return cmd
}

func setIfNotEmpty(query url.Values, key, value string) {
	if value != "" {
		query.Set(key, value)
	}
}
