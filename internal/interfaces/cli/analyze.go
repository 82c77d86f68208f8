package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BackCheck/justice-unveiled/internal/application/correlation"
	"github.com/BackCheck/justice-unveiled/internal/infrastructure/database/postgres"
	"github.com/BackCheck/justice-unveiled/internal/infrastructure/database/postgres/repositories"
)

func newAnalyzeCommand(cliCtx *CLIContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze <case-id>",
		Short: "Compute the correlation analysis for a case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := postgres.NewConnection(cliCtx.Config.Database, cliCtx.Logger)
			if err != nil {
				return err
			}
			defer conn.Close()

			svc := correlation.NewService(
				repositories.NewClaimRepo(conn, cliCtx.Logger),
				repositories.NewRequirementRepo(conn, cliCtx.Logger),
				repositories.NewLinkRepo(conn, cliCtx.Logger),
				repositories.NewFulfillmentRepo(conn, cliCtx.Logger),
				nil, cliCtx.Logger, nil)

			analysis, err := svc.Analyze(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(analysis)
			}

			fmt.Fprintf(out, "Case %s\n", analysis.CaseID)
			fmt.Fprintf(out, "  claims:               %d\n", analysis.TotalClaims)
			fmt.Fprintf(out, "  supported:            %d\n", analysis.SupportedClaims)
			fmt.Fprintf(out, "  partially supported:  %d\n", analysis.PartiallySupported)
			fmt.Fprintf(out, "  unsupported:          %d\n", analysis.UnsupportedClaims)
			fmt.Fprintf(out, "  unverified:           %d\n", analysis.UnverifiedClaims)
			fmt.Fprintf(out, "  average score:        %.1f\n", analysis.AverageSupportScore)
			fmt.Fprintf(out, "  missing mandatory:    %d\n", analysis.MissingMandatoryEvidence)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the analysis as JSON")
	return cmd
}
