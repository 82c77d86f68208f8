package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BackCheck/justice-unveiled/internal/domain/evidence"
	"github.com/BackCheck/justice-unveiled/internal/infrastructure/database/postgres"
	"github.com/BackCheck/justice-unveiled/internal/infrastructure/database/postgres/repositories"
	"github.com/BackCheck/justice-unveiled/pkg/types/legal"
)

type requirementSeed struct {
	section   string
	framework legal.Framework
	name      string
	mandatory bool
	hint      string
}

// requirementSeeds is the baseline evidence requirement catalog.  The
// insert is idempotent on (section, framework, name), so re-running seed
// is safe.
var requirementSeeds = []requirementSeed{
	// Pakistani criminal sections
	{"PPC 420", legal.FrameworkPakistani, "FIR copy", true, "document"},
	{"PPC 420", legal.FrameworkPakistani, "Forged instrument or agreement", true, "document"},
	{"PPC 420", legal.FrameworkPakistani, "Financial transaction record", false, "document"},
	{"PPC 468", legal.FrameworkPakistani, "Original and forged document comparison", true, "document"},
	{"PPC 468", legal.FrameworkPakistani, "Handwriting or signature analysis", false, "expert_report"},
	{"PPC 471", legal.FrameworkPakistani, "Document tendered as genuine", true, "document"},
	{"PPC 506", legal.FrameworkPakistani, "Threat communication record", true, "communication"},
	{"PPC 506", legal.FrameworkPakistani, "Witness statement", false, "testimony"},
	{"PPC 365", legal.FrameworkPakistani, "Abduction witness statement", true, "testimony"},
	{"PPC 365", legal.FrameworkPakistani, "Last-seen location evidence", false, "location"},

	// Pakistani regulatory sections
	{"PECA 20", legal.FrameworkPakistani, "Offending online content capture", true, "screenshot"},
	{"PECA 20", legal.FrameworkPakistani, "Platform takedown correspondence", false, "communication"},
	{"PECA 21", legal.FrameworkPakistani, "Published private content capture", true, "screenshot"},
	{"PECA 24", legal.FrameworkPakistani, "Repeated contact log", true, "communication"},

	// International framework articles
	{"UDHR Art 5", legal.FrameworkInternational, "Medical examination report", true, "medical"},
	{"UDHR Art 5", legal.FrameworkInternational, "Detention condition testimony", false, "testimony"},
	{"UDHR Art 9", legal.FrameworkInternational, "Arrest record or absence thereof", true, "document"},
	{"ICCPR Art 9", legal.FrameworkInternational, "Detention order", true, "document"},
	{"ICCPR Art 9", legal.FrameworkInternational, "Habeas corpus filing", false, "document"},
	{"ICCPR Art 14", legal.FrameworkInternational, "Trial record", true, "document"},
	{"CAT Art 1", legal.FrameworkInternational, "Medical evidence of mistreatment", true, "medical"},
	{"CAT Art 1", legal.FrameworkInternational, "Perpetrator identification", false, "testimony"},
}

func newSeedCommand(cliCtx *CLIContext) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the evidence requirement catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := postgres.NewConnection(cliCtx.Config.Database, cliCtx.Logger)
			if err != nil {
				return err
			}
			defer conn.Close()

			repo := repositories.NewRequirementRepo(conn, cliCtx.Logger)
			ctx := cmd.Context()

			seeded := 0
			for _, s := range requirementSeeds {
				req, err := evidence.NewRequirement(s.section, s.framework, s.name, s.mandatory)
				if err != nil {
					return fmt.Errorf("invalid seed entry %q / %q: %w", s.section, s.name, err)
				}
				req.EvidenceTypeHint = s.hint
				if err := repo.Create(ctx, req); err != nil {
					return err
				}
				seeded++
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d evidence requirements\n", seeded)
			return nil
		},
	}
}
