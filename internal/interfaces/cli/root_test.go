package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BackCheck/justice-unveiled/internal/domain/catalog"
	"github.com/BackCheck/justice-unveiled/internal/domain/evidence"
)

func TestNewRootCommand_Subcommands(t *testing.T) {
	t.Parallel()

	root := NewRootCommand()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "migrate")
	assert.Contains(t, names, "seed")
	assert.Contains(t, names, "analyze")
}

func TestRequirementSeeds_Valid(t *testing.T) {
	t.Parallel()

	for _, s := range requirementSeeds {
		req, err := evidence.NewRequirement(s.section, s.framework, s.name, s.mandatory)
		require.NoError(t, err, "seed %s / %s", s.section, s.name)
		assert.Equal(t, s.section, req.LegalSection)
		assert.True(t, catalog.KnownSection(s.section, s.framework),
			"seed section %s should be in the %s catalog", s.section, s.framework)
	}
}

func TestRequirementSeeds_EverySectionHasMandatory(t *testing.T) {
	t.Parallel()

	mandatory := make(map[string]bool)
	sections := make(map[string]bool)
	for _, s := range requirementSeeds {
		key := s.section + "|" + string(s.framework)
		sections[key] = true
		if s.mandatory {
			mandatory[key] = true
		}
	}
	for key := range sections {
		assert.True(t, mandatory[key], "section %s has no mandatory requirement", key)
	}
}
