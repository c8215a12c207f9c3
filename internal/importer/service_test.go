package importer_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/acquitrack/internal/importer"
)

func TestService_Import(t *testing.T) {
	const file = "Name,CAGE Code,DUNS\nAcme Corp,1A2B3,123456789\n"

	svc := importer.NewService()

	rows, err := svc.Import(importer.SourceAuto, strings.NewReader(file))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Acme Corp", rows[0].Name)

	_, err = svc.Import(importer.SourceSAM, strings.NewReader(file))
	assert.ErrorContains(t, err, "no vendor header found")

	_, err = svc.Import("fpds", strings.NewReader(file))
	assert.ErrorContains(t, err, "unknown vendor file source")
}
