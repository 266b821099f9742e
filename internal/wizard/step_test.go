package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRestartPolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    RestartPolicy
		wantErr bool
	}{
		{in: "", want: RestartKeepForm},
		{in: "keep", want: RestartKeepForm},
		{in: " Clear ", want: RestartClearForm},
		{in: "wipe", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRestartPolicy(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLayout(t *testing.T) {
	l, err := ParseLayout(3)
	require.NoError(t, err)
	assert.Equal(t, StepDashboard, l.Terminal())

	l, err = ParseLayout(4)
	require.NoError(t, err)
	assert.Equal(t, StepComplete, l.Terminal())

	_, err = ParseLayout(5)
	assert.Error(t, err)
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Healthcare Admin", RoleHealthcareAdmin.String())
	assert.Equal(t, "Govt. Official", RoleGovtOfficial.String())
	assert.Equal(t, "MedDash", TabPrimary.String())
	assert.Equal(t, "Network Optimization", TabNetworkOptimization.String())
	assert.Equal(t, "N/A", DisplayValue(""))
	assert.Equal(t, "7", DisplayValue("7"))
	assert.Equal(t, "Govt. Official | County", Form{OrganizationName: "County", Role: RoleGovtOfficial}.Profile())
}
