package process

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuccessHeuristic(t *testing.T) {
	testCases := []struct {
		name      string
		succeeded bool
		stderr    []string
		success   bool
	}{
		{
			name:      "clean run",
			succeeded: true,
			success:   true,
		},
		{
			name:      "warning only",
			succeeded: true,
			stderr:    []string{"WARNING: Using incubator modules: jdk.incubator.jpackage"},
			success:   true,
		},
		{
			name:      "null line",
			succeeded: true,
			stderr:    []string{"null"},
			success:   true,
		},
		{
			name:      "defender notice",
			succeeded: true,
			stderr:    []string{"Scanning with Windows Defender took 3s", ""},
			success:   true,
		},
		{
			name:      "real error",
			succeeded: true,
			stderr:    []string{"WARNING: x", "Error: Invalid Option: [--bogus]"},
			success:   false,
		},
		{
			name:      "os failure with clean stderr",
			succeeded: false,
			success:   false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := &Output{Succeeded: tc.succeeded, Stderr: tc.stderr}
			assert.Equal(t, tc.success, out.Success())
			if tc.succeeded {
				assert.Equal(t, !tc.success, out.HasErrors())
			}
		})
	}
}

func TestErrorsFiltersNoise(t *testing.T) {
	out := &Output{Stderr: []string{"WARNING: a", "  ", "boom", "null", "bang"}}
	assert.Equal(t, []string{"boom", "bang"}, out.Errors())
	assert.Equal(t, []string{"WARNING: a", "  ", "boom", "null", "bang"}, out.Lines())
}
