package rxn4chemistry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpoints(t *testing.T) {
	e, err := newEndpoints(DefaultBaseURL)
	require.NoError(t, err)

	base := "https://rxn.res.ibm.com/rxn/api/api/v1"
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"projects", e.projects().String(), base + "/projects"},
		{"attempts", e.attempts("p1").String(), base + "/projects/p1/attempts"},
		{"predict reaction", e.predictReaction().String(), base + "/predictions/pr"},
		{"prediction results", e.predictionResults("id1").String(), base + "/predictions/id1"},
		{"batch submit", e.predictReactionBatch().String(), base + "/predictions/pr-batch"},
		{"batch results", e.predictionBatchResults("t1").String(), base + "/predictions/batch/t1"},
		{"retrosynthesis", e.retrosynthesis().String(), base + "/retrosynthesis/rs"},
		{"retrosynthesis results", e.retrosynthesisResults("id1").String(), base + "/retrosynthesis/id1"},
		{"sequence pdf", e.retrosynthesisSequencePDF("id1", "s1").String(),
			base + "/retrosynthesis/id1/sequences/s1/download-pdf"},
		{"paragraph actions", e.paragraphActions().String(), base + "/paragraph-actions"},
		{"synthesis create", e.synthesisCreate().String(), base + "/synthesis/create-from-sequence"},
		{"synthesis status", e.synthesisStatus("sy1").String(), base + "/synthesis/sy1"},
		{"synthesis start", e.synthesisStart("sy1").String(), base + "/synthesis/sy1/start"},
		{"spectrometer report", e.spectrometerReport("sy1", "n1", 5).String(),
			base + "/synthesis/sy1/node/n1/action/5/spectrometer-report"},
		{"models", e.models().String(), base + "/models"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestNewEndpoints_TrailingSlash(t *testing.T) {
	e, err := newEndpoints("https://rxn.res.ibm.com/")
	require.NoError(t, err)
	assert.Equal(t, "https://rxn.res.ibm.com/rxn/api/api/v1/projects", e.projects().String())
}

func TestNewEndpoints_Invalid(t *testing.T) {
	_, err := newEndpoints("://nope")
	assert.Error(t, err)

	_, err = newEndpoints("no-scheme.example.com")
	assert.Error(t, err)
}
