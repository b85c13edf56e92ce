package pipeline_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/MeKo-Tech/textspot/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *pipeline.Result {
	return &pipeline.Result{
		Width:  640,
		Height: 480,
		Regions: []pipeline.RegionResult{
			{
				Box:         [4][2]float64{{10, 20}, {110, 20}, {110, 50}, {10, 50}},
				Text:        "hello",
				Confidence:  0.93,
				Orientation: "horizontal",
			},
			{
				Box:         [4][2]float64{{200, 30}, {230, 30}, {230, 130}, {200, 130}},
				Text:        "world",
				Confidence:  0.81,
				Orientation: "vertical",
			},
		},
	}
}

func TestToJSONRoundTrip(t *testing.T) {
	out, err := sampleResult().ToJSON()
	require.NoError(t, err)

	var decoded pipeline.Result
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, *sampleResult(), decoded)
}

func TestToPlainText(t *testing.T) {
	assert.Equal(t, "hello\nworld\n", sampleResult().ToPlainText())
}

func TestToPlainTextEmpty(t *testing.T) {
	res := &pipeline.Result{}
	assert.Equal(t, "", res.ToPlainText())
}

func TestToCSV(t *testing.T) {
	out, err := sampleResult().ToCSV()
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "text,confidence,orientation")
	assert.True(t, strings.HasPrefix(lines[1], "hello,0.9300,horizontal,10.00,20.00"))
	assert.True(t, strings.HasPrefix(lines[2], "world,0.8100,vertical"))
}
