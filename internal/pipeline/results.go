package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
)

// RegionResult is one spotted text region. Box corners follow the
// top-left, top-right, bottom-right, bottom-left winding in image pixels.
type RegionResult struct {
	Box         [4][2]float64 `json:"box"`
	Text        string        `json:"text"`
	Confidence  float64       `json:"confidence"`
	Orientation string        `json:"orientation"`
}

// Result holds all accepted regions for one image in discovery order.
type Result struct {
	Width   int            `json:"width"`
	Height  int            `json:"height"`
	Regions []RegionResult `json:"regions"`
}

// ToJSON renders the result as indented JSON.
func (r *Result) ToJSON() (string, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling result: %w", err)
	}
	return string(data), nil
}

// ToPlainText renders one line of recognized text per region.
func (r *Result) ToPlainText() string {
	var sb strings.Builder
	for _, region := range r.Regions {
		sb.WriteString(region.Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ToCSV renders a header row plus one row per region, with the box
// flattened to eight coordinate columns.
func (r *Result) ToCSV() (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	header := []string{"text", "confidence", "orientation",
		"x0", "y0", "x1", "y1", "x2", "y2", "x3", "y3"}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("writing CSV header: %w", err)
	}
	for _, region := range r.Regions {
		row := []string{
			region.Text,
			fmt.Sprintf("%.4f", region.Confidence),
			region.Orientation,
		}
		for _, corner := range region.Box {
			row = append(row,
				fmt.Sprintf("%.2f", corner[0]),
				fmt.Sprintf("%.2f", corner[1]))
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("writing CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flushing CSV: %w", err)
	}
	return sb.String(), nil
}
