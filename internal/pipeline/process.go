package pipeline

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/MeKo-Tech/textspot/internal/common"
	"github.com/MeKo-Tech/textspot/internal/detector"
	"github.com/MeKo-Tech/textspot/internal/recognizer"
	"github.com/MeKo-Tech/textspot/internal/rectify"
)

// Detect runs the full pipeline on one image: preprocess, detection
// network, region extraction, then per region rectification, recognition
// and decoding, and finally acceptance filtering. A nil or zero-sized image
// yields an empty result, not an error; errors only arise from model
// invocation or model contract violations.
func (p *Pipeline) Detect(ctx context.Context, img image.Image) (*Result, error) {
	timer := common.StartTimer("detect")
	res := &Result{Regions: []RegionResult{}}
	if img == nil {
		return res, nil
	}
	b := img.Bounds()
	res.Width, res.Height = b.Dx(), b.Dy()
	if res.Width <= 0 || res.Height <= 0 {
		return res, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	input, remap := preprocessDetection(img, p.cfg)
	probMap, err := p.det.Infer(ctx, input)
	input.Release()
	if err != nil {
		return nil, fmt.Errorf("detection inference: %w", err)
	}
	if len(probMap.Data) != probMap.Width*probMap.Height || probMap.Width <= 0 {
		return nil, fmt.Errorf("%w: detection returned %d values for %dx%d map",
			ErrModelOutput, len(probMap.Data), probMap.Width, probMap.Height)
	}

	denormalizeMap(probMap, p.cfg.Detector.FullScale)
	regions := detector.ExtractRegions(probMap.Data, probMap.Width, probMap.Height, p.cfg.Detector, remap)
	slog.Debug("detection complete", "regions", len(regions),
		"map_w", probMap.Width, "map_h", probMap.Height,
		"duration_ms", timer.Elapsed().Milliseconds())

	spotted, err := p.recognizeRegions(ctx, img, regions)
	if err != nil {
		return nil, err
	}

	threshold := p.ScoreThreshold()
	for _, s := range spotted {
		if s.region.Confidence < threshold {
			continue
		}
		res.Regions = append(res.Regions, RegionResult{
			Box:         cornersOf(s.region),
			Text:        s.text,
			Confidence:  s.region.Confidence,
			Orientation: s.region.Orientation.String(),
		})
	}
	slog.Debug("detect finished", "accepted", len(res.Regions),
		"total_ms", timer.Stop().Milliseconds())
	return res, nil
}

// spottedRegion pairs a region with its recognized text.
type spottedRegion struct {
	region detector.TextRegion
	text   string
}

// recognizeRegions runs rectification, recognition and decoding for every
// region, sequentially or on a bounded worker pool. Results keep discovery
// order regardless of completion order.
func (p *Pipeline) recognizeRegions(ctx context.Context, img image.Image, regions []detector.TextRegion) ([]spottedRegion, error) {
	out := make([]spottedRegion, len(regions))
	if p.cfg.Workers > 1 && len(regions) > 1 {
		return out, p.recognizeParallel(ctx, img, regions, out)
	}
	for i, region := range regions {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s, err := p.recognizeOne(ctx, img, region)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// recognizeOne processes a single region. Intermediate strip buffers are
// scoped here so peak memory stays bounded on images with many regions.
func (p *Pipeline) recognizeOne(ctx context.Context, img image.Image, region detector.TextRegion) (spottedRegion, error) {
	strip := rectify.CropAndWarp(img, region, p.cfg.Rectify)
	defer strip.Release()
	recognizer.NormalizeStrip(strip)

	matrix, err := p.rec.Infer(ctx, strip)
	if err != nil {
		return spottedRegion{}, fmt.Errorf("recognition inference: %w", err)
	}
	if matrix.Steps <= 0 || matrix.Classes <= 0 || len(matrix.Data) != matrix.Steps*matrix.Classes {
		return spottedRegion{}, fmt.Errorf("%w: recognition returned %d values for %dx%d matrix",
			ErrModelOutput, len(matrix.Data), matrix.Steps, matrix.Classes)
	}

	glyphs := recognizer.DecodeGreedy(matrix.Data, matrix.Steps, matrix.Classes)
	// Zero glyphs is non-fatal: the region keeps its detection confidence.
	if len(glyphs) > 0 {
		region.Confidence = recognizer.MeanConfidence(glyphs)
	}
	text := recognizer.CleanText(p.charset.Text(glyphs), p.cfg.Clean)
	return spottedRegion{region: region, text: text}, nil
}

func cornersOf(region detector.TextRegion) [4][2]float64 {
	pts := region.Rect.Corners()
	var out [4][2]float64
	for i, pt := range pts {
		out[i] = [2]float64{pt.X, pt.Y}
	}
	return out
}
