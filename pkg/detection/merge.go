package detection

import (
	"math"
)

// Thresholds tuned against EasyOCR line boxes.
const (
	DefaultVerticalThreshold   = 35
	DefaultHorizontalThreshold = 35
	DefaultScoreThreshold      = 0.1
)

type MergeOptions struct {
	// Maximum vertical gap in pixels between two boxes that are merged.
	VerticalThreshold float64
	// Maximum distance in pixels between the left edges of two boxes that are merged.
	HorizontalThreshold float64
	// Detections scoring at or below this value are dropped after merging.
	ScoreThreshold float64
}

func DefaultMergeOptions() MergeOptions {
	return MergeOptions{
		VerticalThreshold:   DefaultVerticalThreshold,
		HorizontalThreshold: DefaultHorizontalThreshold,
		ScoreThreshold:      DefaultScoreThreshold,
	}
}

// MergeOnce folds each detection into the first already-kept box that sits
// directly above or below it with a nearly aligned left edge. The merged box
// spans both, texts are joined with a space and the higher score is kept.
func MergeOnce(detections []Detection, verticalThreshold float64, horizontalThreshold float64) []Detection {
	merged := []Detection{}
	for _, detection := range detections {
		found := false
		for i, kept := range merged {
			isVerticallyClose := math.Abs(detection.top()-kept.bottom()) < verticalThreshold ||
				math.Abs(detection.bottom()-kept.top()) < verticalThreshold
			isLeftAligned := math.Abs(detection.left()-kept.left()) < horizontalThreshold
			if isVerticallyClose && isLeftAligned {
				merged[i] = combine(kept, detection)
				found = true
				break
			}
		}
		if !found {
			merged = append(merged, detection)
		}
	}
	return merged
}

// MergeUntilStable repeats MergeOnce until a pass merges nothing.
func MergeUntilStable(detections []Detection, verticalThreshold float64, horizontalThreshold float64) []Detection {
	for {
		merged := MergeOnce(detections, verticalThreshold, horizontalThreshold)
		if len(merged) == len(detections) {
			return merged
		}
		detections = merged
	}
}

// FilterByScore keeps detections scoring strictly above threshold.
func FilterByScore(detections []Detection, threshold float64) []Detection {
	kept := make([]Detection, 0, len(detections))
	for _, detection := range detections {
		if detection.Score > threshold {
			kept = append(kept, detection)
		}
	}
	return kept
}

// Postprocess merges and filters raw detector output.
func Postprocess(detections []Detection, options MergeOptions) []Detection {
	return FilterByScore(
		MergeUntilStable(detections, options.VerticalThreshold, options.HorizontalThreshold),
		options.ScoreThreshold,
	)
}

func combine(previous Detection, current Detection) Detection {
	return Detection{
		BBox: [2][2]float64{
			{math.Min(previous.left(), current.left()), math.Min(previous.top(), current.top())},
			{math.Max(previous.right(), current.right()), math.Max(previous.bottom(), current.bottom())},
		},
		Text:  previous.Text + " " + current.Text,
		Score: math.Max(previous.Score, current.Score),
	}
}
