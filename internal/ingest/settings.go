package ingest

import (
	"encoding/json"
	"io"

	"github.com/sabbadino/container-optimizations/internal/errs"
)

// SymmetryMode selects the Phase 2 symmetry-breaking strategy of
// spec.md §4.2.
type SymmetryMode int

const (
	SymmetryFull SymmetryMode = iota
	SymmetrySimple
	SymmetryNone
)

// AnchorMode selects the optional Phase 2 anchor policy of spec.md §4.2.
type AnchorMode int

const (
	AnchorNone AnchorMode = iota
	AnchorLargestVolume
	AnchorHeaviestWithinMostRecurring
)

// SoftWeights carries the non-negative integer weight for each soft
// objective term of spec.md §4.2's table. A zero weight disables the term.
type SoftWeights struct {
	// BiggestFaceDown: "prefer orientation where side with biggest surface
	// is at the bottom" — reward for FREE-rotation boxes whose bottom face
	// area equals the max of the three pairwise face products.
	BiggestFaceDown int64
	// SurfaceContact: reward for X-Y overlap area between supporting
	// faces.
	SurfaceContact int64
	// LargeBaseLowerLinear: (H - z) * base_area.
	LargeBaseLowerLinear int64
	// TotalFloorArea: sum of base areas of boxes resting on the floor.
	TotalFloorArea int64
	// LargeBaseLowerQuadratic: (H - z)^2 * base_area.
	LargeBaseLowerQuadratic int64
	// VolumeLower: (H - z) * nominal volume.
	VolumeLower int64
}

// settingsDoc mirrors the Phase-2 settings document of spec.md §6. Field
// names match original_source/step2_container_box_placement_in_container.py
// verbatim, since spec.md §6 leaves the exact keys to "one per soft term
// listed in §4.2" and that is the grounding source for them.
type settingsDoc struct {
	SymmetryMode                  string  `json:"symmetry_mode"`
	SolverPhase2MaxTimeInSeconds  float64 `json:"solver_phase2_max_time_in_seconds"`
	AnchorMode                    *string `json:"anchor_mode"`

	PreferOrientationWhereSideWithBiggestSurfaceIsAtTheBottomWeight int64 `json:"prefer_orientation_where_side_with_biggest_surface_is_at_the_bottom_weight"`
	PreferMaximizeSurfaceContactWeight                              int64 `json:"prefer_maximize_surface_contact_weight"`
	PreferLargeBaseLowerWeight                                      int64 `json:"prefer_large_base_lower_weight"`
	PreferTotalFloorAreaWeight                                      int64 `json:"prefer_total_floor_area_weight"`
	PreferLargeBaseLowerNonLinearWeight                             int64 `json:"prefer_large_base_lower_non_linear_weight"`
	PreferPutBoxesByVolumeLowerZWeight                              int64 `json:"prefer_put_boxes_by_volume_lower_z_weight"`

	LambdaGroup   *float64 `json:"lambda_group"`
	LambdaBalance *float64 `json:"lambda_balance"`
}

// Settings is the decoded, validated form of the Phase-2 settings
// document, plus the Phase-1 objective weights lambda_group/lambda_balance
// (spec.md §4.1, "externally configurable").
type Settings struct {
	Symmetry      SymmetryMode
	MaxTime       float64
	Anchor        AnchorMode
	Weights       SoftWeights
	LambdaGroup   float64
	LambdaBalance float64
}

// DecodeSettings parses and validates the Phase-2 settings document.
func DecodeSettings(r io.Reader) (Settings, error) {
	var doc settingsDoc
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return Settings{}, errs.Wrap(errs.KindInputMalformed, "decoding phase-2 settings document", err)
	}
	return fromSettingsDoc(doc)
}

func fromSettingsDoc(doc settingsDoc) (Settings, error) {
	var sym SymmetryMode
	switch doc.SymmetryMode {
	case "full", "":
		sym = SymmetryFull
	case "simple":
		sym = SymmetrySimple
	case "none":
		sym = SymmetryNone
	default:
		return Settings{}, errs.New(errs.KindInputMalformed, "symmetry_mode must be one of full|simple|none")
	}

	anchor := AnchorNone
	if doc.AnchorMode != nil {
		switch *doc.AnchorMode {
		case "larger":
			anchor = AnchorLargestVolume
		case "heavierWithinMostRecurringSimilar":
			anchor = AnchorHeaviestWithinMostRecurring
		default:
			return Settings{}, errs.New(errs.KindInputMalformed, "anchor_mode must be one of larger|heavierWithinMostRecurringSimilar|null")
		}
	}

	maxTime := doc.SolverPhase2MaxTimeInSeconds
	if maxTime <= 0 {
		maxTime = 60
	}

	lambdaGroup := 1.0
	if doc.LambdaGroup != nil {
		lambdaGroup = *doc.LambdaGroup
	}
	lambdaBalance := 1.0
	if doc.LambdaBalance != nil {
		lambdaBalance = *doc.LambdaBalance
	}

	return Settings{
		Symmetry: sym,
		MaxTime:  maxTime,
		Anchor:   anchor,
		Weights: SoftWeights{
			BiggestFaceDown:         doc.PreferOrientationWhereSideWithBiggestSurfaceIsAtTheBottomWeight,
			SurfaceContact:          doc.PreferMaximizeSurfaceContactWeight,
			LargeBaseLowerLinear:    doc.PreferLargeBaseLowerWeight,
			TotalFloorArea:          doc.PreferTotalFloorAreaWeight,
			LargeBaseLowerQuadratic: doc.PreferLargeBaseLowerNonLinearWeight,
			VolumeLower:             doc.PreferPutBoxesByVolumeLowerZWeight,
		},
		LambdaGroup:   lambdaGroup,
		LambdaBalance: lambdaBalance,
	}, nil
}
