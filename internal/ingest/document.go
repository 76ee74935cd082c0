// Package ingest decodes the two JSON wire documents of spec.md §6 (the
// main input document and the Phase-2 settings document) into
// internal/model types. Grounded on original_source/main.py's
// json.load/field-checking and
// original_source/step2_container_box_placement_in_container.py's
// settings-file loading; encoding/json is used throughout (justified in
// SPEC_FULL.md §B).
package ingest

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sabbadino/container-optimizations/internal/errs"
	"github.com/sabbadino/container-optimizations/internal/model"
)

// containerDoc mirrors spec.md §6's `container` field.
type containerDoc struct {
	Size   [3]int64 `json:"size"`
	Weight int64    `json:"weight"`
}

// itemDoc mirrors spec.md §6's `items[]` entries.
type itemDoc struct {
	ID       int     `json:"id"`
	Size     [3]int64 `json:"size"`
	Weight   int64   `json:"weight"`
	Rotation string  `json:"rotation"`
	GroupID  *int    `json:"group_id,omitempty"`
}

// alnsParamsDoc mirrors spec.md §6's `alns_params` field.
type alnsParamsDoc struct {
	NumIterations              int     `json:"num_iterations"`
	NumCanBeMovedPercentage    int     `json:"num_can_be_moved_percentage"`
	TimeLimit                  float64 `json:"time_limit"`
	MaxNoImprove               int     `json:"max_no_improve"`
}

// inputDoc mirrors the full spec.md §6 input document.
type inputDoc struct {
	Container                    containerDoc  `json:"container"`
	Items                        []itemDoc     `json:"items"`
	SolverPhase1MaxTimeInSeconds float64       `json:"solver_phase1_max_time_in_seconds"`
	Step2SettingsFile            string        `json:"step2_settings_file"`
	ALNSParams                   alnsParamsDoc `json:"alns_params"`
}

// ALNSParams is the decoded form of spec.md §6's `alns_params`.
type ALNSParams struct {
	NumIterations           int
	NumCanBeMovedPercentage int
	TimeLimit               float64
	MaxNoImprove            int
}

// Input is the decoded, validated form of the main input document.
type Input struct {
	Container          model.ContainerSpec
	Boxes              []model.Box
	Phase1MaxTime       float64
	Step2SettingsFile   string
	ALNS                ALNSParams
}

// DecodeInput parses and validates the main input document (spec.md §6).
// Any structural problem is returned as an *errs.Error with
// errs.KindInputMalformed.
func DecodeInput(r io.Reader) (Input, error) {
	var doc inputDoc
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return Input{}, errs.Wrap(errs.KindInputMalformed, "decoding input document", err)
	}
	return fromInputDoc(doc)
}

func fromInputDoc(doc inputDoc) (Input, error) {
	if doc.Container.Size[0] <= 0 || doc.Container.Size[1] <= 0 || doc.Container.Size[2] <= 0 {
		return Input{}, errs.New(errs.KindInputMalformed, "container.size must be three positive integers")
	}
	if doc.Container.Weight <= 0 {
		return Input{}, errs.New(errs.KindInputMalformed, "container.weight must be positive")
	}
	if doc.SolverPhase1MaxTimeInSeconds <= 0 {
		return Input{}, errs.New(errs.KindInputMalformed, "solver_phase1_max_time_in_seconds must be positive")
	}

	boxes := make([]model.Box, len(doc.Items))
	for i, it := range doc.Items {
		if it.Size[0] <= 0 || it.Size[1] <= 0 || it.Size[2] <= 0 {
			return Input{}, errs.New(errs.KindInputMalformed, fmt.Sprintf("items[%d].size must be three positive integers", i))
		}
		if it.Weight < 0 {
			return Input{}, errs.New(errs.KindInputMalformed, fmt.Sprintf("items[%d].weight must be non-negative", i))
		}
		rot, ok := model.ParseRotationPolicy(it.Rotation)
		if !ok {
			return Input{}, errs.New(errs.KindInputMalformed, fmt.Sprintf("items[%d].rotation %q is not one of none|z|free", i, it.Rotation))
		}
		b := model.Box{
			ID:       it.ID,
			Nominal:  model.Dims{L: it.Size[0], W: it.Size[1], H: it.Size[2]},
			Weight:   it.Weight,
			Rotation: rot,
		}
		if it.GroupID != nil {
			b.GroupID = *it.GroupID
			b.HasGroup = true
		}
		boxes[i] = b.NormalizeCubeRotation()
	}

	if doc.Step2SettingsFile == "" {
		return Input{}, errs.New(errs.KindInputMalformed, "step2_settings_file is required")
	}

	return Input{
		Container: model.ContainerSpec{
			Size:      model.Dims{L: doc.Container.Size[0], W: doc.Container.Size[1], H: doc.Container.Size[2]},
			MaxWeight: doc.Container.Weight,
		},
		Boxes:             boxes,
		Phase1MaxTime:     doc.SolverPhase1MaxTimeInSeconds,
		Step2SettingsFile: doc.Step2SettingsFile,
		ALNS: ALNSParams{
			NumIterations:           doc.ALNSParams.NumIterations,
			NumCanBeMovedPercentage: doc.ALNSParams.NumCanBeMovedPercentage,
			TimeLimit:               doc.ALNSParams.TimeLimit,
			MaxNoImprove:            doc.ALNSParams.MaxNoImprove,
		},
	}, nil
}
