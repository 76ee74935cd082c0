// Package outdoc encodes the output array document of spec.md §6.
// Grounded on original_source/main.py's final json.dump of the assignment
// plus per-container placements.
package outdoc

import (
	"encoding/json"
	"io"

	"github.com/sabbadino/container-optimizations/internal/model"
)

// placementDoc mirrors one entry of spec.md §6's `placements` array.
type placementDoc struct {
	ID           int      `json:"id"`
	Position     [3]int64 `json:"position"`
	Orientation  int      `json:"orientation"`
	Size         [3]int64 `json:"size"`
	RotationType string   `json:"rotation_type"`
}

// containerDoc mirrors one entry of spec.md §6's output array.
type containerDoc struct {
	ID         int            `json:"id"`
	Size       [3]int64       `json:"size"`
	Status     string         `json:"status"`
	Placements []placementDoc `json:"placements"`
}

// Container is the information needed to render one output entry: the
// 1-based instance id, its solver status, and one Entry per placed box.
type Container struct {
	ID     int
	Status model.Status
	// Entries lists, in stable (ascending box index) order, each placed
	// box's original id, rotation policy, and placement.
	Entries []Entry
}

// Entry is one placed box's reportable data.
type Entry struct {
	BoxID     int
	Rotation  model.RotationPolicy
	Placement model.Placement
}

// Encode writes the output document (spec.md §6) for a completed solve:
// container size is shared across all instances (spec.md §3: "All
// container instances share this spec").
func Encode(w io.Writer, size model.Dims, containers []Container) error {
	docs := make([]containerDoc, len(containers))
	for i, c := range containers {
		d := containerDoc{
			ID:     c.ID,
			Size:   [3]int64{size.L, size.W, size.H},
			Status: c.Status.String(),
		}
		for _, e := range c.Entries {
			d.Placements = append(d.Placements, placementDoc{
				ID:           e.BoxID,
				Position:     [3]int64{e.Placement.Pos.X, e.Placement.Pos.Y, e.Placement.Pos.Z},
				Orientation:  e.Placement.OrientIndex,
				Size:         [3]int64{e.Placement.Effective.L, e.Placement.Effective.W, e.Placement.Effective.H},
				RotationType: e.Rotation.String(),
			})
		}
		docs[i] = d
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(docs)
}
