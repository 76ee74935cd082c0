package placement

import (
	"github.com/sabbadino/container-optimizations/internal/model"
	"github.com/sabbadino/container-optimizations/internal/solve"
)

// Extract reads a solved PMB result into a model.ContainerPlacement. It
// assumes res.Status.IsSolved().
func Extract(b *Built, res solve.Result) (model.ContainerPlacement, error) {
	placements := make(map[model.BoxIndex]model.Placement, len(b.BoxIndices))
	for i, boxIdx := range b.BoxIndices {
		orientIndex := -1
		for k, lit := range b.Orient[i] {
			ok, err := res.BoolValue(lit)
			if err != nil {
				return model.ContainerPlacement{}, err
			}
			if ok {
				orientIndex = b.OrientIndices[i][k]
				break
			}
		}

		xv, err := res.Value(b.X[i])
		if err != nil {
			return model.ContainerPlacement{}, err
		}
		yv, err := res.Value(b.Y[i])
		if err != nil {
			return model.ContainerPlacement{}, err
		}
		zv, err := res.Value(b.Z[i])
		if err != nil {
			return model.ContainerPlacement{}, err
		}
		lv, err := res.Value(b.LEff[i])
		if err != nil {
			return model.ContainerPlacement{}, err
		}
		wv, err := res.Value(b.WEff[i])
		if err != nil {
			return model.ContainerPlacement{}, err
		}
		hv, err := res.Value(b.HEff[i])
		if err != nil {
			return model.ContainerPlacement{}, err
		}

		placements[boxIdx] = model.Placement{
			OrientIndex: orientIndex,
			Pos:         model.Position{X: xv, Y: yv, Z: zv},
			Effective:   model.Dims{L: lv, W: wv, H: hv},
		}
	}

	return model.ContainerPlacement{Status: res.Status, Placements: placements}, nil
}
