package assign

import (
	"github.com/sabbadino/container-optimizations/internal/model"
	"github.com/sabbadino/container-optimizations/internal/solve"
)

// Extract reads the box-to-instance decisions out of a solved result into
// a model.Assignment. It assumes res.Status.IsSolved(); callers check that
// via the Solver Driver contract before calling Extract.
func Extract(b *Built, res solve.Result, numBoxes int) (model.Assignment, error) {
	instances := make([]model.Instance, b.J)
	for i := 0; i < numBoxes; i++ {
		for k := 0; k < b.J; k++ {
			v, err := res.BoolValue(b.X[i][k])
			if err != nil {
				return model.Assignment{}, err
			}
			if v {
				instances[k].Boxes = append(instances[k].Boxes, model.BoxIndex(i))
				break
			}
		}
	}
	return model.Assignment{Instances: instances}, nil
}
