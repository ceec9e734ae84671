package severity

import (
	"errors"

	"github.com/naveeng/ndrsim/core/model"
)

// ErrNilEvent is returned when a nil event is passed to the scoring path.
var ErrNilEvent = errors.New("severity: nil event")

// Rule computes a category-specific severity score in [0, 100] from an
// event's severity inputs. Implementations must be stateless, must not
// mutate the event, and must be deterministic: the same immutable input
// always yields the same score.
type Rule interface {
	Name() string
	Category() model.Category
	Score(ev *model.DisasterEvent) (int, error)
}
