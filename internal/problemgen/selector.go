package problemgen

import "errors"

var (
	// ErrNoOperator means every operator is disabled. Callers show a prompt
	// instead of a problem.
	ErrNoOperator = errors.New("no operator enabled")

	ErrUnknownOperator = errors.New("unknown operator")
)

// SelectOperator picks an enabled operator. Operators with a positive weight
// are drawn in proportion to their weight. When every enabled operator has
// weight 0 the draw is uniform over the enabled set instead.
func SelectOperator(cfg *Config, src Source) (Operator, error) {
	var enabled, weighted []Operator
	total := 0
	for _, op := range Operators {
		w := cfg.Weight(op)
		if !w.Enabled {
			continue
		}
		enabled = append(enabled, op)
		if w.Weight > 0 {
			weighted = append(weighted, op)
			total += w.Weight
		}
	}

	if len(enabled) == 0 {
		return "", ErrNoOperator
	}
	if total == 0 {
		return enabled[src.Intn(len(enabled))], nil
	}

	r := src.Intn(total)
	for _, op := range weighted {
		r -= cfg.Weight(op).Weight
		if r < 0 {
			return op, nil
		}
	}
	return weighted[len(weighted)-1], nil
}
