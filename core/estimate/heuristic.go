package estimate

import "context"

// Heuristic scores durations with the closed-form baseline curve directly.
// It shares the Estimator lifecycle so callers can switch backends through
// configuration without special-casing either one.
type Heuristic struct {
	state state
}

// NewHeuristic returns an uninitialized heuristic estimator.
func NewHeuristic() *Heuristic { return &Heuristic{} }

// Initialize marks the estimator ready. After Close it returns
// ErrNotInitialized, matching the Regression backend.
func (h *Heuristic) Initialize(ctx context.Context) error {
	if h.state == stateClosed {
		return ErrNotInitialized
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	h.state = stateReady
	return nil
}

// Predict returns the baseline estimate in minutes.
func (h *Heuristic) Predict(f Features) (float64, error) {
	if h.state != stateReady {
		return 0, ErrNotInitialized
	}
	return baselineMinutes(f), nil
}

// Close releases the estimator. Terminal.
func (h *Heuristic) Close() error {
	h.state = stateClosed
	return nil
}
