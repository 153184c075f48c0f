package estimate

import (
	"context"
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

const featureDim = 6

// RegressionConfig tunes the regression backend.
type RegressionConfig struct {
	// Samples is the size of the synthetic bootstrap set fitted during
	// Initialize. Defaults to 512.
	Samples int `json:"samples"`
	// Seed makes the bootstrap reproducible. Defaults to 1.
	Seed int64 `json:"seed"`
}

// SetDefaults applies sane defaults.
func (c *RegressionConfig) SetDefaults() {
	if c.Samples <= 0 {
		c.Samples = 512
	}
	if c.Seed == 0 {
		c.Seed = 1
	}
}

// Regression is a linear least-squares duration model over the six features
// plus an intercept. No historical delivery outcomes are available yet, so
// Initialize fits against a synthetic bootstrap set drawn around the
// closed-form baseline curve; swapping in a real training set only changes
// Initialize, not the Estimator contract.
type Regression struct {
	cfg   RegressionConfig
	coef  *mat.VecDense
	state state
}

// NewRegression returns an uninitialized regression estimator.
func NewRegression(cfg RegressionConfig) *Regression {
	cfg.SetDefaults()
	return &Regression{cfg: cfg}
}

// Initialize fits the model. Calling it again on a ready estimator refits
// from scratch. After Close it returns ErrNotInitialized.
func (r *Regression) Initialize(ctx context.Context) error {
	if r.state == stateClosed {
		return ErrNotInitialized
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(r.cfg.Seed))
	n := r.cfg.Samples
	x := mat.NewDense(n, featureDim+1, nil)
	y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		f := Features{
			DistanceKm:   rng.Float64() * 60,
			WeightKg:     rng.Float64() * 1000,
			TrafficLevel: rng.Float64(),
			Weather:      rng.Float64(),
			TimeOfDay:    rng.Float64(),
			Priority:     rng.Float64(),
		}
		x.Set(i, 0, 1)
		x.Set(i, 1, f.DistanceKm)
		x.Set(i, 2, f.WeightKg)
		x.Set(i, 3, f.TrafficLevel)
		x.Set(i, 4, f.Weather)
		x.Set(i, 5, f.TimeOfDay)
		x.Set(i, 6, f.Priority)
		// Small multiplicative noise keeps the fit honest without making
		// it non-reproducible.
		y.SetVec(i, baselineMinutes(f)*(1+0.05*(rng.Float64()-0.5)))
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var qr mat.QR
	qr.Factorize(x)
	coef := mat.NewVecDense(featureDim+1, nil)
	if err := qr.SolveVecTo(coef, false, y); err != nil {
		return fmt.Errorf("estimate: least squares fit: %w", err)
	}
	r.coef = coef
	r.state = stateReady
	return nil
}

// Predict returns the estimated duration in minutes.
func (r *Regression) Predict(f Features) (float64, error) {
	if r.state != stateReady {
		return 0, ErrNotInitialized
	}
	v := mat.NewVecDense(featureDim+1, []float64{
		1, f.DistanceKm, f.WeightKg, f.TrafficLevel, f.Weather, f.TimeOfDay, f.Priority,
	})
	m := mat.Dot(r.coef, v)
	if m < 1 {
		m = 1
	}
	return m, nil
}

// Close releases the model. It is terminal for this instance.
func (r *Regression) Close() error {
	r.coef = nil
	r.state = stateClosed
	return nil
}
