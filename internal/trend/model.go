package trend

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Model identifies a power-law fair-value model.
type Model string

const (
	// ModelSantostasi is the original genesis-anchored power law fit.
	ModelSantostasi Model = "santostasi"
	// ModelCorridor is the power-law corridor fit with a slightly flatter slope.
	ModelCorridor Model = "corridor"
)

// ErrUnknownModel is returned by Lookup for identifiers outside the model set.
var ErrUnknownModel = errors.New("unknown trend model")

// GenesisEpoch is the day the first Bitcoin block was mined.
var GenesisEpoch = time.Date(2009, time.January, 3, 0, 0, 0, 0, time.UTC)

// Params are the immutable constants of a model:
// price = 10^Intercept * days^Exponent, days counted from Epoch.
type Params struct {
	Model     Model
	Name      string
	Intercept float64
	Exponent  float64
	Epoch     time.Time
	// FallbackSigma is used when no historical series is available.
	FallbackSigma float64
}

var models = map[Model]Params{
	ModelSantostasi: {
		Model:         ModelSantostasi,
		Name:          "Power Law (Santostasi)",
		Intercept:     -17.01593313,
		Exponent:      5.84509376,
		Epoch:         GenesisEpoch,
		FallbackSigma: 0.30,
	},
	ModelCorridor: {
		Model:         ModelCorridor,
		Name:          "Power Law Corridor",
		Intercept:     math.Log10(1.0117e-17),
		Exponent:      5.82,
		Epoch:         GenesisEpoch,
		FallbackSigma: 0.30,
	},
}

// Models returns every model in a stable order.
func Models() []Params {
	return []Params{models[ModelSantostasi], models[ModelCorridor]}
}

// Lookup returns the constants for m.
func Lookup(m Model) (Params, error) {
	p, ok := models[m]
	if !ok {
		return Params{}, fmt.Errorf("%w: %q", ErrUnknownModel, m)
	}
	return p, nil
}

// MustLookup is Lookup for identifiers that were validated upstream.
func MustLookup(m Model) Params {
	p, err := Lookup(m)
	if err != nil {
		panic(err)
	}
	return p
}
