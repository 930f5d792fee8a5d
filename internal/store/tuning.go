package store

import (
	"errors"
	"strconv"
	"time"

	"github.com/ayusman/handsurf/internal/gesture"
)

// Setting keys for the gesture tuning parameters.
const (
	KeyAngularThreshold    = "angular_threshold_degrees"
	KeyStabilityDistance   = "stability_distance"
	KeyCooldownSeconds     = "cooldown_seconds"
	KeyMinConfidenceFrames = "min_confidence_frames"
)

// LoadOptions builds gesture options from the settings table, falling back
// to the defaults for any missing key. The result is not validated here;
// construction of the controller rejects bad values.
func (r *SettingsRepository) LoadOptions() (gesture.Options, error) {
	opts := gesture.DefaultOptions()

	if v, err := r.getFloat(KeyAngularThreshold); err == nil {
		opts.AngularThreshold = v
	} else if !errors.Is(err, ErrNotFound) {
		return opts, err
	}

	if v, err := r.getFloat(KeyStabilityDistance); err == nil {
		opts.StabilityDistance = v
	} else if !errors.Is(err, ErrNotFound) {
		return opts, err
	}

	if v, err := r.getFloat(KeyCooldownSeconds); err == nil {
		opts.Cooldown = time.Duration(v * float64(time.Second))
	} else if !errors.Is(err, ErrNotFound) {
		return opts, err
	}

	if v, err := r.Get(KeyMinConfidenceFrames); err == nil {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, err
		}
		opts.MinConfidenceFrames = n
	} else if !errors.Is(err, ErrNotFound) {
		return opts, err
	}

	return opts, nil
}

// SaveOptions persists gesture options to the settings table.
func (r *SettingsRepository) SaveOptions(opts gesture.Options) error {
	values := map[string]string{
		KeyAngularThreshold:    strconv.FormatFloat(opts.AngularThreshold, 'f', -1, 64),
		KeyStabilityDistance:   strconv.FormatFloat(opts.StabilityDistance, 'f', -1, 64),
		KeyCooldownSeconds:     strconv.FormatFloat(opts.Cooldown.Seconds(), 'f', -1, 64),
		KeyMinConfidenceFrames: strconv.Itoa(opts.MinConfidenceFrames),
	}

	for key, value := range values {
		if err := r.Set(key, value); err != nil {
			return err
		}
	}

	return nil
}

func (r *SettingsRepository) getFloat(key string) (float64, error) {
	v, err := r.Get(key)
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(v, 64)
}
