package mapping

import "errors"

var (
	// ErrInvalidSmoothing is returned for NaN or infinite smoothing values.
	ErrInvalidSmoothing = errors.New("mapping: smoothing factor is not a finite number")
	// ErrCalibrationFull is returned when a sixth distinct point name is
	// sent to a complete calibration.
	ErrCalibrationFull = errors.New("mapping: calibration already holds all points")
)
