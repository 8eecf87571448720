package metric

// Convert returns the factor that takes a numeric value expressed in the
// from unit into the to unit. The factor exists exactly when both units have
// identical dimension vectors; otherwise Convert returns an
// *IncompatibleUnitsError naming both units.
func Convert(from, to Unit) (float64, error) {
	if !from.dims.Equal(to.dims) {
		return 0, &IncompatibleUnitsError{
			From:     from.Text(),
			To:       to.Text(),
			FromDims: from.dims,
			ToDims:   to.dims,
		}
	}
	return from.scale / to.scale, nil
}

// ConvertText parses both unit strings and returns their conversion factor.
func ConvertText(from, to string) (float64, error) {
	fu, err := Parse(from)
	if err != nil {
		return 0, err
	}
	tu, err := Parse(to)
	if err != nil {
		return 0, err
	}
	return Convert(fu, tu)
}

// ScaleOf parses a unit string and returns its scale factor.
func ScaleOf(text string) (float64, error) {
	u, err := Parse(text)
	if err != nil {
		return 0, err
	}
	return u.Scale(), nil
}

// DimensionsOf parses a unit string and returns its dimension vector.
func DimensionsOf(text string) (Dimensions, error) {
	u, err := Parse(text)
	if err != nil {
		return Dimensions{}, err
	}
	return u.Dimensions(), nil
}
