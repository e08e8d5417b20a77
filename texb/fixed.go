package texb

// Fixed is a 16.16 fixed point number as stored in vertex records.
type Fixed uint32

// Int returns the integer part, which is how positions are interpreted.
func (f Fixed) Int() int {
	return int(uint32(f) >> 16)
}

func (f Fixed) Float() float64 {
	return float64(f) / 65536.0
}

// UV returns the value as a texture coordinate. Rounding in the encoder can
// push a coordinate slightly past 1; such values are clamped to exactly 1.
func (f Fixed) UV() float64 {
	if v := f.Float(); v < 1 {
		return v
	}
	return 1
}
