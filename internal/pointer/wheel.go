package pointer

// wheelUnit is the high-resolution wheel count of one detent.
const wheelUnit = 120

// wheel turns fractional notch amounts into whole high-resolution
// counts and whole detents, carrying the remainders between calls so
// slow gestures still scroll eventually.
type wheel struct {
	fraction float64 // sub-count remainder
	counts   int32   // high-res counts not yet reported as a detent
}

// step adds notches and returns the high-resolution counts and detents
// to report now.
func (w *wheel) step(notches float64) (hiRes, detents int32) {
	total := notches*wheelUnit + w.fraction
	hiRes = int32(total)
	w.fraction = total - float64(hiRes)

	w.counts += hiRes
	detents = w.counts / wheelUnit
	w.counts -= detents * wheelUnit
	return hiRes, detents
}
