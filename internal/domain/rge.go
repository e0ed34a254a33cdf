package domain

// RgeData keeps a single TRIM.SP implantation profile for one energy.
type RgeData struct {
	Energy    float64   // implantation energy (eV)
	Depth     []float64 // depth axis (nm), ascending
	Amplitude []float64 // raw particle counts per depth bin
	NN        []float64 // normalized amplitudes: sum_j NN[j]*(Depth[j]-Depth[j-1]) == 1

	NoOfParticles float64
}

// ZMax returns the deepest tabulated depth, or -1 if the table is empty.
func (d RgeData) ZMax() float64 {
	if len(d.Depth) == 0 {
		return -1.0
	}
	return d.Depth[len(d.Depth)-1]
}

// Clone returns a deep copy.
func (d RgeData) Clone() RgeData {
	out := d
	out.Depth = append([]float64(nil), d.Depth...)
	out.Amplitude = append([]float64(nil), d.Amplitude...)
	out.NN = append([]float64(nil), d.NN...)
	return out
}

// RgeDataList keeps all rge tables, in the order the energies were configured.
type RgeDataList []RgeData
