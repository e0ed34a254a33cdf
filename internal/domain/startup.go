package domain

import (
	"strconv"
	"strings"
)

// RgeStartup is the content of the <trim_sp> block of a startup file.
type RgeStartup struct {
	DataPath string // directory holding the rge-files
	FlnPre   string // rge file name prefix, e.g. LCCO_E
	Energies []int  // implantation energies (eV)
}

// RgeFileName builds the rge file name for the given energy:
// <DataPath>/<FlnPre><energy>.rge
func (s RgeStartup) RgeFileName(energy int) string {
	var b strings.Builder
	b.WriteString(s.DataPath)
	if !strings.HasSuffix(s.DataPath, "/") {
		b.WriteByte('/')
	}
	b.WriteString(s.FlnPre)
	b.WriteString(strconv.Itoa(energy))
	b.WriteString(".rge")
	return b.String()
}

// MagProxStartup is the content of a mag_proximity startup file.
type MagProxStartup struct {
	DataPath string
	Energies []float64 // keV
	Files    []string  // one rge file per energy: DataPath + energy + ".rge"
}
