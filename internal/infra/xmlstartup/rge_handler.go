package xmlstartup

import (
	"encoding/xml"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aPeter1/musrfit-fork-sub004/internal/domain"
	"github.com/aPeter1/musrfit-fork-sub004/internal/infra/logger"
)

type rgeKey int

const (
	rgeKeyEmpty rgeKey = iota
	rgeKeyDataPath
	rgeKeyFlnPre
	rgeKeyEnergy
)

// RgeHandler collects the <trim_sp> block of a startup file:
//
//	<trim_sp>
//	  <data_path>/data/trimsp</data_path>
//	  <rge_fln_pre>LCCO_E</rge_fln_pre>
//	  <energy_list>
//	    <energy>1000</energy>
//	  </energy_list>
//	</trim_sp>
//
// Elements outside of <trim_sp> are ignored.
type RgeHandler struct {
	log *slog.Logger

	key     rgeKey
	inTrim  bool
	valid   bool
	startup domain.RgeStartup
	errs    []string
}

func NewRgeHandler() *RgeHandler {
	return &RgeHandler{log: logger.L(), valid: true}
}

var _ Handler = (*RgeHandler)(nil)

func (h *RgeHandler) IsValid() bool { return h.valid }

func (h *RgeHandler) Startup() domain.RgeStartup {
	out := h.startup
	out.Energies = append([]int(nil), h.startup.Energies...)
	return out
}

// Err joins all reported errors, or returns nil if none were reported.
func (h *RgeHandler) Err() error {
	if len(h.errs) == 0 {
		return nil
	}
	return errors.New(strings.Join(h.errs, "; "))
}

func (h *RgeHandler) OnStartDocument() {
	h.key = rgeKeyEmpty
}

func (h *RgeHandler) OnEndDocument() {
	if !h.valid {
		return
	}

	if h.startup.DataPath == "" {
		h.valid = false
		h.OnError("<data_path> content is missing!")
	}
	if h.startup.FlnPre == "" {
		h.valid = false
		h.OnError("<rge_fln_pre> content is missing!")
	}
	if len(h.startup.Energies) == 0 {
		h.valid = false
		h.OnError("no implantation energies present!")
	}
}

func (h *RgeHandler) OnStartElement(name string, _ []xml.Attr) {
	switch {
	case name == "trim_sp":
		h.inTrim = true
	case name == "data_path" && h.inTrim:
		h.key = rgeKeyDataPath
	case name == "rge_fln_pre" && h.inTrim:
		h.key = rgeKeyFlnPre
	case name == "energy" && h.inTrim:
		h.key = rgeKeyEnergy
	}
}

func (h *RgeHandler) OnEndElement(name string) {
	if name == "trim_sp" {
		h.inTrim = false
	}
	h.key = rgeKeyEmpty
}

func (h *RgeHandler) OnCharacters(text string) {
	str := strings.TrimSpace(text)

	switch h.key {
	case rgeKeyDataPath:
		h.startup.DataPath = str
	case rgeKeyFlnPre:
		h.startup.FlnPre = str
	case rgeKeyEnergy:
		i64, err := strconv.ParseInt(str, 10, 32)
		if err != nil {
			h.valid = false
			if errors.Is(err, strconv.ErrRange) {
				h.OnError("The found energy '" + str + "' is out-of-range.")
			} else {
				h.OnError("The found energy '" + str + "' is not an integer.")
			}
			return
		}
		ival := int(i64)
		if ival <= 0 {
			h.valid = false
			h.OnError("The found energy '" + str + "' is not positive.")
			return
		}
		h.startup.Energies = append(h.startup.Energies, ival)
	}
}

func (h *RgeHandler) OnComment(string) {}

func (h *RgeHandler) OnWarning(msg string) {
	h.log.Warn("xmlstartup.rge", "warning", msg)
}

func (h *RgeHandler) OnError(msg string) {
	h.errs = append(h.errs, msg)
	h.log.Error("xmlstartup.rge", "error", msg)
}

func (h *RgeHandler) OnFatalError(msg string) {
	h.valid = false
	h.errs = append(h.errs, msg)
	h.log.Error("xmlstartup.rge", "fatal", msg)
}
