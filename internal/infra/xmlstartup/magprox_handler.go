package xmlstartup

import (
	"encoding/xml"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aPeter1/musrfit-fork-sub004/internal/domain"
	"github.com/aPeter1/musrfit-fork-sub004/internal/infra/logger"
)

// MagProxHandler collects <data_path> and <energy> entries of a
// mag_proximity startup file. Energies which are not floating point numbers
// are skipped with a warning; they do not invalidate the document.
type MagProxHandler struct {
	log *slog.Logger

	key     rgeKey
	valid   bool
	startup domain.MagProxStartup
}

func NewMagProxHandler() *MagProxHandler {
	return &MagProxHandler{log: logger.L(), valid: true}
}

var _ Handler = (*MagProxHandler)(nil)

func (h *MagProxHandler) IsValid() bool { return h.valid }

func (h *MagProxHandler) Startup() domain.MagProxStartup {
	out := h.startup
	out.Energies = append([]float64(nil), h.startup.Energies...)
	out.Files = append([]string(nil), h.startup.Files...)
	return out
}

func (h *MagProxHandler) OnStartDocument() { h.key = rgeKeyEmpty }

func (h *MagProxHandler) OnEndDocument() {
	if len(h.startup.Energies) == 0 {
		h.valid = false
		h.OnError("no implantation energies present!")
	}
}

func (h *MagProxHandler) OnStartElement(name string, _ []xml.Attr) {
	switch name {
	case "data_path":
		h.key = rgeKeyDataPath
	case "energy":
		h.key = rgeKeyEnergy
	}
}

func (h *MagProxHandler) OnEndElement(string) { h.key = rgeKeyEmpty }

func (h *MagProxHandler) OnCharacters(text string) {
	str := strings.TrimSpace(text)

	switch h.key {
	case rgeKeyDataPath:
		h.startup.DataPath = str
	case rgeKeyEnergy:
		e, err := strconv.ParseFloat(str, 64)
		if err != nil {
			h.OnWarning("'" + str + "' is not a floating point number, will ignore it.")
			return
		}
		h.startup.Energies = append(h.startup.Energies, e)
		h.startup.Files = append(h.startup.Files, h.startup.DataPath+str+".rge")
	}
}

func (h *MagProxHandler) OnComment(string) {}

func (h *MagProxHandler) OnWarning(msg string) {
	h.log.Warn("xmlstartup.magprox", "warning", msg)
}

func (h *MagProxHandler) OnError(msg string) {
	h.log.Error("xmlstartup.magprox", "error", msg)
}

func (h *MagProxHandler) OnFatalError(msg string) {
	h.valid = false
	h.log.Error("xmlstartup.magprox", "fatal", msg)
}
