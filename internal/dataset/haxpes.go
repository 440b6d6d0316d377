package dataset

import (
	"bufio"
	"regexp"
	"strconv"
	"strings"

	"github.com/fcbenten/figures/internal/fsutil"
)

// HAXPESFile is a valence-band export from the analyzer software: a
// key=value metadata preamble followed by one or more [Data] blocks of
// energy/intensity pairs.
type HAXPESFile struct {
	Meta map[string]string
	// Energy and Intensity hold the first data block in file order.
	Energy    []float64
	Intensity []float64
}

var haxpesDataTag = regexp.MustCompile(`\[(Data|DATA).*\]`)

// ReadHAXPES parses a HAXPES analyzer export.
func ReadHAXPES(fsys fsutil.FileSystem, path string) (*HAXPESFile, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, &FormatError{Path: path, Detail: "cannot open", Err: err}
	}
	defer f.Close()

	out := &HAXPESFile{Meta: make(map[string]string)}
	inData := false

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if haxpesDataTag.MatchString(line) {
			if inData {
				break // only the first data block matters
			}
			inData = true
			continue
		}
		if !inData {
			if key, val, ok := strings.Cut(line, "="); ok {
				out.Meta[strings.TrimSpace(key)] = strings.TrimSpace(val)
			}
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		e, err1 := strconv.ParseFloat(fields[0], 64)
		v, err2 := strconv.ParseFloat(fields[1], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		out.Energy = append(out.Energy, e)
		out.Intensity = append(out.Intensity, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, &FormatError{Path: path, Detail: "read failed", Err: err}
	}
	if len(out.Energy) == 0 {
		return nil, &FormatError{Path: path, Detail: "no [Data] block found"}
	}
	return out, nil
}

// PhotonEnergy returns the Excitation Energy metadata value in eV.
func (h *HAXPESFile) PhotonEnergy() (float64, error) {
	raw, ok := h.Meta["Excitation Energy"]
	if !ok {
		return 0, &FormatError{Path: "", Detail: `metadata missing "Excitation Energy"`}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &FormatError{Path: "", Detail: "bad Excitation Energy value", Err: err}
	}
	return v, nil
}

// BindingEnergy converts the kinetic-energy axis to binding energy using the
// given photon energy: Eb = hv - Ek. The analyzer records kinetic energies.
func (h *HAXPESFile) BindingEnergy(photonEnergy float64) []float64 {
	out := make([]float64, len(h.Energy))
	for i, e := range h.Energy {
		out[i] = photonEnergy - e
	}
	return out
}
