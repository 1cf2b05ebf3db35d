package finder

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

const xlsxExt = ".xlsx"

// Request describes one venue search.
type Request struct {
	Address      string
	RadiusMeters int
	Keyword      string
}

// ParseRequest validates raw address and radius input.
func ParseRequest(address, radius string) (Request, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Request{}, eris.Wrap(ErrInvalidInput, "address is required")
	}

	radius = strings.TrimSpace(radius)
	n, err := strconv.Atoi(radius)
	if err != nil || n <= 0 {
		return Request{}, eris.Wrapf(ErrInvalidInput, "radius %q must be a positive whole number of meters", radius)
	}

	return Request{Address: address, RadiusMeters: n}, nil
}

// Validate checks an already-built request.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Address) == "" {
		return eris.Wrap(ErrInvalidInput, "address is required")
	}
	if r.RadiusMeters <= 0 {
		return eris.Wrapf(ErrInvalidInput, "radius %d must be positive", r.RadiusMeters)
	}
	return nil
}

// ValidateOutput checks the spreadsheet filename and returns it trimmed.
func ValidateOutput(filename string) (string, error) {
	filename = strings.TrimSpace(filename)
	if filename == "" {
		return "", eris.Wrap(ErrInvalidInput, "output filename is required")
	}
	return filename, nil
}

// OutputPath returns the workbook path for filename, adding the .xlsx
// extension when it is missing.
func OutputPath(filename string) string {
	if strings.EqualFold(filepath.Ext(filename), xlsxExt) {
		return filename
	}
	return filename + xlsxExt
}
