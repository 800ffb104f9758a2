package report

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"supply-curve/internal/analysis"
	"supply-curve/internal/supply"
)

// SupplyCurveHeader is the column order of the supply curve table.
var SupplyCurveHeader = []string{
	"index",
	"resource_name",
	"resource_type",
	"mw",
	"price",
	"cumulative_mw",
	"telemetered_status",
}

func WriteSupplyCurveCSV(path string, curve *supply.SupplyCurve) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := EncodeSupplyCurveCSV(f, curve); err != nil {
		return err
	}
	return f.Close()
}

// EncodeSupplyCurveCSV writes the curve in merit order. Output is
// byte-for-byte stable for a given curve.
func EncodeSupplyCurveCSV(w io.Writer, curve *supply.SupplyCurve) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SupplyCurveHeader); err != nil {
		return err
	}
	for _, r := range curve.Rows() {
		row := []string{
			strconv.Itoa(r.Index),
			r.ResourceName,
			r.ResourceType,
			fmtFloat(r.MW),
			fmtFloat(r.Price),
			fmtFloat(r.CumulativeMW),
			r.TelemeteredStatus,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteSummaryJSON(path string, s analysis.CurveSummary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(raw, '\n'), 0o644)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
