package diagnostics

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// TestResult is one row of a diagnostics report. Statistic and PValue are
// NaN when Defined is false; PValue is also NaN for tests that produce a
// statistic without an associated p-value (Durbin-Watson). RejectNull is
// PValue < alpha and is always false when no p-value exists.
type TestResult struct {
	Check      Check
	Name       string
	Statistic  float64
	PValue     float64
	RejectNull bool
	Defined    bool
	Reason     string // why the row is undefined, or a caveat on a defined row
}

// Report is the aggregated outcome of a diagnostics run. It is immutable
// once returned: results appear in the fixed check order, never in
// completion order.
type Report struct {
	Results     []TestResult
	N           int
	Equidistant bool
	Alpha       float64
	Lags        int
	Nparam      int
	Freq        time.Duration // grid frequency used by Stoffer-Toloi
}

// String renders the report as a {Checks, Statistic, P-value, Reject H0}
// table.
func (r *Report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Diagnostics (n=%d, alpha=%.3g, equidistant=%v)\n", r.N, r.Alpha, r.Equidistant)
	fmt.Fprintf(&b, "%-22s %12s %10s %10s\n", "Checks", "Statistic", "P-value", "Reject H0")
	for _, res := range r.Results {
		if !res.Defined {
			fmt.Fprintf(&b, "%-22s %12s %10s %10s  (%s)\n", res.Name, "-", "-", "-", res.Reason)
			continue
		}
		pv := "n/a"
		if !math.IsNaN(res.PValue) {
			pv = fmt.Sprintf("%.4f", res.PValue)
		}
		fmt.Fprintf(&b, "%-22s %12.4f %10s %10v\n", res.Name, res.Statistic, pv, res.RejectNull)
	}
	return b.String()
}
