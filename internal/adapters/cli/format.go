package cli

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/andrescamacho/prun-pricer/internal/domain/labor"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

// formatPrice renders a price with thousands separators; very small values
// fall back to scientific notation so they do not print as zero
func formatPrice(v float64) string {
	if v != 0 && math.Abs(v) < 0.01 {
		return fmt.Sprintf("%.3e", v)
	}
	return humanize.CommafWithDigits(v, 2)
}

// formatRates lists every tier's wage rate relative to pioneers
func formatRates(rates labor.Vector) string {
	parts := make([]string, 0, labor.RoleCount)
	pioneer := rates[labor.Pioneer]
	for _, role := range labor.Roles {
		if pioneer == 0 {
			parts = append(parts, fmt.Sprintf("%s=%g", role, rates[role]))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s=%.4gx", role, rates[role]/pioneer))
	}
	return strings.Join(parts, " ")
}

// maskPassword hides the password of a database URL
func maskPassword(url string) string {
	schemeEnd := strings.Index(url, "://")
	at := strings.LastIndex(url, "@")
	if schemeEnd < 0 || at < schemeEnd {
		return url
	}
	creds := url[schemeEnd+3 : at]
	colon := strings.Index(creds, ":")
	if colon < 0 {
		return url
	}
	return url[:schemeEnd+3] + creds[:colon] + ":****" + url[at:]
}
