package date

import (
	"fmt"
	"regexp"
	"time"
)

const (
	unstable = "unstable"
)

var versionRgx = regexp.MustCompile(`^(\d{4})-(01|04|07|10)$`)

// APIVersion returns the Admin API release that was current at t.
// Releases ship on the first day of January, April, July and October (UTC).
func APIVersion(t time.Time) string {
	t = t.UTC()
	month := ((int(t.Month())-1)/3)*3 + 1
	return fmt.Sprintf("%04d-%02d", t.Year(), month)
} // ./APIVersion

func ValidAPIVersion(v string) bool {
	if v == unstable {
		return true
	}
	return versionRgx.MatchString(v)
} // ./ValidAPIVersion
