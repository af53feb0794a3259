package entrypoint

import (
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/pingcap/errors"
)

var versionPattern = regexp.MustCompile(`v?(\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z.-]+)?)`)

// ExtractVersion returns the first semantic version found in a CLI's
// version output, e.g. "codex-cli 0.39.0" → 0.39.0.
func ExtractVersion(output string) (*semver.Version, error) {
	m := versionPattern.FindStringSubmatch(output)
	if m == nil {
		return nil, errors.Errorf("no version found in %q", strings.TrimSpace(output))
	}
	v, err := semver.NewVersion(m[1])
	if err != nil {
		return nil, errors.Annotatef(err, "parsing version %q", m[1])
	}
	return v, nil
}

// CheckMinimum verifies the version in output is at least minimum.
// An empty minimum always passes. Handles "v" prefix tolerance.
func CheckMinimum(output, minimum string) (*semver.Version, error) {
	if minimum == "" {
		v, _ := ExtractVersion(output)
		return v, nil
	}
	want, err := semver.NewVersion(strings.TrimPrefix(minimum, "v"))
	if err != nil {
		return nil, errors.Annotatef(err, "parsing minimum version %q", minimum)
	}
	got, err := ExtractVersion(output)
	if err != nil {
		return nil, err
	}
	if got.LessThan(want) {
		return got, errors.Errorf("version %s is older than required %s", got, want)
	}
	return got, nil
}
