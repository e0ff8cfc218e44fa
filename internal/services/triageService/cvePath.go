package triageservice

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	triagesources "github.com/RobsonDevCode/osvdesk/internal/constants/triageSources"
)

var ErrInvalidCVEFormat = errors.New("invalid CVE ID format")

var cvePattern = regexp.MustCompile(`^CVE-(\d{4})-(\d+)$`)

// DeriveCvePath maps a CVE id onto its cvelistV5 file. Records are grouped by
// year and by the sequence number divided by 1000.
func DeriveCvePath(id string) (string, error) {
	match := cvePattern.FindStringSubmatch(id)
	if match == nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidCVEFormat, id)
	}

	sequence, err := strconv.Atoi(match[2])
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidCVEFormat, id)
	}

	return fmt.Sprintf("%s/%s/%sxxx/%s.json", triagesources.CveListBaseUrl, match[1], thousandsPrefix(sequence), id), nil
}

func thousandsPrefix(sequence int) string {
	prefix := sequence / 1000
	if prefix == 0 {
		return "0"
	}
	return fmt.Sprintf("%03d", prefix)
}
