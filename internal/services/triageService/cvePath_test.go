package triageservice_test

import (
	"testing"

	triageservice "github.com/RobsonDevCode/osvdesk/internal/services/triageService"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"
)

func TestDeriveCvePath(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"CVE-2021-44228", "https://raw.githubusercontent.com/CVEProject/cvelistV5/main/cves/2021/044xxx/CVE-2021-44228.json"},
		{"CVE-2021-1", "https://raw.githubusercontent.com/CVEProject/cvelistV5/main/cves/2021/0xxx/CVE-2021-1.json"},
		{"CVE-2024-999", "https://raw.githubusercontent.com/CVEProject/cvelistV5/main/cves/2024/0xxx/CVE-2024-999.json"},
		{"CVE-2024-1000", "https://raw.githubusercontent.com/CVEProject/cvelistV5/main/cves/2024/001xxx/CVE-2024-1000.json"},
		{"CVE-2023-1234567", "https://raw.githubusercontent.com/CVEProject/cvelistV5/main/cves/2023/1234xxx/CVE-2023-1234567.json"},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := triageservice.DeriveCvePath(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDeriveCvePath_InvalidFormat(t *testing.T) {
	for _, id := range []string{"GHSA-jfh8-c2jp-5v3q", "CVE-21-1", "cve-2021-44228", "CVE-2021-44228 "} {
		t.Run(id, func(t *testing.T) {
			_, err := triageservice.DeriveCvePath(id)
			require.Error(t, err)
			assert.True(t, xerrors.Is(err, triageservice.ErrInvalidCVEFormat))
			assert.Equal(t, "invalid CVE ID format: "+id, err.Error())
		})
	}
}
