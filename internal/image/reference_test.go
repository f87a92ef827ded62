package image

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewReference(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		expected string
		isLatest bool
	}{
		{"default version", "", "registry.gai.co.id/gai/docling_api:latest", true},
		{"explicit latest", "latest", "registry.gai.co.id/gai/docling_api:latest", true},
		{"semantic version", "1.2.3", "registry.gai.co.id/gai/docling_api:1.2.3", false},
		{"prerelease version", "2.0.0-rc1", "registry.gai.co.id/gai/docling_api:2.0.0-rc1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := NewReference("registry.gai.co.id", "gai/docling_api", tt.version)
			require.Equal(t, tt.expected, ref.String())
			require.Equal(t, tt.isLatest, ref.IsLatest())
			require.NoError(t, ref.Validate())
		})
	}
}

func TestReferenceLatest(t *testing.T) {
	ref := NewReference("registry.gai.co.id", "gai/docling_api", "1.2.3")
	latest := ref.Latest()

	require.Equal(t, "registry.gai.co.id/gai/docling_api:latest", latest.String())
	require.True(t, latest.IsLatest())
	// The original reference is unchanged.
	require.Equal(t, "1.2.3", ref.Version)
}

func TestReferenceName(t *testing.T) {
	ref := NewReference("registry.gai.co.id", "gai/docling_api", "1.2.3")
	require.Equal(t, "registry.gai.co.id/gai/docling_api", ref.Name())
}

func TestReferenceValidate(t *testing.T) {
	tests := []struct {
		name       string
		host       string
		repository string
		version    string
		wantErr    bool
	}{
		{"valid", "registry.gai.co.id", "gai/docling_api", "1.2.3", false},
		{"uppercase repository", "registry.gai.co.id", "GAI/docling_api", "1.2.3", true},
		{"empty repository", "registry.gai.co.id", "", "1.2.3", true},
		{"tag with spaces", "registry.gai.co.id", "gai/docling_api", "1 2 3", true},
		{"registry with port", "localhost:5000", "gai/docling_api", "dev", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := NewReference(tt.host, tt.repository, tt.version)
			err := ref.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
