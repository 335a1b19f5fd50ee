package git

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRemoteURL(t *testing.T) {
	tests := []struct {
		raw        string
		owner, nm  string
		wantErr    bool
	}{
		{raw: "git@github.com:acme/widgets.git", owner: "acme", nm: "widgets"},
		{raw: "git@github.com:acme/widgets", owner: "acme", nm: "widgets"},
		{raw: "https://github.com/acme/widgets.git", owner: "acme", nm: "widgets"},
		{raw: "https://github.com/acme/widgets", owner: "acme", nm: "widgets"},
		{raw: "ssh://git@github.com/acme/widgets.git", owner: "acme", nm: "widgets"},
		{raw: "ssh://git@github.com:22/acme/widgets.git", owner: "acme", nm: "widgets"},
		{raw: "  https://github.com/acme/widgets \n", owner: "acme", nm: "widgets"},
		{raw: "https://github.com/acme", wantErr: true},
		{raw: "https://github.com/acme/widgets/extra", wantErr: true},
		{raw: "not-a-remote", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			owner, name, err := ParseRemoteURL(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.owner, owner)
			require.Equal(t, tt.nm, name)
		})
	}
}
