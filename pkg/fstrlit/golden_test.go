package fstrlit

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type goldenCase struct {
	Name     string `yaml:"name"`
	Body     string `yaml:"body"`
	WantText string `yaml:"want_text"`
	WantErr  string `yaml:"want_err"`
}

// TestGoldenCases drives pkg/fstrlit/testdata/cases.yaml, a set of
// concrete success and error scenarios expressed as data instead of Go
// code, keeping structured test/config data in YAML.
func TestGoldenCases(t *testing.T) {
	raw, err := os.ReadFile("testdata/cases.yaml")
	require.NoError(t, err)

	var cases []goldenCase
	require.NoError(t, yaml.Unmarshal(raw, &cases))
	require.NotEmpty(t, cases)

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			ctx := newTestContext()
			res, err := ParseString(ctx, tok(tc.Body))
			if tc.WantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.WantErr)
				return
			}
			require.NoError(t, err)
			c, ok := res.Node.(*Constant)
			require.True(t, ok, "expected a Constant result")
			assert.Equal(t, tc.WantText, c.Value.Text)
		})
	}
}
