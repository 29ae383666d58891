package service_test

import (
	"testing"

	"github.com/starloomhq/starloom/internal/product/domain"
	"github.com/starloomhq/starloom/internal/product/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	catalog := service.New()

	cases := []struct {
		name    string
		input   string
		wantKey string
		wantErr error
	}{
		{"exact", "Basic Reading", "basic", nil},
		{"lowercase", "detailed analysis", "detailed", nil},
		{"extra whitespace", "  Comprehensive   Reading ", "comprehensive", nil},
		{"key form", "basic", "basic", nil},
		{"unknown", "Nonexistent Plan", "", domain.ErrUnknownProduct},
		{"empty", "", "", domain.ErrUnknownProduct},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := catalog.Resolve(tc.input)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantKey, p.Key)
		})
	}
}

func TestList_PricesAndTiers(t *testing.T) {
	catalog := service.New()
	all := catalog.List()
	require.Len(t, all, 3)

	assert.Equal(t, int64(999), all[0].Price)
	assert.Equal(t, int64(1999), all[1].Price)
	assert.Equal(t, int64(2999), all[2].Price)
	assert.Equal(t, "comprehensive", all[2].Tier)
}
