package marketplace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlatform(t *testing.T) {
	t.Run("accepts any case and surrounding space", func(t *testing.T) {
		for in, want := range map[string]Platform{
			"shopee":    PlatformShopee,
			"TikTok":    PlatformTikTok,
			" LAZADA\t": PlatformLazada,
		} {
			got, err := ParsePlatform(in)
			require.NoError(t, err, in)
			assert.Equal(t, want, got)
		}
	})

	t.Run("rejects unknown selectors", func(t *testing.T) {
		for _, in := range []string{"", "amazon", "shop ee"} {
			_, err := ParsePlatform(in)
			assert.ErrorIs(t, err, ErrUnsupportedPlatform, in)
		}
	})
}

func TestPlatform_IsValid(t *testing.T) {
	for _, p := range AllPlatforms() {
		assert.True(t, p.IsValid())
		assert.NotEmpty(t, p.DisplayName())
	}
	assert.False(t, Platform("shopee").IsValid())
	assert.Equal(t, "TikTok Shop", PlatformTikTok.DisplayName())
	assert.Equal(t, "OTHER", Platform("OTHER").DisplayName())
}
