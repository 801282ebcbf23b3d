package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSocialPlatform_EveryPlatformHasIcon(t *testing.T) {
	for p, name := range platformNames {
		assert.NotEqual(t, "link", p.Icon(), name)
		assert.NotEmpty(t, p.Label(), name)

		parsed, err := ParseSocialPlatform(name)
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}
}

func TestParseSocialPlatform(t *testing.T) {
	p, err := ParseSocialPlatform(" Twitter ")
	require.NoError(t, err)
	assert.Equal(t, PlatformX, p)

	_, err = ParseSocialPlatform("myspace")
	assert.Error(t, err)
}

func TestSocialLink_JSON(t *testing.T) {
	var link SocialLink
	require.NoError(t, json.Unmarshal([]byte(`{"platform":"linkedin","url":"https://linkedin.com/company/x"}`), &link))
	assert.Equal(t, PlatformLinkedIn, link.Platform)

	out, err := json.Marshal(link)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"platform":"linkedin"`)

	assert.Error(t, json.Unmarshal([]byte(`{"platform":"geocities"}`), &link))
}
