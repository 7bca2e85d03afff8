package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "")
	t.Setenv("S3_REGION", "")
	t.Setenv("S3_BUCKET", "")
	t.Setenv("GEMINI_MODEL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "auto", cfg.S3Region)
	assert.Equal(t, "gemini-1.5-pro", cfg.GeminiModel)
	assert.False(t, cfg.ImagesEnabled())
}

func TestImagesEnabled(t *testing.T) {
	cfg := Config{S3Bucket: "crops", S3AccessKey: "key", S3SecretKey: "secret"}
	assert.True(t, cfg.ImagesEnabled())
}
