package utils

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitLogger(t *testing.T) {
	logger, err := InitLogger("debug", true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = InitLogger("", false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))

	_, err = InitLogger("chatty", false)
	assert.Error(t, err)
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	app := fiber.New()
	app.Use(RequestLogger(zap.New(core)))
	app.Get("/ok", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("boom") })

	_, err := app.Test(httptest.NewRequest("GET", "/ok", nil))
	require.NoError(t, err)
	_, err = app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.EqualValues(t, fiber.StatusNoContent, entries[0].ContextMap()["status"])
	assert.Equal(t, "/ok", entries[0].ContextMap()["path"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.EqualValues(t, fiber.StatusInternalServerError, entries[1].ContextMap()["status"])
}

func TestR2ConfigEnabled(t *testing.T) {
	assert.False(t, R2Config{}.Enabled())
	cfg := R2Config{AccountID: "acct", AccessKeyID: "id", AccessKeySecret: "secret", Bucket: "boards"}
	assert.True(t, cfg.Enabled())

	_, err := NewR2Uploader(context.Background(), R2Config{Bucket: "boards"})
	assert.Error(t, err)
}

func TestR2UploaderURL(t *testing.T) {
	u, err := NewR2Uploader(context.Background(), R2Config{
		AccountID: "acct", AccessKeyID: "id", AccessKeySecret: "secret", Bucket: "boards",
		CDNBaseURL: "https://cdn.example.com/",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/leaderboards/all.json", u.URL("/leaderboards/all.json"))

	u, err = NewR2Uploader(context.Background(), R2Config{
		AccountID: "acct", AccessKeyID: "id", AccessKeySecret: "secret", Bucket: "boards",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://acct.r2.cloudflarestorage.com/boards/x.json", u.URL("x.json"))
}
