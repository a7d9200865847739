package main

import (
	"bytes"
	"flag"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags resets the global flag.CommandLine to avoid "flag redefined" panic
func resetFlags() {
	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ExitOnError)
}

// resetEnv clears env vars used by parseConfig
func resetEnv() {
	os.Clearenv()
}

func TestParseFlags_Default(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd"}
	assert.Equal(t, "config.env", parseFlags())
}

func TestParseFlags_Custom(t *testing.T) {
	resetFlags()
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()

	os.Args = []string{"cmd", "-c", "myconfig.env"}
	assert.Equal(t, "myconfig.env", parseFlags())
}

func TestPrintBuildInfo_Output(t *testing.T) {
	// Capture stdout
	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	buildVersion = "v1.0.0"
	buildCommit = "abcd1234"
	buildDate = "2025-09-26"

	printBuildInfo()

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout

	output := buf.String()
	assert.Contains(t, output, "Version: v1.0.0")
	assert.Contains(t, output, "Commit: abcd1234")
	assert.Contains(t, output, "Build: 2025-09-26")
}

func TestParseConfig_Defaults(t *testing.T) {
	resetEnv()

	cfg, err := parseConfig("nonexistent.env")
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.AppHost)
	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"http://localhost:*"}, cfg.CORSOrigins)

	assert.Equal(t, "localhost", cfg.PGHost)
	assert.Equal(t, 5432, cfg.PGPort)
	assert.Equal(t, 16, cfg.PGMaxOpenConns)
	assert.Equal(t, 8, cfg.PGMaxIdleConns)

	assert.Equal(t, 6379, cfg.RedisPort)
	assert.Equal(t, 60, cfg.RedisExpSecond)

	assert.Equal(t, 900, cfg.AccessTokenExpSecond)
	assert.Equal(t, 864000, cfg.RefreshTokenExpSecond)
	assert.NotEqual(t, cfg.AccessTokenSecret, cfg.RefreshTokenSecret)

	assert.Equal(t, "media", cfg.S3Bucket)
	assert.Equal(t, cfg.S3Endpoint, cfg.S3PublicBaseURL)
	assert.Equal(t, 30, cfg.MediaUploadTimeoutSecond)
	assert.Equal(t, 10, cfg.MediaMaxUploadMB)

	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "account-events", cfg.KafkaTopic)
}

func TestParseConfig_CustomEnv(t *testing.T) {
	resetEnv()
	t.Setenv("APP_HOST", "127.0.0.1")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("APP_LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGIN", "https://app.example.com,https://admin.example.com")
	t.Setenv("POSTGRES_HOST", "pg.example.com")
	t.Setenv("POSTGRES_PORT", "5433")
	t.Setenv("REDIS_EXP_SECOND", "120")
	t.Setenv("ACCESS_TOKEN_SECRET", "a")
	t.Setenv("ACCESS_TOKEN_EXP_SECOND", "60")
	t.Setenv("REFRESH_TOKEN_SECRET", "r")
	t.Setenv("REFRESH_TOKEN_EXP_SECOND", "3600")
	t.Setenv("S3_ENDPOINT", "http://minio:9000")
	t.Setenv("S3_PUBLIC_BASE_URL", "https://cdn.example.com")
	t.Setenv("S3_BUCKET", "avatars")
	t.Setenv("MEDIA_UPLOAD_TIMEOUT_SECOND", "5")
	t.Setenv("KAFKA_BROKERS", "kafka1:9092, kafka2:9092,")
	t.Setenv("KAFKA_TOPIC", "users")

	cfg, err := parseConfig("nonexistent.env")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.AppHost)
	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, "pg.example.com", cfg.PGHost)
	assert.Equal(t, 5433, cfg.PGPort)
	assert.Equal(t, 120, cfg.RedisExpSecond)
	assert.Equal(t, "a", cfg.AccessTokenSecret)
	assert.Equal(t, 60, cfg.AccessTokenExpSecond)
	assert.Equal(t, "r", cfg.RefreshTokenSecret)
	assert.Equal(t, 3600, cfg.RefreshTokenExpSecond)
	assert.Equal(t, "http://minio:9000", cfg.S3Endpoint)
	assert.Equal(t, "https://cdn.example.com", cfg.S3PublicBaseURL)
	assert.Equal(t, "avatars", cfg.S3Bucket)
	assert.Equal(t, 5, cfg.MediaUploadTimeoutSecond)
	assert.Equal(t, []string{"kafka1:9092", "kafka2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "users", cfg.KafkaTopic)
}

func TestParseConfig_InvalidNumber(t *testing.T) {
	resetEnv()
	t.Setenv("POSTGRES_PORT", "not-a-number")

	_, err := parseConfig("nonexistent.env")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POSTGRES_PORT")
}

func TestParseConfig_FromFile(t *testing.T) {
	resetEnv()

	path := t.TempDir() + "/config.env"
	require.NoError(t, os.WriteFile(path, []byte("APP_PORT=7070\nS3_BUCKET=fromfile\n"), 0o600))

	cfg, err := parseConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.AppPort)
	assert.Equal(t, "fromfile", cfg.S3Bucket)
}
