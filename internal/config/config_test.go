package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type ConfigSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (s *ConfigSuite) TestDefaults() {
	cfg, err := Load("")
	s.Require().NoError(err)
	s.Equal(Default(), cfg)
}

func (s *ConfigSuite) TestEnvironmentOverrides() {
	s.T().Setenv("WORDLED_PORT", "7878")
	s.T().Setenv("WORDLED_STORAGE", "redis")
	s.T().Setenv("WORDLED_REDIS_URL", "redis://cache:6380")
	s.T().Setenv("WORDLED_ROTATION_PERIOD", "30s")
	s.T().Setenv("WORDLED_MULTICAST_GROUP", "224.0.1.91")

	cfg, err := Load("")
	s.Require().NoError(err)
	s.Equal(7878, cfg.Port)
	s.Equal(StorageTypeRedis, cfg.StorageType)
	s.Equal("redis://cache:6380", cfg.RedisURL)
	s.Equal(30*time.Second, cfg.RotationPeriod)
	s.Equal("224.0.1.91", cfg.MulticastGroup)

	// Untouched keys keep their defaults.
	s.Equal(Default().AdminPort, cfg.AdminPort)
	s.Equal(Default().ShutdownGrace, cfg.ShutdownGrace)
}

func (s *ConfigSuite) TestEnvFile() {
	path := filepath.Join(s.T().TempDir(), "server.env")
	content := "WORDLED_PORT=6666\nWORDLED_DICTIONARY=/opt/wordled/words.txt\n"
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o644))

	// godotenv loads into the process environment; undo it afterwards.
	s.T().Cleanup(func() {
		_ = os.Unsetenv("WORDLED_PORT")
		_ = os.Unsetenv("WORDLED_DICTIONARY")
	})

	cfg, err := Load(path)
	s.Require().NoError(err)
	s.Equal(6666, cfg.Port)
	s.Equal("/opt/wordled/words.txt", cfg.DictionaryPath)
}

func (s *ConfigSuite) TestEnvFileMissing() {
	_, err := Load(filepath.Join(s.T().TempDir(), "nope.env"))
	s.Error(err)
}

func (s *ConfigSuite) TestInvalidPort() {
	s.T().Setenv("WORDLED_PORT", "not-a-number")
	_, err := Load("")
	s.ErrorContains(err, "WORDLED_PORT")
}

func (s *ConfigSuite) TestInvalidDuration() {
	s.T().Setenv("WORDLED_SHUTDOWN_GRACE", "fifteen")
	_, err := Load("")
	s.ErrorContains(err, "WORDLED_SHUTDOWN_GRACE")
}

func (s *ConfigSuite) TestInvalidStorageType() {
	s.T().Setenv("WORDLED_STORAGE", "postgres")
	_, err := Load("")
	s.ErrorContains(err, "WORDLED_STORAGE")
}
