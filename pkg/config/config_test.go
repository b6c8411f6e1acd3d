package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadConfig(t *testing.T) {
	os.Clearenv()
	os.Setenv("AOSMITH_EMAIL", "user@example.com")
	os.Setenv("AOSMITH_PASSWORD", "hunter2")

	c, err := ReadConfig()
	if err != nil {
		t.Fail()
		t.Logf("Error found: %s", err.Error())
	}

	assert.Equal(t, "user@example.com", c.AOSmith.Email, "A. O. Smith email is wrong.")
	assert.Equal(t, "hunter2", c.AOSmith.Password, "A. O. Smith password is wrong.")
	assert.Equal(t, "INFO", c.LogLevel, "Log level default is wrong.")
	assert.Equal(t, false, c.HealthCheck.Enabled, "Health check default is wrong.")
	assert.Equal(t, 8080, c.HealthCheck.Port, "Health check port default is wrong.")
}

func TestReadConfigMissingCredentials(t *testing.T) {
	os.Clearenv()

	_, err := ReadConfig()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "required field not found in config")
}
