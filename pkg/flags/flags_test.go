package flags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePort(t *testing.T) {
	assert.NoError(t, validatePort("8080"))
	assert.NoError(t, validatePort("65535"))

	assert.Error(t, validatePort(""))
	assert.Error(t, validatePort("abc"))
	assert.Error(t, validatePort("0"))
	assert.Error(t, validatePort("65536"))
	assert.Error(t, validatePort("-1"))
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{Port: "8080"}.Validate())
	assert.Error(t, Config{Port: "bad"}.Validate())
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, "8080", config.Port)
	assert.False(t, config.Help)
}
