package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInputValidatorRegistersAllCommands(t *testing.T) {
	v := NewInputValidator(256)
	require.NotNil(t, v)

	expected := []string{
		"move", "get", "use", "zap", "cast", "equip", "drop",
		"open", "close", "search", "disarm", "talk", "stairs",
		"rest", "explore", "save", "load", "debug",
	}
	for _, cmd := range expected {
		_, ok := v.validators[cmd]
		assert.True(t, ok, "command %s should be registered", cmd)
	}
}

func TestValidateCommandRejectsOverlongLine(t *testing.T) {
	v := NewInputValidator(10)
	err := v.ValidateCommand("move north-by-northwest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum")
}

func TestValidateCommandRejectsUnknownVerb(t *testing.T) {
	v := NewInputValidator(256)
	err := v.ValidateCommand("fly away")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestValidateCommandMove(t *testing.T) {
	v := NewInputValidator(256)

	assert.NoError(t, v.ValidateCommand("move n"))
	assert.NoError(t, v.ValidateCommand("move SE"))
	assert.Error(t, v.ValidateCommand("move"))
	assert.Error(t, v.ValidateCommand("move up"))
}

func TestValidateCommandUseAndEquipRequireLetter(t *testing.T) {
	v := NewInputValidator(256)

	assert.NoError(t, v.ValidateCommand("use a"))
	assert.NoError(t, v.ValidateCommand("equip b"))
	assert.Error(t, v.ValidateCommand("use 1"))
	assert.Error(t, v.ValidateCommand("use"))
	assert.Error(t, v.ValidateCommand("use ab"))
}

func TestValidateCommandDropAllowsOptionalCount(t *testing.T) {
	v := NewInputValidator(256)

	assert.NoError(t, v.ValidateCommand("drop a"))
	assert.NoError(t, v.ValidateCommand("drop a 5"))
	assert.Error(t, v.ValidateCommand("drop a zero"))
	assert.Error(t, v.ValidateCommand("drop a 1 2"))
}

func TestValidateCommandZapRequiresLetterAndDirection(t *testing.T) {
	v := NewInputValidator(256)

	assert.NoError(t, v.ValidateCommand("zap c n"))
	assert.Error(t, v.ValidateCommand("zap c"))
	assert.Error(t, v.ValidateCommand("zap c up"))
}

func TestValidateCommandCast(t *testing.T) {
	v := NewInputValidator(256)

	assert.NoError(t, v.ValidateCommand("cast fireball"))
	assert.NoError(t, v.ValidateCommand("cast fireball n"))
	assert.Error(t, v.ValidateCommand("cast FireBall"))
	assert.Error(t, v.ValidateCommand("cast"))
}

func TestValidateCommandCoordinatePairs(t *testing.T) {
	v := NewInputValidator(256)

	for _, verb := range []string{"open", "close", "disarm", "talk"} {
		assert.NoError(t, v.ValidateCommand(verb+" 3 4"), verb)
		assert.Error(t, v.ValidateCommand(verb+" 3"), verb)
		assert.Error(t, v.ValidateCommand(verb+" x y"), verb)
	}
}

func TestValidateCommandStairs(t *testing.T) {
	v := NewInputValidator(256)

	assert.NoError(t, v.ValidateCommand("stairs up"))
	assert.NoError(t, v.ValidateCommand("stairs down"))
	assert.Error(t, v.ValidateCommand("stairs sideways"))
}

func TestValidateCommandDebugSubcommands(t *testing.T) {
	v := NewInputValidator(256)

	assert.NoError(t, v.ValidateCommand("debug yendor"))
	assert.NoError(t, v.ValidateCommand("debug floor 5"))
	assert.NoError(t, v.ValidateCommand("debug pos 1 2"))
	assert.NoError(t, v.ValidateCommand("debug hp 20"))
	assert.NoError(t, v.ValidateCommand("debug gold 100"))
	assert.Error(t, v.ValidateCommand("debug teleport"))
	assert.Error(t, v.ValidateCommand("debug"))
}

func TestValidateCommandNoArgCommands(t *testing.T) {
	v := NewInputValidator(256)

	for _, cmd := range []string{"get", "search", "explore", "save", "load"} {
		assert.NoError(t, v.ValidateCommand(cmd), cmd)
		assert.True(t, strings.HasPrefix(cmd, cmd))
		assert.Error(t, v.ValidateCommand(cmd+" extra"), cmd)
	}
}

func TestValidateCommandRestOptionalTurnCount(t *testing.T) {
	v := NewInputValidator(256)

	assert.NoError(t, v.ValidateCommand("rest"))
	assert.NoError(t, v.ValidateCommand("rest 10"))
	assert.Error(t, v.ValidateCommand("rest -1"))
	assert.Error(t, v.ValidateCommand("rest 1 2"))
}
