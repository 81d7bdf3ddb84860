package registry

import (
	"testing"

	"github.com/ha-zyxel/ZyxelMate/internal/config"
	"github.com/ha-zyxel/ZyxelMate/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli/v3"
)

type mockCommandFactory struct {
	name string
}

func (m *mockCommandFactory) CreateCommand(t *i18n.Translations, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name: m.name,
	}
}

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	translations, err := i18n.NewTranslations("en", "")
	assert.NoError(t, err)
	return NewRegistry(&config.Config{}, translations)
}

func TestRegistry_Register(t *testing.T) {
	t.Run("should register new factory successfully", func(t *testing.T) {
		registry := newTestRegistry(t)

		err := registry.Register("status", &mockCommandFactory{name: "status"})

		assert.NoError(t, err)
		assert.Len(t, registry.factories, 1)
		assert.Contains(t, registry.factories, "status")
	})

	t.Run("should return error when registering duplicate factory", func(t *testing.T) {
		registry := newTestRegistry(t)
		factory := &mockCommandFactory{name: "status"}

		_ = registry.Register("status", factory)
		err := registry.Register("status", factory)

		assert.Error(t, err)
		assert.Len(t, registry.factories, 1)
	})
}

func TestRegistry_CreateCommands(t *testing.T) {
	t.Run("should create commands in registration order", func(t *testing.T) {
		registry := newTestRegistry(t)
		assert.NoError(t, registry.Register("status", &mockCommandFactory{name: "status"}))
		assert.NoError(t, registry.Register("report", &mockCommandFactory{name: "report"}))

		commands := registry.CreateCommands()

		assert.Len(t, commands, 2)
		assert.Equal(t, "status", commands[0].Name)
		assert.Equal(t, "report", commands[1].Name)
	})
}
