package pkg

import (
	"testing"

	"github.com/mentorhub/matching-service/internal/config"
)

func TestGormConfig(t *testing.T) {
	t.Run("TranslatesDriverErrors", func(t *testing.T) {
		for _, env := range []string{"development", "production"} {
			cfg := &config.Config{Environment: env}
			if !gormConfig(cfg).TranslateError {
				t.Errorf("Expected TranslateError enabled in %s", env)
			}
		}
	})

	t.Run("ConfiguresLogger", func(t *testing.T) {
		cfg := &config.Config{Environment: "development"}
		if gormConfig(cfg).Logger == nil {
			t.Error("Expected a configured gorm logger")
		}
	})
}
