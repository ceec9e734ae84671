package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naveeng/ndrsim/core/model"
)

func TestConfigDefaultsAndValidation(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	assert.Equal(t, "ndrsim-feed", cfg.ClientID)
	assert.Equal(t, "ndr/incidents", cfg.Topic)
	assert.NoError(t, cfg.Validate())

	cfg.Enabled = true
	assert.Error(t, cfg.Validate())
	cfg.Broker = "tcp://localhost:1883"
	assert.NoError(t, cfg.Validate())
}

func TestIncidentToEvent(t *testing.T) {
	inc := incident{
		Category:      "cyclone",
		Region:        "OD",
		Population:    80_000,
		InfraDamage:   150,
		Accessibility: -5,
		SpreadRate:    120,
		CascadingRisk: 60,
	}
	ev, err := inc.toEvent()
	require.NoError(t, err)
	assert.Equal(t, model.CategoryCyclone, ev.Category)
	assert.Equal(t, "OD", ev.Region)
	assert.Equal(t, 100, ev.InfraDamage)
	assert.Equal(t, 0, ev.Accessibility)
	assert.Equal(t, model.SeverityUnscored, ev.Severity)
	assert.NotEmpty(t, ev.ID)
	assert.False(t, ev.Created.IsZero())
}

func TestIncidentToEventKeepsProvidedID(t *testing.T) {
	inc := incident{ID: "ext-42", Category: "FLOOD", Region: "KL"}
	ev, err := inc.toEvent()
	require.NoError(t, err)
	assert.Equal(t, "ext-42", ev.ID)
}

func TestIncidentToEventRejectsInvalid(t *testing.T) {
	_, err := incident{Category: "METEOR", Region: "KL"}.toEvent()
	assert.Error(t, err)

	_, err = incident{Category: "FLOOD"}.toEvent()
	assert.Error(t, err)
}

func TestNewRequiresOutputChannel(t *testing.T) {
	_, err := New(Config{Enabled: true, Broker: "tcp://localhost:1883"}, nil, nil)
	assert.Error(t, err)
}
