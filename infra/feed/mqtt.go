// Package feed injects externally reported incidents into the raw event
// channel over MQTT. It is an optional boundary adapter; the simulation is
// fully functional without it.
package feed

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/naveeng/ndrsim/core/model"
	"github.com/naveeng/ndrsim/infra/logger"
)

// Config defines the connection parameters for the incident feed.
type Config struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Topic    string `json:"topic"`
	QoS      byte   `json:"qos"`
}

// SetDefaults applies defaults for optional fields.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "ndrsim-feed"
	}
	if c.Topic == "" {
		c.Topic = "ndr/incidents"
	}
}

// Validate checks mandatory fields when the feed is enabled.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Broker == "" {
		return fmt.Errorf("feed: broker is required")
	}
	return nil
}

// incident is the wire format of one externally reported event.
type incident struct {
	ID            string  `json:"id"`
	Category      string  `json:"category"`
	Region        string  `json:"region"`
	Population    int64   `json:"population_affected"`
	InfraDamage   int     `json:"infra_damage"`
	Accessibility int     `json:"accessibility"`
	SpreadRate    float64 `json:"spread_rate"`
	CascadingRisk int     `json:"cascading_risk"`
}

// Subscriber listens on the incident topic and forwards decoded events to
// the raw channel, where the coordinator scores them like any synthetic
// event.
type Subscriber struct {
	cli  paho.Client
	cfg  Config
	out  chan<- *model.DisasterEvent
	log  logger.Logger
	done chan struct{}
}

// New connects to the broker and subscribes to the incident topic.
func New(cfg Config, out chan<- *model.DisasterEvent, log logger.Logger) (*Subscriber, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if out == nil {
		return nil, fmt.Errorf("feed: output channel is required")
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	s := &Subscriber{cfg: cfg, out: out, log: log, done: make(chan struct{})}

	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectTimeout(5 * time.Second)
	opts.OnConnect = func(c paho.Client) {
		log.Infof("incident feed connected to %s", cfg.Broker)
		if token := c.Subscribe(cfg.Topic, cfg.QoS, s.onMessage); token.Wait() && token.Error() != nil {
			log.Errorf("feed subscribe error: %v", token.Error())
		}
	}
	opts.OnConnectionLost = func(_ paho.Client, err error) {
		log.Warnf("incident feed connection lost: %v", err)
	}

	s.cli = paho.NewClient(opts)
	if token := s.cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("feed connect: %w", token.Error())
	}
	return s, nil
}

func (s *Subscriber) onMessage(_ paho.Client, msg paho.Message) {
	var inc incident
	if err := json.Unmarshal(msg.Payload(), &inc); err != nil {
		s.log.Warnf("feed: discarding malformed incident: %v", err)
		return
	}
	ev, err := inc.toEvent()
	if err != nil {
		s.log.Warnf("feed: discarding invalid incident: %v", err)
		return
	}
	select {
	case s.out <- ev:
		s.log.Debugf("feed: injected %s", ev.ID)
	case <-s.done:
	}
}

func (inc incident) toEvent() (*model.DisasterEvent, error) {
	cat, err := model.ParseCategory(strings.ToUpper(inc.Category))
	if err != nil {
		return nil, err
	}
	if inc.Region == "" {
		return nil, fmt.Errorf("region is required")
	}
	id := inc.ID
	if id == "" {
		id = inc.Region + "-" + uuid.NewString()[:8]
	}
	return &model.DisasterEvent{
		ID:            id,
		Category:      cat,
		Region:        inc.Region,
		Created:       time.Now(),
		Population:    inc.Population,
		InfraDamage:   model.ClampPercent(inc.InfraDamage),
		Accessibility: model.ClampPercent(inc.Accessibility),
		SpreadRate:    inc.SpreadRate,
		CascadingRisk: model.ClampPercent(inc.CascadingRisk),
		Severity:      model.SeverityUnscored,
	}, nil
}

// Close stops injecting and disconnects from the broker.
func (s *Subscriber) Close() {
	close(s.done)
	s.cli.Disconnect(250)
}
