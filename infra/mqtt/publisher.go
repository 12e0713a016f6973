// Package mqtt publishes simulation telemetry to an MQTT broker so external
// dashboards can follow a run live. The publisher is an optional SimSink; the
// core never depends on it.
package mqtt

import (
	"encoding/json"
	"fmt"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/m-aleem/eVTOL-sim/core/model"
	"github.com/m-aleem/eVTOL-sim/infra/logger"
)

// Config defines the connection parameters for the telemetry publisher.
type Config struct {
	Enabled  bool   `json:"enabled"`
	Broker   string `json:"broker"`
	ClientID string `json:"client_id"`
	Topic    string `json:"topic"`
	Username string `json:"username"`
	Password string `json:"password"`
	QoS      byte   `json:"qos"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.ClientID == "" {
		c.ClientID = "evtol-sim"
	}
	if c.Topic == "" {
		c.Topic = "evtol/fleet"
	}
}

// Validate checks mandatory fields when the publisher is enabled.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.Broker == "" {
		return fmt.Errorf("mqtt broker is required when telemetry is enabled")
	}
	return nil
}

type pahoClient interface {
	Connect() paho.Token
	Disconnect(quiesce uint)
	Publish(topic string, qos byte, retained bool, payload interface{}) paho.Token
}

var newPahoClient = func(opts *paho.ClientOptions) pahoClient {
	return paho.NewClient(opts)
}

// Publisher sends fleet snapshots and run summaries as JSON messages.
type Publisher struct {
	cli   pahoClient
	topic string
	qos   byte
	log   logger.Logger
}

// NewPublisher connects to the broker described by cfg.
func NewPublisher(cfg Config) (*Publisher, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts := paho.NewClientOptions().
		AddBroker(cfg.Broker).
		SetClientID(cfg.ClientID).
		SetConnectTimeout(5 * time.Second)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	cli := newPahoClient(opts)
	if token := cli.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}
	return &Publisher{
		cli:   cli,
		topic: cfg.Topic,
		qos:   cfg.QoS,
		log:   logger.New("mqtt-telemetry"),
	}, nil
}

// RecordTick publishes the snapshot on <topic>/state.
func (p *Publisher) RecordTick(snap model.FleetSnapshot) error {
	return p.publish(p.topic+"/state", snap)
}

// RecordSummary publishes the run totals on <topic>/summary.
func (p *Publisher) RecordSummary(runID string, stats []model.TypeStats, elapsed time.Duration) error {
	payload := struct {
		RunID     string            `json:"run_id"`
		Stats     []model.TypeStats `json:"stats"`
		ElapsedMS int64             `json:"elapsed_ms"`
	}{runID, stats, elapsed.Milliseconds()}
	return p.publish(p.topic+"/summary", payload)
}

func (p *Publisher) publish(topic string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal telemetry: %w", err)
	}
	token := p.cli.Publish(topic, p.qos, false, data)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("publish %s: %w", topic, token.Error())
	}
	return nil
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	p.cli.Disconnect(250)
}
