package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/aemckenna/rig-calc/internal/infrastructure/config"
)

func testConfig() config.MQTTConfig {
	return config.MQTTConfig{
		Enabled: true,
		Broker: config.MQTTBrokerConfig{
			Host:     "127.0.0.1",
			Port:     1883,
			ClientID: "rigcalc-test",
		},
		QoS: 1,
		Reconnect: config.MQTTReconnectConfig{
			InitialDelay: 1,
			MaxDelay:     5,
		},
	}
}

// liveConfig returns a config for the broker named by RIGCALC_TEST_MQTT_BROKER,
// skipping the test when it is unset.
func liveConfig(t *testing.T) config.MQTTConfig {
	t.Helper()
	addr := os.Getenv("RIGCALC_TEST_MQTT_BROKER")
	if addr == "" {
		t.Skip("RIGCALC_TEST_MQTT_BROKER not set")
	}
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		t.Fatalf("bad RIGCALC_TEST_MQTT_BROKER %q: %v", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatalf("bad port in %q: %v", addr, err)
	}
	cfg := testConfig()
	cfg.Broker.Host = host
	cfg.Broker.Port = port
	return cfg
}

func TestTopicBuilders(t *testing.T) {
	topics := Topics{}
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"RigSummary", topics.RigSummary(), "rigcalc/rig/summary"},
		{"UniverseAlert", topics.UniverseAlert(2), "rigcalc/alert/universe/2"},
		{"CircuitAlert", topics.CircuitAlert("Stage_Right"), "rigcalc/alert/circuit/Stage_Right"},
		{"CircuitAlert space", topics.CircuitAlert("Stage Right"), "rigcalc/alert/circuit/Stage_Right~47d50c13"},
		{"CircuitAlert wildcard", topics.CircuitAlert("FOH/#1"), "rigcalc/alert/circuit/FOH__1~ee362943"},
		{"SystemStatus", topics.SystemStatus(), "rigcalc/system/status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
			}
		})
	}
}

func TestTopicSegment(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Dimmer 1", "Dimmer_1~37fc8560"},
		{"  Upstage Truss ", "Upstage_Truss~657148bd"},
		{"Upstage Truss", "Upstage_Truss~657148bd"},
		{"a+b", "a_b~1298c425"},
		{"", "_"},
		{"   ", "_"},
		{"Unassigned", "Unassigned"},
		{"Dimmer_1", "Dimmer_1"},
	}
	for _, tt := range tests {
		if got := TopicSegment(tt.in); got != tt.want {
			t.Errorf("TopicSegment(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if strings.ContainsAny(TopicSegment(tt.in), "/+#") {
			t.Errorf("TopicSegment(%q) contains topic metacharacters", tt.in)
		}
	}
}

func TestBuildStatusPayload(t *testing.T) {
	var p statusPayload
	if err := json.Unmarshal(buildStatusPayload(statusOffline, `id"with"quotes`, reasonUnexpected), &p); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if p.Status != "offline" || p.ClientID != `id"with"quotes` || p.Reason != "unexpected_disconnect" {
		t.Errorf("payload = %+v", p)
	}
	if p.Timestamp == "" {
		t.Error("payload missing timestamp")
	}

	online := string(buildStatusPayload(statusOnline, "rigcalc", ""))
	if strings.Contains(online, "reason") {
		t.Errorf("online payload has reason: %s", online)
	}
}

func TestBuildClientOptions(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.Username = "rig"
	cfg.Auth.Password = "secret"

	opts := buildClientOptions(cfg)
	configureLWT(opts, cfg.Broker.ClientID)

	if len(opts.Servers) != 1 || opts.Servers[0].String() != "tcp://127.0.0.1:1883" {
		t.Errorf("Servers = %v, want tcp://127.0.0.1:1883", opts.Servers)
	}
	if opts.ClientID != "rigcalc-test" {
		t.Errorf("ClientID = %q", opts.ClientID)
	}
	if opts.Username != "rig" || opts.Password != "secret" {
		t.Error("credentials not applied")
	}
	if !opts.AutoReconnect || !opts.CleanSession {
		t.Error("expected auto-reconnect and clean session")
	}
	if !opts.WillEnabled || opts.WillTopic != "rigcalc/system/status" || !opts.WillRetained {
		t.Errorf("LWT = enabled:%v topic:%q retained:%v", opts.WillEnabled, opts.WillTopic, opts.WillRetained)
	}
	if opts.TLSConfig != nil {
		t.Error("TLS configured without cfg.Broker.TLS")
	}

	cfg.Broker.TLS = true
	cfg.Broker.Port = 8883
	opts = buildClientOptions(cfg)
	if opts.Servers[0].Scheme != "ssl" {
		t.Errorf("scheme = %q, want ssl", opts.Servers[0].Scheme)
	}
	if opts.TLSConfig == nil || opts.TLSConfig.MinVersion != tlsMinVersion {
		t.Error("TLS config missing or below minimum version")
	}
}

func TestPublish_Validation(t *testing.T) {
	c := &Client{cfg: testConfig()}

	tests := []struct {
		name    string
		topic   string
		payload []byte
		qos     byte
		wantErr error
	}{
		{"empty topic", "", []byte("x"), 1, ErrInvalidTopic},
		{"bad qos", "rigcalc/rig/summary", []byte("x"), 3, ErrInvalidQoS},
		{"oversized", "rigcalc/rig/summary", make([]byte, maxPayloadSize+1), 1, ErrPublishFailed},
		{"not connected", "rigcalc/rig/summary", []byte("x"), 1, ErrNotConnected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Publish(tt.topic, tt.payload, tt.qos, true)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Publish() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if err := c.PublishRetained("rigcalc/rig/summary", nil); !errors.Is(err, ErrNotConnected) {
		t.Errorf("PublishRetained() error = %v, want ErrNotConnected", err)
	}
	if err := c.ClearRetained("rigcalc/alert/universe/1"); !errors.Is(err, ErrNotConnected) {
		t.Errorf("ClearRetained() error = %v, want ErrNotConnected", err)
	}
}

func TestCloseNil(t *testing.T) {
	c := &Client{}
	if err := c.Close(); err != nil {
		t.Errorf("Close() on unconnected client error = %v", err)
	}
}

func TestHealthCheck_Disconnected(t *testing.T) {
	c := &Client{}

	if err := c.HealthCheck(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Errorf("HealthCheck() error = %v, want ErrNotConnected", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.HealthCheck(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("HealthCheck() error = %v, want context.Canceled", err)
	}
}

func TestConnect_Live(t *testing.T) {
	cfg := liveConfig(t)

	client, err := Connect(cfg)
	if err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	defer client.Close() //nolint:errcheck // Test cleanup

	if !client.IsConnected() {
		t.Fatal("IsConnected() = false after Connect")
	}
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() error = %v", err)
	}
	if err := client.PublishRetained(Topics{}.RigSummary(), []byte(`{"lines":0}`)); err != nil {
		t.Errorf("PublishRetained() error = %v", err)
	}
	if err := client.ClearRetained(Topics{}.RigSummary()); err != nil {
		t.Errorf("ClearRetained() error = %v", err)
	}

	if err := client.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if client.IsConnected() {
		t.Error("IsConnected() = true after Close")
	}
}
