package influxdb

import (
	"strconv"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// Measurement names.
const (
	MeasurementCircuitLoad   = "circuit_load"
	MeasurementUniverseUsage = "universe_usage"
)

// WriteCircuitLoad records the load on one power circuit.
//
//	client.WriteCircuitLoad("Truss", "warning", 1975, 16.5)
func (c *Client) WriteCircuitLoad(circuit, band string, watts, amps float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		MeasurementCircuitLoad,
		map[string]string{
			"circuit": circuit,
			"band":    band,
		},
		map[string]any{
			"watts": watts,
			"amps":  amps,
		},
		time.Now(),
	)
	c.writeAPI.WritePoint(point)
}

// WriteUniverseUsage records the channel occupancy of one DMX universe.
// percent is relative to the 512 channels of a universe.
func (c *Client) WriteUniverseUsage(universe, channels int, percent float64) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		MeasurementUniverseUsage,
		map[string]string{
			"universe": strconv.Itoa(universe),
		},
		map[string]any{
			"channels": channels,
			"percent":  percent,
		},
		time.Now(),
	)
	c.writeAPI.WritePoint(point)
}
