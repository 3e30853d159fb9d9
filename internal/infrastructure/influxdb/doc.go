// Package influxdb writes rig telemetry to InfluxDB v2.
//
// After every rig change the session records one circuit_load point per
// power circuit (tags circuit, band; fields watts, amps) and one
// universe_usage point per universe (tag universe; fields channels,
// percent). Writes are non-blocking and batched per config.yaml
// (batch_size, flush_interval); asynchronous failures are reported through
// SetOnError.
//
// Usage:
//
//	client, err := influxdb.Connect(cfg.InfluxDB)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	client.WriteCircuitLoad("Stage Left", "normal", 960, 8)
package influxdb
