// Package mqtt publishes rig-calc state to an MQTT broker.
//
// After every rig change the session publishes a retained summary and
// retained alerts for universes over capacity and circuits in the warning or
// over-limit bands:
//
//	rigcalc/rig/summary
//	rigcalc/alert/universe/{n}
//	rigcalc/alert/circuit/{name}
//	rigcalc/system/status        (online/offline, LWT)
//
// {name} is the circuit name with separators, wildcards and spaces replaced
// by underscores, plus a hash suffix whenever that replacement changed it.
// An alert that no longer applies is cleared with an empty retained payload.
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	client.PublishRetained(mqtt.Topics{}.RigSummary(), payload)
//
// Tests that need a live broker are skipped unless RIGCALC_TEST_MQTT_BROKER
// is set to host:port.
package mqtt
