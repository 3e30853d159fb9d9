// Package session owns the live rig.
//
// A Session wraps one rig.Store and is the only writer to it. Every
// mutation runs under the session lock: the request is validated, the store
// changes, and the new snapshot is written to the key-value store before
// the lock is released. Readers see a consistent store and always get
// aggregates recomputed from the full list of lines.
//
// After each change the session fans out to optional collaborators:
//
//   - Publisher: retained MQTT summary plus universe and circuit alerts
//   - Recorder: InfluxDB circuit_load and universe_usage points
//   - Journal: change history, skipped for the startup restore
//   - Notifier: WebSocket "rig.changed" broadcast
//
// These side effects are best effort. Failures are logged and never change
// the outcome of the operation that triggered them. Notifications are
// serialised so that retained MQTT state always reflects the latest change.
//
// Usage:
//
//	s := session.New(rig.NewValidator(cat, 120), kv, session.Config{
//	    StorageKey:    rig.StorageKey,
//	    SupplyVoltage: 120,
//	}, logger)
//	s.SetPublisher(mqttClient)
//	s.Load(ctx)
//
//	line, err := s.AddLine(ctx, req)
//	if rig.IsRejection(err) {
//	    // show the reason; the rig is unchanged
//	}
package session
