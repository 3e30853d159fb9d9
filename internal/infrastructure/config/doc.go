// Package config loads and validates rig-calc configuration.
//
// Values are resolved in three layers: built-in defaults, then the YAML
// file, then RIGCALC_* environment variables (for example
// RIGCALC_DATABASE_PATH or RIGCALC_SUPPLY_VOLTAGE). A missing file means
// defaults only.
//
// Credentials such as the MQTT password and InfluxDB token should come from
// the environment rather than the file.
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Rig.SupplyVoltage)
package config
