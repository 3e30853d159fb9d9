package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aemckenna/rig-calc/internal/api"
	"github.com/aemckenna/rig-calc/internal/history"
	"github.com/aemckenna/rig-calc/internal/infrastructure/config"
	"github.com/aemckenna/rig-calc/internal/infrastructure/influxdb"
	"github.com/aemckenna/rig-calc/internal/infrastructure/logging"
	"github.com/aemckenna/rig-calc/internal/infrastructure/mqtt"
)

func newServeCmd(configPath *string) *cobra.Command {
	var panelDir string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and browser panel",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), *configPath, serveOptions{PanelDir: panelDir})
		},
	}
	cmd.Flags().StringVar(&panelDir, "panel-dir", "", "serve panel assets from this directory instead of the embedded copy")
	return cmd
}

// serveOptions holds flags that only the serve command accepts.
type serveOptions struct {
	PanelDir string
}

// runServe wires the application together and blocks until ctx is cancelled.
// Deferred closes run in reverse order: API, InfluxDB, MQTT, database.
func runServe(ctx context.Context, configPath string, opts serveOptions) error {
	log := logging.Default()
	log.Info("starting rigcalc",
		"version", version,
		"commit", commit,
		"build_date", date,
	)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log = logging.New(cfg.Logging, version)
	log.Info("configuration loaded", "path", configPath, "supply_voltage", cfg.Rig.SupplyVoltage)

	db, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		log.Info("closing database")
		if closeErr := db.Close(); closeErr != nil {
			log.Error("error closing database", "error", closeErr)
		}
	}()
	log.Info("database ready", "path", cfg.Database.Path)

	sess, err := openSession(ctx, cfg, db, log)
	if err != nil {
		return err
	}

	deps := api.Deps{
		Config:   cfg.API,
		WS:       cfg.WebSocket,
		Logger:   log,
		Session:  sess,
		Database: db,
		PanelDir: opts.PanelDir,
		Version:  version,
	}

	if cfg.Rig.HistorySize > 0 {
		journal := history.New(cfg.Rig.HistorySize)
		sess.SetJournal(journal)
		deps.History = journal
		log.Info("change journal enabled", "size", cfg.Rig.HistorySize)
	}

	if cfg.MQTT.Enabled {
		mqttClient, mqttErr := mqtt.Connect(cfg.MQTT)
		if mqttErr != nil {
			return fmt.Errorf("connecting to MQTT: %w", mqttErr)
		}
		defer func() {
			log.Info("disconnecting from MQTT")
			if closeErr := mqttClient.Close(); closeErr != nil {
				log.Error("error closing MQTT", "error", closeErr)
			}
		}()
		mqttClient.SetLogger(log.With("component", "mqtt"))
		sess.SetPublisher(mqttClient)
		deps.MQTT = mqttClient
		log.Info("MQTT connected",
			"broker", fmt.Sprintf("%s:%d", cfg.MQTT.Broker.Host, cfg.MQTT.Broker.Port),
			"client_id", cfg.MQTT.Broker.ClientID,
		)
	} else {
		log.Info("MQTT disabled")
	}

	if cfg.InfluxDB.Enabled {
		influxClient, influxErr := influxdb.Connect(cfg.InfluxDB)
		if influxErr != nil {
			return fmt.Errorf("connecting to InfluxDB: %w", influxErr)
		}
		defer func() {
			log.Info("closing InfluxDB connection")
			if closeErr := influxClient.Close(); closeErr != nil {
				log.Error("error closing InfluxDB", "error", closeErr)
			}
		}()
		influxClient.SetOnError(func(err error) {
			log.Error("InfluxDB write error", "error", err)
		})
		sess.SetRecorder(influxClient)
		deps.InfluxDB = influxClient
		log.Info("InfluxDB connected",
			"url", cfg.InfluxDB.URL,
			"org", cfg.InfluxDB.Org,
			"bucket", cfg.InfluxDB.Bucket,
		)
	} else {
		log.Info("InfluxDB disabled")
	}

	srv, err := api.New(deps)
	if err != nil {
		return fmt.Errorf("creating API server: %w", err)
	}
	sess.SetNotifier(srv.Hub())

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("starting API server: %w", err)
	}
	defer func() {
		if closeErr := srv.Close(); closeErr != nil {
			log.Error("error closing API server", "error", closeErr)
		}
	}()
	log.Info("initialisation complete, waiting for shutdown signal", "address", srv.Addr())

	<-ctx.Done()
	log.Info("shutdown signal received, cleaning up")
	return nil
}
