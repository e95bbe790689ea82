package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/kljama/jmx2influx/internal/config"
	"github.com/kljama/jmx2influx/internal/influx"
	"github.com/kljama/jmx2influx/internal/influxv2"
	"github.com/kljama/jmx2influx/internal/logger"
	"github.com/kljama/jmx2influx/internal/model"
)

// Capture is one recorded collection cycle: the server and query it
// came from plus the results it produced.
type Capture struct {
	Server  model.Server   `json:"server"`
	Query   model.Query    `json:"query"`
	Results []model.Result `json:"results"`
}

// readCaptures decodes a stream of concatenated JSON capture objects.
func readCaptures(r io.Reader) ([]Capture, error) {
	dec := json.NewDecoder(r)
	var captures []Capture
	for {
		var c Capture
		if err := dec.Decode(&c); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("decode capture %d: %w", len(captures)+1, err)
		}
		captures = append(captures, c)
	}
	return captures, nil
}

func main() {
	configPath := flag.String("config", "config.yml", "Path to the yaml configuration file")
	inputPath := flag.String("input", "-", "Capture file to replay, - for stdin")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logger.Setup(*debug)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	in := io.Reader(os.Stdin)
	if *inputPath != "-" {
		f, err := os.Open(*inputPath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to open capture file")
		}
		defer f.Close()
		in = f
	}

	if err := run(cfg, in); err != nil {
		log.Fatal().Err(err).Msg("Replay failed")
	}
}

func run(cfg *config.Config, in io.Reader) error {
	captures, err := readCaptures(in)
	if err != nil {
		return err
	}

	var forward []func(Capture) error

	if cfg.InfluxDB != nil {
		settings, err := cfg.InfluxDB.Settings()
		if err != nil {
			return err
		}
		w, err := influx.NewWriter(cfg.InfluxDB.URL, cfg.InfluxDB.Username, cfg.InfluxDB.Password, settings)
		if err != nil {
			return err
		}
		defer w.Close()
		if err := w.Ping(5 * time.Second); err != nil {
			log.Warn().Err(err).Str("url", cfg.InfluxDB.URL).Msg("InfluxDB ping failed")
		}
		forward = append(forward, func(c Capture) error {
			return w.Write(c.Server, c.Query, c.Results)
		})
	}

	if cfg.InfluxDBV2 != nil {
		tags, err := cfg.ResultTagSelection()
		if err != nil {
			return err
		}
		var staticTags map[string]string
		if cfg.InfluxDB != nil {
			staticTags = cfg.InfluxDB.Tags
		}
		v2 := cfg.InfluxDBV2
		w := influxv2.NewWriter(v2.URL, v2.Token, v2.Org, v2.Bucket, tags, staticTags)
		defer w.Close()
		ctx := context.Background()
		forward = append(forward, func(c Capture) error {
			return w.Write(ctx, c.Server, c.Query, c.Results)
		})
	}

	batches, results := 0, 0
	for i, c := range captures {
		if len(c.Results) == 0 {
			log.Debug().Int("capture", i+1).Msg("Skipping empty capture")
			continue
		}
		for _, f := range forward {
			if err := f(c); err != nil {
				return fmt.Errorf("capture %d: %w", i+1, err)
			}
		}
		batches++
		results += len(c.Results)
	}

	log.Info().Int("batches", batches).Int("results", results).Msg("Replay complete")
	return nil
}
