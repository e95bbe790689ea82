// Package influx translates collected JMX results into InfluxDB
// points and submits them in batches through the v1 client.
package influx

import (
	"fmt"
	"sync"
	"time"

	client "github.com/influxdata/influxdb1-client/v2"
	"github.com/rs/zerolog/log"

	"github.com/kljama/jmx2influx/internal/model"
)

// Writer forwards result batches to an InfluxDB 1.x database. Each
// Write call is an independent unit of work: the writer keeps no
// buffered points and performs no retries. Any failure from the
// underlying client is returned to the caller unmodified.
type Writer struct {
	c        client.Client
	settings Settings

	createOnce sync.Once
	createErr  error
}

// NewWriter connects a Writer to the InfluxDB HTTP endpoint at url.
func NewWriter(url, username, password string, s Settings) (*Writer, error) {
	c, err := client.NewHTTPClient(client.HTTPConfig{
		Addr:     url,
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, fmt.Errorf("influxdb client: %w", err)
	}
	return NewWriterWithClient(c, s), nil
}

// NewWriterWithClient builds a Writer around an existing client. The
// writer takes ownership of the client; Close closes it.
func NewWriterWithClient(c client.Client, s Settings) *Writer {
	return &Writer{c: c, settings: s.withDefaults()}
}

// Write translates every result into one point and submits the batch
// to the configured database in a single client write.
func (w *Writer) Write(server model.Server, query model.Query, results []model.Result) error {
	if w.settings.CreateDatabase {
		w.createOnce.Do(func() { w.createErr = w.createDatabase() })
		if w.createErr != nil {
			return w.createErr
		}
	}

	bp, err := client.NewBatchPoints(client.BatchPointsConfig{
		Database:         w.settings.Database,
		Precision:        w.settings.Precision,
		RetentionPolicy:  w.settings.RetentionPolicy,
		WriteConsistency: string(w.settings.Consistency),
	})
	if err != nil {
		return fmt.Errorf("batch for %s: %w", w.settings.Database, err)
	}

	for _, r := range results {
		p, err := w.point(server, r)
		if err != nil {
			return fmt.Errorf("point %s: %w", r.KeyAlias, err)
		}
		bp.AddPoint(p)
	}

	log.Debug().
		Str("database", w.settings.Database).
		Str("host", server.Host).
		Str("query", query.Obj).
		Int("points", len(bp.Points())).
		Msg("Submitting batch")
	return w.c.Write(bp)
}

// point maps one result onto a point: measurement from the key alias,
// the selected result tags plus the hostname tag, and the value map
// copied through as fields.
func (w *Writer) point(server model.Server, r model.Result) (*client.Point, error) {
	tags := make(map[string]string, len(w.settings.ResultTags)+len(w.settings.StaticTags)+1)
	for k, v := range w.settings.StaticTags {
		tags[k] = v
	}
	for _, t := range w.settings.ResultTags {
		tags[string(t)] = t.Value(r)
	}
	tags[TagHostname] = server.Host

	fields := make(map[string]any, len(r.Values))
	for k, v := range r.Values {
		if b, ok := v.(bool); ok && w.settings.BoolsAsNumbers {
			if b {
				fields[k] = int64(1)
			} else {
				fields[k] = int64(0)
			}
			continue
		}
		fields[k] = v
	}

	return client.NewPoint(r.KeyAlias, tags, fields, time.UnixMilli(r.Timestamp))
}

func (w *Writer) createDatabase() error {
	q := client.NewQuery(fmt.Sprintf("CREATE DATABASE %q", w.settings.Database), "", "")
	resp, err := w.c.Query(q)
	if err != nil {
		return fmt.Errorf("create database %s: %w", w.settings.Database, err)
	}
	if err := resp.Error(); err != nil {
		return fmt.Errorf("create database %s: %w", w.settings.Database, err)
	}
	log.Info().Str("database", w.settings.Database).Msg("Database created")
	return nil
}

// Ping checks connectivity to the database endpoint.
func (w *Writer) Ping(timeout time.Duration) error {
	_, _, err := w.c.Ping(timeout)
	return err
}

// Close terminates the underlying client connection.
func (w *Writer) Close() error {
	return w.c.Close()
}
