// Package influxv2 forwards collected JMX results to InfluxDB 2.x,
// where buckets replace databases and write consistency does not
// exist. Tag selection and the hostname tag behave exactly as in the
// v1 writer.
package influxv2

import (
	"context"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/rs/zerolog/log"

	"github.com/kljama/jmx2influx/internal/influx"
	"github.com/kljama/jmx2influx/internal/model"
)

// Writer submits result batches through the blocking write API.
type Writer struct {
	client     influxdb2.Client
	writeAPI   api.WriteAPIBlocking
	resultTags []influx.ResultTag
	staticTags map[string]string
}

// NewWriter creates a v2 writer for the given bucket. A nil
// resultTags selection means all result tags.
func NewWriter(url, token, org, bucket string, resultTags []influx.ResultTag, staticTags map[string]string) *Writer {
	c := influxdb2.NewClient(url, token)
	return newWriter(c, c.WriteAPIBlocking(org, bucket), resultTags, staticTags)
}

func newWriter(c influxdb2.Client, writeAPI api.WriteAPIBlocking, resultTags []influx.ResultTag, staticTags map[string]string) *Writer {
	if resultTags == nil {
		resultTags = influx.AllResultTags()
	}
	return &Writer{
		client:     c,
		writeAPI:   writeAPI,
		resultTags: resultTags,
		staticTags: staticTags,
	}
}

// Write translates every result into one point and submits them in a
// single blocking write. Client errors are returned unmodified.
func (w *Writer) Write(ctx context.Context, server model.Server, query model.Query, results []model.Result) error {
	points := make([]*write.Point, 0, len(results))
	for _, r := range results {
		p := influxdb2.NewPointWithMeasurement(r.KeyAlias)
		for k, v := range w.staticTags {
			p.AddTag(k, v)
		}
		for _, t := range w.resultTags {
			p.AddTag(string(t), t.Value(r))
		}
		p.AddTag(influx.TagHostname, server.Host)
		for k, v := range r.Values {
			p.AddField(k, v)
		}
		p.SetTime(time.UnixMilli(r.Timestamp))
		points = append(points, p)
	}

	log.Debug().
		Str("host", server.Host).
		Str("query", query.Obj).
		Int("points", len(points)).
		Msg("Submitting v2 batch")
	return w.writeAPI.WritePoint(ctx, points...)
}

// Close terminates the InfluxDB client connection.
func (w *Writer) Close() {
	if w.client != nil {
		w.client.Close()
	}
}
