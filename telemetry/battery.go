// Package telemetry appends one device-telemetry record per page visit
// to a CSV log, so battery drain can be correlated with browsing
// activity after the fact.
package telemetry

import (
	"context"
	"encoding/csv"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/distatus/battery"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/load"

	"github.com/thcipriani/getting-to-philosophy-battery-test/models"
)

// Placeholder is recorded for any field whose underlying sensor is
// unavailable (no battery present, load average unsupported). A
// degraded field never aborts the walk.
const Placeholder = "-1"

var header = []string{
	"Timestamp",
	"Load",
	"Battery Percent",
	"Battery Seconds Remaining",
	"Page",
	"Power Draw W",
}

// BatteryLog is the append-only observation sink. Every record is
// flushed and fsynced before Observe returns, so a later crash cannot
// lose the most recent observation. It is written from the single
// traversal thread only.
type BatteryLog struct {
	f *os.File
	w *csv.Writer
}

// Open opens (or creates) the CSV log in append mode. The header row
// is written only when the file is empty, so interrupted runs keep
// appending to one continuous log.
func Open(path string) (*BatteryLog, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, models.NewWalkError(models.ErrCodeTelemetry, "open battery log", err)
	}

	b := &BatteryLog{f: f, w: csv.NewWriter(f)}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, models.NewWalkError(models.ErrCodeTelemetry, "stat battery log", err)
	}
	if info.Size() == 0 {
		if err := b.writeRow(header); err != nil {
			f.Close()
			return nil, err
		}
	}
	return b, nil
}

// Observe appends one record for the page about to be fetched.
func (b *BatteryLog) Observe(ctx context.Context, pageURL string) error {
	ts := time.Now().UTC().Format(time.RFC3339)
	loadPct := oneMinuteLoad(ctx)
	pct, secs, draw := batteryReadings()

	slog.Info("observation",
		"timestamp", ts,
		"load", loadPct,
		"batteryPercent", pct,
		"batterySecsLeft", secs,
		"page", pageURL,
	)

	return b.writeRow([]string{ts, loadPct, pct, secs, pageURL, draw})
}

// Close flushes and closes the underlying file.
func (b *BatteryLog) Close() error {
	b.w.Flush()
	if err := b.w.Error(); err != nil {
		b.f.Close()
		return err
	}
	return b.f.Close()
}

// writeRow appends one row and makes it durable before returning.
func (b *BatteryLog) writeRow(row []string) error {
	if err := b.w.Write(row); err != nil {
		return models.NewWalkError(models.ErrCodeTelemetry, "write battery log row", err)
	}
	b.w.Flush()
	if err := b.w.Error(); err != nil {
		return models.NewWalkError(models.ErrCodeTelemetry, "flush battery log", err)
	}
	if err := b.f.Sync(); err != nil {
		return models.NewWalkError(models.ErrCodeTelemetry, "sync battery log", err)
	}
	return nil
}

// oneMinuteLoad returns the 1-minute load average normalized by the
// logical CPU count, as a percentage.
func oneMinuteLoad(ctx context.Context) string {
	avg, err := load.AvgWithContext(ctx)
	if err != nil {
		return Placeholder
	}
	cpus, err := cpu.CountsWithContext(ctx, true)
	if err != nil || cpus == 0 {
		return Placeholder
	}
	return strconv.FormatFloat(avg.Load1/float64(cpus)*100, 'f', 2, 64)
}

// batteryReadings returns charge percent, estimated seconds remaining,
// and instantaneous draw in watts for the first battery, degrading
// each field independently.
func batteryReadings() (pct, secs, draw string) {
	pct, secs, draw = Placeholder, Placeholder, Placeholder

	bats, err := battery.GetAll()
	if err != nil || len(bats) == 0 {
		return pct, secs, draw
	}
	bat := bats[0]

	if bat.Full > 0 {
		pct = strconv.FormatFloat(bat.Current/bat.Full*100, 'f', 2, 64)
	}
	if bat.ChargeRate > 0 {
		draw = strconv.FormatFloat(bat.ChargeRate, 'f', 2, 64)
		if bat.State.Raw == battery.Discharging {
			secs = strconv.Itoa(int(bat.Current / bat.ChargeRate * 3600))
		}
	}
	return pct, secs, draw
}
