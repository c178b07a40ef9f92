package cli

import (
	"errors"
	"sync"
	"time"

	"github.com/itchyny/timefmt-go"

	"github.com/bvald/jvq"
)

var registerOnce sync.Once

const dateLayout = "%Y-%m-%dT%H:%M:%SZ"

// registerExtensions installs the CLI's extra builtins through the
// public registration path, before any filter runs.
func registerExtensions() {
	registerOnce.Do(func() {
		jvq.RegisterBuiltin("todate", builtinToDate)
		jvq.RegisterBuiltin("fromdate", builtinFromDate)
	})
}

// todate formats an epoch-seconds number as an ISO 8601 timestamp.
func builtinToDate(v *jvq.Value) ([]*jvq.Value, error) {
	if !v.IsNumber() {
		return nil, errors.New("todate: input must be number")
	}
	t := time.Unix(int64(v.Num()), 0).UTC()
	return []*jvq.Value{jvq.String(timefmt.Format(t, dateLayout))}, nil
}

// fromdate parses an ISO 8601 timestamp into epoch seconds.
func builtinFromDate(v *jvq.Value) ([]*jvq.Value, error) {
	if !v.IsString() {
		return nil, errors.New("fromdate: input must be string")
	}
	t, err := timefmt.Parse(v.Str(), dateLayout)
	if err != nil {
		return nil, errors.New("fromdate: " + err.Error())
	}
	return []*jvq.Value{jvq.Number(float64(t.Unix()))}, nil
}
