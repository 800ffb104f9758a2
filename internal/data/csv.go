package data

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"supply-curve/internal/model"

	"github.com/sirupsen/logrus"
)

// CSV column names, as in SCED offer exports.
const (
	colResourceName     = "resource_name"
	colResourceType     = "resource_type"
	colIntervalStartUTC = "interval_start_utc"
	colIntervalStart    = "interval_start"
	colOfferCurve       = "sced_tpo_offer_curve"
	colStatus           = "telemetered_resource_status"
)

var requiredColumns = []string{colResourceName, colResourceType, colOfferCurve, colStatus}

// LoadCSV reads an offer CSV. The curve column holds the textual encoding.
func (l *Loader) LoadCSV(path string) ([]model.RawOffer, LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadStats{}, err
	}
	defer f.Close()

	offers, stats, err := l.ReadCSV(f)
	if err != nil {
		return nil, stats, fmt.Errorf("read %s: %w", path, err)
	}
	l.logLoaded(path, stats)
	return offers, stats, nil
}

// ReadCSV is LoadCSV over an arbitrary reader.
func (l *Loader) ReadCSV(r io.Reader) ([]model.RawOffer, LoadStats, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, LoadStats{}, errors.New("missing header row")
		}
		return nil, LoadStats{}, fmt.Errorf("header: %w", err)
	}
	cols := indexColumns(header)
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			return nil, LoadStats{}, fmt.Errorf("missing column %q", name)
		}
	}
	timeCol, hasTime := cols[colIntervalStartUTC]
	if !hasTime {
		timeCol, hasTime = cols[colIntervalStart]
	}

	var stats LoadStats
	var out []model.RawOffer
	for row := 1; ; row++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			stats.Rows++
			stats.BadRecords++
			l.Logger.WithFields(logrus.Fields{
				"row":  row,
				"line": parseErr.Line,
			}).Warnf("skipping unreadable record: %v", err)
			continue
		}
		if err != nil {
			return nil, stats, err
		}
		stats.Rows++

		field := func(i int) string {
			if i < len(rec) {
				return strings.TrimSpace(rec[i])
			}
			return ""
		}
		offer := model.RawOffer{
			ResourceName:      field(cols[colResourceName]),
			ResourceType:      field(cols[colResourceType]),
			TelemeteredStatus: field(cols[colStatus]),
			CurveText:         field(cols[colOfferCurve]),
		}
		rawTime := ""
		if hasTime {
			rawTime = field(timeCol)
		}
		if !l.keep(&stats, &offer, rawTime, row) {
			continue
		}
		out = append(out, offer)
	}
	return out, stats, nil
}

func indexColumns(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}
	return cols
}

// WriteOfferCSV writes offers in the layout LoadCSV reads, with curves in
// their textual form.
func WriteOfferCSV(w io.Writer, offers []model.RawOffer) error {
	cw := csv.NewWriter(w)
	header := []string{colIntervalStartUTC, colResourceName, colResourceType, colOfferCurve, colStatus}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, o := range offers {
		start := ""
		if !o.IntervalStart.IsZero() {
			start = o.IntervalStart.UTC().Format(time.RFC3339)
		}
		curve := o.CurveText
		if o.Curve != nil {
			curve = FormatCurve(o.Curve)
		}
		if err := cw.Write([]string{start, o.ResourceName, o.ResourceType, curve, o.TelemeteredStatus}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// FormatCurve renders curve elements as "[(mw, price), ...]".
func FormatCurve(tuples []model.OfferTuple) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, t := range tuples {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for j, v := range t {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
		}
		if len(t) == 1 {
			b.WriteByte(',')
		}
		b.WriteByte(')')
	}
	b.WriteByte(']')
	return b.String()
}
