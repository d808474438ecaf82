// Package activity records what happened to bills in logs/activity.csv.
package activity

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ssra-dev/revenue/internal/model"
)

// Action names the kind of activity.
type Action string

const (
	ActionBillCreated         Action = "bill_created"
	ActionStatusChanged       Action = "status_changed"
	ActionRemittanceUnmatched Action = "remittance_unmatched"
)

// Entry is one row in the activity log.
type Entry struct {
	ID        uuid.UUID
	Timestamp time.Time
	Action    Action
	BillID    model.BillID // 0 when no bill is involved
	PRN       string
	Details   string
}

// NewEntry returns an entry with a fresh ID.
func NewEntry(ts time.Time, action Action, billID model.BillID, prn, details string) Entry {
	return Entry{
		ID:        uuid.New(),
		Timestamp: ts,
		Action:    action,
		BillID:    billID,
		PRN:       prn,
		Details:   details,
	}
}

// Header is the CSV header for activity.csv.
const Header = "id,timestamp,action,bill_id,prn,details"

const (
	numFields    = 6
	logDir       = "logs"
	logFile      = "activity.csv"
	colID        = 0
	colTimestamp = 1
	colAction    = 2
	colBillID    = 3
	colPRN       = 4
	colDetails   = 5
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colID] = e.ID.String()
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colAction] = string(e.Action)
	if e.BillID != 0 {
		row[colBillID] = strconv.Itoa(int(e.BillID))
	}
	row[colPRN] = e.PRN
	row[colDetails] = e.Details
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	id, err := uuid.Parse(record[colID])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing id %q: %w", record[colID], err)
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	var billID int
	if record[colBillID] != "" {
		billID, err = strconv.Atoi(record[colBillID])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing bill_id %q: %w", record[colBillID], err)
		}
	}

	return Entry{
		ID:        id,
		Timestamp: ts,
		Action:    Action(record[colAction]),
		BillID:    model.BillID(billID),
		PRN:       record[colPRN],
		Details:   record[colDetails],
	}, nil
}

// Path returns the activity log location under a workspace root.
func Path(root string) string {
	return filepath.Join(root, logDir, logFile)
}

// Append writes entries to <root>/logs/activity.csv, creating the file and header if needed.
func Append(root string, entries []Entry) error {
	if len(entries) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Join(root, logDir), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := Path(root)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <root>/logs/activity.csv.
// Returns nil if the file does not exist.
func Read(root string) ([]Entry, error) {
	f, err := os.Open(Path(root))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening activity log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading activity CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
