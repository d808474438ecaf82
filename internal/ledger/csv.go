package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ssra-dev/revenue/internal/model"
)

// Header is the CSV header for bills.csv.
const Header = "id,type,amount,due_date,status,description,prn,bank_name,account_number,account_name,swift_code"

const (
	numFields     = 11
	dateFormat    = "2006-01-02"
	colID         = 0
	colType       = 1
	colAmount     = 2
	colDueDate    = 3
	colStatus     = 4
	colDesc       = 5
	colPRN        = 6
	colBankName   = 7
	colAccountNum = 8
	colAcctName   = 9
	colSwift      = 10
)

// ReadBills reads all bills from a bills.csv reader, in file order.
func ReadBills(r io.Reader) ([]model.Bill, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading bills CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var bills []model.Bill
	for i, rec := range records[1:] {
		b, err := UnmarshalBill(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		bills = append(bills, b)
	}
	return bills, nil
}

// WriteBills writes bills to a bills.csv writer (including header).
func WriteBills(w io.Writer, bills []model.Bill) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, b := range bills {
		if err := cw.Write(MarshalBill(b)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalBill converts a Bill to a CSV row.
func MarshalBill(b model.Bill) []string {
	row := make([]string, numFields)
	row[colID] = strconv.Itoa(int(b.ID))
	row[colType] = b.Type
	row[colAmount] = b.Amount.StringFixed(2)
	if !b.DueDate.IsZero() {
		row[colDueDate] = b.DueDate.Format(dateFormat)
	}
	row[colStatus] = string(b.Status)
	row[colDesc] = b.Description
	row[colPRN] = b.PRN

	if b.BankDetails != nil {
		row[colBankName] = b.BankDetails.BankName
		row[colAccountNum] = b.BankDetails.AccountNumber
		row[colAcctName] = b.BankDetails.AccountName
		row[colSwift] = b.BankDetails.SwiftCode
	}
	return row
}

// UnmarshalBill converts a CSV row to a Bill.
func UnmarshalBill(record []string) (model.Bill, error) {
	if len(record) != numFields {
		return model.Bill{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	id, err := strconv.Atoi(record[colID])
	if err != nil {
		return model.Bill{}, fmt.Errorf("parsing id %q: %w", record[colID], err)
	}

	amount, err := parseAmount(record[colAmount])
	if err != nil {
		return model.Bill{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	var due time.Time
	if record[colDueDate] != "" {
		due, err = time.Parse(dateFormat, record[colDueDate])
		if err != nil {
			return model.Bill{}, fmt.Errorf("parsing due_date %q: %w", record[colDueDate], err)
		}
	}

	b := model.Bill{
		ID:          model.BillID(id),
		Type:        record[colType],
		Amount:      amount,
		DueDate:     due,
		Status:      model.BillStatus(record[colStatus]),
		Description: record[colDesc],
		PRN:         record[colPRN],
	}

	bd := model.BankDetails{
		BankName:      record[colBankName],
		AccountNumber: record[colAccountNum],
		AccountName:   record[colAcctName],
		SwiftCode:     record[colSwift],
	}
	if !bd.IsZero() {
		b.BankDetails = &bd
	}
	return b, nil
}

// parseAmount reads a fixed-point amount. Exponent notation is rejected so
// a stored value cannot expand into an unbounded integer.
func parseAmount(s string) (decimal.Decimal, error) {
	if strings.ContainsAny(s, "eE") {
		return decimal.Decimal{}, errors.New("exponent notation not allowed")
	}
	return decimal.NewFromString(s)
}

// Export writes the ledger's bills, most recent first.
func (l *Ledger) Export(w io.Writer) error {
	return WriteBills(w, l.bills)
}

// Import reads bills.csv and builds a Ledger from it.
func Import(r io.Reader) (*Ledger, error) {
	bills, err := ReadBills(r)
	if err != nil {
		return nil, err
	}
	return New(bills)
}
