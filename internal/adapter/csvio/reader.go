package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/simaogato/txledger/internal/domain"
)

// DecodeError reports a single row that could not be decoded into a
// transaction. It is distinct from io.EOF so callers can tell a bad row from
// the end of the stream and decide whether to skip or abort.
type DecodeError struct {
	Line int
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding row at line %d: %v", e.Line, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Reader decodes transaction records from a CSV stream with the header
// `type,client,tx,amount`. The amount column is optional and may be omitted
// entirely on dispute/resolve/chargeback rows.
type Reader struct {
	csv        *csv.Reader
	line       int
	headerRead bool
}

// NewReader creates a Reader on top of the given stream.
func NewReader(r io.Reader) *Reader {
	cr := csv.NewReader(r)
	// Rows referencing an earlier transaction may carry three fields only.
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return &Reader{csv: cr}
}

// Read returns the next transaction in the stream. It returns io.EOF at the
// end of the stream and a *DecodeError for a row that cannot be decoded.
func (r *Reader) Read() (*domain.Transaction, error) {
	if !r.headerRead {
		if err := r.readHeader(); err != nil {
			return nil, err
		}
	}

	record, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		r.line++
		return nil, &DecodeError{Line: r.line, Err: err}
	}
	r.line++

	tx, err := decodeRecord(record)
	if err != nil {
		return nil, &DecodeError{Line: r.line, Err: err}
	}
	return tx, nil
}

// readHeader consumes and validates the leading header row.
func (r *Reader) readHeader() error {
	header, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		return &DecodeError{Line: 1, Err: err}
	}
	r.line = 1
	r.headerRead = true

	if len(header) == 0 || !strings.EqualFold(strings.TrimSpace(header[0]), "type") {
		return &DecodeError{Line: 1, Err: fmt.Errorf("unexpected header %v", header)}
	}
	return nil
}

func decodeRecord(record []string) (*domain.Transaction, error) {
	if len(record) < 3 {
		return nil, fmt.Errorf("expected at least 3 fields, got %d", len(record))
	}

	txType, err := domain.ParseType(record[0])
	if err != nil {
		return nil, err
	}

	clientID, err := strconv.ParseUint(strings.TrimSpace(record[1]), 10, 16)
	if err != nil {
		return nil, fmt.Errorf("parsing client id %q: %w", record[1], err)
	}

	txID, err := strconv.ParseUint(strings.TrimSpace(record[2]), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("parsing transaction id %q: %w", record[2], err)
	}

	tx := &domain.Transaction{
		Type:     txType,
		ClientID: uint16(clientID),
		TxID:     uint32(txID),
	}

	rawAmount := ""
	if len(record) > 3 {
		rawAmount = strings.TrimSpace(record[3])
	}

	if rawAmount != "" {
		amount, err := decimal.NewFromString(rawAmount)
		if err != nil {
			return nil, fmt.Errorf("parsing amount %q: %w", record[3], err)
		}
		tx.Amount = amount
	} else if txType.MovesFunds() {
		return nil, fmt.Errorf("%s row is missing an amount", txType)
	}

	if err := tx.Validate(); err != nil {
		return nil, err
	}
	return tx, nil
}
