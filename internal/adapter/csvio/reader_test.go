package csvio

import (
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/txledger/internal/domain"
)

func TestReader_DecodesDepositsAndWithdrawals(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"deposit,1,1,1.5\n" +
		"withdrawal,1,2,0.25\n"

	reader := NewReader(strings.NewReader(input))

	tx, err := reader.Read()
	require.NoError(t, err)
	assert.Equal(t, domain.TypeDeposit, tx.Type)
	assert.Equal(t, uint16(1), tx.ClientID)
	assert.Equal(t, uint32(1), tx.TxID)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("1.5")))
	assert.False(t, tx.Disputed)

	tx, err = reader.Read()
	require.NoError(t, err)
	assert.Equal(t, domain.TypeWithdrawal, tx.Type)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("0.25")))

	_, err = reader.Read()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReader_AcceptsReferencingRowsWithoutAmount(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"dispute,1,1,\n" +
		"resolve,1,1\n" +
		"chargeback,1,1,\n"

	reader := NewReader(strings.NewReader(input))

	for _, want := range []domain.Type{domain.TypeDispute, domain.TypeResolve, domain.TypeChargeback} {
		tx, err := reader.Read()
		require.NoError(t, err)
		assert.Equal(t, want, tx.Type)
		assert.True(t, tx.Amount.IsZero())
	}
}

func TestReader_TypeIsCaseInsensitiveAndWhitespaceTolerant(t *testing.T) {
	input := "type,client,tx,amount\n" +
		" Deposit, 1, 1, 2.5\n" +
		"WITHDRAWAL,1,2,1\n"

	reader := NewReader(strings.NewReader(input))

	tx, err := reader.Read()
	require.NoError(t, err)
	assert.Equal(t, domain.TypeDeposit, tx.Type)
	assert.True(t, tx.Amount.Equal(decimal.RequireFromString("2.5")))

	tx, err = reader.Read()
	require.NoError(t, err)
	assert.Equal(t, domain.TypeWithdrawal, tx.Type)
}

func TestReader_RowFailuresAreDecodeErrors(t *testing.T) {
	cases := []struct {
		name string
		row  string
	}{
		{name: "unknown type", row: "transfer,1,1,1.0"},
		{name: "missing amount on deposit", row: "deposit,1,1,"},
		{name: "negative amount", row: "deposit,1,1,-3"},
		{name: "client id overflow", row: "deposit,70000,1,1.0"},
		{name: "malformed amount", row: "deposit,1,1,abc"},
		{name: "too few fields", row: "deposit,1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reader := NewReader(strings.NewReader("type,client,tx,amount\n" + tc.row + "\n"))

			_, err := reader.Read()
			var decodeErr *DecodeError
			require.ErrorAs(t, err, &decodeErr)
			assert.Equal(t, 2, decodeErr.Line)
			assert.NotErrorIs(t, err, io.EOF)
		})
	}
}

func TestReader_BadRowDoesNotEndTheStream(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"transfer,1,1,1.0\n" +
		"deposit,1,2,3.0\n"

	reader := NewReader(strings.NewReader(input))

	_, err := reader.Read()
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)

	tx, err := reader.Read()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), tx.TxID)

	_, err = reader.Read()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReader_RejectsUnexpectedHeader(t *testing.T) {
	reader := NewReader(strings.NewReader("client,tx,amount\n"))

	_, err := reader.Read()
	var decodeErr *DecodeError
	require.ErrorAs(t, err, &decodeErr)
	assert.Equal(t, 1, decodeErr.Line)
}

func TestReader_EmptyInputIsEOF(t *testing.T) {
	reader := NewReader(strings.NewReader(""))

	_, err := reader.Read()
	assert.ErrorIs(t, err, io.EOF)
}
