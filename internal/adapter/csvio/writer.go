package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/simaogato/txledger/internal/domain"
)

// WriteSnapshot writes one CSV row per account, in the order given. Decimal
// fields are rendered at full precision; no rounding is applied.
func WriteSnapshot(w io.Writer, accounts []domain.Account) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"client", "available", "held", "total", "locked"}); err != nil {
		return fmt.Errorf("writing snapshot header: %w", err)
	}

	for _, account := range accounts {
		record := []string{
			strconv.FormatUint(uint64(account.ClientID), 10),
			account.Available.String(),
			account.Held.String(),
			account.Total.String(),
			strconv.FormatBool(account.Locked),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing snapshot for client %d: %w", account.ClientID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
