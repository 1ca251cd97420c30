package repositories

import (
	"testing"
	"time"

	"hvac-backend/internal/models"
	"hvac-backend/internal/timeutil"

	"github.com/stretchr/testify/assert"
)

func TestTransactionFilter(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, timeutil.BRT)
	end := time.Date(2024, 2, 1, 0, 0, 0, 0, timeutil.BRT)

	f := transactionFilter(models.TransactionFilter{Status: "paid", StartDate: &start, EndDate: &end, EndExclusive: true})
	assert.Equal(t, " WHERE f.status = $1 AND f.created_at >= $2 AND f.created_at < $3", f.where())
	assert.Equal(t, []any{"paid", start, end}, f.args)

	f = transactionFilter(models.TransactionFilter{EndDate: &end})
	assert.Equal(t, " WHERE f.created_at <= $1", f.where())

	f = transactionFilter(models.TransactionFilter{})
	assert.Equal(t, "", f.where())
}
