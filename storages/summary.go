package storages

import (
	"context"
	"fmt"
)

type Summary struct {
	MessageCount int64  `json:"message_count"`
	SenderCount  int64  `json:"sender_count"`
	First        string `json:"first"`
	Last         string `json:"last"`
}

// SummaryOf reads archive totals through q, a Store or a Tx.
func SummaryOf(ctx context.Context, q Querier) (ret Summary, err error) {
	err = q.QueryRow(ctx, `
	SELECT
		COUNT(*),
		COUNT(DISTINCT from_email),
		COALESCE(MIN(NULLIF(timestamp, '')), ''),
		COALESCE(MAX(NULLIF(timestamp, '')), '')
	FROM messages`).Scan(
		&ret.MessageCount,
		&ret.SenderCount,
		&ret.First,
		&ret.Last,
	)
	if err != nil {
		return ret, fmt.Errorf("summary: %w", err)
	}
	return
}

func (s *Store) Summary(ctx context.Context) (Summary, error) {
	return SummaryOf(ctx, s)
}
