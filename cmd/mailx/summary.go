package main

import (
	"context"
	"io"
	"strconv"

	"github.com/reusee/mailx/render"
	"github.com/reusee/mailx/storages"
)

func printSummary(ctx context.Context, store *storages.Store, w io.Writer, color bool) error {
	summary, err := store.Summary(ctx)
	if err != nil {
		return err
	}
	r := render.NewRenderer(w, color)
	r.Title("Archive")
	r.Metric("Messages", strconv.FormatInt(summary.MessageCount, 10))
	r.Metric("Senders", strconv.FormatInt(summary.SenderCount, 10))
	if summary.First != "" {
		r.Metric("First", summary.First)
		r.Metric("Last", summary.Last)
	}
	return nil
}
