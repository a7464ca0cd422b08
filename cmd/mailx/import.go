package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/reusee/mailx/storages"
)

const importBatch = 500

// importMessages loads a stream of JSON encoded messages, one object per
// message, as produced by an external mailbox converter.
func importMessages(ctx context.Context, store *storages.Store, path string) (n int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	decoder := json.NewDecoder(f)
	batch := make([]storages.Message, 0, importBatch)
	flush := func() error {
		inserted, err := store.Insert(ctx, batch...)
		n += inserted
		batch = batch[:0]
		return err
	}
	for {
		var msg storages.Message
		err := decoder.Decode(&msg)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return n, fmt.Errorf("decode message %d: %w", n+len(batch)+1, err)
		}
		batch = append(batch, msg)
		if len(batch) == importBatch {
			if err := flush(); err != nil {
				return n, err
			}
		}
	}
	if len(batch) > 0 {
		if err := flush(); err != nil {
			return n, err
		}
	}
	return n, nil
}
