// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cli

import (
	"context"
	"errors"

	"github.com/ava-labs/countervm/rpc"
	"github.com/ava-labs/countervm/utils"
)

// WatchEvents prints events from the default chain until [ctx] is done or
// [limit] events were printed. A [limit] of 0 watches forever.
func (h *Handler) WatchEvents(ctx context.Context, limit int) error {
	uri, err := h.GetDefaultChain()
	if err != nil {
		return err
	}
	scli, err := rpc.NewWebSocketClient(ctx, uri)
	if err != nil {
		return err
	}
	defer scli.Close()

	utils.Outf("{{yellow}}watching events:{{/}} %s\n", uri)
	for seen := 0; limit == 0 || seen < limit; seen++ {
		msg, err := scli.ListenEvent(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		if err != nil {
			return err
		}
		utils.Outf("{{cyan}}height:{{/}} %d {{cyan}}tx:{{/}} %s\n", msg.Height, msg.TxID)
		if err := PrintEvent(msg.Event()); err != nil {
			return err
		}
	}
	return nil
}
