// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package ops

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/rollupstate/restore/common"
	"github.com/rollupstate/restore/common/amount"
)

const (
	ErrUnknownOperation = common.ConstError("unknown operation type")
	ErrMissingField     = common.ConstError("missing operation field")
)

// Block is the unit in which operations are committed on chain. Root, if
// present, is the commitment published for the state after the block.
// FeeAccount, if present, receives the fees of the block's transactions.
type Block struct {
	Number     common.BlockNumber
	FeeAccount *common.AccountId
	Root       *common.Hash
	Operations []Operation
}

// Feed is the JSON document listing blocks in chain order. Blocks are kept
// raw so they can be decoded independently.
type Feed struct {
	Blocks []json.RawMessage `json:"blocks"`
}

// ReadFeed parses the outer feed document.
func ReadFeed(in io.Reader) (Feed, error) {
	var res Feed
	if err := json.NewDecoder(in).Decode(&res); err != nil {
		return Feed{}, fmt.Errorf("failed to parse feed: %w", err)
	}
	return res, nil
}

// WriteFeed encodes the given blocks as a feed document.
func WriteFeed(out io.Writer, blocks []Block) error {
	feed := Feed{Blocks: make([]json.RawMessage, 0, len(blocks))}
	for _, block := range blocks {
		data, err := json.Marshal(block)
		if err != nil {
			return fmt.Errorf("failed to encode block %d: %w", block.Number, err)
		}
		feed.Blocks = append(feed.Blocks, data)
	}
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(feed)
}

// DecodeBlock decodes a single block of a feed.
func DecodeBlock(data []byte) (Block, error) {
	var res Block
	if err := json.Unmarshal(data, &res); err != nil {
		return Block{}, err
	}
	return res, nil
}

type jsonBlock struct {
	Number     common.BlockNumber `json:"number"`
	FeeAccount *common.AccountId  `json:"feeAccount,omitempty"`
	Root       *common.Hash       `json:"root,omitempty"`
	Operations []jsonOperation    `json:"ops"`
}

// jsonOperation is the union of all operation fields.
type jsonOperation struct {
	Type    string          `json:"type"`
	Address *common.Address `json:"address,omitempty"`
	From    *common.Address `json:"from,omitempty"`
	To      *common.Address `json:"to,omitempty"`
	Token   common.TokenId  `json:"token"`
	Amount  amount.Amount   `json:"amount"`
	Fee     amount.Amount   `json:"fee"`
	Nonce   common.Nonce    `json:"nonce"`
}

func (b Block) MarshalJSON() ([]byte, error) {
	res := jsonBlock{
		Number:     b.Number,
		FeeAccount: b.FeeAccount,
		Root:       b.Root,
		Operations: make([]jsonOperation, 0, len(b.Operations)),
	}
	for _, op := range b.Operations {
		encoded, err := encodeOperation(op)
		if err != nil {
			return nil, err
		}
		res.Operations = append(res.Operations, encoded)
	}
	return json.Marshal(res)
}

func (b *Block) UnmarshalJSON(data []byte) error {
	var raw jsonBlock
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	operations := make([]Operation, 0, len(raw.Operations))
	for i, cur := range raw.Operations {
		op, err := cur.decode()
		if err != nil {
			return fmt.Errorf("block %d, operation %d: %w", raw.Number, i, err)
		}
		operations = append(operations, op)
	}
	*b = Block{
		Number:     raw.Number,
		FeeAccount: raw.FeeAccount,
		Root:       raw.Root,
		Operations: operations,
	}
	return nil
}

func encodeOperation(op Operation) (jsonOperation, error) {
	res := jsonOperation{Type: op.Kind().String()}
	switch o := op.(type) {
	case Deposit:
		res.Address, res.Token, res.Amount = &o.Address, o.Token, o.Amount
	case FullExit:
		res.Address = &o.Address
	case Transfer:
		res.From, res.To, res.Token, res.Amount, res.Fee, res.Nonce = &o.From, &o.To, o.Token, o.Amount, o.Fee, o.Nonce
	case TransferToNew:
		res.From, res.To, res.Token, res.Amount, res.Fee, res.Nonce = &o.From, &o.To, o.Token, o.Amount, o.Fee, o.Nonce
	case Withdraw:
		res.From, res.Token, res.Amount, res.Fee, res.Nonce = &o.From, o.Token, o.Amount, o.Fee, o.Nonce
	case Close:
		res.From, res.Nonce = &o.From, o.Nonce
	default:
		return jsonOperation{}, fmt.Errorf("%w: %T", ErrUnknownOperation, op)
	}
	return res, nil
}

func (o *jsonOperation) decode() (Operation, error) {
	kind, err := ParseKind(o.Type)
	if err != nil {
		return nil, err
	}
	need := func(name string, address *common.Address) (common.Address, error) {
		if address == nil {
			return common.Address{}, fmt.Errorf("%w: %s of %v", ErrMissingField, name, kind)
		}
		return *address, nil
	}
	switch kind {
	case KindDeposit, KindFullExit:
		address, err := need("address", o.Address)
		if err != nil {
			return nil, err
		}
		if kind == KindFullExit {
			return FullExit{Address: address}, nil
		}
		return Deposit{Address: address, Token: o.Token, Amount: o.Amount}, nil
	}

	from, err := need("from", o.From)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindClose:
		return Close{From: from, Nonce: o.Nonce}, nil
	case KindWithdraw:
		return Withdraw{From: from, Token: o.Token, Amount: o.Amount, Fee: o.Fee, Nonce: o.Nonce}, nil
	}

	to, err := need("to", o.To)
	if err != nil {
		return nil, err
	}
	if kind == KindTransfer {
		return Transfer{From: from, To: to, Token: o.Token, Amount: o.Amount, Fee: o.Fee, Nonce: o.Nonce}, nil
	}
	return TransferToNew{From: from, To: to, Token: o.Token, Amount: o.Amount, Fee: o.Fee, Nonce: o.Nonce}, nil
}
