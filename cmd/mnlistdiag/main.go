// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// mnlistdiag exercises a masternode list engine against recorded hex
// fixtures of mnlistdiff/qrinfo messages, for manual inspection and
// regression diagnosis (§10 "C14 CLI / Harness"). It is a diagnostic
// tool, not a node: it never talks to a peer, only to fixture files and,
// optionally, an enginedb store it can resume from between invocations.
package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/dashpay/dashmnle/chaincfg"
	"github.com/dashpay/dashmnle/engine"
	"github.com/dashpay/dashmnle/enginedb"
	"github.com/dashpay/dashmnle/message"
)

type options struct {
	Network string `short:"n" long:"network" description:"network the fixtures decode against (mainnet, testnet, devnet, regtest)" default:"mainnet"`
	DBPath  string `short:"d" long:"dbpath" description:"enginedb directory to resume engine state from and save it back to"`

	MnListDiff string `long:"mnlistdiff" description:"path to a hex-encoded MnListDiff fixture to ingest"`
	EndHeight  uint32 `long:"end-height" description:"height to record the ingested MnListDiff's resulting list at"`

	QRInfo     string `long:"qrinfo" description:"path to a hex-encoded QRInfo fixture to ingest"`
	LLMQType   uint8  `long:"llmq-type" description:"LLMQ type byte the QRInfo fixture's rotation cycle belongs to"`
	TipHeight  uint32 `long:"tip-height" description:"height of the QRInfo fixture's tip block"`
	HHeight    uint32 `long:"h-height" description:"height of the QRInfo fixture's h block"`
	HCHeight   uint32 `long:"hc-height" description:"height of the QRInfo fixture's h-c block"`
	H2CHeight  uint32 `long:"h2c-height" description:"height of the QRInfo fixture's h-2c block"`
	H3CHeight  uint32 `long:"h3c-height" description:"height of the QRInfo fixture's h-3c block"`
	H4CHeight  uint32 `long:"h4c-height" description:"height of the QRInfo fixture's h-4c block, if present"`
	NoVerify   bool   `long:"no-verify" description:"ingest without running rotated-quorum verification"`
}

func networkByName(name string) (*chaincfg.Network, error) {
	switch name {
	case "mainnet":
		return chaincfg.MainNetParams(), nil
	case "testnet":
		return chaincfg.TestNetParams(), nil
	case "devnet":
		return chaincfg.DevNetParams(), nil
	case "regtest":
		return chaincfg.RegTestParams(), nil
	default:
		return nil, fmt.Errorf("unknown network %q", name)
	}
}

func readHexFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	decoded := make([]byte, hex.DecodedLen(len(raw)))
	n, err := hex.Decode(decoded, bytesTrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("decode hex: %w", err)
	}
	return decoded[:n], nil
}

// bytesTrimSpace trims the trailing newline, carriage return and space
// characters fixture files are commonly saved with.
func bytesTrimSpace(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r' || b[len(b)-1] == ' ') {
		b = b[:len(b)-1]
	}
	return b
}

func run() error {
	var opts options
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			os.Exit(0)
		}
		return err
	}

	network, err := networkByName(opts.Network)
	if err != nil {
		return err
	}

	var store *enginedb.Store
	var e *engine.Engine
	if opts.DBPath != "" {
		store, err = enginedb.Open(opts.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		loaded, ok, err := store.Load(network)
		if err != nil {
			return err
		}
		if ok {
			e = loaded
		}
	}
	if e == nil {
		e = engine.New(network)
	}

	if opts.MnListDiff != "" {
		raw, err := readHexFile(opts.MnListDiff)
		if err != nil {
			return fmt.Errorf("mnlistdiff fixture: %w", err)
		}
		var diff message.MnListDiff
		if err := diff.BtcDecode(bytes.NewReader(raw)); err != nil {
			return fmt.Errorf("decode mnlistdiff: %w", err)
		}
		if err := e.ApplyDiff(diff.Reduce(), opts.EndHeight, !opts.NoVerify); err != nil {
			return fmt.Errorf("apply mnlistdiff: %w", err)
		}
		e.FeedBlockHeight(diff.BlockHash, opts.EndHeight)
		fmt.Printf("applied mnlistdiff to height %d (block %s)\n", opts.EndHeight, diff.BlockHash)
	}

	if opts.QRInfo != "" {
		raw, err := readHexFile(opts.QRInfo)
		if err != nil {
			return fmt.Errorf("qrinfo fixture: %w", err)
		}
		var info message.QRInfo
		if err := info.BtcDecode(bytes.NewReader(raw)); err != nil {
			return fmt.Errorf("decode qrinfo: %w", err)
		}

		heights := message.Heights{
			Tip: opts.TipHeight,
			H:   opts.HHeight,
			HC:  opts.HCHeight,
			H2C: opts.H2CHeight,
			H3C: opts.H3CHeight,
			H4C: opts.H4CHeight,
		}
		input := info.Reduce(chaincfg.LLMQType(opts.LLMQType), heights)
		if err := e.FeedQRInfo(input, !opts.NoVerify); err != nil {
			return fmt.Errorf("feed qrinfo: %w", err)
		}

		commitments, _ := e.LastCommitmentPerIndex(chaincfg.LLMQType(opts.LLMQType))
		for i, q := range commitments {
			fmt.Printf("quorum index %d: %s (%s)\n", i, q.Status, q.QuorumEntry.QuorumHash)
		}
	}

	if store != nil {
		height, ok := e.LatestHeight()
		if ok {
			if err := store.Save(e, height); err != nil {
				return err
			}
		}
	}

	if list, ok := e.LatestList(); ok {
		fmt.Printf("latest list: height %d, %d masternodes, %d quorum types\n",
			list.Height, len(list.Masternodes), len(list.Quorums))
	}
	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "mnlistdiag:", err)
		os.Exit(1)
	}
}
