// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnentry

import (
	"bytes"
	"net"
	"testing"

	"github.com/davecgh/go-spew/spew"

	"github.com/dashpay/dashmnle/hashtypes"
	"github.com/dashpay/dashmnle/wire"
)

func sampleConfirmedHash() hashtypes.Hash {
	var h hashtypes.Hash
	for i := range h {
		h[i] = byte(i + 1)
	}
	return h
}

func TestEntryRoundTripRegular(t *testing.T) {
	confirmed := sampleConfirmedHash()
	e := Entry{
		Version:        1,
		ServiceAddress: serviceAddressFor(t, "10.0.0.1", 9999),
		ConfirmedHash:  &confirmed,
		IsValid:        true,
	}
	for i := range e.ProRegTxHash {
		e.ProRegTxHash[i] = byte(0xa0 + i%16)
	}
	for i := range e.KeyIDVoting {
		e.KeyIDVoting[i] = byte(i)
	}

	raw, err := e.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) != e.Size() {
		t.Fatalf("len(Bytes()) = %d, want Size() = %d", len(raw), e.Size())
	}

	var decoded Entry
	if err := decoded.BtcDecode(bytes.NewReader(raw)); err != nil {
		t.Fatalf("BtcDecode: %v\n%s", err, spew.Sdump(e))
	}
	reencoded, err := decoded.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(raw, reencoded) {
		t.Fatalf("round trip mismatch:\nwant %x\ngot  %x", raw, reencoded)
	}
	if decoded.Type != TypeRegular {
		t.Fatalf("version-1 entry decoded a non-regular type: %s", decoded.Type)
	}
}

func TestEntryRoundTripHighPerformance(t *testing.T) {
	confirmed := sampleConfirmedHash()
	e := Entry{
		Version:          2,
		ServiceAddress:   serviceAddressFor(t, "192.168.1.5", 19999),
		ConfirmedHash:    &confirmed,
		IsValid:          true,
		Type:             TypeHighPerformance,
		PlatformHTTPPort: 443,
	}
	for i := range e.PlatformNodeID {
		e.PlatformNodeID[i] = byte(0xc0 + i)
	}

	raw, err := e.Bytes()
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) != e.Size() {
		t.Fatalf("len(Bytes()) = %d, want Size() = %d", len(raw), e.Size())
	}

	var decoded Entry
	if err := decoded.BtcDecode(bytes.NewReader(raw)); err != nil {
		t.Fatal(err)
	}
	if decoded.Type != TypeHighPerformance {
		t.Fatalf("decoded type = %s, want high-performance", decoded.Type)
	}
	if decoded.PlatformHTTPPort != 443 {
		t.Fatalf("decoded platform port = %d, want 443", decoded.PlatformHTTPPort)
	}
	if decoded.PlatformNodeID != e.PlatformNodeID {
		t.Fatalf("platform node id mismatch")
	}
}

func TestEntryNoConfirmedHashHasNoScore(t *testing.T) {
	e := Entry{Version: 1, IsValid: true}
	if _, ok := e.Score(hashtypes.Hash{}); ok {
		t.Fatal("expected no score for an entry with no confirmed hash")
	}
}

func TestEntryInvalidHasNoScore(t *testing.T) {
	confirmed := sampleConfirmedHash()
	e := Entry{Version: 1, ConfirmedHash: &confirmed, IsValid: false}
	if _, ok := e.Score(hashtypes.Hash{}); ok {
		t.Fatal("expected no score for an invalid entry")
	}
}

func serviceAddressFor(t *testing.T, ip string, port uint16) wire.ServiceAddress {
	t.Helper()
	parsed := net.ParseIP(ip)
	if parsed == nil {
		t.Fatalf("bad test IP %q", ip)
	}
	return wire.ServiceAddress{IP: parsed, Port: port}
}
