// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"fmt"
	"io"
	"net"
)

// SocketAddrSize is the encoded size, in bytes, of a ServiceAddress: 16
// bytes of address followed by a 2-byte big-endian port.
const SocketAddrSize = 18

// ServiceAddress is a masternode's network service endpoint: an IPv4
// address stored in its IPv4-in-IPv6 form (leading 12 bytes zero, last 4
// bytes the address) plus a port, network-byte-order on the wire.
type ServiceAddress struct {
	IP   net.IP
	Port uint16
}

// String renders the address in host:port form.
func (a ServiceAddress) String() string {
	return fmt.Sprintf("%s:%d", a.IP.String(), a.Port)
}

// ReadServiceAddress reads a 16-byte address and 2-byte big-endian port.
func ReadServiceAddress(r io.Reader) (ServiceAddress, error) {
	raw, err := readFixedBytes(r, 16)
	if err != nil {
		return ServiceAddress{}, err
	}
	var portBuf [2]byte
	if _, err := io.ReadFull(r, portBuf[:]); err != nil {
		return ServiceAddress{}, err
	}
	ip := make(net.IP, 16)
	copy(ip, raw)
	return ServiceAddress{IP: ip, Port: binary.BigEndian.Uint16(portBuf[:])}, nil
}

// WriteServiceAddress writes a as 16 address bytes followed by a
// big-endian port. IPv4 addresses are expanded to their 16-byte
// IPv4-in-IPv6 form; the zero value encodes as all-zero bytes.
func WriteServiceAddress(w io.Writer, a ServiceAddress) error {
	var raw [16]byte
	if ip4 := a.IP.To4(); ip4 != nil {
		copy(raw[12:], ip4)
	} else if len(a.IP) == 16 {
		copy(raw[:], a.IP)
	}
	if _, err := w.Write(raw[:]); err != nil {
		return err
	}
	var portBuf [2]byte
	binary.BigEndian.PutUint16(portBuf[:], a.Port)
	_, err := w.Write(portBuf[:])
	return err
}
