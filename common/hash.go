// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package common

import (
	"crypto"
	_ "crypto/sha256"
	_ "crypto/sha512"
	"encoding/binary"
)

const (
	hashInputDelimiter = byte('$')
)

// Hash digests the given byte buffers with the hash function h. Each input is
// followed by a safety delimiter and its length, and the whole message is
// prefixed with the block count, so that no two distinct input vectors
// collide.
func Hash(h crypto.Hash, in ...[]byte) []byte {
	var data []byte
	state := h.New()
	inLen := len(in)
	if inLen == 0 {
		return nil
	}
	bzSize := 0
	// prevent hash collisions with this prefix containing the block count
	inLenBz := make([]byte, 64/8)
	binary.LittleEndian.PutUint64(inLenBz, uint64(inLen))
	for _, bz := range in {
		bzSize += len(bz)
	}
	dataCap := len(inLenBz) + bzSize + inLen + (inLen * 8)
	data = make([]byte, 0, dataCap)
	data = append(data, inLenBz...)
	for _, bz := range in {
		data = append(data, bz...)
		data = append(data, hashInputDelimiter) // safety delimiter
		dataLen := make([]byte, 8)              // 64-bits
		binary.LittleEndian.PutUint64(dataLen, uint64(len(bz)))
		data = append(data, dataLen...)
	}
	// n < len(data) or an error will never happen.
	// see: https://golang.org/pkg/hash/#Hash
	if _, err := state.Write(data); err != nil {
		Logger.Errorf("Hash Write() failed: %v", err)
		return nil
	}
	return state.Sum(nil)
}
