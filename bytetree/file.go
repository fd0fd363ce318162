// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package bytetree

import (
	"bufio"
	"io/ioutil"
	"os"
)

// WriteFile serializes the tree to the named file.
func (bt *ByteTree) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if _, err := bt.WriteTo(w); err != nil {
		_ = f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ReadFile parses the named file as a single byte tree.
func ReadFile(path string) (*ByteTree, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Unmarshal(data)
}

// OpenFile opens the named file for lazy child-by-child reading. The caller
// owns the returned reader and must Close it.
func OpenFile(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	return NewReader(f), nil
}
