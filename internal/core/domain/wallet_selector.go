package domain

import "fmt"

type selectorKind uint8

const (
	selectIndex selectorKind = iota
	selectKeypair
)

// WalletSelector chooses the keypair a signer is built from: either a derivation index
// or an already materialized Keypair. The zero value selects index 0.
type WalletSelector struct {
	kind    selectorKind
	index   uint32
	keypair Keypair
}

// DefaultSelector selects derivation index 0.
func DefaultSelector() WalletSelector {
	return WalletSelector{}
}

// SelectIndex selects the keypair derived at index.
func SelectIndex(index uint32) WalletSelector {
	return WalletSelector{kind: selectIndex, index: index}
}

// SelectIndexPtr selects *index, or the default selector when index is nil.
func SelectIndexPtr(index *uint32) WalletSelector {
	if index == nil {
		return DefaultSelector()
	}
	return SelectIndex(*index)
}

// SelectKeypair selects an existing keypair.
func SelectKeypair(keypair Keypair) WalletSelector {
	return WalletSelector{kind: selectKeypair, keypair: keypair}
}

// SelectKeypairPtr selects *keypair, or the default selector when keypair is nil.
func SelectKeypairPtr(keypair *Keypair) WalletSelector {
	if keypair == nil {
		return DefaultSelector()
	}
	return SelectKeypair(*keypair)
}

// Index returns the derivation index and true when the selector holds an index.
func (s WalletSelector) Index() (uint32, bool) {
	if s.kind != selectIndex {
		return 0, false
	}
	return s.index, true
}

// Keypair returns the keypair and true when the selector holds a keypair.
func (s WalletSelector) Keypair() (Keypair, bool) {
	if s.kind != selectKeypair {
		return Keypair{}, false
	}
	return s.keypair, true
}

func (s WalletSelector) String() string {
	if s.kind == selectKeypair {
		return fmt.Sprintf("keypair(%s)", s.keypair.Address().Hex())
	}
	return fmt.Sprintf("index(%d)", s.index)
}
