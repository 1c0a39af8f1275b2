package domain

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// ErrInvalidPrivateKey indicates key material that is not a valid secp256k1 private key.
var ErrInvalidPrivateKey = errors.New("invalid private key")

// Keypair is an immutable secp256k1 signing key together with its Ethereum address.
type Keypair struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewKeypair wraps an existing private key.
func NewKeypair(key *ecdsa.PrivateKey) (Keypair, error) {
	if key == nil || key.D == nil {
		return Keypair{}, fmt.Errorf("%w: key is nil", ErrInvalidPrivateKey)
	}
	return Keypair{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
	}, nil
}

// KeypairFromHex parses a hex-encoded private key, with or without the 0x prefix.
func KeypairFromHex(privateKeyHex string) (Keypair, error) {
	cleaned := strings.TrimSpace(privateKeyHex)
	if len(cleaned) >= 2 && cleaned[0] == '0' && (cleaned[1] == 'x' || cleaned[1] == 'X') {
		cleaned = cleaned[2:]
	}
	key, err := crypto.HexToECDSA(cleaned)
	if err != nil {
		return Keypair{}, fmt.Errorf("%w: %w", ErrInvalidPrivateKey, err)
	}
	return NewKeypair(key)
}

// Address returns the Ethereum address of the keypair.
func (k Keypair) Address() common.Address {
	return k.address
}

// PrivateKey returns a copy of the private key.
func (k Keypair) PrivateKey() *ecdsa.PrivateKey {
	if k.key == nil {
		return nil
	}
	// round-trip through bytes so callers cannot mutate the shared key
	cp, err := crypto.ToECDSA(crypto.FromECDSA(k.key))
	if err != nil {
		return nil
	}
	return cp
}

// PublicKey returns the public half of the keypair.
func (k Keypair) PublicKey() *ecdsa.PublicKey {
	if k.key == nil {
		return nil
	}
	pub := k.key.PublicKey
	return &pub
}

// IsZero checks if the Keypair is the zero value.
func (k Keypair) IsZero() bool {
	return k.key == nil
}

// Equals checks if two keypairs hold the same key.
func (k Keypair) Equals(other Keypair) bool {
	if k.key == nil || other.key == nil {
		return k.key == other.key
	}
	return k.address == other.address && k.key.D.Cmp(other.key.D) == 0
}

// String returns the checksummed address; key material is never printed.
func (k Keypair) String() string {
	return k.address.Hex()
}
