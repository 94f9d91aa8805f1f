// Package wallet provides transaction signers and off-chain message signing
// for launchpad authentication.
package wallet

import (
	"context"
	"crypto/ed25519"
	"fmt"
	"os"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// Signer performs detached signatures for transaction messages.
type Signer interface {
	PublicKey() solana.PublicKey
	SignMessage(ctx context.Context, message []byte) (solana.Signature, error)
}

// Local wraps a local private key.
type Local struct {
	key solana.PrivateKey
}

// NewLocalFromKeygen loads a solana-keygen JSON file.
func NewLocalFromKeygen(path string) (Local, error) {
	key, err := solana.PrivateKeyFromSolanaKeygenFile(path)
	if err != nil {
		return Local{}, fmt.Errorf("load keypair: %w", err)
	}
	return Local{key: key}, nil
}

// NewLocalFromBase58 constructs a local signer from base58-encoded key.
func NewLocalFromBase58(privateKey string) (Local, error) {
	key, err := solana.PrivateKeyFromBase58(strings.TrimSpace(privateKey))
	if err != nil {
		return Local{}, fmt.Errorf("decode base58 key: %w", err)
	}
	return Local{key: key}, nil
}

// NewLocalFromPrivateKey constructs a local signer from existing private key.
func NewLocalFromPrivateKey(key solana.PrivateKey) Local {
	return Local{key: key}
}

// Generate creates a signer for a fresh random keypair.
func Generate() Local {
	return Local{key: solana.NewWallet().PrivateKey}
}

// Load accepts either a keygen JSON path or a base58 private key.
func Load(ref string) (Local, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Local{}, fmt.Errorf("empty key reference")
	}
	if _, err := os.Stat(ref); err == nil {
		return NewLocalFromKeygen(ref)
	}
	return NewLocalFromBase58(ref)
}

// PublicKey returns the associated public key.
func (l Local) PublicKey() solana.PublicKey {
	return l.key.PublicKey()
}

// PrivateKey exposes the raw key, e.g. to persist a generated mint.
func (l Local) PrivateKey() solana.PrivateKey {
	return l.key
}

// SignMessage signs the provided message bytes.
func (l Local) SignMessage(ctx context.Context, message []byte) (solana.Signature, error) {
	select {
	case <-ctx.Done():
		return solana.Signature{}, ctx.Err()
	default:
		sig, err := l.key.Sign(message)
		if err != nil {
			return solana.Signature{}, fmt.Errorf("sign message: %w", err)
		}
		return sig, nil
	}
}

// RemoteSigner signs by delegating to an external signer function.
type RemoteSigner struct {
	pub      solana.PublicKey
	SignFunc func(ctx context.Context, message []byte) ([]byte, error)
}

// NewRemoteSigner constructs a remote signer.
func NewRemoteSigner(pub solana.PublicKey, fn func(ctx context.Context, message []byte) ([]byte, error)) RemoteSigner {
	return RemoteSigner{
		pub:      pub,
		SignFunc: fn,
	}
}

// PublicKey returns the attached public key.
func (r RemoteSigner) PublicKey() solana.PublicKey {
	return r.pub
}

// SignMessage obtains a signature from the remote function.
func (r RemoteSigner) SignMessage(ctx context.Context, message []byte) (solana.Signature, error) {
	if r.SignFunc == nil {
		return solana.Signature{}, fmt.Errorf("sign func not set")
	}
	raw, err := r.SignFunc(ctx, message)
	if err != nil {
		return solana.Signature{}, fmt.Errorf("remote sign: %w", err)
	}
	if len(raw) != solana.SignatureLength {
		return solana.Signature{}, fmt.Errorf("invalid signature length: got %d", len(raw))
	}
	var sig solana.Signature
	copy(sig[:], raw)
	return sig, nil
}

// SignText signs a UTF-8 challenge and returns the base58 signature the
// social API expects.
func SignText(ctx context.Context, s Signer, text string) (string, error) {
	sig, err := s.SignMessage(ctx, []byte(text))
	if err != nil {
		return "", err
	}
	return base58.Encode(sig[:]), nil
}

// VerifyText checks a base58 signature over text against pub.
func VerifyText(pub solana.PublicKey, text, signature string) error {
	raw, err := base58.Decode(signature)
	if err != nil {
		return fmt.Errorf("decode signature: %w", err)
	}
	if len(raw) != ed25519.SignatureSize {
		return fmt.Errorf("invalid signature length: got %d", len(raw))
	}
	if !ed25519.Verify(ed25519.PublicKey(pub[:]), []byte(text), raw) {
		return fmt.Errorf("signature does not match %s", pub)
	}
	return nil
}
