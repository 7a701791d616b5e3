// Package pemfile creates and loads the SSH host key of the server.
package pemfile

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"

	"github.com/zond/tabletop"

	gossh "golang.org/x/crypto/ssh"
)

const keyBits = 4096

type KeyParams struct {
	KeyPath       string
	SSHPubKeyPath string
}

// Generate writes a new RSA private key to KeyPath and its authorized_keys
// form to SSHPubKeyPath.
func (k KeyParams) Generate() error {
	privateKey, err := rsa.GenerateKey(rand.Reader, keyBits)
	if err != nil {
		return tabletop.WithStack(err)
	}
	keyBytes := x509.MarshalPKCS1PrivateKey(privateKey)

	if err := os.WriteFile(k.KeyPath, pem.EncodeToMemory(
		&pem.Block{
			Type:  "RSA PRIVATE KEY",
			Bytes: keyBytes,
		}),
		0600,
	); err != nil {
		return tabletop.WithStack(err)
	}

	pub, err := gossh.NewPublicKey(&privateKey.PublicKey)
	if err != nil {
		return tabletop.WithStack(err)
	}
	if err := os.WriteFile(k.SSHPubKeyPath, gossh.MarshalAuthorizedKey(pub), 0600); err != nil {
		return tabletop.WithStack(err)
	}
	return nil
}

// Ensure returns the PEM bytes of the private key, generating the pair
// first if KeyPath doesn't exist. generated reports whether that happened.
func (k KeyParams) Ensure() (pemBytes []byte, generated bool, err error) {
	if _, err := os.Stat(k.KeyPath); os.IsNotExist(err) {
		if err := k.Generate(); err != nil {
			return nil, false, err
		}
		generated = true
	} else if err != nil {
		return nil, false, tabletop.WithStack(err)
	}
	if pemBytes, err = os.ReadFile(k.KeyPath); err != nil {
		return nil, false, tabletop.WithStack(err)
	}
	return pemBytes, generated, nil
}

// Fingerprint returns the SHA256 fingerprint of the key in pemBytes.
func Fingerprint(pemBytes []byte) (string, error) {
	signer, err := gossh.ParsePrivateKey(pemBytes)
	if err != nil {
		return "", tabletop.WithStack(err)
	}
	return gossh.FingerprintSHA256(signer.PublicKey()), nil
}
