package main

import (
	"crypto/rand"
	"crypto/rsa"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/vbncursed/vkr/wallet-service/internal/config"
	"github.com/vbncursed/vkr/wallet-service/internal/crypto"
)

// seed-keys создаёт локальный ключ сервисного аккаунта для разработки:
// токены им подписываются, но Google Wallet их не примет.
func main() {
	cfg := config.Load()
	log := cfg.NewLogger()

	var (
		out   string
		email string
		bits  int
	)
	flag.StringVar(&out, "out", cfg.ServiceAccountFile, "output file")
	flag.StringVar(&email, "email", "dev-issuer@localhost.iam.gserviceaccount.com", "client_email")
	flag.IntVar(&bits, "bits", 2048, "RSA key size")
	flag.Parse()

	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		log.Fatalf("keygen: %v", err)
	}
	id, err := crypto.NewIdentity(email, key)
	if err != nil {
		log.Fatalf("identity: %v", err)
	}
	kid := fmt.Sprintf("dev-%s-%s", time.Now().UTC().Format("2006-01"), uuid.NewString()[:8])

	data, err := crypto.EncodeServiceAccount(id, kid, "")
	if err != nil {
		log.Fatalf("encode: %v", err)
	}
	if err := os.WriteFile(out, data, 0o600); err != nil {
		log.Fatalf("write: %v", err)
	}
	log.WithField("kid", kid).Infof("wrote service account key to %s", out)
}
