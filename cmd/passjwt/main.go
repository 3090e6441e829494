package main

import (
	"github.com/vbncursed/vkr/wallet-service/cmd/passjwt/passcmd"
	"github.com/vbncursed/vkr/wallet-service/internal/config"
)

// passjwt выпускает токены и регистрирует ресурсы каталога из командной строки.
func main() {
	cfg := config.Load()
	logger := cfg.NewLogger()

	if err := passcmd.Cmd(cfg, logger).Execute(); err != nil {
		logger.Fatalf("passjwt: %s", err)
	}
}
