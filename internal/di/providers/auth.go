package providers

import (
	"encoding/hex"

	"github.com/samber/do/v2"

	"github.com/bookspace/bookspace-server/internal/auth"
	"github.com/bookspace/bookspace-server/internal/config"
	"github.com/bookspace/bookspace-server/internal/logger"
)

// AuthKey is the raw symmetric key access tokens are encrypted with.
type AuthKey []byte

// ProvideAuthKey reads the persisted token key, minting one on first run.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	key, err := auth.LoadOrGenerateKey(cfg.Data.BasePath)
	if err != nil {
		return nil, err
	}
	cfg.Auth.AccessTokenKey = key

	log.Info("Authentication key loaded", "access_token_duration", cfg.Auth.AccessTokenDuration)
	return AuthKey(key), nil
}

// ProvideTokenService builds the PASETO token service from the loaded key.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	key := do.MustInvoke[AuthKey](i)

	return auth.NewTokenService(hex.EncodeToString(key), cfg.Auth.AccessTokenDuration)
}
