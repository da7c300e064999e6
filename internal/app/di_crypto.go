package app

import (
	"fmt"
	"sync"

	cryptoDomain "github.com/allisson/journal/internal/crypto/domain"
	cryptoService "github.com/allisson/journal/internal/crypto/service"
)

type cryptoComponents struct {
	aeadManager cryptoService.AEADManager
	keyDeriver  cryptoService.KeyDeriver
	envelope    cryptoService.EnvelopeCrypto

	aeadManagerInit sync.Once
	keyDeriverInit  sync.Once
	envelopeInit    sync.Once
}

// AEADManager returns the cipher factory.
func (c *Container) AEADManager() cryptoService.AEADManager {
	c.crypto.aeadManagerInit.Do(func() {
		c.crypto.aeadManager = cryptoService.NewAEADManager()
	})
	return c.crypto.aeadManager
}

// KeyDeriver returns the PBKDF2 master key deriver.
func (c *Container) KeyDeriver() cryptoService.KeyDeriver {
	c.crypto.keyDeriverInit.Do(func() {
		c.crypto.keyDeriver = cryptoService.NewKeyDerivationService(c.config.KDFIterations)
	})
	return c.crypto.keyDeriver
}

// Envelope returns the envelope cipher configured with DATA_KEY_ALGORITHM.
func (c *Container) Envelope() (cryptoService.EnvelopeCrypto, error) {
	err := c.once(&c.crypto.envelopeInit, "envelope", func() error {
		alg, err := cryptoDomain.ParseAlgorithm(c.config.DataKeyAlgorithm)
		if err != nil {
			return fmt.Errorf("invalid data key algorithm %q: %w", c.config.DataKeyAlgorithm, err)
		}
		c.crypto.envelope = cryptoService.NewEnvelopeService(c.AEADManager(), alg)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c.crypto.envelope, nil
}
