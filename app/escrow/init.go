package escrow

import "github.com/joefazee/arena/internal/deps"

const DeriverKey = "escrow_deriver"

// Init builds the deriver and registers it with the container
func Init(container *deps.Container, cfg *Config) error {
	d, err := NewDeriver(cfg)
	if err != nil {
		return err
	}
	container.RegisterService(DeriverKey, d)
	return nil
}
